package postgres

import (
	"context"
	"fmt"

	"supplyhub/internal/adapters/out/postgres/actorrepo"
	"supplyhub/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables of the order store and the actor
// directory.
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&actorrepo.VendorDTO{},
		&actorrepo.SupplierDTO{},
		&actorrepo.DeliveryPartnerDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
