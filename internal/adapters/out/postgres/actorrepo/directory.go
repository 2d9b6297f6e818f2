package actorrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/core/ports"
	"supplyhub/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormActorDirectory struct {
	db *gorm.DB
}

func NewGormActorDirectory(db *gorm.DB) *GormActorDirectory {
	return &GormActorDirectory{db: db}
}

var _ ports.ActorDirectory = (*GormActorDirectory)(nil)

func (d *GormActorDirectory) Exists(ctx context.Context, role actor.Role, id kernel.UUID) (bool, error) {
	table, err := tableFor(role)
	if err != nil {
		return false, err
	}

	var count int64
	err = d.db.WithContext(ctx).Table(table).Where("id = ?", id.Value()).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count %s: %w", table, err)
	}
	return count > 0, nil
}

// Register creates the profile of id in role. Registering an existing
// profile again keeps the first display name.
func (d *GormActorDirectory) Register(ctx context.Context, role actor.Role, id kernel.UUID, displayName string) error {
	if strings.TrimSpace(displayName) == "" {
		return errs.NewValueIsRequiredError("displayName")
	}
	if err := id.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	var row any
	switch role {
	case actor.Vendor:
		row = &VendorDTO{ID: id.Value(), DisplayName: displayName, CreatedAt: now}
	case actor.Supplier:
		row = &SupplierDTO{ID: id.Value(), DisplayName: displayName, CreatedAt: now}
	case actor.DeliveryPartner:
		row = &DeliveryPartnerDTO{ID: id.Value(), DisplayName: displayName, CreatedAt: now}
	default:
		return errs.NewValueIsInvalidError("role")
	}

	return d.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
}

func tableFor(role actor.Role) (string, error) {
	switch role {
	case actor.Vendor:
		return VendorDTO{}.TableName(), nil
	case actor.Supplier:
		return SupplierDTO{}.TableName(), nil
	case actor.DeliveryPartner:
		return DeliveryPartnerDTO{}.TableName(), nil
	default:
		return "", errs.NewValueIsInvalidError("role")
	}
}
