package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/core/ports"
	"supplyhub/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM. The
// connection must be opened with TranslateError so that unique violations
// on order_number surface as ports.ErrDuplicateOrderNumber.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// Add inserts the order row and then its items. Inside a transaction an
// item failure is undone by the caller's rollback; outside one the order
// row is deleted here.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	items := dto.Items
	db := r.db.WithContext(ctx)

	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("insert order %s: %w", dto.OrderNumber, ports.ErrDuplicateOrderNumber)
		}
		return fmt.Errorf("insert order: %w", err)
	}

	if err := db.Create(&items).Error; err != nil {
		itemErr := fmt.Errorf("insert order_items: %w", err)
		if r.inTransaction() {
			return itemErr
		}
		if delErr := db.Delete(&OrderDTO{}, "id = ?", dto.ID).Error; delErr != nil {
			return errors.Join(itemErr, fmt.Errorf("delete half-written order %s: %w", dto.ID, delErr))
		}
		return itemErr
	}

	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&dto, "id = ?", id.Value()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatus is a compare-and-set on (status, delivery_partner_id).
func (r *GormOrderRepository) UpdateStatus(
	ctx context.Context,
	aggregate *order.Order,
	expected order.Status,
) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	q := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Value(), expected.String())
	if partnerID := aggregate.DeliveryPartnerID(); partnerID != nil {
		q = q.Where("delivery_partner_id = ?", partnerID.Value())
	} else {
		q = q.Where("delivery_partner_id IS NULL")
	}

	result := q.UpdateColumns(map[string]any{
		"status":     aggregate.Status().String(),
		"updated_at": aggregate.UpdatedAt(),
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *GormOrderRepository) Claim(
	ctx context.Context,
	id, partnerID kernel.UUID,
	at time.Time,
) (*order.Order, error) {
	if err := errors.Join(id.Validate(), partnerID.Validate()); err != nil {
		return nil, err
	}

	var claimed []OrderDTO
	result := r.db.WithContext(ctx).Model(&claimed).
		Clauses(clause.Returning{}).
		Where("id = ? AND status = ? AND delivery_partner_id IS NULL", id.Value(), order.ReadyForPickup.String()).
		UpdateColumns(map[string]any{
			"status":              order.OutForDelivery.String(),
			"delivery_partner_id": partnerID.Value(),
			"updated_at":          at.UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 || len(claimed) == 0 {
		return nil, nil
	}

	return toDomain(claimed[0])
}

func (r *GormOrderRepository) DeleteTerminalBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status IN ? AND updated_at < ?",
			[]string{order.Delivered.String(), order.Cancelled.String()}, cutoff.UTC()).
		Delete(&OrderDTO{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *GormOrderRepository) inTransaction() bool {
	_, ok := r.db.Statement.ConnPool.(gorm.TxCommitter)
	return ok
}
