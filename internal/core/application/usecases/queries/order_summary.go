// Package queries contains the read side of the order lifecycle: claimable
// orders, order details, per-actor lists, vendor statistics and profile
// status. Handlers read straight from the database with raw SQL and never
// go through the aggregates.
package queries

import (
	"database/sql"
	"time"

	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderSummary is an order row without its line items.
type OrderSummary struct {
	ID                kernel.UUID
	Number            order.Number
	VendorID          kernel.UUID
	SupplierID        kernel.UUID
	DeliveryPartnerID *kernel.UUID
	Status            order.Status
	Total             kernel.Money
	DeliveryAddress   string
	DeliveryDate      *time.Time
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

const summaryColumns = `
	o.id,
	o.order_number,
	o.vendor_id,
	o.supplier_id,
	o.delivery_partner_id,
	o.status,
	o.total_amount,
	o.delivery_address,
	o.delivery_date,
	o.notes,
	o.created_at,
	o.updated_at`

func scanSummary(rows *sql.Rows) (OrderSummary, error) {
	var (
		id, vendorID, supplierID uuid.UUID
		partnerID                uuid.NullUUID
		number, status           string
		total                    decimal.Decimal
		deliveryDate             sql.NullTime
		notes                    sql.NullString
		s                        OrderSummary
	)

	if err := rows.Scan(
		&id,
		&number,
		&vendorID,
		&supplierID,
		&partnerID,
		&status,
		&total,
		&s.DeliveryAddress,
		&deliveryDate,
		&notes,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return OrderSummary{}, err
	}

	var err error
	if s.ID, err = kernel.UUIDFromGoogle(id); err != nil {
		return OrderSummary{}, err
	}
	if s.VendorID, err = kernel.UUIDFromGoogle(vendorID); err != nil {
		return OrderSummary{}, err
	}
	if s.SupplierID, err = kernel.UUIDFromGoogle(supplierID); err != nil {
		return OrderSummary{}, err
	}
	if partnerID.Valid {
		pID, pErr := kernel.UUIDFromGoogle(partnerID.UUID)
		if pErr != nil {
			return OrderSummary{}, pErr
		}
		s.DeliveryPartnerID = &pID
	}
	if s.Total, err = kernel.NewMoney(total); err != nil {
		return OrderSummary{}, err
	}

	s.Number = order.Number(number)
	s.Status = order.Status(status)
	s.Notes = notes.String
	if deliveryDate.Valid {
		d := deliveryDate.Time
		s.DeliveryDate = &d
	}
	return s, nil
}

func collectSummaries(rows *sql.Rows) ([]OrderSummary, error) {
	defer rows.Close()

	summaries := make([]OrderSummary, 0)
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}
