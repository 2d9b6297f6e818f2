package queries

import (
	"context"

	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VendorOrderStats summarizes a vendor's orders. TotalSpent leaves out
// cancelled orders.
type VendorOrderStats struct {
	Total      int64
	ByStatus   map[order.Status]int64
	TotalSpent kernel.Money
}

type GetVendorOrderStatsQueryHandler struct {
	db *gorm.DB
}

func NewGetVendorOrderStatsQueryHandler(db *gorm.DB) GetVendorOrderStatsQueryHandler {
	return GetVendorOrderStatsQueryHandler{db: db}
}

func (h GetVendorOrderStatsQueryHandler) Handle(
	ctx context.Context,
	query GetVendorOrderStatsQuery,
) (VendorOrderStats, error) {
	if err := query.Validate(); err != nil {
		return VendorOrderStats{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE vendor_id = ?
		GROUP BY status
	`, query.VendorID().Value()).Rows()
	if err != nil {
		return VendorOrderStats{}, errs.NewStoreUnavailableError("vendor order stats", err)
	}
	defer rows.Close()

	stats := VendorOrderStats{ByStatus: make(map[order.Status]int64, len(order.Statuses()))}
	for _, s := range order.Statuses() {
		stats.ByStatus[s] = 0
	}

	spent := decimal.Zero
	for rows.Next() {
		var (
			status string
			count  int64
			sum    decimal.Decimal
		)
		if err := rows.Scan(&status, &count, &sum); err != nil {
			return VendorOrderStats{}, err
		}
		stats.ByStatus[order.Status(status)] = count
		stats.Total += count
		if order.Status(status) != order.Cancelled {
			spent = spent.Add(sum)
		}
	}
	if err := rows.Err(); err != nil {
		return VendorOrderStats{}, err
	}

	stats.TotalSpent, err = kernel.NewMoney(spent)
	if err != nil {
		return VendorOrderStats{}, err
	}
	return stats, nil
}
