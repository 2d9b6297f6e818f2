package main

import (
	"io"
	"strconv"

	"supplyhub/internal/core/application/usecases/queries"
	"supplyhub/internal/core/domain/model/order"

	"github.com/olekukonko/tablewriter"
)

const dateLayout = "2006-01-02"

func renderSummaries(w io.Writer, orders []queries.OrderSummary) error {
	table := tablewriter.NewWriter(w)
	table.Header("Number", "ID", "Vendor", "Supplier", "Total", "Delivery date", "Address")

	for _, o := range orders {
		date := "-"
		if o.DeliveryDate != nil {
			date = o.DeliveryDate.Format(dateLayout)
		}
		row := []string{
			o.Number.String(),
			o.ID.String(),
			o.VendorID.String(),
			o.SupplierID.String(),
			o.Total.String(),
			date,
			o.DeliveryAddress,
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func renderStats(w io.Writer, stats queries.VendorOrderStats) error {
	table := tablewriter.NewWriter(w)
	table.Header("Status", "Orders")

	for _, s := range order.Statuses() {
		if err := table.Append([]string{s.String(), strconv.FormatInt(stats.ByStatus[s], 10)}); err != nil {
			return err
		}
	}
	if err := table.Append([]string{"total", strconv.FormatInt(stats.Total, 10)}); err != nil {
		return err
	}
	if err := table.Append([]string{"spent", stats.TotalSpent.String()}); err != nil {
		return err
	}
	return table.Render()
}
