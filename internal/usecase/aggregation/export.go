package aggregation

import (
	"time"

	"qtholidays-service/internal/domain/entity"
	"qtholidays-service/pkg/utils"

	"github.com/samber/lo"
)

// Fixed leading export columns
const (
	HeaderServiceType   = "Service Type"
	HeaderCreatedOn     = "Created On"
	HeaderCustomerQuote = "Customer Quote (₹)"
	HeaderSupplierCost  = "Supplier Cost (₹)"
	HeaderProfit        = "Profit (₹)"
)

// Cell is one named value of an export row
type Cell struct {
	Header string
	Value  interface{}
}

// Row is one exported record, cells in column order
type Row struct {
	Cells []Cell
}

// Get returns the value under header
func (r Row) Get(header string) (interface{}, bool) {
	cell, ok := lo.Find(r.Cells, func(c Cell) bool { return c.Header == header })
	return cell.Value, ok
}

// Headers lists the row's column headers in order
func (r Row) Headers() []string {
	return lo.Map(r.Cells, func(c Cell, _ int) string { return c.Header })
}

// Export flattens records into rows, one per record, in input order. Dates
// are rendered as calendar dates in loc; nil means the local zone.
func Export(records []entity.FlatRecord, loc *time.Location) []Row {
	return lo.Map(records, func(r entity.FlatRecord, _ int) Row {
		cells := make([]Cell, 0, 5+len(r.Fields))
		cells = append(cells,
			Cell{Header: HeaderServiceType, Value: r.ServiceType},
			Cell{Header: HeaderCreatedOn, Value: utils.FormatDate(r.CreatedAt, loc)},
			Cell{Header: HeaderCustomerQuote, Value: r.CustomerQuote},
			Cell{Header: HeaderSupplierCost, Value: r.SupplierCost},
			Cell{Header: HeaderProfit, Value: r.Profit()},
		)
		for _, f := range r.Fields {
			cells = append(cells, Cell{Header: f.Name, Value: f.Value})
		}
		return Row{Cells: cells}
	})
}

// Headers returns the union of every row's headers in first-seen order
func Headers(rows []Row) []string {
	return lo.Uniq(lo.FlatMap(rows, func(r Row, _ int) []string { return r.Headers() }))
}
