// Package aggregation sums quotes and costs over records that were already
// fetched and flattens them for export. It performs no I/O.
package aggregation

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Priced is anything carrying a customer quote and a supplier cost
type Priced interface {
	Quote() float64
	Cost() float64
}

// Group is the set of records fetched from one collection
type Group[P Priced] struct {
	DisplayName string
	Records     []P
}

// Totals is the aggregate of one collection
type Totals struct {
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
	Profit  decimal.Decimal `json:"profit"`
}

// Summary is the aggregate across every group
type Summary struct {
	TotalCount    int               `json:"totalCount"`
	TotalRevenue  decimal.Decimal   `json:"totalRevenue"`
	TotalCost     decimal.Decimal   `json:"totalCost"`
	TotalProfit   decimal.Decimal   `json:"totalProfit"`
	PerCollection map[string]Totals `json:"perCollection"`
}

// MarshalJSON renders amounts as JSON numbers
func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Count   int         `json:"count"`
		Revenue json.Number `json:"revenue"`
		Cost    json.Number `json:"cost"`
		Profit  json.Number `json:"profit"`
	}{
		Count:   t.Count,
		Revenue: number(t.Revenue),
		Cost:    number(t.Cost),
		Profit:  number(t.Profit),
	})
}

// MarshalJSON renders amounts as JSON numbers
func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalCount    int               `json:"totalCount"`
		TotalRevenue  json.Number       `json:"totalRevenue"`
		TotalCost     json.Number       `json:"totalCost"`
		TotalProfit   json.Number       `json:"totalProfit"`
		PerCollection map[string]Totals `json:"perCollection"`
	}{
		TotalCount:    s.TotalCount,
		TotalRevenue:  number(s.TotalRevenue),
		TotalCost:     number(s.TotalCost),
		TotalProfit:   number(s.TotalProfit),
		PerCollection: s.PerCollection,
	})
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// Summarize computes per-group and overall count, revenue, cost and profit.
// Every group appears in PerCollection, including empty ones. Profit is
// derived once from the summed revenue and cost at each level.
func Summarize[P Priced](groups []Group[P]) Summary {
	summary := Summary{
		TotalRevenue:  decimal.Zero,
		TotalCost:     decimal.Zero,
		TotalProfit:   decimal.Zero,
		PerCollection: make(map[string]Totals, len(groups)),
	}

	for _, g := range groups {
		totals := summary.PerCollection[g.DisplayName]
		for _, r := range g.Records {
			quote := decimal.NewFromFloat(r.Quote())
			cost := decimal.NewFromFloat(r.Cost())

			totals.Count++
			totals.Revenue = totals.Revenue.Add(quote)
			totals.Cost = totals.Cost.Add(cost)

			summary.TotalCount++
			summary.TotalRevenue = summary.TotalRevenue.Add(quote)
			summary.TotalCost = summary.TotalCost.Add(cost)
		}

		totals.Profit = totals.Revenue.Sub(totals.Cost)
		summary.PerCollection[g.DisplayName] = totals
	}

	summary.TotalProfit = summary.TotalRevenue.Sub(summary.TotalCost)
	return summary
}
