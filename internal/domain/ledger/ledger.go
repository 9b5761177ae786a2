// Package ledger computes GST totals for quotations and issues advisory quotation numbers.
package ledger

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

// Intra-state GST is split evenly between the central and state components.
var (
	CGSTRate = decimal.RequireFromString("0.09")
	SGSTRate = decimal.RequireFromString("0.09")
)

// DefaultPrefix is used when no quotation prefix is configured.
const DefaultPrefix = "SLI-Q"

// Totals is the tax breakdown of a quotation.
type Totals struct {
	SubTotal  decimal.Decimal `json:"sub_total"`
	CGST      decimal.Decimal `json:"cgst"`
	SGST      decimal.Decimal `json:"sgst"`
	NetAmount decimal.Decimal `json:"net_amount"`
}

// ComputeTotals sums pre-tax line amounts and applies CGST and SGST. No rounding is applied;
// rounding is a presentation concern.
func ComputeTotals(items []entity.QuotationLineItem) Totals {
	sub := decimal.Zero
	for _, it := range items {
		sub = sub.Add(it.Amount)
	}
	cgst := sub.Mul(CGSTRate)
	sgst := sub.Mul(SGSTRate)
	return Totals{
		SubTotal:  sub,
		CGST:      cgst,
		SGST:      sgst,
		NetAmount: sub.Add(cgst).Add(sgst),
	}
}

// NetAmount is ComputeTotals(items).NetAmount.
func NetAmount(items []entity.QuotationLineItem) decimal.Decimal {
	return ComputeTotals(items).NetAmount
}

// NumberGenerator issues display numbers of the form <prefix>-<year>-<n>, n in [0,1000).
// Numbers are advisory: collisions are possible and records are always looked up by id.
type NumberGenerator struct {
	prefix string
	intn   func(n int) int
}

// NewNumberGenerator creates a generator; an empty prefix falls back to DefaultPrefix.
func NewNumberGenerator(prefix string) *NumberGenerator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &NumberGenerator{prefix: prefix, intn: rand.Intn}
}

// WithSource replaces the random source; intended for deterministic tests.
func (g *NumberGenerator) WithSource(intn func(n int) int) *NumberGenerator {
	g.intn = intn
	return g
}

// Next returns a number for a quotation dated at t.
func (g *NumberGenerator) Next(t time.Time) string {
	return fmt.Sprintf("%s-%d-%d", g.prefix, t.Year(), g.intn(1000))
}
