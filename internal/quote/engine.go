package quote

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Page count bounds accepted by the calculator.
const (
	MinPages = 1
	MaxPages = 20
)

// ErrInvalidSelection is returned for unknown ids or an out-of-range page count.
var ErrInvalidSelection = errors.New("invalid selection")

var hundred = decimal.NewFromInt(100)

// BreakdownLine is one priced row of a quote.
type BreakdownLine struct {
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

// Quote is the priced result for a selection.
type Quote struct {
	Total               decimal.Decimal `json:"total"`
	Breakdown           []BreakdownLine `json:"breakdown"`
	CompletenessPercent int             `json:"completeness_percent"`
}

// ComputeQuote prices sel against cat. The breakdown lists the base price,
// the pages line, then every selected extra in catalog order. sel is never
// modified and out-of-range input is rejected rather than clamped.
func ComputeQuote(sel Selection, cat Catalog, perPageRate decimal.Decimal) (Quote, error) {
	site, ok := cat.SiteType(sel.SiteTypeID)
	if !ok {
		return Quote{}, fmt.Errorf("%w: unknown site type %q", ErrInvalidSelection, sel.SiteTypeID)
	}
	if sel.PageCount < MinPages || sel.PageCount > MaxPages {
		return Quote{}, fmt.Errorf("%w: page count %d outside [%d, %d]", ErrInvalidSelection, sel.PageCount, MinPages, MaxPages)
	}
	for _, id := range sel.ExtraIDs.IDs() {
		if _, ok := cat.Extra(id); !ok {
			return Quote{}, fmt.Errorf("%w: unknown extra %q", ErrInvalidSelection, id)
		}
	}

	pages := perPageRate.Mul(decimal.NewFromInt(int64(sel.PageCount)))
	breakdown := []BreakdownLine{
		{Label: "Base", Price: site.BasePrice},
		{Label: fmt.Sprintf("Pages×%d", sel.PageCount), Price: pages},
	}
	total := site.BasePrice.Add(pages)

	for _, ex := range cat.Extras {
		if !sel.ExtraIDs.Has(ex.ID) {
			continue
		}
		breakdown = append(breakdown, BreakdownLine{Label: ex.Label, Price: ex.Price})
		total = total.Add(ex.Price)
	}

	return Quote{
		Total:               total,
		Breakdown:           breakdown,
		CompletenessPercent: completeness(total, MaxPossibleTotal(cat, perPageRate)),
	}, nil
}

// MaxPossibleTotal is the most expensive selection the catalog allows: the
// priciest site type, the maximum page count and every extra.
func MaxPossibleTotal(cat Catalog, perPageRate decimal.Decimal) decimal.Decimal {
	maxBase := decimal.Zero
	for _, st := range cat.SiteTypes {
		if st.BasePrice.GreaterThan(maxBase) {
			maxBase = st.BasePrice
		}
	}
	total := maxBase.Add(perPageRate.Mul(decimal.NewFromInt(MaxPages)))
	for _, ex := range cat.Extras {
		total = total.Add(ex.Price)
	}
	return total
}

func completeness(total, max decimal.Decimal) int {
	if !max.IsPositive() {
		return 0
	}
	pct := total.Mul(hundred).Div(max).Round(0).IntPart()
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return int(pct)
}

// ToggleExtra returns a copy of sel with id added if absent or removed if
// present. The id is not checked against any catalog.
func ToggleExtra(sel Selection, id string) Selection {
	extras := sel.ExtraIDs.Clone()
	if extras.Has(id) {
		delete(extras, id)
	} else {
		extras[id] = struct{}{}
	}
	sel.ExtraIDs = extras
	return sel
}
