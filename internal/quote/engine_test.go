package quote

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestComputeQuoteScenario(t *testing.T) {
	cat := DefaultCatalog()
	sel := NewSelection("landing", 3, "analytics", "seo")

	q, err := ComputeQuote(sel, cat, DefaultPerPageRate)
	if err != nil {
		t.Fatalf("ComputeQuote: %v", err)
	}

	if !q.Total.Equal(dec(38000)) {
		t.Errorf("Total = %s, want 38000", q.Total)
	}

	want := []BreakdownLine{
		{"Base", dec(15000)},
		{"Pages×3", dec(6000)},
		{"SEO", dec(12000)},
		{"Analytics", dec(5000)},
	}
	if len(q.Breakdown) != len(want) {
		t.Fatalf("breakdown has %d lines, want %d: %+v", len(q.Breakdown), len(want), q.Breakdown)
	}
	for i, line := range want {
		got := q.Breakdown[i]
		if got.Label != line.Label || !got.Price.Equal(line.Price) {
			t.Errorf("line %d = (%s, %s), want (%s, %s)", i, got.Label, got.Price, line.Label, line.Price)
		}
	}

	// 38000 / 171000 = 22.2%
	if q.CompletenessPercent != 22 {
		t.Errorf("CompletenessPercent = %d, want 22", q.CompletenessPercent)
	}
}

func TestComputeQuoteInvalid(t *testing.T) {
	cat := DefaultCatalog()
	tests := []struct {
		name string
		sel  Selection
	}{
		{"zero pages", NewSelection("landing", 0)},
		{"too many pages", NewSelection("landing", 21)},
		{"negative pages", NewSelection("landing", -3)},
		{"unknown site type", NewSelection("blog", 3)},
		{"empty site type", NewSelection("", 3)},
		{"unknown extra", NewSelection("landing", 3, "seo", "blockchain")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeQuote(tt.sel, cat, DefaultPerPageRate)
			if !errors.Is(err, ErrInvalidSelection) {
				t.Errorf("err = %v, want ErrInvalidSelection", err)
			}
		})
	}
}

func TestComputeQuoteBoundaryPages(t *testing.T) {
	cat := DefaultCatalog()
	for _, pages := range []int{MinPages, MaxPages} {
		if _, err := ComputeQuote(NewSelection("pwa", pages), cat, DefaultPerPageRate); err != nil {
			t.Errorf("pages=%d: unexpected error %v", pages, err)
		}
	}
}

func TestComputeQuoteTotalIsSumOfLines(t *testing.T) {
	cat := DefaultCatalog()
	var extras []string
	for _, st := range cat.SiteTypes {
		for pages := MinPages; pages <= MaxPages; pages += 7 {
			sel := NewSelection(st.ID, pages, extras...)
			q, err := ComputeQuote(sel, cat, DefaultPerPageRate)
			if err != nil {
				t.Fatalf("%s/%d: %v", st.ID, pages, err)
			}

			sum := decimal.Zero
			for _, l := range q.Breakdown {
				sum = sum.Add(l.Price)
			}
			if !sum.Equal(q.Total) {
				t.Errorf("%s/%d: total %s != sum of lines %s", st.ID, pages, q.Total, sum)
			}

			expected := st.BasePrice.Add(DefaultPerPageRate.Mul(dec(int64(pages))))
			for _, id := range extras {
				ex, _ := cat.Extra(id)
				expected = expected.Add(ex.Price)
			}
			if !expected.Equal(q.Total) {
				t.Errorf("%s/%d: total %s, closed form %s", st.ID, pages, q.Total, expected)
			}
			if q.CompletenessPercent < 0 || q.CompletenessPercent > 100 {
				t.Errorf("completeness %d out of range", q.CompletenessPercent)
			}
		}
		if len(extras) < len(cat.Extras) {
			extras = append(extras, cat.Extras[len(extras)].ID)
		}
	}
}

func TestComputeQuoteBreakdownFollowsCatalogOrder(t *testing.T) {
	cat := DefaultCatalog()
	sel := NewSelection("corporate", 5, "support", "cms", "seo")
	q, err := ComputeQuote(sel, cat, DefaultPerPageRate)
	if err != nil {
		t.Fatal(err)
	}
	got := []string{q.Breakdown[2].Label, q.Breakdown[3].Label, q.Breakdown[4].Label}
	want := []string{"SEO", "Интеграция с CMS", "6 мес. техподдержки"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("extra line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestComputeQuoteMaxIsHundred(t *testing.T) {
	cat := DefaultCatalog()
	var all []string
	for _, ex := range cat.Extras {
		all = append(all, ex.ID)
	}
	q, err := ComputeQuote(NewSelection("pwa", MaxPages, all...), cat, DefaultPerPageRate)
	if err != nil {
		t.Fatal(err)
	}
	if !q.Total.Equal(MaxPossibleTotal(cat, DefaultPerPageRate)) {
		t.Errorf("max selection total %s != MaxPossibleTotal", q.Total)
	}
	if q.CompletenessPercent != 100 {
		t.Errorf("CompletenessPercent = %d, want 100", q.CompletenessPercent)
	}
}

func TestCompletenessMonotonic(t *testing.T) {
	cat := DefaultCatalog()
	prev := -1
	for pages := MinPages; pages <= MaxPages; pages++ {
		q, err := ComputeQuote(NewSelection("ecommerce", pages, "seo"), cat, DefaultPerPageRate)
		if err != nil {
			t.Fatal(err)
		}
		if q.CompletenessPercent < prev {
			t.Fatalf("pages=%d: completeness dropped from %d to %d", pages, prev, q.CompletenessPercent)
		}
		prev = q.CompletenessPercent
	}
}

func TestCompletenessNeverDropsWhenAddingExtras(t *testing.T) {
	cat := DefaultCatalog()
	for _, st := range cat.SiteTypes {
		for pages := MinPages; pages <= MaxPages; pages++ {
			sel := NewSelection(st.ID, pages)
			q, err := ComputeQuote(sel, cat, DefaultPerPageRate)
			if err != nil {
				t.Fatalf("%s/%d: %v", st.ID, pages, err)
			}
			prev := q.CompletenessPercent
			for _, ex := range cat.Extras {
				sel = ToggleExtra(sel, ex.ID)
				q, err := ComputeQuote(sel, cat, DefaultPerPageRate)
				if err != nil {
					t.Fatalf("%s/%d +%s: %v", st.ID, pages, ex.ID, err)
				}
				if q.CompletenessPercent < prev {
					t.Errorf("%s/%d +%s: completeness dropped from %d to %d", st.ID, pages, ex.ID, prev, q.CompletenessPercent)
				}
				if q.CompletenessPercent < 0 || q.CompletenessPercent > 100 {
					t.Errorf("%s/%d +%s: completeness %d outside [0,100]", st.ID, pages, ex.ID, q.CompletenessPercent)
				}
				prev = q.CompletenessPercent
			}
		}
	}
}

func TestComputeQuoteZeroPricedCatalog(t *testing.T) {
	cat := Catalog{SiteTypes: []SiteType{{ID: "free", BasePrice: decimal.Zero}}}
	q, err := ComputeQuote(NewSelection("free", 1), cat, decimal.Zero)
	if err != nil {
		t.Fatal(err)
	}
	if q.CompletenessPercent != 0 {
		t.Errorf("CompletenessPercent = %d, want 0 for a zero maximum", q.CompletenessPercent)
	}
}

func TestComputeQuoteIsPure(t *testing.T) {
	cat := DefaultCatalog()
	sel := NewSelection("lms", 4, "i18n", "payment")
	before := sel.ExtraIDs.Clone()

	a, err := ComputeQuote(sel, cat, DefaultPerPageRate)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := ComputeQuote(sel, cat, DefaultPerPageRate)

	if !a.Total.Equal(b.Total) || a.CompletenessPercent != b.CompletenessPercent || len(a.Breakdown) != len(b.Breakdown) {
		t.Fatal("repeated calls returned different quotes")
	}
	for i := range a.Breakdown {
		la, lb := a.Breakdown[i], b.Breakdown[i]
		if la.Label != lb.Label || !la.Price.Equal(lb.Price) || la.Price.String() != lb.Price.String() {
			t.Errorf("line %d differs: %+v vs %+v", i, la, lb)
		}
	}
	if !sel.Equal(Selection{SiteTypeID: "lms", PageCount: 4, ExtraIDs: before}) {
		t.Error("selection was mutated")
	}
}

func TestToggleExtra(t *testing.T) {
	sel := NewSelection("landing", 2, "seo")

	added := ToggleExtra(sel, "cms")
	if !added.ExtraIDs.Has("cms") || !added.ExtraIDs.Has("seo") {
		t.Errorf("toggle on: extras = %v", added.ExtraIDs.IDs())
	}
	if sel.ExtraIDs.Has("cms") {
		t.Error("input selection was mutated")
	}

	removed := ToggleExtra(added, "seo")
	if removed.ExtraIDs.Has("seo") {
		t.Error("toggle off did not remove seo")
	}

	if !ToggleExtra(ToggleExtra(sel, "payment"), "payment").Equal(sel) {
		t.Error("toggling twice should restore the selection")
	}

	// No catalog check happens here; pricing rejects the id later.
	if !ToggleExtra(sel, "unknown").ExtraIDs.Has("unknown") {
		t.Error("unknown id should be toggled without validation")
	}
}

func TestToggleExtraNilSet(t *testing.T) {
	sel := Selection{SiteTypeID: "landing", PageCount: 1}
	got := ToggleExtra(sel, "seo")
	if !got.ExtraIDs.Has("seo") {
		t.Error("toggle on a nil set should add the id")
	}
}
