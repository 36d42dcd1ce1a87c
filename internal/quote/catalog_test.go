package quote

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestDefaultCatalogValid(t *testing.T) {
	cat := DefaultCatalog()
	if err := cat.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(cat.SiteTypes) != 5 || len(cat.Extras) != 7 {
		t.Errorf("catalog has %d site types and %d extras", len(cat.SiteTypes), len(cat.Extras))
	}
	if !MaxPossibleTotal(cat, DefaultPerPageRate).Equal(decimal.NewFromInt(171000)) {
		t.Errorf("MaxPossibleTotal = %s", MaxPossibleTotal(cat, DefaultPerPageRate))
	}
}

func TestCatalogValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		cat  Catalog
		want string
	}{
		{"duplicate site", Catalog{SiteTypes: []SiteType{{ID: "a"}, {ID: "a"}}}, "duplicate site type"},
		{"empty extra id", Catalog{Extras: []ExtraFeature{{ID: ""}}}, "empty id"},
		{"negative price", Catalog{Extras: []ExtraFeature{{ID: "x", Price: decimal.NewFromInt(-1)}}}, "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cat.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestSelectionJSON(t *testing.T) {
	var sel Selection
	if err := json.Unmarshal([]byte(`{"site_type":"landing","pages":3,"extras":["seo","analytics","seo"]}`), &sel); err != nil {
		t.Fatal(err)
	}
	if !sel.Equal(NewSelection("landing", 3, "seo", "analytics")) {
		t.Errorf("decoded selection = %+v", sel)
	}

	out, err := json.Marshal(sel)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `"extras":["analytics","seo"]`) {
		t.Errorf("extras should marshal sorted, got %s", out)
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		sym  string
		want string
	}{
		{decimal.NewFromInt(38000), "₽", "38 000 ₽"},
		{decimal.NewFromInt(171000), "₽", "171 000 ₽"},
		{decimal.NewFromInt(500), "", "500"},
		{decimal.NewFromInt(1500000), "₽", "1 500 000 ₽"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.in, tt.sym); got != tt.want {
			t.Errorf("FormatPrice(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExportXLSX(t *testing.T) {
	cat := DefaultCatalog()
	sel := NewSelection("landing", 3, "seo", "analytics")
	q, err := ComputeQuote(sel, cat, DefaultPerPageRate)
	if err != nil {
		t.Fatal(err)
	}

	data, err := ExportXLSX(q, sel, cat, "=Studio")
	if err != nil {
		t.Fatalf("ExportXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	title, _ := f.GetCellValue(estimateSheet, "A1")
	if title != "'=Studio" {
		t.Errorf("title = %q, formula prefix should be escaped", title)
	}
	first, _ := f.GetCellValue(estimateSheet, "A5")
	if first != "Base" {
		t.Errorf("first line = %q, want Base", first)
	}

	rows, err := f.GetRows(estimateSheet)
	if err != nil {
		t.Fatal(err)
	}
	// title, summary, blank, header, 4 lines, blank, total, completeness
	if len(rows) != 11 {
		t.Errorf("got %d rows, want 11", len(rows))
	}
	if rows[9][0] != "Total" {
		t.Errorf("total label row = %v", rows[9])
	}
}
