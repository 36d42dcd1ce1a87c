// Package quote prices a website order from a catalog of site types and
// extra features.
package quote

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SiteType is one of the base offerings a customer chooses exactly one of.
type SiteType struct {
	ID          string          `json:"id"`
	Label       string          `json:"label"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Description string          `json:"description"`
}

// ExtraFeature is an optional add-on with a fixed price.
type ExtraFeature struct {
	ID    string          `json:"id"`
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

// Catalog lists the offerings in display order. Treat it as read-only once
// built; the engine never mutates it.
type Catalog struct {
	SiteTypes []SiteType     `json:"site_types"`
	Extras    []ExtraFeature `json:"extras"`
}

// DefaultPerPageRate is the studio's price per content page.
var DefaultPerPageRate = decimal.NewFromInt(2000)

// DefaultCatalog returns the studio's published price list.
func DefaultCatalog() Catalog {
	return Catalog{
		SiteTypes: []SiteType{
			{ID: "landing", Label: "Лендинг", BasePrice: decimal.NewFromInt(15000), Description: "Яркий одностраничник с чётким призывом к действию"},
			{ID: "corporate", Label: "Корпоративный", BasePrice: decimal.NewFromInt(25000), Description: "Многостраничный сайт для вашего бизнеса"},
			{ID: "ecommerce", Label: "Интернет-магазин", BasePrice: decimal.NewFromInt(40000), Description: "Каталог товаров, корзина, онлайн-оплата"},
			{ID: "lms", Label: "LMS-платформа", BasePrice: decimal.NewFromInt(55000), Description: "Платформа для курсов, тестов и учёта успеваемости"},
			{ID: "pwa", Label: "PWA / Web App", BasePrice: decimal.NewFromInt(60000), Description: "Прогрессивное приложение с офлайн-режимом"},
		},
		Extras: []ExtraFeature{
			{ID: "seo", Label: "SEO", Price: decimal.NewFromInt(12000)},
			{ID: "animation", Label: "Анимации и микро-UX", Price: decimal.NewFromInt(8000)},
			{ID: "cms", Label: "Интеграция с CMS", Price: decimal.NewFromInt(10000)},
			{ID: "analytics", Label: "Analytics", Price: decimal.NewFromInt(5000)},
			{ID: "i18n", Label: "Мультиязычность", Price: decimal.NewFromInt(9000)},
			{ID: "payment", Label: "Интеграция платёжных систем", Price: decimal.NewFromInt(15000)},
			{ID: "support", Label: "6 мес. техподдержки", Price: decimal.NewFromInt(12000)},
		},
	}
}

// SiteType looks up a site type by id.
func (c Catalog) SiteType(id string) (SiteType, bool) {
	for _, st := range c.SiteTypes {
		if st.ID == id {
			return st, true
		}
	}
	return SiteType{}, false
}

// Extra looks up an extra feature by id.
func (c Catalog) Extra(id string) (ExtraFeature, bool) {
	for _, ex := range c.Extras {
		if ex.ID == id {
			return ex, true
		}
	}
	return ExtraFeature{}, false
}

// Validate checks that ids are non-empty and unique within each list and
// that no price is negative.
func (c Catalog) Validate() error {
	seen := make(map[string]bool, len(c.SiteTypes))
	for _, st := range c.SiteTypes {
		if st.ID == "" {
			return fmt.Errorf("site type with empty id")
		}
		if seen[st.ID] {
			return fmt.Errorf("duplicate site type %q", st.ID)
		}
		if st.BasePrice.IsNegative() {
			return fmt.Errorf("site type %q has negative price", st.ID)
		}
		seen[st.ID] = true
	}

	seen = make(map[string]bool, len(c.Extras))
	for _, ex := range c.Extras {
		if ex.ID == "" {
			return fmt.Errorf("extra with empty id")
		}
		if seen[ex.ID] {
			return fmt.Errorf("duplicate extra %q", ex.ID)
		}
		if ex.Price.IsNegative() {
			return fmt.Errorf("extra %q has negative price", ex.ID)
		}
		seen[ex.ID] = true
	}
	return nil
}
