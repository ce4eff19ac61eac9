package webui

import (
	"html/template"

	"github.com/shopspring/decimal"
	"github.com/talkincode/productcards/internal/catalog"
	"github.com/talkincode/productcards/internal/domain"
)

// pageData is everything index.gohtml renders
type pageData struct {
	Products []domain.Product
	State    catalog.UIState
	Flashes  []string
	Confirm  *domain.Product
}

// FormatPrice renders a price with two fixed decimals, e.g. $9.50
func FormatPrice(price float64) string {
	return "$" + decimal.NewFromFloat(price).StringFixed(2)
}

var funcMap = template.FuncMap{
	"price": FormatPrice,
}
