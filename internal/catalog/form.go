package catalog

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/talkincode/productcards/internal/domain"
)

// decimalPattern is the price grammar of a number input: optional sign, digits
// with an optional fraction, optional exponent. Hex, underscores, Inf and NaN
// are rejected.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ValidateForm checks the buffer and returns the product fields it describes.
// The returned product has no id.
func ValidateForm(f domain.Form) (domain.Product, error) {
	name := strings.TrimSpace(f.Name)
	priceText := strings.TrimSpace(f.Price)
	if name == "" {
		return domain.Product{}, &ValidationError{Field: "name", Message: MsgRequiredFields}
	}
	if priceText == "" {
		return domain.Product{}, &ValidationError{Field: "price", Message: MsgRequiredFields}
	}
	if !decimalPattern.MatchString(priceText) {
		return domain.Product{}, &ValidationError{Field: "price", Message: MsgInvalidPrice}
	}
	price, err := cast.ToFloat64E(priceText)
	if err != nil || math.IsInf(price, 0) || price < 0 {
		return domain.Product{}, &ValidationError{Field: "price", Message: MsgInvalidPrice}
	}
	if price == 0 {
		price = 0 // drop the sign of -0
	}
	return domain.Product{
		Name:  name,
		Image: strings.TrimSpace(f.Image),
		Price: price,
		Info:  f.Info,
	}, nil
}

// FormFromProduct loads a product into a buffer, the price as its shortest decimal text
func FormFromProduct(p domain.Product) domain.Form {
	return domain.Form{
		Name:  p.Name,
		Image: p.Image,
		Price: strconv.FormatFloat(p.Price, 'f', -1, 64),
		Info:  p.Info,
	}
}

// SetFormField assigns one named field of the buffer
func SetFormField(f *domain.Form, field, value string) error {
	switch field {
	case "name":
		f.Name = value
	case "image":
		f.Image = value
	case "price":
		f.Price = value
	case "info":
		f.Info = value
	default:
		return errors.Errorf("unknown form field %q", field)
	}
	return nil
}
