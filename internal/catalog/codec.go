package catalog

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/talkincode/productcards/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EncodeProducts serializes the collection in its persisted layout, a JSON array
func EncodeProducts(products []domain.Product) ([]byte, error) {
	if products == nil {
		products = []domain.Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return nil, errors.Wrap(err, "encode products")
	}
	return data, nil
}

// DecodeProducts parses the persisted layout. A JSON null decodes to an empty collection.
func DecodeProducts(data []byte) ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}
