package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/productcards/internal/domain"
)

func TestFormFromProduct_PriceText(t *testing.T) {
	cases := map[float64]string{
		12:     "12",
		9.5:    "9.5",
		0:      "0",
		0.1:    "0.1",
		199.99: "199.99",
	}
	for price, want := range cases {
		f := FormFromProduct(domain.Product{ID: 1, Name: "x", Price: price})
		assert.Equal(t, want, f.Price)
	}
}

func TestValidateForm_RoundTripsThroughFormText(t *testing.T) {
	p := domain.Product{Name: "Mug", Image: "http://img/mug.png", Price: 9.5, Info: "ceramic"}
	got, err := ValidateForm(FormFromProduct(p))
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestSetFormField(t *testing.T) {
	var f domain.Form
	require.NoError(t, SetFormField(&f, "name", "Mug"))
	require.NoError(t, SetFormField(&f, "image", "http://img"))
	require.NoError(t, SetFormField(&f, "price", "3"))
	require.NoError(t, SetFormField(&f, "info", "text"))
	assert.Equal(t, domain.Form{Name: "Mug", Image: "http://img", Price: "3", Info: "text"}, f)

	assert.Error(t, SetFormField(&f, "qty", "1"))
}

func TestCodec_RoundTrip(t *testing.T) {
	products := []domain.Product{
		{ID: 1700000000000, Name: "Mug", Image: "", Price: 9.5, Info: ""},
		{ID: 1700000000001, Name: "Cup", Image: "http://img/cup.png", Price: 12, Info: "blue"},
		{ID: 1700000000002, Name: "Plate", Image: "", Price: 0, Info: "line1\nline2"},
	}
	data, err := EncodeProducts(products)
	require.NoError(t, err)

	decoded, err := DecodeProducts(data)
	require.NoError(t, err)
	assert.Equal(t, products, decoded)
}

func TestCodec_Layout(t *testing.T) {
	data, err := EncodeProducts([]domain.Product{{ID: 7, Name: "Mug", Price: 9.5}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":7,"name":"Mug","image":"","price":9.5,"info":""}]`, string(data))

	data, err = EncodeProducts(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestCodec_NullIsEmpty(t *testing.T) {
	products, err := DecodeProducts([]byte("null"))
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestValidateForm_PriceGrammar(t *testing.T) {
	valid := map[string]float64{
		"9.5":   9.5,
		"12":    12,
		" 3 ":   3,
		"0.10":  0.1,
		".5":    0.5,
		"5.":    5,
		"+2":    2,
		"1e2":   100,
		"-0":    0,
		"-0.00": 0,
	}
	for text, want := range valid {
		p, err := ValidateForm(domain.Form{Name: "Mug", Price: text})
		require.NoError(t, err, "price %q", text)
		assert.Equal(t, want, p.Price, "price %q", text)
		assert.False(t, math.Signbit(p.Price), "price %q", text)
	}

	for _, text := range []string{"abc", "0x1p3", "1_0", "-1", "NaN", "Inf", "1e400", "9.5abc", "1,5"} {
		_, err := ValidateForm(domain.Form{Name: "Mug", Price: text})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "price %q", text)
		assert.Equal(t, MsgInvalidPrice, verr.Message, "price %q", text)
	}
}

func TestValidateForm_NegativeZeroPersistsAsZero(t *testing.T) {
	p, err := ValidateForm(domain.Form{Name: "Mug", Price: "-0"})
	require.NoError(t, err)
	data, err := EncodeProducts([]domain.Product{p})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":0`)
	assert.NotContains(t, string(data), `-0`)
}
