package domain

// Product is a single product card. The JSON layout is the persisted format
// and must stay readable across launches.
type Product struct {
	ID    int64   `json:"id" csv:"id"`
	Name  string  `json:"name" csv:"name"`
	Image string  `json:"image" csv:"image"`
	Price float64 `json:"price" csv:"price"` // price in main currency units
	Info  string  `json:"info" csv:"info"`
}

// Form is the text buffer behind the product form
type Form struct {
	Name  string `json:"name" form:"name" mapstructure:"name"`
	Image string `json:"image" form:"image" mapstructure:"image"`
	Price string `json:"price" form:"price" mapstructure:"price"`
	Info  string `json:"info" form:"info" mapstructure:"info"`
}

// IsEmpty reports whether every field of the buffer is blank
func (f Form) IsEmpty() bool {
	return f.Name == "" && f.Image == "" && f.Price == "" && f.Info == ""
}
