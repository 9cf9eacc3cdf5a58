package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type KitchenInput struct {
	Name string `json:"name"`
}

type AddressInput struct {
	ZipCode    string `json:"zip_code"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	CityID     int64  `json:"city_id"`
}

type RestaurantInput struct {
	Name        string          `json:"name"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	KitchenID   int64           `json:"kitchen_id"`
	Address     AddressInput    `json:"address"`
}

type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
}

func (in KitchenInput) Validate() error {
	var v ValidationError
	v.required("name", in.Name)
	return v.orNil()
}

func (in AddressInput) Validate() error {
	var v ValidationError
	in.validateInto(&v, "")
	return v.orNil()
}

func (in AddressInput) validateInto(v *ValidationError, prefix string) {
	v.required(prefix+"zip_code", in.ZipCode)
	v.required(prefix+"street", in.Street)
	v.required(prefix+"number", in.Number)
	v.required(prefix+"district", in.District)
	if in.CityID <= 0 {
		v.add(prefix+"city_id", "must be a positive id")
	}
}

func (in RestaurantInput) Validate() error {
	var v ValidationError
	v.required("name", in.Name)
	if in.ShippingFee.IsNegative() {
		v.add("shipping_fee", "must not be negative")
	}
	if in.KitchenID <= 0 {
		v.add("kitchen_id", "must be a positive id")
	}
	in.Address.validateInto(&v, "address.")
	return v.orNil()
}

func (in ProductInput) Validate() error {
	var v ValidationError
	v.required("name", in.Name)
	v.required("description", in.Description)
	if in.Price.IsNegative() {
		v.add("price", "must not be negative")
	}
	return v.orNil()
}

// ValidationError lists every invalid field of an input.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

type FieldError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Name+" "+f.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Name: field, Message: msg})
}

func (e *ValidationError) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.add(field, "is required")
	}
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
