package domain

import "fmt"

// Activate is idempotent.
func (r *Restaurant) Activate() {
	r.IsActive = true
}

// Inactivate also closes the restaurant so that an open restaurant is never inactive.
func (r *Restaurant) Inactivate() {
	r.IsActive = false
	r.IsOpen = false
}

func (r *Restaurant) Open() error {
	if !r.IsActive {
		return fmt.Errorf("%w: restaurant %s is inactive and cannot be opened", ErrInvalidState, r.Code)
	}
	r.IsOpen = true
	return nil
}

func (r *Restaurant) Close() {
	r.IsOpen = false
}

// Apply copies the mutable fields of input onto r. Identity, code and
// lifecycle flags are left untouched.
func (r *Restaurant) Apply(input RestaurantInput, kitchen Kitchen, city City) {
	r.Name = input.Name
	r.ShippingFee = input.ShippingFee
	r.Kitchen = kitchen
	r.Address = input.Address.ToAddress(city)
}

func (a AddressInput) ToAddress(city City) Address {
	return Address{
		ZipCode:    a.ZipCode,
		Street:     a.Street,
		Number:     a.Number,
		Complement: a.Complement,
		District:   a.District,
		City:       city,
	}
}
