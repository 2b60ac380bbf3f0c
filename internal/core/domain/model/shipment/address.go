package shipment

import (
	"errors"
	"strings"

	"shipping/internal/pkg/errs"
)

var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is an immutable postal address with optional coordinates.
type Address struct {
	fullName   string
	phone      string
	street     string
	city       string
	state      string
	postalCode string
	country    string
	latitude   *float64
	longitude  *float64

	isConstructed bool
}

// NewAddress validates that full name, street, city, postal code and country
// are present. Phone and state are optional.
func NewAddress(fullName, phone, street, city, state, postalCode, country string) (Address, error) {
	a := Address{
		fullName:      strings.TrimSpace(fullName),
		phone:         strings.TrimSpace(phone),
		street:        strings.TrimSpace(street),
		city:          strings.TrimSpace(city),
		state:         strings.TrimSpace(state),
		postalCode:    strings.TrimSpace(postalCode),
		country:       strings.TrimSpace(country),
		isConstructed: true,
	}

	if err := errors.Join(
		required("full_name", a.fullName),
		required("street", a.street),
		required("city", a.city),
		required("postal_code", a.postalCode),
		required("country", a.country),
	); err != nil {
		return Address{}, err
	}

	return a, nil
}

// WithCoordinates returns a copy of the address carrying a geographic point.
func (a Address) WithCoordinates(latitude, longitude float64) (Address, error) {
	if latitude < -90 || latitude > 90 {
		return Address{}, errs.NewValueIsOutOfRangeError("latitude", latitude, -90, 90)
	}
	if longitude < -180 || longitude > 180 {
		return Address{}, errs.NewValueIsOutOfRangeError("longitude", longitude, -180, 180)
	}

	a.latitude = &latitude
	a.longitude = &longitude
	return a, nil
}

func (a Address) Validate() error {
	if !a.isConstructed {
		return ErrAddressIsNotConstructed
	}
	return nil
}

func (a Address) FullName() string { return a.fullName }
func (a Address) Phone() string { return a.phone }
func (a Address) Street() string { return a.street }
func (a Address) City() string { return a.city }
func (a Address) State() string { return a.state }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Country() string { return a.country }
func (a Address) Latitude() *float64 { return a.latitude }
func (a Address) Longitude() *float64 { return a.longitude }

func required(param, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
