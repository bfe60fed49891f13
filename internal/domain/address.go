package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

type AddressLabel string

const (
	LabelHome   AddressLabel = "HOME"
	LabelOffice AddressLabel = "OFFICE"
)

func (l AddressLabel) Valid() bool {
	return l == LabelHome || l == LabelOffice
}

// Address is a shipping profile owned by one user. At most one address per
// user has IsDefault set.
type Address struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	FullName    string       `json:"fullName"`
	PhoneNumber string       `json:"phoneNumber"`
	Building    string       `json:"building"`
	Colony      string       `json:"colony"`
	Province    string       `json:"province"`
	City        string       `json:"city"`
	Area        string       `json:"area"`
	Address     string       `json:"address"`
	Label       AddressLabel `json:"label"`
	IsDefault   bool         `json:"isDefault"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// ShippingAddress is the copy of an Address embedded in an order.
type ShippingAddress struct {
	FullName    string       `json:"fullName"`
	PhoneNumber string       `json:"phoneNumber"`
	Building    string       `json:"building"`
	Colony      string       `json:"colony"`
	Province    string       `json:"province"`
	City        string       `json:"city"`
	Area        string       `json:"area"`
	Address     string       `json:"address"`
	Label       AddressLabel `json:"label"`
}

func (a Address) Snapshot() ShippingAddress {
	return ShippingAddress{
		FullName:    a.FullName,
		PhoneNumber: a.PhoneNumber,
		Building:    a.Building,
		Colony:      a.Colony,
		Province:    a.Province,
		City:        a.City,
		Area:        a.Area,
		Address:     a.Address,
		Label:       a.Label,
	}
}

// Normalize trims text fields and applies the default label.
func (a *Address) Normalize() {
	a.FullName = strings.TrimSpace(a.FullName)
	a.PhoneNumber = strings.TrimSpace(a.PhoneNumber)
	a.Building = strings.TrimSpace(a.Building)
	a.Colony = strings.TrimSpace(a.Colony)
	a.Province = strings.TrimSpace(a.Province)
	a.City = strings.TrimSpace(a.City)
	a.Area = strings.TrimSpace(a.Area)
	a.Address = strings.TrimSpace(a.Address)
	a.Label = AddressLabel(strings.ToUpper(strings.TrimSpace(string(a.Label))))
	if a.Label == "" {
		a.Label = LabelHome
	}
}

// Validate collects every field problem into a single ValidationError.
func (a Address) Validate() error {
	var fields []string
	required := []struct {
		value, msg string
	}{
		{a.FullName, "Full name is required"},
		{a.PhoneNumber, "Phone number is required"},
		{a.Building, "Building/House number is required"},
		{a.Colony, "Colony/Suburb is required"},
		{a.Province, "Province is required"},
		{a.City, "City is required"},
		{a.Area, "Area is required"},
		{a.Address, "Address is required"},
	}
	for _, r := range required {
		if r.value == "" {
			fields = append(fields, r.msg)
		}
	}
	if a.PhoneNumber != "" {
		if n := countDigits(a.PhoneNumber); n < 10 || n > 15 {
			fields = append(fields, "Please enter a valid phone number (10-15 digits)")
		}
	}
	if utf8.RuneCountInString(a.FullName) > 100 {
		fields = append(fields, "Full name cannot be more than 100 characters")
	}
	if utf8.RuneCountInString(a.Building) > 200 {
		fields = append(fields, "Building address cannot be more than 200 characters")
	}
	if utf8.RuneCountInString(a.Colony) > 200 {
		fields = append(fields, "Colony cannot be more than 200 characters")
	}
	if utf8.RuneCountInString(a.Address) > 500 {
		fields = append(fields, "Address cannot be more than 500 characters")
	}
	if !a.Label.Valid() {
		fields = append(fields, "Address label must be HOME or OFFICE")
	}
	if len(fields) > 0 {
		return Invalid("Validation failed", fields...)
	}
	return nil
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
