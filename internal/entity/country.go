package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCountryCode = errors.New("country code must be exactly two uppercase letters")
	ErrEmptyCountryName   = errors.New("country name cannot be empty")
)

// Country is master data loaded from the country repository. Identity is
// the ISO 3166-1 alpha-2 code; input is canonicalized to uppercase.
type Country struct {
	id     int64
	code   string
	name   string
	active bool
}

func NewCountry(id int64, code, name string, active bool) (Country, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	name = strings.TrimSpace(name)

	if len(code) != 2 || code[0] < 'A' || code[0] > 'Z' || code[1] < 'A' || code[1] > 'Z' {
		return Country{}, fmt.Errorf("%w: %q", ErrInvalidCountryCode, code)
	}
	if name == "" {
		return Country{}, ErrEmptyCountryName
	}
	return Country{id: id, code: code, name: name, active: active}, nil
}

func (c Country) ID() int64    { return c.id }
func (c Country) Code() string { return c.code }
func (c Country) Name() string { return c.name }
func (c Country) Active() bool { return c.active }

// Equals compares by code only; the rest is display data.
func (c Country) Equals(other Country) bool {
	return c.code == other.code
}

func (c Country) String() string {
	return c.code
}
