package currency

import "strings"

// Code is an ISO-4217 style currency identifier
type Code string

// Common codes used throughout tests and configs
const (
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	JPY Code = "JPY"
	AUD Code = "AUD"
)

// NewCode normalises a string into a Code
func NewCode(s string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(s)))
}

// String implements the stringer interface
func (c Code) String() string {
	return string(c)
}

// IsEmpty returns whether the code is unset
func (c Code) IsEmpty() bool {
	return c == ""
}
