// pkg/types/requirement.go
package types

import "unicode/utf8"

// MinLength is the length at which the length requirement is satisfied.
const MinLength = 8

// MaxLength is the longest password the network surfaces accept, in
// characters.
const MaxLength = 1024

// TooLong reports whether password exceeds MaxLength characters.
func TooLong(password string) bool {
	return len(password) > MaxLength && utf8.RuneCountInString(password) > MaxLength
}

// Requirement names in display order.
const (
	ReqLength    = "length"
	ReqUppercase = "uppercase"
	ReqLowercase = "lowercase"
	ReqNumber    = "number"
	ReqSpecial   = "special"
	ReqCommon    = "common"
)

// RequirementNames lists every requirement in display order.
var RequirementNames = []string{ReqLength, ReqUppercase, ReqLowercase, ReqNumber, ReqSpecial, ReqCommon}

// Requirements holds the six independent checks evaluated for a password.
// Common is true when the password is NOT a known common password.
type Requirements struct {
	Length    bool `json:"length"`
	Uppercase bool `json:"uppercase"`
	Lowercase bool `json:"lowercase"`
	Number    bool `json:"number"`
	Special   bool `json:"special"`
	Common    bool `json:"common"`
}

// Met returns how many requirements are satisfied.
func (r Requirements) Met() int {
	n := 0
	r.Each(func(_ string, met bool) {
		if met {
			n++
		}
	})
	return n
}

// Total returns the number of requirements.
func (r Requirements) Total() int {
	return len(RequirementNames)
}

// Each calls fn for every requirement in display order.
func (r Requirements) Each(fn func(name string, met bool)) {
	fn(ReqLength, r.Length)
	fn(ReqUppercase, r.Uppercase)
	fn(ReqLowercase, r.Lowercase)
	fn(ReqNumber, r.Number)
	fn(ReqSpecial, r.Special)
	fn(ReqCommon, r.Common)
}

// Get returns the value of the named requirement.
func (r Requirements) Get(name string) (bool, bool) {
	switch name {
	case ReqLength:
		return r.Length, true
	case ReqUppercase:
		return r.Uppercase, true
	case ReqLowercase:
		return r.Lowercase, true
	case ReqNumber:
		return r.Number, true
	case ReqSpecial:
		return r.Special, true
	case ReqCommon:
		return r.Common, true
	}
	return false, false
}

// Describe returns the user-facing text for a requirement indicator.
func Describe(name string) string {
	switch name {
	case ReqLength:
		return "At least 8 characters"
	case ReqUppercase:
		return "One uppercase letter"
	case ReqLowercase:
		return "One lowercase letter"
	case ReqNumber:
		return "One number"
	case ReqSpecial:
		return "One special character"
	case ReqCommon:
		return "Not a common password"
	default:
		return name
	}
}
