// pkg/types/crack_time.go
package types

import "fmt"

// CrackTime is an ordered bucket of approximate time-to-crack.
type CrackTime int

const (
	Instantly CrackTime = iota
	Seconds
	Minutes
	Hours
	Days
	Months
	Years
	Decades
	Centuries
)

var crackTimeLabels = [...]string{
	Instantly: "Instantly",
	Seconds:   "Seconds",
	Minutes:   "Minutes",
	Hours:     "Hours",
	Days:      "Days",
	Months:    "Months",
	Years:     "Years",
	Decades:   "Decades",
	Centuries: "Centuries",
}

// String returns the bucket label.
func (c CrackTime) String() string {
	if c < Instantly || c > Centuries {
		return fmt.Sprintf("CrackTime(%d)", int(c))
	}
	return crackTimeLabels[c]
}

// MarshalText encodes the bucket as its label.
func (c CrackTime) MarshalText() ([]byte, error) {
	if c < Instantly || c > Centuries {
		return nil, fmt.Errorf("invalid crack time %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a bucket label.
func (c *CrackTime) UnmarshalText(text []byte) error {
	for i, label := range crackTimeLabels {
		if label == string(text) {
			*c = CrackTime(i)
			return nil
		}
	}
	return fmt.Errorf("unknown crack time %q", text)
}
