// Package entropy estimates password entropy from the character classes present.
package entropy

import (
	"math"
	"unicode/utf8"

	"github.com/praetorian-inc/pwmeter/pkg/types"
)

// Class pool sizes. The symbol pool is a fixed approximation, not a count
// of the distinct symbols used.
const (
	LowerPool  = 26
	UpperPool  = 26
	DigitPool  = 10
	SymbolPool = 32
)

// Classes reports which ASCII partitions occur anywhere in s.
// symbol is true for any character outside [A-Za-z0-9].
func Classes(s string) (lower, upper, digit, symbol bool) {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	return
}

// CharsetSize sums the pool sizes of the classes present in s.
func CharsetSize(s string) int {
	lower, upper, digit, symbol := Classes(s)

	size := 0
	if lower {
		size += LowerPool
	}
	if upper {
		size += UpperPool
	}
	if digit {
		size += DigitPool
	}
	if symbol {
		size += SymbolPool
	}
	return size
}

// Compute returns entropy = length * log2(charset) and combinations = charset^length.
// Length is counted in code points. Empty input yields zero for both.
func Compute(password string) types.EntropyResult {
	if password == "" {
		return types.EntropyResult{}
	}

	charset := CharsetSize(password)
	length := float64(utf8.RuneCountInString(password))

	return types.EntropyResult{
		Entropy:      length * math.Log2(float64(charset)),
		Combinations: math.Pow(float64(charset), length),
		CharsetSize:  charset,
	}
}
