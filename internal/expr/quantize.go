package expr

import "strconv"

// QuantizeDigits is the significant decimal precision used for value
// deduplication. 17 digits round-trip a float64 exactly, so two values with
// the same quantized form are equal at double-precision resolution.
const QuantizeDigits = 17

// Quantize renders a value at fixed decimal precision for use as a
// deduplication key.
func Quantize(v float64) string {
	return strconv.FormatFloat(v, 'g', QuantizeDigits, 64)
}
