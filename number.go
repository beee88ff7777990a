// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonpull

import (
	"math"
	"strconv"
)

// appendNumber appends the shortest representation of v that parses back to
// the same value. Non-finite values have no JSON representation and are
// written as null.
func appendNumber(buf []byte, v float64) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return append(buf, "null"...)
	}

	// Use plain decimal notation for moderate magnitudes, and exponent
	// notation outside [1e-6, 1e21).
	fmt := byte('f')
	if abs := math.Abs(v); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmt = 'e'
	}
	buf = strconv.AppendFloat(buf, v, fmt, -1, 64)
	if fmt == 'e' {
		// Trim a leading zero from a two-digit exponent: 1e-07 becomes 1e-7.
		if n := len(buf); n >= 4 && buf[n-4] == 'e' && buf[n-3] == '-' && buf[n-2] == '0' {
			buf[n-2] = buf[n-1]
			buf = buf[:n-1]
		}
	}
	return buf
}

// FormatNumber returns the JSON text a Printer writes for v.
func FormatNumber(v float64) string { return string(appendNumber(nil, v)) }
