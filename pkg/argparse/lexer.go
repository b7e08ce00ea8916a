// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import "strings"

const endOfOptions = "--"

// isOptionLike reports whether s would be read as an optional argument name
// rather than a value: it starts with "-", is not "-" alone, and is not a
// negative number such as "-1", "-.5" or "-1.2e3".
func isOptionLike(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	return !isDecimalLiteral(s[1:])
}

// isPositionalShaped is the inverse of isOptionLike.
func isPositionalShaped(s string) bool {
	return !isOptionLike(s)
}

// isDecimalLiteral accepts digits with an optional fraction and exponent:
// "1", "1.", ".5", "1.5e-3", "2E10". At least one mantissa digit is required.
func isDecimalLiteral(s string) bool {
	i, digits := 0, 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isCompoundShortFlag reports whether s is a bundle of single-character flags
// such as "-abc": one dash followed by at least two characters.
func isCompoundShortFlag(s string) bool {
	return len(s) > 2 && s[0] == '-' && s[1] != '-'
}

// splitAssignment splits "--name=value" into its parts. ok is false when s
// is not option-like or has no "=".
func splitAssignment(s string) (name, value string, ok bool) {
	if !isOptionLike(s) {
		return "", "", false
	}
	name, value, ok = strings.Cut(s, "=")
	if !ok || name == "-" || name == endOfOptions {
		return "", "", false
	}
	return name, value, true
}
