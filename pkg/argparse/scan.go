// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

func validVerb(verb rune) bool {
	return strings.ContainsRune("diuoxXaAeEfFgG", verb)
}

// ScanValue converts tok with a scanf-like verb:
//
//	d     signed decimal integer
//	i     signed integer, base from prefix (0x, 0o, 0b, leading 0 for octal)
//	u     unsigned decimal integer
//	o     unsigned octal integer
//	x, X  unsigned hexadecimal integer, 0x prefix optional
//	a, A  hexadecimal float, 0x prefix required
//	e, E  float in scientific notation, exponent required
//	f, F  float in fixed notation, no exponent
//	g, G  any decimal float
//
// Failures wrap ErrInvalidFormat or ErrOutOfRange.
func ScanValue(verb rune, tok string) (Value, error) {
	switch verb {
	case 'd':
		i, err := strconv.ParseInt(tok, 10, 64)
		return Int(i), scanError(tok, err)
	case 'i':
		i, err := strconv.ParseInt(tok, 0, 64)
		return Int(i), scanError(tok, err)
	case 'u':
		u, err := strconv.ParseUint(tok, 10, 64)
		return Uint(u), scanError(tok, err)
	case 'o':
		u, err := strconv.ParseUint(tok, 8, 64)
		return Uint(u), scanError(tok, err)
	case 'x', 'X':
		s := tok
		if hasHexPrefix(s) {
			s = s[2:]
		}
		u, err := strconv.ParseUint(s, 16, 64)
		return Uint(u), scanError(tok, err)
	case 'a', 'A':
		if !hasHexPrefix(strings.TrimLeft(tok, "+-")) {
			return Value{}, fmt.Errorf("%w: %q: hexadecimal float needs a 0x prefix", ErrInvalidFormat, tok)
		}
		s := tok
		if !strings.ContainsAny(s, "pP") {
			s += "p0"
		}
		f, err := strconv.ParseFloat(s, 64)
		return Float(f), scanError(tok, err)
	case 'e', 'E':
		if isHexFloat(tok) || !strings.ContainsAny(tok, "eE") {
			return Value{}, fmt.Errorf("%w: %q: scientific notation needs an exponent", ErrInvalidFormat, tok)
		}
		f, err := strconv.ParseFloat(tok, 64)
		return Float(f), scanError(tok, err)
	case 'f', 'F':
		if isHexFloat(tok) || strings.ContainsAny(tok, "eE") {
			return Value{}, fmt.Errorf("%w: %q: fixed notation takes no exponent", ErrInvalidFormat, tok)
		}
		f, err := strconv.ParseFloat(tok, 64)
		return Float(f), scanError(tok, err)
	case 'g', 'G':
		if isHexFloat(tok) {
			return Value{}, fmt.Errorf("%w: %q: hexadecimal float not accepted", ErrInvalidFormat, tok)
		}
		f, err := strconv.ParseFloat(tok, 64)
		return Float(f), scanError(tok, err)
	default:
		return Value{}, fmt.Errorf("unsupported scan verb %q", verb)
	}
}

func hasHexPrefix(s string) bool {
	return len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func isHexFloat(s string) bool {
	return hasHexPrefix(strings.TrimLeft(s, "+-"))
}

// scanError maps strconv failures onto ErrInvalidFormat and ErrOutOfRange,
// keeping the strconv sentinel reachable through errors.Is.
func scanError(tok string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("%w: %q (%w)", ErrOutOfRange, tok, strconv.ErrRange)
	}
	return fmt.Errorf("%w: %q (%w)", ErrInvalidFormat, tok, strconv.ErrSyntax)
}

// ParseBool coerces tok with strconv.ParseBool.
func ParseBool(tok string) (Value, error) {
	b, err := strconv.ParseBool(tok)
	if err != nil {
		return Value{}, fmt.Errorf("%w: invalid bool value %q", ErrInvalidFormat, tok)
	}
	return Bool(b), nil
}

// ParseDuration coerces tok with time.ParseDuration.
func ParseDuration(tok string) (Value, error) {
	d, err := time.ParseDuration(tok)
	if err != nil {
		return Value{}, fmt.Errorf("%w: invalid duration %q: %w", ErrInvalidFormat, tok, err)
	}
	return Duration(d), nil
}
