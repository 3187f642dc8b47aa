package toon

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	nullLiteral  = "null"
	trueLiteral  = "true"
	falseLiteral = "false"
)

var (
	numericLikeRegex = regexp.MustCompile(`(?i)^-?\d+(?:\.\d+)?(?:e[+-]?\d+)?$`)
	leadingZeroRegex = regexp.MustCompile(`^0\d+$`)
	identifierRegex  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
	decimalRegex     = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)
)

func isBooleanOrNull(token string) bool {
	switch token {
	case trueLiteral, falseLiteral, nullLiteral:
		return true
	}
	return false
}

// isDecimalNumber checks the textual shape only: optional sign, digits with an
// optional fraction, optional exponent. Hex, underscores and named values are
// not numbers here even though strconv would take them.
func isDecimalNumber(s string) bool {
	return decimalRegex.MatchString(s)
}

// isNumericLiteral reports whether token decodes as a number. A leading zero
// must be followed by '.', so "0" and "0.5" are numbers and "05" is not.
func isNumericLiteral(token string) bool {
	if token == "" {
		return false
	}
	if len(token) > 1 && token[0] == '0' && token[1] != '.' {
		return false
	}
	if !isDecimalNumber(token) {
		return false
	}
	f, err := strconv.ParseFloat(token, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// isNumericLike is wider than isNumericLiteral: strings such as "05" decode as
// strings but a reader would take them for numbers, so they get quoted.
func isNumericLike(s string) bool {
	if s == "" {
		return false
	}
	return numericLikeRegex.MatchString(s) || leadingZeroRegex.MatchString(s) || isNumericLiteral(s)
}

func isValidUnquotedKey(key string) bool {
	return identifierRegex.MatchString(key)
}

// isSafeUnquotedValue reports whether s can be written without quotes when
// delim is the active delimiter. A zero delim skips the delimiter check.
func isSafeUnquotedValue(s string, delim Delimiter) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	if isBooleanOrNull(s) || isNumericLike(s) {
		return false
	}
	if strings.ContainsAny(s, ":\"\\[]{}\n\r\t") {
		return false
	}
	if delim != 0 && strings.IndexByte(s, byte(delim)) >= 0 {
		return false
	}
	return s[0] != '-'
}
