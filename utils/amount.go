package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Balance figures use dots as thousands separators and no decimal fraction.
// Credit balances may carry a leading or trailing minus.
var amountPattern = regexp.MustCompile(`^-?[\d.]+-?$`)

// IsAmount reports whether text looks like a balance figure.
func IsAmount(text string) bool {
	t := strings.TrimSpace(text)
	return t != "" && amountPattern.MatchString(t) && strings.ContainsAny(t, "0123456789")
}

// ParseAmount converts a balance figure into whole pesos. The second return
// is false for non-numeric noise; callers keep the row and zero the field.
func ParseAmount(text string) (int64, bool) {
	t := strings.TrimSpace(text)
	if t == "" || !amountPattern.MatchString(t) {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(t, "-") {
		negative = true
		t = t[1:]
	}
	if strings.HasSuffix(t, "-") {
		negative = true
		t = t[:len(t)-1]
	}

	digits := strings.ReplaceAll(t, ".", "")
	if digits == "" {
		return 0, false
	}

	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		value = -value
	}
	return value, true
}

// FormatAmount renders whole pesos as "$ 1.234.567".
func FormatAmount(value int64) string {
	negative := value < 0
	if negative {
		value = -value
	}

	s := strconv.FormatInt(value, 10)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ".")
	if negative {
		return fmt.Sprintf("$ -%s", out)
	}
	return fmt.Sprintf("$ %s", out)
}
