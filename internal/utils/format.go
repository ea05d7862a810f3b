package utils

import (
	"regexp"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`^\(\d{2}\) \d{4,5}-\d{4}$`)
	cepPattern   = regexp.MustCompile(`^\d{5}-\d{3}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func OnlyDigits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone masks the digits of value progressively while the user types:
// "(1", "(11) 9", "(11) 9876-5", "(11) 9876-5432", "(11) 98765-4321".
// Anything beyond 11 digits is dropped.
func FormatPhone(value string) string {
	numbers := OnlyDigits(value)
	if len(numbers) > 11 {
		numbers = numbers[:11]
	}

	switch n := len(numbers); {
	case n == 11:
		return "(" + numbers[:2] + ") " + numbers[2:7] + "-" + numbers[7:]
	case n >= 6:
		return "(" + numbers[:2] + ") " + numbers[2:6] + "-" + numbers[6:]
	case n >= 2:
		return "(" + numbers[:2] + ") " + numbers[2:]
	case n > 0:
		return "(" + numbers
	}

	return value
}

func IsPhone(value string) bool {
	return phonePattern.MatchString(value)
}

// FormatCep masks up to 8 digits as NNNNN-NNN.
func FormatCep(value string) string {
	numbers := OnlyDigits(value)
	if len(numbers) > 8 {
		numbers = numbers[:8]
	}
	if len(numbers) > 5 {
		return numbers[:5] + "-" + numbers[5:]
	}
	return numbers
}

func IsCep(value string) bool {
	return cepPattern.MatchString(value)
}

func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// SplitPhone turns "(11) 98765-4321" into the backend's {ddd, numero} pair.
func SplitPhone(value string) (ddd string, numero string) {
	numbers := OnlyDigits(value)
	if len(numbers) < 10 {
		return "", ""
	}
	return numbers[:2], numbers[2:]
}
