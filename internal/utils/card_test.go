package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCardNumber(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"sixteen digits", "4111111111111111", true},
		{"grouped with spaces", "4111 1111 1111 1111", true},
		{"tabs and spaces", "4111\t1111 1111 1111", true},
		{"fifteen digits", "411111111111111", false},
		{"seventeen digits", "41111111111111111", false},
		{"letters", "4111a11111111111", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidCardNumber(tc.input))
		})
	}
}

func TestValidCardName(t *testing.T) {
	assert.True(t, ValidCardName("R Sharma"))
	assert.False(t, ValidCardName(""))
	assert.False(t, ValidCardName("   "))
}

func TestValidExpiry(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"12/25", true},
		{"01/99", true},
		{"13/25", true}, // format only, month range is not checked
		{"1/25", false},
		{"12-25", false},
		{"12/2025", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidExpiry(tc.input), "input %q", tc.input)
	}
}

func TestValidCVV(t *testing.T) {
	assert.True(t, ValidCVV("123"))
	assert.True(t, ValidCVV(" 123 "))
	assert.False(t, ValidCVV("12"))
	assert.False(t, ValidCVV("1234"))
	assert.False(t, ValidCVV("12a"))
}

func TestFormatCardNumber(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"4111111111111111", "4111 1111 1111 1111"},
		{"4111 1111 1111 1111", "4111 1111 1111 1111"},
		{"4111-1111-1111-1111", "4111 1111 1111 1111"},
		{"41111111111111112222", "4111 1111 1111 1111"}, // extra digits truncated
		{"12345", "1234 5"},
		{"no digits here", "no digits here"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCardNumber(tc.input), "input %q", tc.input)
	}
}

func TestCardLast4(t *testing.T) {
	assert.Equal(t, "1111", CardLast4("4111 1111 1111 1111"))
	assert.Equal(t, "9876", CardLast4("9876"))
	assert.Equal(t, "12", CardLast4("12"))
}
