package billing_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/billmint/billmint-api/internal/domain/billing"
)

func TestAmountInWords_Vectors(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "Zero"},
		{5, "Five"},
		{19, "Nineteen"},
		{42, "Forty Two"},
		{100, "One Hundred"},
		{305, "Three Hundred Five"},
		{999, "Nine Hundred Ninety Nine"},
		{1000, "One Thousand"},
		{1001, "One Thousand One"},
		{19999, "Nineteen Thousand Nine Hundred Ninety Nine"},
		{100000, "One Lakh"},
		{123456, "One Lakh Twenty Three Thousand Four Hundred Fifty Six"},
		{1000000, "Ten Lakh"},
		{10000000, "One Crore"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight"},
		{70000005, "Seven Crore Five"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, billing.AmountInWords(tc.in), "value %d", tc.in)
	}
}

// TestAmountInWords_NoZeroGroups: an empty digit group must not emit a
// dangling scale word (e.g. 10,00,000 must not contain "Zero Thousand").
func TestAmountInWords_NoZeroGroups(t *testing.T) {
	for _, v := range []int64{1000000, 10000000, 100000, 70000005, 50000000} {
		got := billing.AmountInWords(v)
		assert.NotContains(t, got, "Zero", "value %d rendered %q", v, got)
		assert.False(t, strings.HasSuffix(got, " "), "no trailing whitespace")
		assert.False(t, strings.Contains(got, "  "), "no double spaces in %q", got)
	}
}
