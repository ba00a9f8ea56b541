package billing

import "strings"

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords converts a non-negative whole-rupee amount to Indian-numbering
// words: groups of crore (10^7), lakh (10^5) and thousand (10^3), then a final
// 0-999 remainder. A zero-valued group contributes no text, so 10,00,000 reads
// "Ten Lakh", never "Ten Lakh Zero Thousand".
func AmountInWords(n int64) string {
	if n <= 0 {
		return "Zero"
	}

	var parts []string

	if n >= 10000000 {
		// The crore count can itself exceed 999 (hundreds of crores and up),
		// so it converts through the full grouping.
		parts = append(parts, AmountInWords(n/10000000)+" Crore")
		n %= 10000000
	}
	if n >= 100000 {
		parts = append(parts, underThousand(n/100000)+" Lakh")
		n %= 100000
	}
	if n >= 1000 {
		parts = append(parts, underThousand(n/1000)+" Thousand")
		n %= 1000
	}
	if n > 0 {
		parts = append(parts, underThousand(n))
	}

	return strings.TrimSpace(strings.Join(parts, " "))
}

// underThousand converts 1-999: hundreds digit as "<ones> Hundred", remainder
// via the tens/ones tables (10-19 from the irregular teens table).
func underThousand(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100]+" Hundred")
		n %= 100
	}
	if n >= 20 {
		word := tensWords[n/10]
		if n%10 != 0 {
			word += " " + onesWords[n%10]
		}
		parts = append(parts, word)
	} else if n > 0 {
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}
