package render

import "testing"

func TestKPIPercent(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Typical ratio", input: "0.95", expected: "95%"},
		{name: "Zero", input: "0", expected: "0%"},
		{name: "Unparseable", input: "abc", expected: "0%"},
		{name: "Empty", input: "", expected: "0%"},
		{name: "Full score", input: "1", expected: "100%"},
		{name: "Rounds up", input: "0.876", expected: "88%"},
		{name: "Rounds down", input: "0.874", expected: "87%"},
		{name: "Whitespace", input: " 0.5 ", expected: "50%"},
		{name: "Over one hundred", input: "1.25", expected: "125%"},
	}

	for _, tc := range testCases {
		if got := KPIPercent(tc.input); got != tc.expected {
			t.Errorf("%s: KPIPercent(%q) = %q, expected %q", tc.name, tc.input, got, tc.expected)
		}
	}
}

func TestOrZero(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "", expected: "0"},
		{input: "   ", expected: "0"},
		{input: "3", expected: "3"},
		{input: "present", expected: "present"},
	}

	for _, tc := range testCases {
		if got := OrZero(tc.input); got != tc.expected {
			t.Errorf("OrZero(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}
