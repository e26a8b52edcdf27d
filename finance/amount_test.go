package finance

import "testing"

func TestParseAmountValid(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2500", "2500"},
		{"2 500", "2500"},
		{"2.500", "2.5"},
		{"2500,50", "2500.5"},
		{"2к", "2000"},
		{"2k", "2000"},
		{"1.234.567,89", "1234567.89"},
		{"1,234,567.89", "1234567.89"},
		{"  3 000 ₽ ", "3000"},
		{"0", "0"},
		{"12,5к", "12500"},
		{"0.005", "0.01"},
	}
	for _, tc := range cases {
		got, ok := ParseAmount(tc.in)
		if !ok {
			t.Errorf("ParseAmount(%q) = invalid, want %s", tc.in, tc.want)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("ParseAmount(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseAmountInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "-5", "к", "1.2.3", "...", "₽"} {
		if got, ok := ParseAmount(in); ok {
			t.Errorf("ParseAmount(%q) = %s, want invalid", in, got)
		}
	}
}

func TestParseAmountPure(t *testing.T) {
	a, okA := ParseAmount("2 500,50")
	b, okB := ParseAmount("2 500,50")
	if okA != okB || !a.Equal(b) {
		t.Fatalf("same input parsed differently: %s vs %s", a, b)
	}
}
