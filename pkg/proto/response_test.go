package proto

import "testing"

func TestParseAvailability(t *testing.T) {
	cases := []struct {
		in  string
		out Availability
	}{
		{"", -1},
		{"foo", -1},
		{Available.String(), Available},
		{Maybe.String(), Maybe},
		{Unavailable.String(), Unavailable},
	}

	for _, c := range cases {
		out := ParseAvailability(c.in)
		if out != c.out {
			t.Errorf("ParseAvailability(%q) => %d, want %d", c.in, out, c.out)
		}
	}
}
