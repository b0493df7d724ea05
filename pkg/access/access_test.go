package access

import "testing"

func TestParseAccessKind(t *testing.T) {
	cases := []struct {
		in  string
		out AccessKind
	}{
		{"", -1},
		{"foo", -1},
		{OwnedAccess.String(), OwnedAccess},
		{SharedAccess.String(), SharedAccess},
		{NoAccess.String(), NoAccess},
	}

	for _, c := range cases {
		out := ParseAccessKind(c.in)
		if out != c.out {
			t.Errorf("ParseAccessKind(%q) => %d, want %d", c.in, out, c.out)
		}
	}
}
