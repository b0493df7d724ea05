package proto

import "testing"

func TestParseMeetingStatus(t *testing.T) {
	cases := []struct {
		in  string
		out MeetingStatus
	}{
		{"", -1},
		{"foo", -1},
		{StatusDraft.String(), StatusDraft},
		{StatusSent.String(), StatusSent},
		{StatusFinalized.String(), StatusFinalized},
		{StatusCancelled.String(), StatusCancelled},
	}

	for _, c := range cases {
		out := ParseMeetingStatus(c.in)
		if out != c.out {
			t.Errorf("ParseMeetingStatus(%q) => %d, want %d", c.in, out, c.out)
		}
	}
}

func TestAccepting(t *testing.T) {
	cases := []struct {
		status MeetingStatus
		want   bool
	}{
		{StatusDraft, true},
		{StatusSent, true},
		{StatusFinalized, false},
		{StatusCancelled, false},
	}

	for _, c := range cases {
		m := Meeting{Status: c.status}
		if got := m.Accepting(); got != c.want {
			t.Errorf("Meeting{%s}.Accepting() => %v, want %v", c.status, got, c.want)
		}
	}
}
