package webhook

import "testing"

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want Event
		err  error
	}{
		{
			name: "MeetingSent",
			s:    "meeting.sent",
			want: EventMeetingSent,
		},
		{
			name: "MeetingFinalized",
			s:    "meeting.finalized",
			want: EventMeetingFinalized,
		},
		{
			name: "MeetingCancelled",
			s:    "meeting.cancelled",
			want: EventMeetingCancelled,
		},
		{
			name: "ResponseReceived",
			s:    "response.received",
			want: EventResponseReceived,
		},
		{
			name: "Invalid",
			s:    "meeting.invalid",
			err:  ErrInvalidEvent,
			want: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEvent(tt.s)
			if err != tt.err {
				t.Errorf("ParseEvent() error = %v, wantErr %v", err, tt.err)
				return
			}
			if got != tt.want {
				t.Errorf("ParseEvent() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventMarshalText(t *testing.T) {
	tests := []struct {
		name    string
		e       Event
		want    []byte
		wantErr bool
	}{
		{
			name: "MeetingSent",
			e:    EventMeetingSent,
			want: []byte("meeting.sent"),
		},
		{
			name: "ResponseReceived",
			e:    EventResponseReceived,
			want: []byte("response.received"),
		},
		{
			name:    "Invalid",
			e:       Event(-1),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.e.MarshalText()
			if (err != nil) != tt.wantErr {
				t.Errorf("Event.MarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if string(b) != string(tt.want) {
				t.Errorf("Event.MarshalText() got = %v, want %v", string(b), string(tt.want))
			}
		})
	}
}
