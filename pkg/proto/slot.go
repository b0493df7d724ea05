package proto

import "time"

// TimeSlot represents one candidate start time proposed for a meeting.
type TimeSlot struct {
	ID        int64
	MeetingID int64
	StartsAt  time.Time
	Duration  time.Duration
	CreatedAt time.Time
}

// SlotSpec describes a time slot to create.
type SlotSpec struct {
	StartsAt time.Time
	Duration time.Duration
}

// SlotTally aggregates the responses recorded for one slot. Participants who
// have not responded to the slot are counted as pending and excluded from the
// availability counts.
type SlotTally struct {
	Slot        TimeSlot
	Available   int
	Maybe       int
	Unavailable int
	Pending     int
	Score       float64
}

// Schedule is the organizer view of a meeting's collected responses.
type Schedule struct {
	Meeting     Meeting
	Tallies     []SlotTally
	Invited     int
	Responded   int
	Suggestions []ParticipantSuggestion
}
