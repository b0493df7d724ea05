package store

// Store is an interface for managing organizers, contacts, meetings, and
// their responses.
type Store interface {
	OrganizerStore
	ContactStore
	GroupStore
	MeetingStore
	SlotStore
	ParticipantStore
	ResponseStore
	SuggestionStore
	SettingStore
	WebhookStore
}
