package proto

import (
	"errors"
)

var (
	// ErrUnauthorized is returned when the caller is not authorized to perform an action.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrOrganizerNotFound is returned when an organizer is not found.
	ErrOrganizerNotFound = errors.New("organizer not found")
	// ErrOrganizerExist is returned when an organizer is already registered.
	ErrOrganizerExist = errors.New("organizer already exists")
	// ErrRecoveryMismatch is returned when a recovery phrase does not match.
	ErrRecoveryMismatch = errors.New("recovery phrase mismatch")
	// ErrContactNotFound is returned when a contact is not found.
	ErrContactNotFound = errors.New("contact not found")
	// ErrContactExist is returned when a contact already exists.
	ErrContactExist = errors.New("contact already exists")
	// ErrContactInUse is returned when a contact is still invited to a meeting.
	ErrContactInUse = errors.New("contact is in use by a meeting")
	// ErrGroupNotFound is returned when a contact group is not found.
	ErrGroupNotFound = errors.New("group not found")
	// ErrGroupExist is returned when a contact group already exists.
	ErrGroupExist = errors.New("group already exists")
	// ErrGroupAccessDenied is returned when mutating a group the caller does not own.
	ErrGroupAccessDenied = errors.New("group access denied")
	// ErrGroupNotShared is returned when granting access to a group that is not shared.
	ErrGroupNotShared = errors.New("group is not shared")
	// ErrMemberNotFound is returned when a contact is not a member of a group.
	ErrMemberNotFound = errors.New("member not found")
	// ErrMemberExist is returned when a contact is already a member of a group.
	ErrMemberExist = errors.New("member already exists")
	// ErrMeetingNotFound is returned when a meeting is not found.
	ErrMeetingNotFound = errors.New("meeting not found")
	// ErrMeetingAccessDenied is returned when acting on a meeting the caller does not organize.
	ErrMeetingAccessDenied = errors.New("meeting access denied")
	// ErrMeetingNotSent is returned when an operation requires a meeting with sent invitations.
	ErrMeetingNotSent = errors.New("meeting invitations not sent")
	// ErrMeetingSent is returned when sending invitations for a meeting that already sent them.
	ErrMeetingSent = errors.New("meeting invitations already sent")
	// ErrMeetingFinalized is returned when a meeting schedule is already finalized.
	ErrMeetingFinalized = errors.New("meeting already finalized")
	// ErrMeetingCancelled is returned when a meeting has been cancelled.
	ErrMeetingCancelled = errors.New("meeting cancelled")
	// ErrSlotNotFound is returned when a time slot does not belong to a meeting.
	ErrSlotNotFound = errors.New("time slot not found")
	// ErrTokenNotFound is returned when a participant token is not found.
	ErrTokenNotFound = errors.New("token not found")
	// ErrNoParticipants is returned when a meeting is created without participants.
	ErrNoParticipants = errors.New("no participants")
	// ErrNoSlots is returned when a meeting is created without time slots.
	ErrNoSlots = errors.New("no time slots")
	// ErrMissingTitle is returned when a meeting is created without a title.
	ErrMissingTitle = errors.New("missing meeting title")
	// ErrWebhookNotFound is returned when a webhook is not found.
	ErrWebhookNotFound = errors.New("webhook not found")
)
