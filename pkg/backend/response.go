package backend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/models"
	"github.com/convenehq/convene/pkg/notify"
	"github.com/convenehq/convene/pkg/proto"
	"github.com/convenehq/convene/pkg/webhook"
)

// SubmitResponse records a participant's availability for a single slot.
func (b *Backend) SubmitResponse(ctx context.Context, token string, slotID int64, availability proto.Availability) (proto.ResponseReceipt, error) {
	return b.SubmitResponses(ctx, token, map[int64]proto.Availability{slotID: availability})
}

// SubmitResponses records a participant's full submission.
//
// Every supplied slot is upserted independently, so the stored set reflects
// the participant's last submission. The responded flag flips regardless of
// whether any verdict changed value. The organizer is notified after commit;
// delivery failure never affects the stored responses.
func (b *Backend) SubmitResponses(ctx context.Context, token string, verdicts map[int64]proto.Availability) (proto.ResponseReceipt, error) {
	slotIDs := make([]int64, 0, len(verdicts))
	for slotID, v := range verdicts {
		switch v {
		case proto.Available, proto.Maybe, proto.Unavailable:
		default:
			return proto.ResponseReceipt{}, proto.ErrInvalidAvailability
		}

		slotIDs = append(slotIDs, slotID)
	}
	sort.Slice(slotIDs, func(i, j int) bool { return slotIDs[i] < slotIDs[j] })

	var receipt proto.ResponseReceipt
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		p, err := b.store.GetParticipantByToken(ctx, tx, token)
		if err != nil {
			return db.WrapError(err)
		}

		meeting, err := b.store.GetMeetingByID(ctx, tx, p.MeetingID)
		if err != nil {
			return db.WrapError(err)
		}

		switch proto.ParseMeetingStatus(meeting.Status) {
		case proto.StatusFinalized:
			return proto.ErrMeetingFinalized
		case proto.StatusCancelled:
			return proto.ErrMeetingCancelled
		}

		slots, err := b.store.ListTimeSlotsByMeeting(ctx, tx, p.MeetingID)
		if err != nil {
			return err
		}
		known := make(map[int64]struct{}, len(slots))
		for _, s := range slots {
			known[s.ID] = struct{}{}
		}
		for _, slotID := range slotIDs {
			if _, ok := known[slotID]; !ok {
				return proto.ErrSlotNotFound
			}
		}

		for _, slotID := range slotIDs {
			if err := b.store.UpsertResponse(ctx, tx, p.MeetingID, p.ContactID, slotID, verdicts[slotID].String()); err != nil {
				return err
			}
		}

		if err := b.store.MarkParticipantResponded(ctx, tx, p.MeetingID, p.ContactID); err != nil {
			return err
		}

		contact, err := b.store.GetContactByID(ctx, tx, p.ContactID)
		if err != nil {
			return db.WrapError(err)
		}

		receipt = proto.ResponseReceipt{
			Meeting:   meetingFromModel(meeting),
			Contact:   contactFromModel(contact),
			Saved:     len(slotIDs),
			Responded: time.Now(),
		}

		return nil
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ResponseReceipt{}, proto.ErrTokenNotFound
		}

		return proto.ResponseReceipt{}, err
	}

	b.cache.Delete(token)
	b.notifyResponseReceived(receipt.Meeting, receipt.Contact)

	return receipt, nil
}

// notifyResponseReceived tells the organizer a participant responded. The
// dispatch runs on the backend context, detached from the request.
func (b *Backend) notifyResponseReceived(meeting proto.Meeting, contact proto.Contact) {
	tid := fmt.Sprintf("notify:response:%d:%d", meeting.ID, contact.ID)
	b.manager.Launch(tid, func(ctx context.Context) error {
		organizer, err := b.OrganizerByID(ctx, meeting.OrganizerID)
		if err != nil {
			return err
		}

		notifier := b.organizerNotifier(ctx, organizer.ID)
		base := b.organizerBaseURL(ctx, organizer.ID)
		n := notify.ResponseReceived(
			notify.Recipient{Name: organizer.Name, Email: organizer.Email},
			contact.Name,
			meeting.Title,
			organizerURL(base, meeting.ID),
		)
		if _, err := notifier.Notify(ctx, n); err != nil {
			b.logger.Error("error notifying organizer of response", "meeting", meeting.ID, "error", err)
		}

		responses, err := b.participantResponses(ctx, meeting.ID, contact.ID)
		if err != nil {
			return err
		}

		wh, err := webhook.NewResponseEvent(ctx, contact, meeting, responses)
		if err != nil {
			return err
		}

		return webhook.SendEvent(ctx, wh)
	})
}

// participantResponses loads one participant's stored responses.
func (b *Backend) participantResponses(ctx context.Context, meetingID, contactID int64) ([]proto.Response, error) {
	var responses []proto.Response
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		ms, err := b.store.ListResponsesByParticipant(ctx, tx, meetingID, contactID)
		if err != nil {
			return err
		}

		for _, m := range ms {
			responses = append(responses, responseFromModel(m))
		}

		return nil
	}); err != nil {
		return nil, db.WrapError(err)
	}

	return responses, nil
}

// ParticipantResponses returns the responses a token holder has recorded so
// far, for rendering their current state.
func (b *Backend) ParticipantResponses(ctx context.Context, token string) ([]proto.Response, error) {
	p, err := b.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return b.participantResponses(ctx, p.Meeting.ID, p.Contact.ID)
}

// ParticipantView loads the full respond-page state behind a token in one
// read: meeting, slots, the participant's responses, and their suggestion.
func (b *Backend) ParticipantView(ctx context.Context, token string) (proto.ParticipantView, error) {
	var v proto.ParticipantView
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		p, err := b.store.GetParticipantByToken(ctx, tx, token)
		if err != nil {
			return db.WrapError(err)
		}

		meeting, err := b.store.GetMeetingByID(ctx, tx, p.MeetingID)
		if err != nil {
			return db.WrapError(err)
		}

		contact, err := b.store.GetContactByID(ctx, tx, p.ContactID)
		if err != nil {
			return db.WrapError(err)
		}

		slots, err := b.store.ListTimeSlotsByMeeting(ctx, tx, p.MeetingID)
		if err != nil {
			return db.WrapError(err)
		}

		responses, err := b.store.ListResponsesByParticipant(ctx, tx, p.MeetingID, p.ContactID)
		if err != nil {
			return db.WrapError(err)
		}

		v = proto.ParticipantView{
			Participation: proto.Participation{
				Meeting: meetingFromModel(meeting),
				Contact: contactFromModel(contact),
				Binding: bindingFromModel(p),
			},
		}

		for _, s := range slots {
			v.Slots = append(v.Slots, slotFromModel(s))
		}

		for _, m := range responses {
			v.Responses = append(v.Responses, responseFromModel(m))
		}

		suggestion, err := b.store.GetSuggestion(ctx, tx, p.MeetingID, p.ContactID)
		if err == nil {
			v.Suggestion = &proto.SuggestedSlot{
				MeetingID:      suggestion.MeetingID,
				ContactID:      suggestion.ContactID,
				SuggestedStart: suggestion.SuggestedStart,
				Note:           suggestion.Note,
				UpdatedAt:      suggestion.UpdatedAt,
			}
		} else if !errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return db.WrapError(err)
		}

		return nil
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ParticipantView{}, proto.ErrTokenNotFound
		}

		b.logger.Error("error loading participant view", "error", err)
		return proto.ParticipantView{}, err
	}

	return v, nil
}

// SuggestAlternative replaces the participant's alternative-time suggestion.
//
// A meeting holds at most one suggestion per participant; the newest wins.
func (b *Backend) SuggestAlternative(ctx context.Context, token string, start time.Time, note string) error {
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		p, err := b.store.GetParticipantByToken(ctx, tx, token)
		if err != nil {
			return db.WrapError(err)
		}

		meeting, err := b.store.GetMeetingByID(ctx, tx, p.MeetingID)
		if err != nil {
			return db.WrapError(err)
		}

		switch proto.ParseMeetingStatus(meeting.Status) {
		case proto.StatusFinalized:
			return proto.ErrMeetingFinalized
		case proto.StatusCancelled:
			return proto.ErrMeetingCancelled
		}

		return b.store.ReplaceSuggestion(ctx, tx, p.MeetingID, p.ContactID, start, note)
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrTokenNotFound
		}

		return err
	}

	return nil
}

// Suggestion returns a token holder's current suggestion, if any.
func (b *Backend) Suggestion(ctx context.Context, token string) (proto.SuggestedSlot, bool, error) {
	p, err := b.ResolveToken(ctx, token)
	if err != nil {
		return proto.SuggestedSlot{}, false, err
	}

	var suggestion proto.SuggestedSlot
	found := true
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		m, err := b.store.GetSuggestion(ctx, tx, p.Meeting.ID, p.Contact.ID)
		if err != nil {
			return db.WrapError(err)
		}

		suggestion = proto.SuggestedSlot{
			MeetingID:      m.MeetingID,
			ContactID:      m.ContactID,
			SuggestedStart: m.SuggestedStart,
			Note:           m.Note,
			UpdatedAt:      m.UpdatedAt,
		}

		return nil
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.SuggestedSlot{}, false, nil
		}

		return proto.SuggestedSlot{}, false, err
	}

	return suggestion, found, nil
}

// Suggestions returns the suggestions collected for a meeting the organizer
// owns, joined with the suggesting contacts.
func (b *Backend) Suggestions(ctx context.Context, organizer proto.Organizer, meetingID int64) ([]proto.ParticipantSuggestion, error) {
	var suggestions []proto.ParticipantSuggestion
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		m, err := b.store.GetMeetingByID(ctx, tx, meetingID)
		if err != nil {
			return db.WrapError(err)
		}
		if m.OrganizerID != organizer.ID {
			return proto.ErrMeetingNotFound
		}

		ms, err := b.store.ListSuggestionsByMeeting(ctx, tx, meetingID)
		if err != nil {
			return err
		}

		for _, s := range ms {
			contact, err := b.store.GetContactByID(ctx, tx, s.ContactID)
			if err != nil {
				return db.WrapError(err)
			}

			suggestions = append(suggestions, proto.ParticipantSuggestion{
				Contact:        contactFromModel(contact),
				SuggestedStart: s.SuggestedStart,
				Note:           s.Note,
				UpdatedAt:      s.UpdatedAt,
			})
		}

		return nil
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrMeetingNotFound
		}

		return nil, err
	}

	return suggestions, nil
}

func responseFromModel(m models.Response) proto.Response {
	return proto.Response{
		MeetingID:    m.MeetingID,
		ContactID:    m.ContactID,
		SlotID:       m.SlotID,
		Availability: proto.ParseAvailability(m.Availability),
		UpdatedAt:    m.UpdatedAt,
	}
}
