package backend

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/notify"
	"github.com/convenehq/convene/pkg/proto"
	"github.com/convenehq/convene/pkg/webhook"
)

// finalizedSlotLayout renders the chosen slot for storage and notices.
const finalizedSlotLayout = "Monday, January 02, 2006 at 03:04 PM"

// describeSlots renders slots for notification bodies.
func describeSlots(slots []proto.TimeSlot) []string {
	lines := make([]string, 0, len(slots))
	for _, s := range slots {
		lines = append(lines, fmt.Sprintf("%s (%d minutes)",
			s.StartsAt.Format(finalizedSlotLayout), int(s.Duration.Minutes())))
	}

	return lines
}

// Schedule assembles the organizer view of a meeting's collected responses.
//
// Each slot is tallied independently. A participant who has not recorded a
// verdict for a slot counts as pending there and contributes nothing to its
// score. Tallies are ordered best first; equal scores break toward the
// earlier start.
func (b *Backend) Schedule(ctx context.Context, organizer proto.Organizer, meetingID int64) (proto.Schedule, error) {
	var schedule proto.Schedule
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		m, err := b.store.GetMeetingByID(ctx, tx, meetingID)
		if err != nil {
			return db.WrapError(err)
		}
		if m.OrganizerID != organizer.ID {
			return proto.ErrMeetingNotFound
		}

		slots, err := b.store.ListTimeSlotsByMeeting(ctx, tx, meetingID)
		if err != nil {
			return err
		}

		participants, err := b.store.ListParticipantsByMeeting(ctx, tx, meetingID)
		if err != nil {
			return err
		}

		responses, err := b.store.ListResponsesByMeeting(ctx, tx, meetingID)
		if err != nil {
			return err
		}

		verdicts := make(map[int64]map[int64]proto.Availability, len(slots))
		for _, r := range responses {
			if verdicts[r.SlotID] == nil {
				verdicts[r.SlotID] = make(map[int64]proto.Availability)
			}
			verdicts[r.SlotID][r.ContactID] = proto.ParseAvailability(r.Availability)
		}

		invited := len(participants)
		responded := 0
		for _, p := range participants {
			if p.Responded {
				responded++
			}
		}

		tallies := make([]proto.SlotTally, 0, len(slots))
		for _, s := range slots {
			tally := proto.SlotTally{Slot: slotFromModel(s)}
			for _, v := range verdicts[s.ID] {
				switch v {
				case proto.Available:
					tally.Available++
				case proto.Maybe:
					tally.Maybe++
				case proto.Unavailable:
					tally.Unavailable++
				}
			}

			tally.Pending = invited - len(verdicts[s.ID])
			tally.Score = float64(tally.Available) + 0.5*float64(tally.Maybe)
			tallies = append(tallies, tally)
		}

		sort.SliceStable(tallies, func(i, j int) bool {
			if tallies[i].Score != tallies[j].Score {
				return tallies[i].Score > tallies[j].Score
			}

			return tallies[i].Slot.StartsAt.Before(tallies[j].Slot.StartsAt)
		})

		suggestions, err := b.suggestionsTx(ctx, tx, meetingID)
		if err != nil {
			return err
		}

		schedule = proto.Schedule{
			Meeting:     meetingFromModel(m),
			Tallies:     tallies,
			Invited:     invited,
			Responded:   responded,
			Suggestions: suggestions,
		}

		return nil
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.Schedule{}, proto.ErrMeetingNotFound
		}

		return proto.Schedule{}, err
	}

	return schedule, nil
}

// RankSlots returns the meeting's slots ordered best first.
func (b *Backend) RankSlots(ctx context.Context, organizer proto.Organizer, meetingID int64) ([]proto.SlotTally, error) {
	schedule, err := b.Schedule(ctx, organizer, meetingID)
	if err != nil {
		return nil, err
	}

	return schedule.Tallies, nil
}

// Finalize commits the meeting to one of its slots and notifies every
// participant of the chosen time.
//
// The status transition is guarded inside the store, so of two concurrent
// finalizes exactly one commits; the loser observes ErrMeetingFinalized and
// no participant hears about the meeting twice.
func (b *Backend) Finalize(ctx context.Context, organizer proto.Organizer, meetingID, slotID int64) (proto.FinalizeReceipt, *notify.Report, error) {
	var (
		receipt proto.FinalizeReceipt
		invited []proto.InvitedParticipant
	)
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		m, err := b.store.GetMeetingByID(ctx, tx, meetingID)
		if err != nil {
			return db.WrapError(err)
		}
		if m.OrganizerID != organizer.ID {
			return proto.ErrMeetingNotFound
		}

		switch proto.ParseMeetingStatus(m.Status) {
		case proto.StatusDraft:
			return proto.ErrMeetingNotSent
		case proto.StatusFinalized:
			return proto.ErrMeetingFinalized
		case proto.StatusCancelled:
			return proto.ErrMeetingCancelled
		}

		s, err := b.store.GetTimeSlotByID(ctx, tx, slotID)
		if err != nil {
			return db.WrapError(err)
		}
		if s.MeetingID != meetingID {
			return proto.ErrSlotNotFound
		}

		ok, err := b.store.FinalizeMeeting(ctx, tx, meetingID, s.StartsAt.Format(finalizedSlotLayout))
		if err != nil {
			return err
		}
		if !ok {
			return proto.ErrMeetingFinalized
		}

		m, err = b.store.GetMeetingByID(ctx, tx, meetingID)
		if err != nil {
			return db.WrapError(err)
		}

		invited, err = b.invitedParticipants(ctx, tx, meetingID)
		if err != nil {
			return err
		}

		responded := 0
		for _, p := range invited {
			if p.Binding.Responded {
				responded++
			}
		}

		receipt = proto.FinalizeReceipt{
			Meeting:   meetingFromModel(m),
			Slot:      slotFromModel(s),
			Invited:   len(invited),
			Responded: responded,
		}

		return nil
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.FinalizeReceipt{}, nil, proto.ErrSlotNotFound
		}

		return proto.FinalizeReceipt{}, nil, err
	}

	b.cache.InvalidateMeeting(meetingID)

	notifier := b.organizerNotifier(ctx, organizer.ID)
	ns := make([]notify.Notification, 0, len(invited))
	for _, p := range invited {
		ns = append(ns, notify.Finalized(
			recipient(p.Contact),
			receipt.Meeting.Title,
			organizer.Name,
			receipt.Meeting.FinalizedSlot,
		))
	}
	report := b.deliver(ctx, notifier, ns)

	wh, err := webhook.NewMeetingEvent(ctx, organizer, receipt.Meeting, webhook.MeetingEventActionFinalized)
	if err != nil {
		b.logger.Error("error creating webhook event", "meeting", meetingID, "error", err)
	} else if err := webhook.SendEvent(ctx, wh); err != nil {
		b.logger.Error("error sending webhook event", "meeting", meetingID, "error", err)
	}

	return receipt, report, nil
}

// suggestionsTx loads a meeting's suggestions joined with the suggesting
// contacts inside an open transaction.
func (b *Backend) suggestionsTx(ctx context.Context, tx *db.Tx, meetingID int64) ([]proto.ParticipantSuggestion, error) {
	ms, err := b.store.ListSuggestionsByMeeting(ctx, tx, meetingID)
	if err != nil {
		return nil, err
	}

	var suggestions []proto.ParticipantSuggestion
	for _, s := range ms {
		contact, err := b.store.GetContactByID(ctx, tx, s.ContactID)
		if err != nil {
			return nil, db.WrapError(err)
		}

		suggestions = append(suggestions, proto.ParticipantSuggestion{
			Contact:        contactFromModel(contact),
			SuggestedStart: s.SuggestedStart,
			Note:           s.Note,
			UpdatedAt:      s.UpdatedAt,
		})
	}

	return suggestions, nil
}

// notifyScheduleChanged tells every participant of a sent meeting that the
// candidate slots changed. The dispatch runs on the backend context,
// detached from the request.
func (b *Backend) notifyScheduleChanged(meetingID int64) {
	tid := fmt.Sprintf("notify:schedule:%d", meetingID)
	b.manager.Launch(tid, func(ctx context.Context) error {
		var invite proto.MeetingInvite
		if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
			var err error
			invite, err = b.meetingInvite(ctx, tx, meetingID)
			return err
		}); err != nil {
			return db.WrapError(err)
		}

		organizer, err := b.OrganizerByID(ctx, invite.Meeting.OrganizerID)
		if err != nil {
			return err
		}

		notifier := b.organizerNotifier(ctx, organizer.ID)
		base := b.organizerBaseURL(ctx, organizer.ID)
		slots := describeSlots(invite.Slots)
		ns := make([]notify.Notification, 0, len(invite.Participants))
		for _, p := range invite.Participants {
			ns = append(ns, notify.ScheduleUpdate(
				recipient(p.Contact),
				invite.Meeting.Title,
				organizer.Name,
				respondURL(base, p.Binding.Token),
				slots,
			))
		}

		report := b.deliver(ctx, notifier, ns)
		b.logger.Info("schedule change notices dispatched",
			"meeting", meetingID,
			"report", report.String(),
		)

		return nil
	})
}
