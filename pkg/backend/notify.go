package backend

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/notify"
	"github.com/convenehq/convene/pkg/proto"
	"github.com/convenehq/convene/pkg/sync"
)

// organizerNotifier returns the notifier honoring the organizer's SMTP
// overrides. Without a configured host deliveries are simulated.
func (b *Backend) organizerNotifier(ctx context.Context, organizerID int64) notify.Notifier {
	smtp := b.organizerSMTP(ctx, organizerID)
	if smtp == b.cfg.SMTP {
		return b.notifier
	}
	if smtp.Host == "" {
		return notify.NewSimulator(ctx)
	}

	return notify.NewMailer(ctx, smtp, b.cfg.Name)
}

// deliver fans the notifications out through a work pool and collects the
// per-recipient outcome. Failures are logged and reported, never returned.
func (b *Backend) deliver(ctx context.Context, notifier notify.Notifier, ns []notify.Notification) *notify.Report {
	report := &notify.Report{}
	if len(ns) == 0 {
		return report
	}

	wq := sync.NewWorkPool(ctx, runtime.GOMAXPROCS(0),
		sync.WithWorkPoolLogger(b.logger.Errorf),
	)

	for i, n := range ns {
		n := n
		wq.Add(fmt.Sprintf("%d/%s", i, n.Recipient.Email), func() {
			outcome, err := notifier.Notify(ctx, n)
			if err != nil {
				b.logger.Error("error delivering notification", "kind", n.Kind, "to", n.Recipient.Email, "error", err)
			}
			report.Record(n.Recipient.Email, outcome, err)
		})
	}

	wq.Run()

	return report
}

// sendInvitations builds and delivers the invitation (or reminder) message
// for each participant of the invite.
func (b *Backend) sendInvitations(ctx context.Context, organizer proto.Organizer, invite proto.MeetingInvite, remind bool) *notify.Report {
	notifier := b.organizerNotifier(ctx, organizer.ID)
	base := b.organizerBaseURL(ctx, organizer.ID)
	slots := describeSlots(invite.Slots)

	ns := make([]notify.Notification, 0, len(invite.Participants))
	for _, p := range invite.Participants {
		link := respondURL(base, p.Binding.Token)
		if remind {
			ns = append(ns, notify.Reminder(recipient(p.Contact), invite.Meeting.Title, organizer.Name, link, slots))
		} else {
			ns = append(ns, notify.Invitation(recipient(p.Contact), invite.Meeting.Title, invite.Meeting.Description, organizer.Name, link, slots))
		}
	}

	return b.deliver(ctx, notifier, ns)
}

// RemindPending nudges the participants of a sent meeting who have not
// responded yet. Reminders never re-transition meeting state.
func (b *Backend) RemindPending(ctx context.Context, meeting proto.Meeting) (*notify.Report, error) {
	if meeting.Status != proto.StatusSent {
		return nil, proto.ErrMeetingNotSent
	}

	organizer, err := b.OrganizerByID(ctx, meeting.OrganizerID)
	if err != nil {
		return nil, err
	}

	var invite proto.MeetingInvite
	invite.Meeting = meeting
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		ss, err := b.store.ListTimeSlotsByMeeting(ctx, tx, meeting.ID)
		if err != nil {
			return err
		}
		for _, s := range ss {
			invite.Slots = append(invite.Slots, slotFromModel(s))
		}

		pending, err := b.store.ListPendingParticipants(ctx, tx, meeting.ID)
		if err != nil {
			return err
		}

		for _, m := range pending {
			contact, err := b.store.GetContactByID(ctx, tx, m.ContactID)
			if err != nil {
				return db.WrapError(err)
			}

			invite.Participants = append(invite.Participants, proto.InvitedParticipant{
				Contact: contactFromModel(contact),
				Binding: bindingFromModel(m),
			})
		}

		return nil
	}); err != nil {
		return nil, db.WrapError(err)
	}

	return b.sendInvitations(ctx, organizer, invite, true), nil
}

// RemindParticipants is the organizer-facing reminder operation.
func (b *Backend) RemindParticipants(ctx context.Context, organizer proto.Organizer, meetingID int64) (*notify.Report, error) {
	var meeting proto.Meeting
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		m, err := b.store.GetMeetingByID(ctx, tx, meetingID)
		if err != nil {
			return db.WrapError(err)
		}
		if m.OrganizerID != organizer.ID {
			return proto.ErrMeetingNotFound
		}

		meeting = meetingFromModel(m)
		return nil
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrMeetingNotFound
		}

		return nil, err
	}

	switch meeting.Status {
	case proto.StatusDraft:
		return nil, proto.ErrMeetingNotSent
	case proto.StatusFinalized:
		return nil, proto.ErrMeetingFinalized
	case proto.StatusCancelled:
		return nil, proto.ErrMeetingCancelled
	}

	return b.RemindPending(ctx, meeting)
}

// SendTestEmail delivers a settings-verification message to the organizer's
// own address through their effective SMTP settings.
func (b *Backend) SendTestEmail(ctx context.Context, organizer proto.Organizer) (notify.Outcome, error) {
	notifier := b.organizerNotifier(ctx, organizer.ID)
	n := notify.Test(notify.Recipient{Name: organizer.Name, Email: organizer.Email})
	return notifier.Notify(ctx, n)
}

func recipient(c proto.Contact) notify.Recipient {
	return notify.Recipient{Name: c.Name, Email: c.Email}
}

func respondURL(base, token string) string {
	return fmt.Sprintf("%s/respond?token=%s", base, token)
}

// organizerURL is the dashboard link embedded in response notifications. It
// is informational, not a capability grant.
func organizerURL(base string, meetingID int64) string {
	return fmt.Sprintf("%s?page=organizer&meeting_id=%d", base, meetingID)
}
