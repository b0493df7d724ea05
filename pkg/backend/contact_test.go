package backend

import (
	"testing"
	"time"

	"github.com/convenehq/convene/pkg/proto"
	"github.com/matryer/is"
)

func TestCreateContactIdempotent(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	organizer, err := be.Register(ctx, "ada@example.com", "hunter2", "Ada", "phrase")
	is.NoErr(err)

	first, err := be.CreateContact(ctx, organizer, "Grace", "grace@example.com")
	is.NoErr(err)

	// Same address again, shouty this time. Same contact comes back.
	second, err := be.CreateContact(ctx, organizer, "Grace H.", "GRACE@Example.com ")
	is.NoErr(err)
	is.Equal(first.ID, second.ID)
	is.Equal(second.Email, "grace@example.com")

	contacts, err := be.Contacts(ctx, organizer)
	is.NoErr(err)
	is.Equal(len(contacts), 1)
}

func TestContactsArePrivate(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	ada, err := be.Register(ctx, "ada@example.com", "hunter2", "Ada", "phrase")
	is.NoErr(err)
	bob, err := be.Register(ctx, "bob@example.com", "hunter2", "Bob", "phrase")
	is.NoErr(err)

	contact, err := be.CreateContact(ctx, ada, "Grace", "grace@example.com")
	is.NoErr(err)

	// Another organizer sees not-found, not denied.
	_, err = be.Contact(ctx, bob, contact.ID)
	is.Equal(err, proto.ErrContactNotFound)

	// The same address under a different owner is a distinct contact.
	other, err := be.CreateContact(ctx, bob, "Grace", "grace@example.com")
	is.NoErr(err)
	is.True(other.ID != contact.ID)
}

func TestDeleteContactInUse(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	organizer, err := be.Register(ctx, "ada@example.com", "hunter2", "Ada", "phrase")
	is.NoErr(err)
	contact, err := be.CreateContact(ctx, organizer, "Grace", "grace@example.com")
	is.NoErr(err)

	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	invite, err := be.CreateMeeting(ctx, organizer, "Sync", "", testSlots(base, 1), []int64{contact.ID})
	is.NoErr(err)

	err = be.DeleteContact(ctx, organizer, contact.ID)
	is.Equal(err, proto.ErrContactInUse)

	err = be.DeleteMeeting(ctx, organizer, invite.Meeting.ID)
	is.NoErr(err)

	err = be.DeleteContact(ctx, organizer, contact.ID)
	is.NoErr(err)
}

func TestUpdateContactDuplicate(t *testing.T) {
	is := is.New(t)
	ctx, be := testBackend(t)

	organizer, err := be.Register(ctx, "ada@example.com", "hunter2", "Ada", "phrase")
	is.NoErr(err)

	_, err = be.CreateContact(ctx, organizer, "Grace", "grace@example.com")
	is.NoErr(err)
	second, err := be.CreateContact(ctx, organizer, "Linus", "linus@example.com")
	is.NoErr(err)

	err = be.UpdateContact(ctx, organizer, second.ID, "Linus", "grace@example.com")
	is.Equal(err, proto.ErrContactExist)
}
