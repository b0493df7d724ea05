package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/convenehq/convene/pkg/config"
)

func TestInvitationMessage(t *testing.T) {
	n := Invitation(
		Recipient{Name: "Ada", Email: "ada@example.com"},
		"Team Sync", "Weekly catch-up",
		"boss@example.com",
		"http://localhost:8080/respond?token=cv_abc",
		[]string{"Monday, January 02, 2006 at 03:04 PM"},
	)

	if n.Kind != KindInvitation {
		t.Errorf("kind = %s, want %s", n.Kind, KindInvitation)
	}
	if want := "Meeting invitation: Team Sync"; n.Subject != want {
		t.Errorf("subject = %q, want %q", n.Subject, want)
	}
	for _, want := range []string{
		"Hello Ada",
		"Team Sync",
		"Weekly catch-up",
		"Monday, January 02, 2006 at 03:04 PM",
		"http://localhost:8080/respond?token=cv_abc",
		"boss@example.com",
	} {
		if !strings.Contains(n.Body, want) {
			t.Errorf("body missing %q:\n%s", want, n.Body)
		}
	}
}

func TestFinalizedMessage(t *testing.T) {
	n := Finalized(Recipient{Name: "Ada", Email: "ada@example.com"},
		"Team Sync", "boss@example.com", "Monday, January 02, 2006 at 03:04 PM")
	if want := "Confirmed: Team Sync"; n.Subject != want {
		t.Errorf("subject = %q, want %q", n.Subject, want)
	}
	if !strings.Contains(n.Body, "Monday, January 02, 2006 at 03:04 PM") {
		t.Errorf("body missing finalized time:\n%s", n.Body)
	}
}

func TestSimulatorOutcome(t *testing.T) {
	s := NewSimulator(context.TODO())
	outcome, err := s.Notify(context.TODO(), Invitation(
		Recipient{Name: "Ada", Email: "ada@example.com"},
		"Team Sync", "", "boss@example.com", "http://localhost", nil))
	if err != nil {
		t.Fatalf("Notify() => %v, want nil", err)
	}
	if outcome != OutcomeSimulated {
		t.Errorf("outcome = %s, want %s", outcome, OutcomeSimulated)
	}
}

func TestNewPicksSimulatorWithoutHost(t *testing.T) {
	if _, ok := New(context.TODO(), config.DefaultConfig()).(*Simulator); !ok {
		t.Error("expected a Simulator when no SMTP host is set")
	}

	cfg := config.DefaultConfig()
	cfg.SMTP.Host = "smtp.example.com"
	if _, ok := New(context.TODO(), cfg).(*Mailer); !ok {
		t.Error("expected a Mailer when an SMTP host is set")
	}
}

func TestReport(t *testing.T) {
	var r Report
	r.Record("a@example.com", OutcomeDelivered, nil)
	r.Record("b@example.com", OutcomeSimulated, nil)
	r.Record("c@example.com", OutcomeDelivered, errors.New("connection refused"))

	if r.Sent() != 2 {
		t.Errorf("Sent() = %d, want 2", r.Sent())
	}
	if len(r.Failed) != 1 || r.Failed[0].Recipient != "c@example.com" {
		t.Errorf("unexpected failures: %v", r.Failed)
	}
	if want := "1 delivered, 1 simulated, 1 failed"; r.String() != want {
		t.Errorf("String() = %q, want %q", r.String(), want)
	}
}
