package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/convenehq/convene/pkg/backend"
	"github.com/convenehq/convene/pkg/proto"
	"github.com/gorilla/mux"
)

// invalidLinkMsg is the only thing an unresolved token ever reveals.
const invalidLinkMsg = "invalid or expired response link"

// RespondController registers the participant-facing routes. These are
// reached through emailed links and authenticate by token alone.
func RespondController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/respond", getRespond).Methods(http.MethodGet)
	r.HandleFunc("/respond", postRespond).Methods(http.MethodPost)
}

type respondMeeting struct {
	ID            int64               `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Status        proto.MeetingStatus `json:"status"`
	FinalizedSlot string              `json:"finalized_slot,omitempty"`
}

type respondParticipant struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Responded bool   `json:"responded"`
}

type respondSlot struct {
	ID              int64     `json:"id"`
	StartsAt        time.Time `json:"starts_at"`
	DurationMinutes int       `json:"duration_minutes"`
}

type respondSuggestion struct {
	StartsAt time.Time `json:"starts_at"`
	Note     string    `json:"note"`
}

type respondView struct {
	Meeting     respondMeeting               `json:"meeting"`
	Participant respondParticipant           `json:"participant"`
	Slots       []respondSlot                `json:"slots,omitempty"`
	Responses   map[int64]proto.Availability `json:"responses,omitempty"`
	Suggestion  *respondSuggestion           `json:"suggestion,omitempty"`
	Notice      string                       `json:"notice,omitempty"`
}

func buildRespondView(v proto.ParticipantView) respondView {
	view := respondView{
		Meeting: respondMeeting{
			ID:          v.Meeting.ID,
			Title:       v.Meeting.Title,
			Description: v.Meeting.Description,
			Status:      v.Meeting.Status,
		},
		Participant: respondParticipant{
			Name:      v.Contact.Name,
			Email:     v.Contact.Email,
			Responded: v.Binding.Responded,
		},
	}

	switch v.Meeting.Status {
	case proto.StatusCancelled:
		view.Notice = "This meeting has been cancelled."
		return view
	case proto.StatusFinalized:
		view.Meeting.FinalizedSlot = v.Meeting.FinalizedSlot
		view.Notice = "This meeting has been confirmed for " + v.Meeting.FinalizedSlot + "."
		return view
	}

	for _, s := range v.Slots {
		view.Slots = append(view.Slots, respondSlot{
			ID:              s.ID,
			StartsAt:        s.StartsAt,
			DurationMinutes: int(s.Duration.Minutes()),
		})
	}

	view.Responses = make(map[int64]proto.Availability, len(v.Responses))
	for _, resp := range v.Responses {
		view.Responses[resp.SlotID] = resp.Availability
	}

	if v.Suggestion != nil {
		view.Suggestion = &respondSuggestion{
			StartsAt: v.Suggestion.SuggestedStart,
			Note:     v.Suggestion.Note,
		}
	}

	return view
}

func getRespond(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	token := r.FormValue("token")
	if token == "" {
		renderErrorJSON(w, http.StatusNotFound, invalidLinkMsg)
		return
	}

	view, err := be.ParticipantView(ctx, token)
	if err != nil {
		if errors.Is(err, proto.ErrTokenNotFound) {
			renderErrorJSON(w, http.StatusNotFound, invalidLinkMsg)
			return
		}

		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, buildRespondView(view))
}

type respondRequest struct {
	Responses  map[int64]proto.Availability `json:"responses"`
	Suggestion *respondSuggestion           `json:"suggestion"`
}

type respondReceipt struct {
	Saved       int            `json:"saved"`
	RespondedAt time.Time      `json:"responded_at"`
	Meeting     respondMeeting `json:"meeting"`
}

func postRespond(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	token := r.FormValue("token")
	if token == "" {
		renderErrorJSON(w, http.StatusNotFound, invalidLinkMsg)
		return
	}

	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, proto.ErrInvalidAvailability) {
			renderError(w, r, proto.ErrInvalidAvailability)
			return
		}

		renderBadRequest(w, r)
		return
	}

	if len(req.Responses) == 0 && req.Suggestion == nil {
		renderErrorJSON(w, http.StatusUnprocessableEntity, "nothing to save")
		return
	}

	receipt, err := be.SubmitResponses(ctx, token, req.Responses)
	if err != nil {
		if errors.Is(err, proto.ErrTokenNotFound) {
			renderErrorJSON(w, http.StatusNotFound, invalidLinkMsg)
			return
		}

		renderError(w, r, err)
		return
	}

	if req.Suggestion != nil {
		if err := be.SuggestAlternative(ctx, token, req.Suggestion.StartsAt, req.Suggestion.Note); err != nil {
			renderError(w, r, err)
			return
		}
	}

	renderJSON(w, http.StatusOK, respondReceipt{
		Saved:       receipt.Saved,
		RespondedAt: receipt.Responded,
		Meeting: respondMeeting{
			ID:     receipt.Meeting.ID,
			Title:  receipt.Meeting.Title,
			Status: receipt.Meeting.Status,
		},
	})
}
