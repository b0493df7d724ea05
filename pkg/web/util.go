package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/convenehq/convene/pkg/proto"
	"github.com/convenehq/convene/pkg/utils"
	"github.com/convenehq/convene/pkg/webhook"
)

func renderStatus(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
		io.WriteString(w, fmt.Sprintf("%d %s", code, http.StatusText(code))) //nolint:errcheck,gosec
	}
}

// renderJSON renders a JSON response with the given status code and value.
func renderJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("error encoding json", "err", err)
	}
}

// errorResponse is the body of every error reply.
type errorResponse struct {
	Error string `json:"error"`
}

// renderErrorJSON renders a terse JSON error body with the given status code.
func renderErrorJSON(w http.ResponseWriter, statusCode int, msg string) {
	renderJSON(w, statusCode, errorResponse{Error: msg})
}

// renderError maps backend errors to HTTP status codes. Unrecognized errors
// are logged and reported as a plain 500 so storage details never leak.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, proto.ErrOrganizerNotFound),
		errors.Is(err, proto.ErrContactNotFound),
		errors.Is(err, proto.ErrGroupNotFound),
		errors.Is(err, proto.ErrMemberNotFound),
		errors.Is(err, proto.ErrMeetingNotFound),
		errors.Is(err, proto.ErrSlotNotFound),
		errors.Is(err, proto.ErrTokenNotFound),
		errors.Is(err, proto.ErrWebhookNotFound):
		renderErrorJSON(w, http.StatusNotFound, err.Error())
	case errors.Is(err, proto.ErrOrganizerExist),
		errors.Is(err, proto.ErrContactExist),
		errors.Is(err, proto.ErrGroupExist),
		errors.Is(err, proto.ErrMemberExist),
		errors.Is(err, proto.ErrMeetingSent),
		errors.Is(err, proto.ErrMeetingNotSent),
		errors.Is(err, proto.ErrMeetingFinalized),
		errors.Is(err, proto.ErrMeetingCancelled),
		errors.Is(err, proto.ErrContactInUse):
		renderErrorJSON(w, http.StatusConflict, err.Error())
	case errors.Is(err, proto.ErrGroupAccessDenied),
		errors.Is(err, proto.ErrMeetingAccessDenied):
		renderErrorJSON(w, http.StatusForbidden, err.Error())
	case errors.Is(err, proto.ErrUnauthorized),
		errors.Is(err, proto.ErrRecoveryMismatch):
		renderErrorJSON(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, proto.ErrNoParticipants),
		errors.Is(err, proto.ErrNoSlots),
		errors.Is(err, proto.ErrMissingTitle),
		errors.Is(err, proto.ErrInvalidAvailability),
		errors.Is(err, proto.ErrInvalidMeetingStatus),
		errors.Is(err, proto.ErrGroupNotShared),
		errors.Is(err, utils.ErrInvalidEmail),
		errors.Is(err, utils.ErrInvalidName),
		errors.Is(err, webhook.ErrInvalidURL),
		errors.Is(err, webhook.ErrInvalidScheme),
		errors.Is(err, webhook.ErrPrivateIP):
		renderErrorJSON(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger := log.FromContext(r.Context())
		logger.Error("internal server error", "err", err)
		renderErrorJSON(w, http.StatusInternalServerError, "internal server error")
	}
}

// HTTP error response handling functions

func renderBadRequest(w http.ResponseWriter, _ *http.Request) {
	renderErrorJSON(w, http.StatusBadRequest, "bad request")
}

func renderNotFound(w http.ResponseWriter, r *http.Request) {
	renderStatus(http.StatusNotFound)(w, r)
}

func renderUnauthorized(w http.ResponseWriter, _ *http.Request) {
	renderErrorJSON(w, http.StatusUnauthorized, "unauthorized")
}
