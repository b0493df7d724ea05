package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/convenehq/convene/pkg/backend"
	"github.com/convenehq/convene/pkg/config"
	"github.com/convenehq/convene/pkg/jwk"
	"github.com/convenehq/convene/pkg/proto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
)

// ErrInvalidToken is returned when a bearer token fails verification.
var ErrInvalidToken = errors.New("invalid token")

// accessTokenTTL is how long a signed access token stays valid.
const accessTokenTTL = 72 * time.Hour

// AuthController registers the account routes for the web server.
func AuthController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/auth/register", postRegister).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", postLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/reset", postReset).Methods(http.MethodPost)
}

type registerRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	RecoveryPhrase string `json:"recovery_phrase"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetRequest struct {
	Email          string `json:"email"`
	RecoveryPhrase string `json:"recovery_phrase"`
	NewPassword    string `json:"new_password"`
}

type sessionResponse struct {
	Token     string            `json:"token"`
	Organizer organizerResponse `json:"organizer"`
}

type organizerResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func organizerFromProto(o proto.Organizer) organizerResponse {
	return organizerResponse{
		ID:        o.ID,
		Email:     o.Email,
		Name:      o.Name,
		CreatedAt: o.CreatedAt,
	}
}

func postRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(w, r)
		return
	}

	if req.Password == "" || req.RecoveryPhrase == "" {
		renderErrorJSON(w, http.StatusUnprocessableEntity, "password and recovery_phrase are required")
		return
	}

	organizer, err := be.Register(ctx, req.Email, req.Password, req.Name, req.RecoveryPhrase)
	if err != nil {
		renderError(w, r, err)
		return
	}

	token, err := newAccessToken(ctx, organizer)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, sessionResponse{
		Token:     token,
		Organizer: organizerFromProto(organizer),
	})
}

func postLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(w, r)
		return
	}

	organizer, err := be.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		renderError(w, r, err)
		return
	}

	token, err := newAccessToken(ctx, organizer)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, sessionResponse{
		Token:     token,
		Organizer: organizerFromProto(organizer),
	})
}

func postReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(w, r)
		return
	}

	if req.NewPassword == "" {
		renderErrorJSON(w, http.StatusUnprocessableEntity, "new_password is required")
		return
	}

	if err := be.ResetPassword(ctx, req.Email, req.RecoveryPhrase, req.NewPassword); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

// newAccessToken signs an access token for the organizer. The subject binds
// both the email and the account ID.
func newAccessToken(ctx context.Context, organizer proto.Organizer) (string, error) {
	cfg := config.FromContext(ctx)
	kp, err := jwk.NewPair(cfg)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%s#%d", organizer.Email, organizer.ID),
		ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    cfg.HTTP.PublicURL,
	}

	token := jwt.NewWithClaims(jwk.SigningMethod, claims)
	token.Header["kid"] = kp.JWK().KeyID
	return token.SignedString(kp.PrivateKey()) //nolint:wrapcheck
}

// parseAccessToken verifies a bearer token and resolves its organizer.
func parseAccessToken(ctx context.Context, bearer string) (proto.Organizer, error) {
	cfg := config.FromContext(ctx)
	be := backend.FromContext(ctx)
	kp, err := jwk.NewPair(cfg)
	if err != nil {
		return proto.Organizer{}, err
	}

	claims := jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(bearer, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwk.SigningMethod {
			return nil, ErrInvalidToken
		}

		return kp.JWK().Key, nil
	},
		jwt.WithIssuer(cfg.HTTP.PublicURL),
		jwt.WithIssuedAt(),
	); err != nil {
		return proto.Organizer{}, ErrInvalidToken
	}

	email, _, ok := strings.Cut(claims.Subject, "#")
	if !ok {
		return proto.Organizer{}, ErrInvalidToken
	}

	organizer, err := be.Organizer(ctx, email)
	if err != nil {
		return proto.Organizer{}, err
	}

	expected := fmt.Sprintf("%s#%d", organizer.Email, organizer.ID)
	if expected != claims.Subject {
		return proto.Organizer{}, ErrInvalidToken
	}

	return organizer, nil
}

// withOrganizer authenticates the request and stores the organizer in the
// request context.
func withOrganizer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := log.FromContext(ctx)

		bearer := parseBearer(r)
		if bearer == "" {
			renderUnauthorized(w, r)
			return
		}

		organizer, err := parseAccessToken(ctx, bearer)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidToken):
			case errors.Is(err, proto.ErrOrganizerNotFound):
			default:
				logger.Error("failed to authenticate", "err", err)
			}

			renderUnauthorized(w, r)
			return
		}

		ctx = proto.WithOrganizerContext(ctx, &organizer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func parseBearer(r *http.Request) string {
	hdr := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(hdr, "Bearer ")
	if !ok {
		return ""
	}

	return strings.TrimSpace(token)
}
