package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/convenehq/convene/pkg/access"
	"github.com/convenehq/convene/pkg/backend"
	"github.com/convenehq/convene/pkg/config"
	"github.com/convenehq/convene/pkg/notify"
	"github.com/convenehq/convene/pkg/proto"
	"github.com/convenehq/convene/pkg/webhook"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// APIController registers the organizer API routes. Every route requires a
// bearer access token.
func APIController(_ context.Context, r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()
	api.Use(withOrganizer)

	api.HandleFunc("/contacts", getContacts).Methods(http.MethodGet)
	api.HandleFunc("/contacts", postContacts).Methods(http.MethodPost)
	api.HandleFunc("/contacts/shared", getSharedContacts).Methods(http.MethodGet)
	api.HandleFunc("/contacts/{id:[0-9]+}", getContact).Methods(http.MethodGet)
	api.HandleFunc("/contacts/{id:[0-9]+}", putContact).Methods(http.MethodPut)
	api.HandleFunc("/contacts/{id:[0-9]+}", deleteContact).Methods(http.MethodDelete)

	api.HandleFunc("/groups", getGroups).Methods(http.MethodGet)
	api.HandleFunc("/groups", postGroups).Methods(http.MethodPost)
	api.HandleFunc("/groups/{id:[0-9]+}", getGroup).Methods(http.MethodGet)
	api.HandleFunc("/groups/{id:[0-9]+}", putGroup).Methods(http.MethodPut)
	api.HandleFunc("/groups/{id:[0-9]+}", deleteGroup).Methods(http.MethodDelete)
	api.HandleFunc("/groups/{id:[0-9]+}/members", getGroupMembers).Methods(http.MethodGet)
	api.HandleFunc("/groups/{id:[0-9]+}/members", postGroupMembers).Methods(http.MethodPost)
	api.HandleFunc("/groups/{id:[0-9]+}/members/{contact:[0-9]+}", deleteGroupMember).Methods(http.MethodDelete)
	api.HandleFunc("/groups/{id:[0-9]+}/shared", putGroupShared).Methods(http.MethodPut)
	api.HandleFunc("/groups/{id:[0-9]+}/shares", getGroupShares).Methods(http.MethodGet)
	api.HandleFunc("/groups/{id:[0-9]+}/shares", postGroupShares).Methods(http.MethodPost)
	api.HandleFunc("/groups/{id:[0-9]+}/shares/{email}", deleteGroupShare).Methods(http.MethodDelete)

	api.HandleFunc("/meetings", getMeetings).Methods(http.MethodGet)
	api.HandleFunc("/meetings", postMeetings).Methods(http.MethodPost)
	api.HandleFunc("/meetings/{id:[0-9]+}", getMeeting).Methods(http.MethodGet)
	api.HandleFunc("/meetings/{id:[0-9]+}", deleteMeeting).Methods(http.MethodDelete)
	api.HandleFunc("/meetings/{id:[0-9]+}/send", postMeetingSend).Methods(http.MethodPost)
	api.HandleFunc("/meetings/{id:[0-9]+}/cancel", postMeetingCancel).Methods(http.MethodPost)
	api.HandleFunc("/meetings/{id:[0-9]+}/participants", postMeetingParticipants).Methods(http.MethodPost)
	api.HandleFunc("/meetings/{id:[0-9]+}/slots", postMeetingSlots).Methods(http.MethodPost)
	api.HandleFunc("/meetings/{id:[0-9]+}/slots/{slot:[0-9]+}", deleteMeetingSlot).Methods(http.MethodDelete)
	api.HandleFunc("/meetings/{id:[0-9]+}/schedule", getMeetingSchedule).Methods(http.MethodGet)
	api.HandleFunc("/meetings/{id:[0-9]+}/finalize", postMeetingFinalize).Methods(http.MethodPost)
	api.HandleFunc("/meetings/{id:[0-9]+}/remind", postMeetingRemind).Methods(http.MethodPost)

	api.HandleFunc("/settings", getSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings/test-email", postTestEmail).Methods(http.MethodPost)
	api.HandleFunc("/settings/{key}", putSetting).Methods(http.MethodPut)
	api.HandleFunc("/settings/{key}", deleteSetting).Methods(http.MethodDelete)

	api.HandleFunc("/webhooks", getWebhooks).Methods(http.MethodGet)
	api.HandleFunc("/webhooks", postWebhooks).Methods(http.MethodPost)
	api.HandleFunc("/webhooks/{id:[0-9]+}", getWebhook).Methods(http.MethodGet)
	api.HandleFunc("/webhooks/{id:[0-9]+}", putWebhook).Methods(http.MethodPut)
	api.HandleFunc("/webhooks/{id:[0-9]+}", deleteWebhook).Methods(http.MethodDelete)
	api.HandleFunc("/webhooks/{id:[0-9]+}/deliveries", getWebhookDeliveries).Methods(http.MethodGet)
	api.HandleFunc("/webhooks/{id:[0-9]+}/deliveries/{delivery}", getWebhookDelivery).Methods(http.MethodGet)
	api.HandleFunc("/webhooks/{id:[0-9]+}/deliveries/{delivery}/redeliver", postWebhookRedeliver).Methods(http.MethodPost)
}

func requestOrganizer(r *http.Request) proto.Organizer {
	if o := proto.OrganizerFromContext(r.Context()); o != nil {
		return *o
	}

	return proto.Organizer{}
}

func pathID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id
}

// Contacts

type contactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type contactResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func contactFromProto(c proto.Contact) contactResponse {
	return contactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func contactsFromProto(cs []proto.Contact) []contactResponse {
	out := make([]contactResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, contactFromProto(c))
	}

	return out
}

func getContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	contacts, err := be.Contacts(ctx, requestOrganizer(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, contactsFromProto(contacts))
}

func postContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(w, r)
		return
	}

	contact, err := be.CreateContact(ctx, requestOrganizer(r), req.Name, req.Email)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, contactFromProto(contact))
}

func getSharedContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	contacts, err := be.SharedContacts(ctx, requestOrganizer(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, contactsFromProto(contacts))
}

func getContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	contact, err := be.Contact(ctx, requestOrganizer(r), pathID(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, contactFromProto(contact))
}

func putContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(w, r)
		return
	}

	if err := be.UpdateContact(ctx, requestOrganizer(r), pathID(r, "id"), req.Name, req.Email); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

func deleteContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	if err := be.DeleteContact(ctx, requestOrganizer(r), pathID(r, "id")); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

// Groups

type groupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type groupResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Shared      bool      `json:"shared"`
	Access      string    `json:"access"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func groupFromProto(g proto.GroupInfo) groupResponse {
	return groupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Shared:      g.Shared,
		Access:      g.Access.String(),
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func getGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	groups, err := be.Groups(ctx, requestOrganizer(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	out := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, groupFromProto(g))
	}

	renderJSON(w, http.StatusOK, out)
}

func postGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(w, r)
		return
	}

	group, err := be.CreateGroup(ctx, requestOrganizer(r), req.Name, req.Description)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, groupFromProto(proto.GroupInfo{
		ContactGroup: group,
		Access:       access.OwnedAccess,
	}))
}

func getGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	group, err := be.Group(ctx, requestOrganizer(r), pathID(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, groupFromProto(group))
}

func putGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(w, r)
		return
	}

	if err := be.UpdateGroup(ctx, requestOrganizer(r), pathID(r, "id"), req.Name, req.Description); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

func deleteGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	if err := be.DeleteGroup(ctx, requestOrganizer(r), pathID(r, "id")); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

func getGroupMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	members, err := be.GroupMembers(ctx, requestOrganizer(r), pathID(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, contactsFromProto(members))
}

func postGroupMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req struct {
		ContactID int64 `json:"contact_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(w, r)
		return
	}

	if err := be.AddGroupMember(ctx, requestOrganizer(r), pathID(r, "id"), req.ContactID); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusCreated)(w, r)
}

func deleteGroupMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	if err := be.RemoveGroupMember(ctx, requestOrganizer(r), pathID(r, "id"), pathID(r, "contact")); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

func putGroupShared(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req struct {
		Shared bool `json:"shared"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(w, r)
		return
	}

	if err := be.SetGroupShared(ctx, requestOrganizer(r), pathID(r, "id"), req.Shared); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

type groupShareResponse struct {
	GranteeEmail string    `json:"grantee_email"`
	CreatedAt    time.Time `json:"created_at"`
}

func getGroupShares(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	shares, err := be.GroupShares(ctx, requestOrganizer(r), pathID(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	out := make([]groupShareResponse, 0, len(shares))
	for _, s := range shares {
		out = append(out, groupShareResponse{
			GranteeEmail: s.GranteeEmail,
			CreatedAt:    s.CreatedAt,
		})
	}

	renderJSON(w, http.StatusOK, out)
}

func postGroupShares(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(w, r)
		return
	}

	if err := be.GrantGroupShare(ctx, requestOrganizer(r), pathID(r, "id"), req.Email); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusCreated)(w, r)
}

func deleteGroupShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	email := mux.Vars(r)["email"]
	if err := be.RevokeGroupShare(ctx, requestOrganizer(r), pathID(r, "id"), email); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

// Meetings

type slotSpecRequest struct {
	StartsAt        time.Time `json:"starts_at"`
	DurationMinutes int       `json:"duration_minutes"`
}

type createMeetingRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Slots       []slotSpecRequest `json:"slots"`
	ContactIDs  []int64           `json:"contact_ids"`
	Draft       bool              `json:"draft"`
}

type meetingResponse struct {
	ID            int64               `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Status        proto.MeetingStatus `json:"status"`
	FinalizedSlot string              `json:"finalized_slot,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

type slotResponse struct {
	ID              int64     `json:"id"`
	StartsAt        time.Time `json:"starts_at"`
	DurationMinutes int       `json:"duration_minutes"`
}

type participantResponse struct {
	Contact    contactResponse `json:"contact"`
	Token      string          `json:"token"`
	RespondURL string          `json:"respond_url"`
	Responded  bool            `json:"responded"`
	InvitedAt  time.Time       `json:"invited_at"`
}

type meetingInviteResponse struct {
	Meeting      meetingResponse       `json:"meeting"`
	Slots        []slotResponse        `json:"slots"`
	Participants []participantResponse `json:"participants"`
	Report       *notify.Report        `json:"report,omitempty"`
}

func meetingFromProto(m proto.Meeting) meetingResponse {
	return meetingResponse{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Status:        m.Status,
		FinalizedSlot: m.FinalizedSlot,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func slotFromProto(s proto.TimeSlot) slotResponse {
	return slotResponse{
		ID:              s.ID,
		StartsAt:        s.StartsAt,
		DurationMinutes: int(s.Duration.Minutes()),
	}
}

func inviteFromProto(cfg *config.Config, invite proto.MeetingInvite) meetingInviteResponse {
	out := meetingInviteResponse{
		Meeting:      meetingFromProto(invite.Meeting),
		Slots:        make([]slotResponse, 0, len(invite.Slots)),
		Participants: make([]participantResponse, 0, len(invite.Participants)),
	}

	for _, s := range invite.Slots {
		out.Slots = append(out.Slots, slotFromProto(s))
	}

	for _, p := range invite.Participants {
		out.Participants = append(out.Participants, participantResponse{
			Contact:    contactFromProto(p.Contact),
			Token:      p.Binding.Token,
			RespondURL: cfg.HTTP.PublicURL + "/respond?token=" + p.Binding.Token,
			Responded:  p.Binding.Responded,
			InvitedAt:  p.Binding.InvitedAt,
		})
	}

	return out
}

func getMeetings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	meetings, err := be.Meetings(ctx, requestOrganizer(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	out := make([]meetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, meetingFromProto(m))
	}

	renderJSON(w, http.StatusOK, out)
}

// postMeetings creates a meeting and, unless the request asks for a draft,
// sends the invitations in the same call.
func postMeetings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	cfg := config.FromContext(ctx)
	organizer := requestOrganizer(r)

	var req createMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(w, r)
		return
	}

	specs := make([]proto.SlotSpec, 0, len(req.Slots))
	for _, s := range req.Slots {
		specs = append(specs, proto.SlotSpec{
			StartsAt: s.StartsAt,
			Duration: time.Duration(s.DurationMinutes) * time.Minute,
		})
	}

	invite, err := be.CreateMeeting(ctx, organizer, req.Title, req.Description, specs, req.ContactIDs)
	if err != nil {
		renderError(w, r, err)
		return
	}

	out := inviteFromProto(cfg, invite)
	if !req.Draft {
		report, err := be.SendMeeting(ctx, organizer, invite.Meeting.ID)
		if err != nil {
			renderError(w, r, err)
			return
		}

		out.Meeting.Status = proto.StatusSent
		out.Report = report
	}

	renderJSON(w, http.StatusCreated, out)
}

func getMeeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	cfg := config.FromContext(ctx)

	invite, err := be.Meeting(ctx, requestOrganizer(r), pathID(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, inviteFromProto(cfg, invite))
}

func deleteMeeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	if err := be.DeleteMeeting(ctx, requestOrganizer(r), pathID(r, "id")); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

func postMeetingSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	report, err := be.SendMeeting(ctx, requestOrganizer(r), pathID(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, report)
}

func postMeetingCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	report, err := be.CancelMeeting(ctx, requestOrganizer(r), pathID(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, report)
}

func postMeetingParticipants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	cfg := config.FromContext(ctx)

	var req struct {
		ContactID int64 `json:"contact_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(w, r)
		return
	}

	binding, err := be.AddParticipant(ctx, requestOrganizer(r), pathID(r, "id"), req.ContactID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, map[string]string{
		"token":       binding.Token,
		"respond_url": cfg.HTTP.PublicURL + "/respond?token=" + binding.Token,
	})
}

func postMeetingSlots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req slotSpecRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(w, r)
		return
	}

	slot, err := be.AddTimeSlot(ctx, requestOrganizer(r), pathID(r, "id"), proto.SlotSpec{
		StartsAt: req.StartsAt,
		Duration: time.Duration(req.DurationMinutes) * time.Minute,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, slotFromProto(slot))
}

func deleteMeetingSlot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	if err := be.DeleteTimeSlot(ctx, requestOrganizer(r), pathID(r, "id"), pathID(r, "slot")); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

// Schedule

type tallyResponse struct {
	Slot        slotResponse `json:"slot"`
	Available   int          `json:"available"`
	Maybe       int          `json:"maybe"`
	Unavailable int          `json:"unavailable"`
	Pending     int          `json:"pending"`
	Score       float64      `json:"score"`
}

type suggestionResponse struct {
	Contact   contactResponse `json:"contact"`
	StartsAt  time.Time       `json:"starts_at"`
	Note      string          `json:"note"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type scheduleResponse struct {
	Meeting     meetingResponse      `json:"meeting"`
	Invited     int                  `json:"invited"`
	Responded   int                  `json:"responded"`
	Tallies     []tallyResponse      `json:"tallies"`
	Suggestions []suggestionResponse `json:"suggestions,omitempty"`
}

func getMeetingSchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	schedule, err := be.Schedule(ctx, requestOrganizer(r), pathID(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	out := scheduleResponse{
		Meeting:   meetingFromProto(schedule.Meeting),
		Invited:   schedule.Invited,
		Responded: schedule.Responded,
		Tallies:   make([]tallyResponse, 0, len(schedule.Tallies)),
	}

	for _, t := range schedule.Tallies {
		out.Tallies = append(out.Tallies, tallyResponse{
			Slot:        slotFromProto(t.Slot),
			Available:   t.Available,
			Maybe:       t.Maybe,
			Unavailable: t.Unavailable,
			Pending:     t.Pending,
			Score:       t.Score,
		})
	}

	for _, s := range schedule.Suggestions {
		out.Suggestions = append(out.Suggestions, suggestionResponse{
			Contact:   contactFromProto(s.Contact),
			StartsAt:  s.SuggestedStart,
			Note:      s.Note,
			UpdatedAt: s.UpdatedAt,
		})
	}

	renderJSON(w, http.StatusOK, out)
}

type finalizeRequest struct {
	SlotID int64 `json:"slot_id"`
}

type finalizeResponse struct {
	Meeting   meetingResponse `json:"meeting"`
	Slot      slotResponse    `json:"slot"`
	Invited   int             `json:"invited"`
	Responded int             `json:"responded"`
	Report    *notify.Report  `json:"report,omitempty"`
}

func postMeetingFinalize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req finalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(w, r)
		return
	}

	receipt, report, err := be.Finalize(ctx, requestOrganizer(r), pathID(r, "id"), req.SlotID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, finalizeResponse{
		Meeting:   meetingFromProto(receipt.Meeting),
		Slot:      slotFromProto(receipt.Slot),
		Invited:   receipt.Invited,
		Responded: receipt.Responded,
		Report:    report,
	})
}

func postMeetingRemind(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	report, err := be.RemindParticipants(ctx, requestOrganizer(r), pathID(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, report)
}

// Settings

func getSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	settings, err := be.Settings(ctx, requestOrganizer(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, settings)
}

func putSetting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(w, r)
		return
	}

	if err := be.SetSetting(ctx, requestOrganizer(r), mux.Vars(r)["key"], req.Value); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

func deleteSetting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	if err := be.DeleteSetting(ctx, requestOrganizer(r), mux.Vars(r)["key"]); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

func postTestEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	outcome, err := be.SendTestEmail(ctx, requestOrganizer(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, map[string]string{"outcome": outcome.String()})
}

// Webhooks

type webhookRequest struct {
	URL         string              `json:"url"`
	ContentType webhook.ContentType `json:"content_type"`
	Secret      string              `json:"secret"`
	Events      []webhook.Event     `json:"events"`
	Active      bool                `json:"active"`
}

type webhookResponse struct {
	ID          int64           `json:"id"`
	URL         string          `json:"url"`
	ContentType string          `json:"content_type"`
	Events      []webhook.Event `json:"events"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func webhookFromHook(h webhook.Hook) webhookResponse {
	return webhookResponse{
		ID:          h.ID,
		URL:         h.URL,
		ContentType: h.ContentType.String(),
		Events:      h.Events,
		Active:      h.Active,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

func getWebhooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	hooks, err := be.ListWebhooks(ctx, requestOrganizer(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	out := make([]webhookResponse, 0, len(hooks))
	for _, h := range hooks {
		out = append(out, webhookFromHook(h))
	}

	renderJSON(w, http.StatusOK, out)
}

func postWebhooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(w, r)
		return
	}

	if err := be.CreateWebhook(ctx, requestOrganizer(r), req.URL, req.ContentType, req.Secret, req.Events, req.Active); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusCreated)(w, r)
}

func getWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	hook, err := be.Webhook(ctx, requestOrganizer(r), pathID(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, webhookFromHook(hook))
}

func putWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(w, r)
		return
	}

	if err := be.UpdateWebhook(ctx, requestOrganizer(r), pathID(r, "id"), req.URL, req.ContentType, req.Secret, req.Events, req.Active); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

func deleteWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	if err := be.DeleteWebhook(ctx, requestOrganizer(r), pathID(r, "id")); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusNoContent)(w, r)
}

type webhookDeliveryResponse struct {
	ID             uuid.UUID `json:"id"`
	Event          string    `json:"event"`
	RequestURL     string    `json:"request_url"`
	RequestError   string    `json:"request_error,omitempty"`
	ResponseStatus int       `json:"response_status"`
	CreatedAt      time.Time `json:"created_at"`
}

func getWebhookDeliveries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	// Ownership check before touching deliveries.
	if _, err := be.Webhook(ctx, requestOrganizer(r), pathID(r, "id")); err != nil {
		renderError(w, r, err)
		return
	}

	deliveries, err := be.ListWebhookDeliveries(ctx, pathID(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	out := make([]webhookDeliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		out = append(out, webhookDeliveryResponse{
			ID:             d.ID,
			Event:          d.Event.String(),
			RequestURL:     d.RequestURL,
			RequestError:   d.RequestError.String,
			ResponseStatus: d.ResponseStatus,
			CreatedAt:      d.CreatedAt,
		})
	}

	renderJSON(w, http.StatusOK, out)
}

type webhookDeliveryDetail struct {
	webhookDeliveryResponse
	RequestMethod   string `json:"request_method"`
	RequestHeaders  string `json:"request_headers"`
	RequestBody     string `json:"request_body"`
	ResponseHeaders string `json:"response_headers"`
	ResponseBody    string `json:"response_body"`
}

func getWebhookDelivery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	delID, err := uuid.Parse(mux.Vars(r)["delivery"])
	if err != nil {
		renderBadRequest(w, r)
		return
	}

	if _, err := be.Webhook(ctx, requestOrganizer(r), pathID(r, "id")); err != nil {
		renderError(w, r, err)
		return
	}

	delivery, err := be.WebhookDelivery(ctx, pathID(r, "id"), delID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, webhookDeliveryDetail{
		webhookDeliveryResponse: webhookDeliveryResponse{
			ID:             delivery.ID,
			Event:          delivery.Event.String(),
			RequestURL:     delivery.RequestURL,
			RequestError:   delivery.RequestError.String,
			ResponseStatus: delivery.ResponseStatus,
			CreatedAt:      delivery.CreatedAt,
		},
		RequestMethod:   delivery.RequestMethod,
		RequestHeaders:  delivery.RequestHeaders,
		RequestBody:     delivery.RequestBody,
		ResponseHeaders: delivery.ResponseHeaders,
		ResponseBody:    delivery.ResponseBody,
	})
}

func postWebhookRedeliver(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	delID, err := uuid.Parse(mux.Vars(r)["delivery"])
	if err != nil {
		renderBadRequest(w, r)
		return
	}

	if err := be.RedeliverWebhookDelivery(ctx, requestOrganizer(r), pathID(r, "id"), delID); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusAccepted)(w, r)
}
