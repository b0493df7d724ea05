package notify

import (
	"bytes"
	"text/template"
)

var invitationTmpl = template.Must(template.New("invitation").Parse(`Hello {{ .Name }},

You have been invited to help schedule a meeting:

{{ .Title }}
{{- if .Description }}
{{ .Description }}
{{- end }}

Proposed time slots:
{{ range .Slots }}
  - {{ . }}
{{- end }}

Please indicate your availability by visiting:
{{ .Link }}

Organized by: {{ .Organizer }}
`))

var reminderTmpl = template.Must(template.New("reminder").Parse(`Hello {{ .Name }},

The organizer is still waiting for your availability for:

{{ .Title }}

Proposed time slots:
{{ range .Slots }}
  - {{ . }}
{{- end }}

Please respond by visiting:
{{ .Link }}

Organized by: {{ .Organizer }}
`))

var responseTmpl = template.Must(template.New("response").Parse(`{{ .Participant }} has responded to your meeting invitation:

{{ .Title }}

View responses at: {{ .Link }}
`))

var updateTmpl = template.Must(template.New("update").Parse(`Hello {{ .Name }},

The proposed time slots have been updated. Please review and update your
availability:

{{ .Title }}

Updated time slots:
{{ range .Slots }}
  - {{ . }}
{{- end }}

Update your response at:
{{ .Link }}

Organized by: {{ .Organizer }}
`))

var finalizedTmpl = template.Must(template.New("finalized").Parse(`Hello {{ .Name }},

The meeting has been confirmed for the following time:

{{ .Title }}

  {{ .When }}

Organized by: {{ .Organizer }}
`))

var cancelledTmpl = template.Must(template.New("cancelled").Parse(`Hello {{ .Name }},

The meeting below has been cancelled by the organizer:

{{ .Title }}

Organized by: {{ .Organizer }}
`))

func render(t *template.Template, data interface{}) string {
	var b bytes.Buffer
	t.Execute(&b, data) // nolint: errcheck
	return b.String()
}

// Invitation builds the invitation notification for a participant.
func Invitation(to Recipient, title string, description string, organizer string, link string, slots []string) Notification {
	return Notification{
		Kind:      KindInvitation,
		Recipient: to,
		Subject:   "Meeting invitation: " + title,
		Body: render(invitationTmpl, struct {
			Name, Title, Description, Organizer, Link string
			Slots                                     []string
		}{to.Name, title, description, organizer, link, slots}),
	}
}

// Reminder builds the nudge notification for a pending participant.
func Reminder(to Recipient, title string, organizer string, link string, slots []string) Notification {
	return Notification{
		Kind:      KindReminder,
		Recipient: to,
		Subject:   "Reminder: " + title,
		Body: render(reminderTmpl, struct {
			Name, Title, Organizer, Link string
			Slots                        []string
		}{to.Name, title, organizer, link, slots}),
	}
}

// ResponseReceived builds the organizer notification for a new response.
func ResponseReceived(to Recipient, participant string, title string, link string) Notification {
	return Notification{
		Kind:      KindResponseReceived,
		Recipient: to,
		Subject:   "Response: " + participant + " replied to " + title,
		Body: render(responseTmpl, struct {
			Participant, Title, Link string
		}{participant, title, link}),
	}
}

// ScheduleUpdate builds the slot-change notification for a participant.
func ScheduleUpdate(to Recipient, title string, organizer string, link string, slots []string) Notification {
	return Notification{
		Kind:      KindScheduleUpdate,
		Recipient: to,
		Subject:   "Updated schedule: " + title,
		Body: render(updateTmpl, struct {
			Name, Title, Organizer, Link string
			Slots                        []string
		}{to.Name, title, organizer, link, slots}),
	}
}

// Finalized builds the confirmation notification for a participant.
func Finalized(to Recipient, title string, organizer string, when string) Notification {
	return Notification{
		Kind:      KindFinalized,
		Recipient: to,
		Subject:   "Confirmed: " + title,
		Body: render(finalizedTmpl, struct {
			Name, Title, Organizer, When string
		}{to.Name, title, organizer, when}),
	}
}

// Cancelled builds the cancellation notification for a respondent.
func Cancelled(to Recipient, title string, organizer string) Notification {
	return Notification{
		Kind:      KindCancelled,
		Recipient: to,
		Subject:   "Cancelled: " + title,
		Body: render(cancelledTmpl, struct {
			Name, Title, Organizer string
		}{to.Name, title, organizer}),
	}
}

// Test builds the settings verification message.
func Test(to Recipient) Notification {
	return Notification{
		Kind:      KindInvitation,
		Recipient: to,
		Subject:   "Convene test message",
		Body: "Congratulations! Your SMTP settings are working correctly.\n" +
			"You can now send meeting invitations through Convene.\n",
	}
}
