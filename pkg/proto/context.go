package proto

import "context"

type organizerKey struct{}

// OrganizerFromContext returns the authenticated organizer kept in ctx,
// or nil when the request is anonymous.
func OrganizerFromContext(ctx context.Context) *Organizer {
	o, _ := ctx.Value(organizerKey{}).(*Organizer)
	return o
}

// WithOrganizerContext stores the authenticated organizer in a child
// context.
func WithOrganizerContext(ctx context.Context, o *Organizer) context.Context {
	return context.WithValue(ctx, organizerKey{}, o)
}
