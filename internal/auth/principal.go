// Package auth turns request credentials into principals. A principal is
// either a user holding a signed access token or a device holding the
// secret issued at its registration. The two are never interchangeable.
package auth

import "context"

// Kind distinguishes the two principal types.
type Kind int

const (
	KindUser Kind = iota + 1
	KindDevice
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindDevice:
		return "device"
	}
	return "unknown"
}

// Principal is the authenticated caller of one request.
type Principal struct {
	Kind Kind
	// UserID is set for user principals.
	UserID      string
	IsSuperuser bool
	// SensorID and DeviceID are set for device principals.
	SensorID string
	DeviceID string
}

type principalKey struct{}

// WithPrincipal stores p on ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored by WithPrincipal.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
