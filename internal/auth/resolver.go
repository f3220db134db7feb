package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
)

// UserLookup loads accounts for token subjects.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// DeviceLookup loads a sensor by its public device id.
type DeviceLookup interface {
	GetByDeviceID(ctx context.Context, deviceID string) (*models.Sensor, error)
}

// Resolver authenticates requests. It only reads; recording that a device
// was seen is the caller's job.
type Resolver struct {
	tokens  *TokenService
	users   UserLookup
	devices DeviceLookup
}

func NewResolver(tokens *TokenService, users UserLookup, devices DeviceLookup) *Resolver {
	return &Resolver{tokens: tokens, users: users, devices: devices}
}

// bearer extracts the token from "Bearer <token>".
func bearer(header string) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", errors.NewAuthFormatError(nil)
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", errors.NewAuthFormatError(nil)
	}
	return token, nil
}

// ResolveUser accepts a valid access token whose subject is an active user.
// Every failure past the header format carries the same message.
func (r *Resolver) ResolveUser(ctx context.Context, header string) (*Principal, error) {
	raw, err := bearer(header)
	if err != nil {
		return nil, err
	}
	userID, err := r.tokens.Verify(raw)
	if err != nil {
		return nil, errors.NewInvalidCredentialsError(err)
	}
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewInvalidCredentialsError(err)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errors.NewInvalidCredentialsError(nil)
	}
	return &Principal{Kind: KindUser, UserID: user.ID, IsSuperuser: user.IsSuperuser}, nil
}

// ResolveDevice accepts the token only when it belongs to deviceID. An
// unknown device and a wrong token are indistinguishable to the caller.
func (r *Resolver) ResolveDevice(ctx context.Context, header, deviceID string) (*Principal, error) {
	raw, err := bearer(header)
	if err != nil {
		return nil, err
	}
	sensor, err := r.devices.GetByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewInvalidDeviceError(err)
		}
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(sensor.AuthToken), []byte(raw)) != 1 {
		return nil, errors.NewInvalidDeviceError(nil)
	}
	return &Principal{Kind: KindDevice, SensorID: sensor.ID, DeviceID: sensor.DeviceID}, nil
}

// Resolve dispatches on the expected kind. deviceID is ignored for users.
func (r *Resolver) Resolve(ctx context.Context, kind Kind, header, deviceID string) (*Principal, error) {
	if kind == KindDevice {
		return r.ResolveDevice(ctx, header, deviceID)
	}
	return r.ResolveUser(ctx, header)
}
