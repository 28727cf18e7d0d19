package auth

import (
	"context"
	"errors"
)

// ErrBiometryUnavailable reports that no biometric sensor is present.
var ErrBiometryUnavailable = errors.New("auth: biometry unavailable")

// Biometry is the native sensor boundary. Authenticate blocks until the
// sensor reports a result; any error counts as a failed attempt and the
// machine falls back to the PIN path.
type Biometry interface {
	Authenticate(ctx context.Context) error
}

// UnsupportedBiometry always fails, for devices without a sensor.
type UnsupportedBiometry struct{}

// Authenticate implements Biometry.
func (UnsupportedBiometry) Authenticate(context.Context) error {
	return ErrBiometryUnavailable
}
