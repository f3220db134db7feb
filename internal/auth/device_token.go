package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// DeviceTokenBytes is the entropy of a device token.
const DeviceTokenBytes = 32

// DeviceTokenIssuer mints device credentials. It is called once per
// registration; nothing reissues a token for an existing device.
type DeviceTokenIssuer struct {
	entropy io.Reader
}

func NewDeviceTokenIssuer() *DeviceTokenIssuer {
	return &DeviceTokenIssuer{entropy: rand.Reader}
}

// Issue returns 256 random bits encoded as unpadded base64url.
func (d *DeviceTokenIssuer) Issue() (string, error) {
	buf := make([]byte, DeviceTokenBytes)
	if _, err := io.ReadFull(d.entropy, buf); err != nil {
		return "", fmt.Errorf("reading device token entropy: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
