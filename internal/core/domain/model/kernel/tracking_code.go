package kernel

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"shipping/internal/pkg/errs"
)

const (
	trackingCodePrefix   = "SHP"
	trackingCodeSuffix   = 10
	trackingCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var ErrTrackingCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"TrackingCode must be created via NewTrackingCode or TrackingCodeFromString",
)

// TrackingCode is the human-facing public identifier of a shipment:
// "SHP" followed by ten characters from A-Z0-9, e.g. "SHP7K2Q9D0XWA4".
type TrackingCode struct {
	value string
}

// NewTrackingCode generates a random tracking code using crypto/rand.
func NewTrackingCode() (TrackingCode, error) {
	var sb strings.Builder
	sb.Grow(len(trackingCodePrefix) + trackingCodeSuffix)
	sb.WriteString(trackingCodePrefix)

	limit := big.NewInt(int64(len(trackingCodeAlphabet)))
	for range trackingCodeSuffix {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return TrackingCode{}, fmt.Errorf("generate tracking code: %w", err)
		}
		sb.WriteByte(trackingCodeAlphabet[n.Int64()])
	}

	return TrackingCode{value: sb.String()}, nil
}

// TrackingCodeFromString parses a tracking code. Lookup is case-insensitive,
// so the input is upper-cased and trimmed first.
func TrackingCodeFromString(s string) (TrackingCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if normalized == "" {
		return TrackingCode{}, errs.NewValueIsRequiredError("tracking code")
	}

	if len(normalized) != len(trackingCodePrefix)+trackingCodeSuffix ||
		!strings.HasPrefix(normalized, trackingCodePrefix) {
		return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause(
			"tracking code",
			fmt.Errorf("%q does not match %s followed by %d characters", s, trackingCodePrefix, trackingCodeSuffix),
		)
	}

	for _, r := range normalized[len(trackingCodePrefix):] {
		if !strings.ContainsRune(trackingCodeAlphabet, r) {
			return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause(
				"tracking code",
				fmt.Errorf("%q contains unsupported character %q", s, r),
			)
		}
	}

	return TrackingCode{value: normalized}, nil
}

func (c TrackingCode) String() string {
	return c.value
}

func (c TrackingCode) IsEqual(other TrackingCode) bool {
	return c.value == other.value
}

func (c TrackingCode) Validate() error {
	if c.value == "" {
		return ErrTrackingCodeIsNotConstructed
	}
	return nil
}
