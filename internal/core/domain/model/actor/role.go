package actor

import (
	"fmt"
	"strings"

	"shipping/internal/pkg/errs"
)

// Role is the closed set of authorities an actor can hold. It is always
// taken from the credential, never from a request payload.
type Role int

const (
	// UnknownRole catches uninitialized Role values.
	UnknownRole Role = iota
	Customer
	Partner
	Admin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "unknown",
		Customer:    "customer",
		Partner:     "partner",
		Admin:       "admin",
	}
}

// ParseRole accepts the lower-case names used in credentials and storage.
func ParseRole(s string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for role, name := range getRoleStrings() {
		if role != UnknownRole && name == normalized {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) Validate() error {
	if r != Customer && r != Partner && r != Admin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}
