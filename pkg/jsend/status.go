package jsend

import (
	"fmt"

	pkgerrors "github.com/veerakumarak/jsend/pkg/errors"
)

// Status is the top-level JSend status tag.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFail    Status = "fail"
	StatusError   Status = "error"
)

var validStatuses = []Status{
	StatusSuccess,
	StatusFail,
	StatusError,
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Status.
func (s Status) IsValid() bool {
	for _, candidate := range validStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStatus converts raw input into a Status.
func ParseStatus(value string) (Status, error) {
	for _, candidate := range validStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeInvalidArgument, fmt.Sprintf("invalid jsend status %q", value))
}
