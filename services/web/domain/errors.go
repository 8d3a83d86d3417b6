package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrBackendUnavailable indicates the points API could not be reached or
	// answered with a server error.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrUnknownField indicates SetField was called with a name outside
	// name, email and whatsapp.
	ErrUnknownField = errors.New("unknown form field")
)

// RejectedError is returned when the points API refuses a submission with a
// 4xx status. Fields holds per-field violations when the API reported them.
type RejectedError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *RejectedError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("submission rejected (%d): %s", e.Status, e.Message)
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("submission rejected (%d): %s [%s]", e.Status, e.Message, strings.Join(names, ", "))
}
