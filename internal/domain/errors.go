package domain

import (
	"errors"
	"fmt"
)

// ErrLyricsUnavailable reports that no lyrics backend is configured.
var ErrLyricsUnavailable = errors.New("lyrics lookup not configured")

// ExtractionError is the terminal failure of the acquisition pipeline: both
// the remote service and the local extractor were unable to produce a file.
// The underlying extractor message is preserved verbatim.
type ExtractionError struct {
	Reference string
	Kind      MediaKind
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s (%s): %v", e.Reference, e.Kind, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// DeliveryError reports that a resolved asset could not be handed to the
// delivery channel. Stage names the step that failed (thumbnail, acquire,
// send).
type DeliveryError struct {
	Stage string
	Err   error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed at %s: %v", e.Stage, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
