package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAcquisition(t *testing.T) {
	acq := NewAcquisition("dQw4w9WgXcQ", KindAudio)

	assert.NotEmpty(t, acq.ID)
	assert.Equal(t, "dQw4w9WgXcQ", acq.MediaID)
	assert.Equal(t, KindAudio, acq.Kind)
	assert.Empty(t, acq.Status)
	assert.Nil(t, acq.CompletedAt)
}

func TestAcquisition_MarkCompleted(t *testing.T) {
	acq := NewAcquisition("dQw4w9WgXcQ", KindAudio)

	acq.MarkCompleted(SourceRemote, "downloads/dQw4w9WgXcQ.mp3")

	assert.Equal(t, AcquisitionCompleted, acq.Status)
	assert.Equal(t, SourceRemote, acq.Source)
	assert.Equal(t, "downloads/dQw4w9WgXcQ.mp3", acq.FilePath)
	assert.NotNil(t, acq.CompletedAt)
}

func TestAcquisition_MarkFailed(t *testing.T) {
	acq := NewAcquisition("dQw4w9WgXcQ", KindVideo)

	acq.MarkFailed(errors.New("no formats found"))

	assert.Equal(t, AcquisitionFailed, acq.Status)
	assert.Equal(t, "no formats found", acq.ErrorMessage)
	assert.NotNil(t, acq.CompletedAt)
}

func TestExtractionError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &ExtractionError{Reference: "abc", Kind: KindAudio, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "abc")
	assert.Contains(t, err.Error(), "boom")
}

func TestDeliveryError_Unwrap(t *testing.T) {
	cause := errors.New("channel rejected file")
	err := &DeliveryError{Stage: "send", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "send")
}

func TestRemoteOutcome_Constructors(t *testing.T) {
	found := FoundOutcome("downloads/x.mp3")
	assert.Equal(t, RemoteFound, found.State)
	assert.Equal(t, "downloads/x.mp3", found.Path)

	unavailable := UnavailableOutcome()
	assert.Equal(t, RemoteUnavailable, unavailable.State)

	failed := FailedOutcome(errors.New("polls exhausted"))
	assert.Equal(t, RemoteFailed, failed.State)
	assert.EqualError(t, failed.Reason, "polls exhausted")
}
