package domain

import (
	"time"

	"github.com/google/uuid"
)

// AcquisitionSource identifies which path produced the media file
type AcquisitionSource string

const (
	SourceRemote    AcquisitionSource = "remote"    // conversion service
	SourceExtractor AcquisitionSource = "extractor" // local yt-dlp fallback
)

// AcquisitionStatus represents the terminal state of an acquisition attempt
type AcquisitionStatus string

const (
	AcquisitionCompleted AcquisitionStatus = "completed"
	AcquisitionFailed    AcquisitionStatus = "failed"
)

// Acquisition is one recorded non-cache acquisition attempt
type Acquisition struct {
	ID           string            `json:"id" gorm:"primaryKey"`
	MediaID      string            `json:"media_id" gorm:"not null;index"`
	Kind         MediaKind         `json:"kind" gorm:"not null;index"`
	Source       AcquisitionSource `json:"source,omitempty"`
	Status       AcquisitionStatus `json:"status" gorm:"not null;index"`
	FilePath     string            `json:"file_path,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty"`
	CreatedAt    time.Time         `json:"created_at" gorm:"autoCreateTime"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
}

// NewAcquisition creates a record for a dispatched acquisition attempt
func NewAcquisition(mediaID string, kind MediaKind) *Acquisition {
	return &Acquisition{
		ID:        uuid.New().String(),
		MediaID:   mediaID,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
}

// MarkCompleted records the winning source and resulting file path
func (a *Acquisition) MarkCompleted(source AcquisitionSource, filePath string) {
	a.Status = AcquisitionCompleted
	a.Source = source
	a.FilePath = filePath
	now := time.Now()
	a.CompletedAt = &now
}

// MarkFailed records the terminal failure message
func (a *Acquisition) MarkFailed(err error) {
	a.Status = AcquisitionFailed
	a.ErrorMessage = err.Error()
	now := time.Now()
	a.CompletedAt = &now
}
