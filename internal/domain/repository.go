package domain

// AcquisitionRepository defines the interface for acquisition history persistence
type AcquisitionRepository interface {
	// Create stores a new acquisition record
	Create(acq *Acquisition) error

	// Update updates an existing acquisition record
	Update(acq *Acquisition) error

	// FindByID finds an acquisition by ID
	FindByID(id string) (*Acquisition, error)

	// FindByMediaID finds acquisitions for a media ID, newest first
	FindByMediaID(mediaID string) ([]*Acquisition, error)

	// FindRecent returns the most recent acquisitions, newest first
	FindRecent(limit int) ([]*Acquisition, error)

	// CountByStatus returns the number of acquisitions in the given state
	CountByStatus(status AcquisitionStatus) (int64, error)

	// GetStats returns aggregate acquisition statistics
	GetStats() (*AcquisitionStats, error)
}

// AcquisitionStats represents aggregate acquisition history statistics
type AcquisitionStats struct {
	Total         int64 `json:"total"`
	Completed     int64 `json:"completed"`
	Failed        int64 `json:"failed"`
	FromRemote    int64 `json:"from_remote"`
	FromExtractor int64 `json:"from_extractor"`
}
