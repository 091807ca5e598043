package infrastructure

import (
	"fmt"

	"github.com/yourusername/tune-fetch-go/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteAcquisitionRepository implements AcquisitionRepository using SQLite
type SQLiteAcquisitionRepository struct {
	db *gorm.DB
}

// NewSQLiteAcquisitionRepository creates a new SQLite repository
func NewSQLiteAcquisitionRepository(dbPath string) (*SQLiteAcquisitionRepository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Acquisition{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteAcquisitionRepository{db: db}, nil
}

// Close closes the underlying database connection
func (r *SQLiteAcquisitionRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Create stores a new acquisition record
func (r *SQLiteAcquisitionRepository) Create(acq *domain.Acquisition) error {
	return r.db.Create(acq).Error
}

// Update updates an existing acquisition record
func (r *SQLiteAcquisitionRepository) Update(acq *domain.Acquisition) error {
	return r.db.Save(acq).Error
}

// FindByID finds an acquisition by ID
func (r *SQLiteAcquisitionRepository) FindByID(id string) (*domain.Acquisition, error) {
	var acq domain.Acquisition
	if err := r.db.First(&acq, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &acq, nil
}

// FindByMediaID finds acquisitions for a media ID, newest first
func (r *SQLiteAcquisitionRepository) FindByMediaID(mediaID string) ([]*domain.Acquisition, error) {
	var acqs []*domain.Acquisition
	err := r.db.Where("media_id = ?", mediaID).
		Order("created_at DESC").
		Find(&acqs).Error
	return acqs, err
}

// FindRecent returns the most recent acquisitions, newest first
func (r *SQLiteAcquisitionRepository) FindRecent(limit int) ([]*domain.Acquisition, error) {
	var acqs []*domain.Acquisition
	err := r.db.Order("created_at DESC").Limit(limit).Find(&acqs).Error
	return acqs, err
}

// CountByStatus returns the number of acquisitions in the given state
func (r *SQLiteAcquisitionRepository) CountByStatus(status domain.AcquisitionStatus) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Acquisition{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// GetStats returns aggregate acquisition statistics
func (r *SQLiteAcquisitionRepository) GetStats() (*domain.AcquisitionStats, error) {
	stats := &domain.AcquisitionStats{}

	if err := r.db.Model(&domain.Acquisition{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	counts := []struct {
		column string
		value  string
		dest   *int64
	}{
		{"status", string(domain.AcquisitionCompleted), &stats.Completed},
		{"status", string(domain.AcquisitionFailed), &stats.Failed},
		{"source", string(domain.SourceRemote), &stats.FromRemote},
		{"source", string(domain.SourceExtractor), &stats.FromExtractor},
	}
	for _, c := range counts {
		if err := r.db.Model(&domain.Acquisition{}).
			Where(fmt.Sprintf("%s = ?", c.column), c.value).
			Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	return stats, nil
}
