package infrastructure

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/tune-fetch-go/internal/domain"
)

func newTestRepository(t *testing.T) *SQLiteAcquisitionRepository {
	t.Helper()
	repo, err := NewSQLiteAcquisitionRepository(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepository_CreateAndFindByID(t *testing.T) {
	repo := newTestRepository(t)

	acq := domain.NewAcquisition("dQw4w9WgXcQ", domain.KindAudio)
	require.NoError(t, repo.Create(acq))

	found, err := repo.FindByID(acq.ID)
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", found.MediaID)
	assert.Equal(t, domain.KindAudio, found.Kind)
	assert.Empty(t, found.Status)
	assert.Nil(t, found.CompletedAt)
}

func TestRepository_UpdateTerminalState(t *testing.T) {
	repo := newTestRepository(t)

	acq := domain.NewAcquisition("abc123XYZ_Q", domain.KindVideo)
	require.NoError(t, repo.Create(acq))

	acq.MarkCompleted(domain.SourceExtractor, "/cache/abc123XYZ_Q.mp4")
	require.NoError(t, repo.Update(acq))

	found, err := repo.FindByID(acq.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AcquisitionCompleted, found.Status)
	assert.Equal(t, domain.SourceExtractor, found.Source)
	assert.Equal(t, "/cache/abc123XYZ_Q.mp4", found.FilePath)
	assert.NotNil(t, found.CompletedAt)
}

func TestRepository_FindByIDUnknown(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.FindByID("does-not-exist")
	assert.Error(t, err)
}

func TestRepository_FindByMediaID(t *testing.T) {
	repo := newTestRepository(t)

	for i := 0; i < 3; i++ {
		acq := domain.NewAcquisition("sameid", domain.KindAudio)
		require.NoError(t, repo.Create(acq))
	}
	other := domain.NewAcquisition("otherid", domain.KindAudio)
	require.NoError(t, repo.Create(other))

	acqs, err := repo.FindByMediaID("sameid")
	require.NoError(t, err)
	assert.Len(t, acqs, 3)
	for _, acq := range acqs {
		assert.Equal(t, "sameid", acq.MediaID)
	}
}

func TestRepository_FindRecentHonorsLimit(t *testing.T) {
	repo := newTestRepository(t)

	for i := 0; i < 5; i++ {
		acq := domain.NewAcquisition(fmt.Sprintf("id%d", i), domain.KindAudio)
		require.NoError(t, repo.Create(acq))
	}

	acqs, err := repo.FindRecent(2)
	require.NoError(t, err)
	assert.Len(t, acqs, 2)
}

func TestRepository_CountByStatus(t *testing.T) {
	repo := newTestRepository(t)

	completed := domain.NewAcquisition("a", domain.KindAudio)
	completed.MarkCompleted(domain.SourceRemote, "/cache/a.mp3")
	require.NoError(t, repo.Create(completed))

	failed := domain.NewAcquisition("b", domain.KindAudio)
	failed.MarkFailed(errors.New("gone"))
	require.NoError(t, repo.Create(failed))

	count, err := repo.CountByStatus(domain.AcquisitionCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountByStatus(domain.AcquisitionFailed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_GetStats(t *testing.T) {
	repo := newTestRepository(t)

	remote := domain.NewAcquisition("a", domain.KindAudio)
	remote.MarkCompleted(domain.SourceRemote, "/cache/a.mp3")
	require.NoError(t, repo.Create(remote))

	extractor := domain.NewAcquisition("b", domain.KindVideo)
	extractor.MarkCompleted(domain.SourceExtractor, "/cache/b.mp4")
	require.NoError(t, repo.Create(extractor))

	failed := domain.NewAcquisition("c", domain.KindAudio)
	failed.MarkFailed(errors.New("no dice"))
	require.NoError(t, repo.Create(failed))

	stats, err := repo.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Completed)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(1), stats.FromRemote)
	assert.Equal(t, int64(1), stats.FromExtractor)
}
