package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/tune-fetch-go/internal/app"
	"github.com/yourusername/tune-fetch-go/internal/domain"
	"go.uber.org/zap"
)

type fakeCache struct{ path string }

func (f *fakeCache) Probe(mediaID string, kind domain.MediaKind) (string, bool) {
	return f.path, f.path != ""
}

type fakeRemote struct{ outcome domain.RemoteOutcome }

func (f *fakeRemote) Fetch(ctx context.Context, mediaID string, kind domain.MediaKind) domain.RemoteOutcome {
	return f.outcome
}

type fakeExtractor struct {
	path string
	err  error
}

func (f *fakeExtractor) Extract(ctx context.Context, reference string, kind domain.MediaKind) (string, error) {
	return f.path, f.err
}

type fakeResolver struct {
	tracks []domain.Track
	err    error
}

func (f *fakeResolver) Search(ctx context.Context, query string, limit int) ([]domain.Track, error) {
	return f.tracks, f.err
}

type fakePlaylists struct {
	ids []string
	err error
}

func (f *fakePlaylists) Playlist(ctx context.Context, reference string) ([]string, error) {
	return f.ids, f.err
}

type fakeLyrics struct {
	lyrics *domain.Lyrics
	err    error
}

func (f *fakeLyrics) Lyrics(ctx context.Context, song, artist string) (*domain.Lyrics, error) {
	return f.lyrics, f.err
}

type fakeChannel struct {
	sent    []string
	sendErr error
}

func (f *fakeChannel) SendAudio(ctx context.Context, dest, path, caption, performer, title, thumbnail string) error {
	f.sent = append(f.sent, path)
	return f.sendErr
}

func (f *fakeChannel) SendVideo(ctx context.Context, dest, path, caption, thumbnail string, streamable bool) error {
	f.sent = append(f.sent, path)
	return f.sendErr
}

func (f *fakeChannel) SendText(ctx context.Context, dest, text string) error {
	return nil
}

type fakeThumbs struct{}

func (f *fakeThumbs) Fetch(ctx context.Context, url, destPath string) error {
	return os.WriteFile(destPath, []byte("thumb"), 0644)
}

type routerFixture struct {
	cache     *fakeCache
	remote    *fakeRemote
	extractor *fakeExtractor
	resolver  *fakeResolver
	playlists *fakePlaylists
	lyrics    *fakeLyrics
	channel   *fakeChannel
	requests  *app.RequestCache
}

func newRouterFixture() *routerFixture {
	return &routerFixture{
		cache:     &fakeCache{},
		remote:    &fakeRemote{outcome: domain.UnavailableOutcome()},
		extractor: &fakeExtractor{path: "/cache/dQw4w9WgXcQ.mp3"},
		resolver:  &fakeResolver{},
		playlists: &fakePlaylists{},
		lyrics:    &fakeLyrics{},
		channel:   &fakeChannel{},
		requests:  app.NewRequestCache(0),
	}
}

func (f *routerFixture) build(t *testing.T) http.Handler {
	t.Helper()
	acquire := app.NewAcquireService(f.cache, f.remote, f.extractor, nil, app.NewCounters(), zap.NewNop())
	deliver := app.NewDeliveryCoordinator(acquire, f.requests, f.channel, &fakeThumbs{},
		t.TempDir(), "tune-fetch", zap.NewNop())
	return SetupRouter(acquire, deliver, f.resolver, f.playlists, f.lyrics, f.requests, nil, zap.NewNop())
}

func doRequest(router http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := doRequest(newRouterFixture().build(t), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, Version, resp["version"])
}

func TestAcquireEndpoint_Success(t *testing.T) {
	router := newRouterFixture().build(t)
	body, _ := json.Marshal(map[string]string{
		"reference": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	})

	rec := doRequest(router, http.MethodPost, "/api/v1/acquire", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dQw4w9WgXcQ", resp["media_id"])
	assert.Equal(t, "audio", resp["kind"])
	assert.Equal(t, "/cache/dQw4w9WgXcQ.mp3", resp["path"])
}

func TestAcquireEndpoint_MissingReference(t *testing.T) {
	rec := doRequest(newRouterFixture().build(t), http.MethodPost, "/api/v1/acquire", []byte(`{}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAcquireEndpoint_BadKind(t *testing.T) {
	body, _ := json.Marshal(map[string]string{
		"reference": "dQw4w9WgXcQ",
		"kind":      "podcast",
	})
	rec := doRequest(newRouterFixture().build(t), http.MethodPost, "/api/v1/acquire", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAcquireEndpoint_ExtractionFailureIsBadGateway(t *testing.T) {
	fixture := newRouterFixture()
	fixture.extractor = &fakeExtractor{err: errors.New("video unavailable")}
	body, _ := json.Marshal(map[string]string{"reference": "gone"})

	rec := doRequest(fixture.build(t), http.MethodPost, "/api/v1/acquire", body)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSearchEndpoint_ReturnsTokenAndTracks(t *testing.T) {
	fixture := newRouterFixture()
	fixture.resolver = &fakeResolver{tracks: []domain.Track{
		{ID: "dQw4w9WgXcQ", Title: "Never Gonna Give You Up"},
	}}

	rec := doRequest(fixture.build(t), http.MethodGet, "/api/v1/search?q=rick+astley&limit=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token  string         `json:"token"`
		Tracks []domain.Track `json:"tracks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	require.Len(t, resp.Tracks, 1)
	assert.Equal(t, "dQw4w9WgXcQ", resp.Tracks[0].ID)
}

func TestSearchEndpoint_MissingQuery(t *testing.T) {
	rec := doRequest(newRouterFixture().build(t), http.MethodGet, "/api/v1/search", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchEndpoint_ResolverFailureIsBadGateway(t *testing.T) {
	fixture := newRouterFixture()
	fixture.resolver = &fakeResolver{err: errors.New("blocked")}

	rec := doRequest(fixture.build(t), http.MethodGet, "/api/v1/search?q=anything", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSearchEndpoint_AbandonedTokensAreReclaimed(t *testing.T) {
	fixture := newRouterFixture()
	fixture.resolver = &fakeResolver{tracks: []domain.Track{{ID: "a"}}}
	fixture.requests = app.NewRequestCache(time.Nanosecond)
	router := fixture.build(t)

	for i := 0; i < 100; i++ {
		rec := doRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/search?q=query%d", i), nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	time.Sleep(time.Millisecond)
	assert.Equal(t, 0, fixture.requests.Len())
}

func TestDeliverEndpoint_SendsAndDropsToken(t *testing.T) {
	fixture := newRouterFixture()
	fixture.resolver = &fakeResolver{tracks: []domain.Track{
		{ID: "dQw4w9WgXcQ", Title: "Never Gonna Give You Up", Link: domain.WatchBase + "dQw4w9WgXcQ"},
	}}
	router := fixture.build(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/search?q=rick", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var search struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &search))

	body, _ := json.Marshal(map[string]any{"token": search.Token, "index": 0})
	rec = doRequest(router, http.MethodPost, "/api/v1/deliver", body)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []string{"/cache/dQw4w9WgXcQ.mp3"}, fixture.channel.sent)
	assert.Equal(t, 0, fixture.requests.Len())
}

func TestDeliverEndpoint_UnknownTokenIsNotFound(t *testing.T) {
	body, _ := json.Marshal(map[string]any{"token": "no-such-token"})
	rec := doRequest(newRouterFixture().build(t), http.MethodPost, "/api/v1/deliver", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeliverEndpoint_MissingToken(t *testing.T) {
	rec := doRequest(newRouterFixture().build(t), http.MethodPost, "/api/v1/deliver", []byte(`{}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaylistEndpoint(t *testing.T) {
	fixture := newRouterFixture()
	fixture.playlists = &fakePlaylists{ids: []string{"a", "b", "c"}}

	rec := doRequest(fixture.build(t), http.MethodGet, "/api/v1/playlist?link=PLxyz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count    int      `json:"count"`
		MediaIDs []string `json:"media_ids"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, []string{"a", "b", "c"}, resp.MediaIDs)
}

func TestPlaylistEndpoint_MissingLink(t *testing.T) {
	rec := doRequest(newRouterFixture().build(t), http.MethodGet, "/api/v1/playlist", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLyricsEndpoint(t *testing.T) {
	fixture := newRouterFixture()
	fixture.lyrics = &fakeLyrics{lyrics: &domain.Lyrics{
		Title:  "Never Gonna Give You Up by Rick Astley",
		Lyrics: "Never gonna give you up",
	}}

	rec := doRequest(fixture.build(t), http.MethodGet, "/api/v1/lyrics?song=never+gonna&artist=rick", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.Lyrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Lyrics, "give you up")
}

func TestLyricsEndpoint_UnconfiguredIsServiceUnavailable(t *testing.T) {
	fixture := newRouterFixture()
	fixture.lyrics = &fakeLyrics{err: domain.ErrLyricsUnavailable}

	rec := doRequest(fixture.build(t), http.MethodGet, "/api/v1/lyrics?song=anything", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLyricsEndpoint_MissingSong(t *testing.T) {
	rec := doRequest(newRouterFixture().build(t), http.MethodGet, "/api/v1/lyrics", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	rec := doRequest(newRouterFixture().build(t), http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "counters")
	assert.Contains(t, resp, "report")
}

func TestAcquisitionsEndpoint_NoRepository(t *testing.T) {
	rec := doRequest(newRouterFixture().build(t), http.MethodGet, "/api/v1/acquisitions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}
