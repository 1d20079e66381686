package stores

import (
	"errors"
	"testing"

	"github.com/roju/auto-live-recorder/internal/models"
	"github.com/roju/auto-live-recorder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustStreamer(t *testing.T, platform, username string) models.Streamer {
	t.Helper()
	s, err := models.NewStreamer(platform, username, models.BotMonitoring, models.LiveUnknown, models.LastLiveUnknown, 0, true, "")
	require.NoError(t, err)
	return s
}

func newTestStreamerStore(gateway *testutil.MockGateway) (StreamerStoreInterface, *testutil.MockLogger, *testutil.MockMetrics) {
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	return NewStreamerStore(gateway, logger, metrics), logger, metrics
}

func TestHydrate_ReplacesListWholesale(t *testing.T) {
	gateway := testutil.NewMockGateway()
	gateway.List = []models.Streamer{mustStreamer(t, "tiktok", "abc")}
	store, _, metrics := newTestStreamerStore(gateway)

	require.NoError(t, store.Hydrate())
	require.Len(t, store.List(), 1)
	assert.Equal(t, 1, metrics.StreamersTotal)

	gateway.List = nil
	require.NoError(t, store.Hydrate())
	assert.Empty(t, store.List())
}

func TestAdd_AppendsAndPersists(t *testing.T) {
	gateway := testutil.NewMockGateway()
	store, _, _ := newTestStreamerStore(gateway)

	require.NoError(t, store.Add(mustStreamer(t, "tiktok", "abc")))

	assert.Len(t, gateway.List, 1)
	assert.Len(t, store.List(), 1)
}

func TestAdd_DuplicateIsSilentNoop(t *testing.T) {
	gateway := testutil.NewMockGateway()
	gateway.List = []models.Streamer{mustStreamer(t, "tiktok", "abc")}
	store, _, _ := newTestStreamerStore(gateway)
	require.NoError(t, store.Hydrate())

	before := store.List()
	require.NoError(t, store.Add(mustStreamer(t, "tiktok", "abc")))

	assert.Equal(t, before, store.List())
	assert.Zero(t, gateway.SaveListCalls)
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	gateway := testutil.NewMockGateway()
	gateway.List = []models.Streamer{
		mustStreamer(t, "tiktok", "a"),
		mustStreamer(t, "tiktok", "b"),
		mustStreamer(t, "twitch", "c"),
	}
	store, _, _ := newTestStreamerStore(gateway)
	require.NoError(t, store.Hydrate())

	require.NoError(t, store.Remove("nonexistent-id"))

	list := store.List()
	require.Len(t, list, 3)
	assert.Equal(t, "tiktok-a", list[0].ID())
	assert.Equal(t, "tiktok-b", list[1].ID())
	assert.Equal(t, "twitch-c", list[2].ID())
}

func TestRemove_FiltersMatchingEntry(t *testing.T) {
	gateway := testutil.NewMockGateway()
	gateway.List = []models.Streamer{
		mustStreamer(t, "tiktok", "a"),
		mustStreamer(t, "tiktok", "b"),
	}
	store, _, _ := newTestStreamerStore(gateway)

	require.NoError(t, store.Remove("tiktok-a"))

	require.Len(t, gateway.List, 1)
	assert.Equal(t, "tiktok-b", gateway.List[0].ID())
}

func TestUpdate_MergesChanges(t *testing.T) {
	gateway := testutil.NewMockGateway()
	s := mustStreamer(t, "tiktok", "abc")
	gateway.List = []models.Streamer{s}
	store, _, _ := newTestStreamerStore(gateway)
	require.NoError(t, store.Hydrate())

	paused := models.BotPaused
	require.NoError(t, store.Update(s, models.StreamerChanges{BotStatus: &paused}))

	list := store.List()
	require.Len(t, list, 1)
	assert.Equal(t, models.BotPaused, list[0].BotStatus)
	assert.True(t, list[0].AutoRecord)
	assert.Equal(t, models.BotPaused, gateway.List[0].BotStatus)
}

func TestUpdateAll_SingleRoundTrip(t *testing.T) {
	gateway := testutil.NewMockGateway()
	a := mustStreamer(t, "tiktok", "a")
	b := mustStreamer(t, "twitch", "b")
	gateway.List = []models.Streamer{a, b}
	store, _, _ := newTestStreamerStore(gateway)

	paused := models.BotPaused
	noRecord := false
	err := store.UpdateAll([]StreamerUpdate{
		{Streamer: a, Changes: models.StreamerChanges{BotStatus: &paused}},
		{Streamer: b, Changes: models.StreamerChanges{AutoRecord: &noRecord}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, gateway.LoadListCalls)
	assert.Equal(t, 1, gateway.SaveListCalls)
	assert.Equal(t, models.BotPaused, gateway.List[0].BotStatus)
	assert.False(t, gateway.List[1].AutoRecord)
}

func TestRemoveAll_SkipsLoad(t *testing.T) {
	gateway := testutil.NewMockGateway()
	gateway.List = []models.Streamer{mustStreamer(t, "tiktok", "abc")}
	store, _, _ := newTestStreamerStore(gateway)
	require.NoError(t, store.Hydrate())

	gateway.LoadListCalls = 0
	require.NoError(t, store.RemoveAll())

	assert.Empty(t, store.List())
	assert.Empty(t, gateway.List)
	assert.Zero(t, gateway.LoadListCalls)
}

func TestAdd_SaveFailureKeepsCache(t *testing.T) {
	gateway := testutil.NewMockGateway()
	store, logger, _ := newTestStreamerStore(gateway)

	gateway.SaveListErr = errors.New("disk full")
	err := store.Add(mustStreamer(t, "tiktok", "abc"))

	require.Error(t, err)
	assert.Empty(t, store.List())
	assert.Equal(t, 1, logger.Count("error"))
}

func TestList_ReturnsCopy(t *testing.T) {
	gateway := testutil.NewMockGateway()
	gateway.List = []models.Streamer{mustStreamer(t, "tiktok", "a"), mustStreamer(t, "tiktok", "b")}
	store, _, _ := newTestStreamerStore(gateway)
	require.NoError(t, store.Hydrate())

	list := store.List()
	list[0] = mustStreamer(t, "twitch", "z")

	assert.Equal(t, "tiktok-a", store.List()[0].ID())
}
