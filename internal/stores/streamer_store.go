package stores

import (
	"sync"

	"github.com/roju/auto-live-recorder/internal/models"
	"github.com/roju/auto-live-recorder/internal/persistence"
	"github.com/roju/auto-live-recorder/internal/providers"
)

// StreamerUpdate pairs a streamer with the change set to merge into it.
type StreamerUpdate struct {
	Streamer models.Streamer
	Changes  models.StreamerChanges
}

// StreamerStoreInterface owns the authoritative in-memory streamer list.
// Every mutation follows the same protocol: load the latest persisted list,
// apply one transformation, persist the full result, then update the cache
// to the same result.
type StreamerStoreInterface interface {
	Hydrate() error
	List() []models.Streamer
	Add(streamer models.Streamer) error
	Remove(streamerID string) error
	Update(streamer models.Streamer, changes models.StreamerChanges) error
	UpdateAll(updates []StreamerUpdate) error
	RemoveAll() error
}

type StreamerStore struct {
	// mu serializes mutations: one load→transform→save round trip is in
	// flight at a time, so overlapping callers cannot clobber each other.
	mu      sync.Mutex
	list    []models.Streamer
	gateway persistence.GatewayInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewStreamerStore(gateway persistence.GatewayInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) StreamerStoreInterface {
	return &StreamerStore{
		list:    []models.Streamer{},
		gateway: gateway,
		logger:  logger,
		metrics: metrics,
	}
}

// Hydrate replaces the in-memory list wholesale with the persisted one.
// It always re-fetches; callers pick the refresh points.
func (ss *StreamerStore) Hydrate() error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	loaded, err := ss.gateway.LoadStreamerList()
	if err != nil {
		ss.logger.Errorf(providers.TypeStore, "Error hydrating streamer list: %s", err)
		ss.metrics.IncStoreOp("hydrate", false)
		return err
	}
	ss.setList(loaded)
	ss.metrics.IncStoreOp("hydrate", true)
	return nil
}

// List returns a copy of the in-memory list in insertion order.
func (ss *StreamerStore) List() []models.Streamer {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	out := make([]models.Streamer, len(ss.list))
	copy(out, ss.list)
	return out
}

// Add appends the streamer unless one with the same id already exists, in
// which case the call is a silent no-op.
func (ss *StreamerStore) Add(streamer models.Streamer) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	loaded, err := ss.loadLatest("add")
	if err != nil {
		return err
	}
	for _, s := range loaded {
		if s.ID() == streamer.ID() {
			ss.logger.Debugf(providers.TypeStore, "Streamer %s already exists, not adding", streamer.ID())
			return nil
		}
	}
	return ss.persistAndCache("add", append(loaded, streamer))
}

// Remove filters the matching entry out. An unknown id is a no-op, not an
// error.
func (ss *StreamerStore) Remove(streamerID string) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	loaded, err := ss.loadLatest("remove")
	if err != nil {
		return err
	}
	updated := make([]models.Streamer, 0, len(loaded))
	for _, s := range loaded {
		if s.ID() != streamerID {
			updated = append(updated, s)
		}
	}
	return ss.persistAndCache("remove", updated)
}

// Update replaces the entry matching the streamer's id with a copy-on-write
// merge of the changes.
func (ss *StreamerStore) Update(streamer models.Streamer, changes models.StreamerChanges) error {
	return ss.UpdateAll([]StreamerUpdate{{Streamer: streamer, Changes: changes}})
}

// UpdateAll applies every update in a single load/persist round trip, so
// one batch cannot race against itself.
func (ss *StreamerStore) UpdateAll(updates []StreamerUpdate) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	byID := make(map[string]StreamerUpdate, len(updates))
	for _, u := range updates {
		byID[u.Streamer.ID()] = u
	}

	loaded, err := ss.loadLatest("update")
	if err != nil {
		return err
	}
	updated := make([]models.Streamer, 0, len(loaded))
	for _, s := range loaded {
		if u, ok := byID[s.ID()]; ok {
			updated = append(updated, u.Streamer.CloneWith(u.Changes))
		} else {
			updated = append(updated, s)
		}
	}
	return ss.persistAndCache("update", updated)
}

// RemoveAll persists an empty list and clears the cache unconditionally.
func (ss *StreamerStore) RemoveAll() error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	return ss.persistAndCache("remove_all", []models.Streamer{})
}

func (ss *StreamerStore) loadLatest(op string) ([]models.Streamer, error) {
	loaded, err := ss.gateway.LoadStreamerList()
	if err != nil {
		ss.logger.Errorf(providers.TypeStore, "Error loading streamer list for %s: %s", op, err)
		ss.metrics.IncStoreOp(op, false)
		return nil, err
	}
	return loaded, nil
}

func (ss *StreamerStore) persistAndCache(op string, updated []models.Streamer) error {
	if err := ss.gateway.SaveStreamerList(updated); err != nil {
		ss.logger.Errorf(providers.TypeStore, "Error saving streamer list for %s: %s", op, err)
		ss.metrics.IncStoreOp(op, false)
		return err
	}
	ss.setList(updated)
	ss.metrics.IncStoreOp(op, true)
	return nil
}

func (ss *StreamerStore) setList(list []models.Streamer) {
	ss.list = list
	ss.metrics.SetStreamersTotal(len(list))
}
