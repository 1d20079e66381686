package stores

import (
	"sync"

	"github.com/roju/auto-live-recorder/internal/models"
	"github.com/roju/auto-live-recorder/internal/persistence"
	"github.com/roju/auto-live-recorder/internal/providers"
)

// PreferenceStoreInterface owns the in-memory preferences. Before the first
// Hydrate it hands out the hard-coded defaults, never a zero value.
type PreferenceStoreInterface interface {
	Hydrate() models.Preferences
	Get() models.Preferences
	Persist(changes models.PreferenceChanges) error
}

type PreferenceStore struct {
	mu       sync.Mutex
	prefs    models.Preferences
	hydrated bool
	gateway  persistence.GatewayInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewPreferenceStore(gateway persistence.GatewayInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) PreferenceStoreInterface {
	return &PreferenceStore{
		prefs:   gateway.Defaults(),
		gateway: gateway,
		logger:  logger,
		metrics: metrics,
	}
}

// Hydrate loads the stored preferences once. Repeated calls return the
// cached value without touching storage; several UI entry points may mount
// concurrently and all call this. A load failure falls back to the defaults
// and still marks the store hydrated so the UI never waits forever.
func (ps *PreferenceStore) Hydrate() models.Preferences {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.hydrated {
		return ps.prefs.Clone()
	}

	loaded, err := ps.gateway.LoadPreferences()
	if err != nil {
		ps.logger.Errorf(providers.TypeStore, "Error hydrating preferences: %s", err)
		ps.metrics.IncStoreOp("hydrate_preferences", false)
	} else {
		ps.metrics.IncStoreOp("hydrate_preferences", true)
	}
	// Loaded values arrive merged over the defaults; on failure the
	// gateway hands the defaults back.
	ps.prefs = loaded
	ps.hydrated = true
	return ps.prefs.Clone()
}

func (ps *PreferenceStore) Get() models.Preferences {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.prefs.Clone()
}

// Persist merges the changes into the in-memory value immediately, then
// re-loads the stored value and saves defaults → stored → changes in that
// precedence. Two screens each editing their own field cannot stomp the
// other's write.
func (ps *PreferenceStore) Persist(changes models.PreferenceChanges) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.prefs = ps.prefs.Apply(changes)

	stored, err := ps.gateway.LoadPreferences()
	if err != nil {
		// Saving without the stored values would reset every field the
		// caller didn't touch, so the save is skipped. The optimistic
		// in-memory value stays for the UI.
		ps.logger.Errorf(providers.TypeStore, "Error re-loading preferences before save: %s", err)
		ps.metrics.IncStoreOp("persist_preferences", false)
		return err
	}
	merged := stored.Apply(changes)

	if err := ps.gateway.SavePreferences(merged); err != nil {
		ps.logger.Errorf(providers.TypeStore, "Error saving preferences: %s", err)
		ps.metrics.IncStoreOp("persist_preferences", false)
		return err
	}
	ps.metrics.IncStoreOp("persist_preferences", true)
	return nil
}
