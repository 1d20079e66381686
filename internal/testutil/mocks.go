package testutil

import (
	"sync"
	"time"

	"github.com/roju/auto-live-recorder/internal/models"
	"github.com/roju/auto-live-recorder/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns the number of entries recorded at the given level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu             sync.Mutex
	StoreOps       map[string]int
	FailedOps      map[string]int
	DecodeSkips    int
	StreamersTotal int
}

func (m *MockMetrics) IncStoreOp(op string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StoreOps == nil {
		m.StoreOps = make(map[string]int)
	}
	if m.FailedOps == nil {
		m.FailedOps = make(map[string]int)
	}
	if success {
		m.StoreOps[op]++
	} else {
		m.FailedOps[op]++
	}
}

func (m *MockMetrics) ObservePersistenceDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncDecodeSkips() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DecodeSkips++
}

func (m *MockMetrics) SetStreamersTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StreamersTotal = count
}

// MockGateway implements persistence.GatewayInterface with in-memory state
// and per-call counters.
type MockGateway struct {
	mu sync.Mutex

	DefaultPrefs models.Preferences
	Prefs        *models.Preferences
	List         []models.Streamer

	LoadPrefsErr error
	SavePrefsErr error
	LoadListErr  error
	SaveListErr  error

	LoadPrefsCalls int
	SavePrefsCalls int
	LoadListCalls  int
	SaveListCalls  int
}

func NewMockGateway() *MockGateway {
	return &MockGateway{DefaultPrefs: models.DefaultPreferences("/home/user/Downloads")}
}

func (m *MockGateway) Defaults() models.Preferences {
	return m.DefaultPrefs.Clone()
}

func (m *MockGateway) LoadPreferences() (models.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadPrefsCalls++
	if m.LoadPrefsErr != nil {
		return m.DefaultPrefs.Clone(), m.LoadPrefsErr
	}
	if m.Prefs == nil {
		return m.DefaultPrefs.Clone(), nil
	}
	return m.Prefs.Clone(), nil
}

func (m *MockGateway) SavePreferences(prefs models.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SavePrefsCalls++
	if m.SavePrefsErr != nil {
		return m.SavePrefsErr
	}
	stored := prefs.Clone()
	m.Prefs = &stored
	return nil
}

func (m *MockGateway) LoadStreamerList() ([]models.Streamer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadListCalls++
	if m.LoadListErr != nil {
		return nil, m.LoadListErr
	}
	out := make([]models.Streamer, len(m.List))
	copy(out, m.List)
	return out, nil
}

func (m *MockGateway) SaveStreamerList(list []models.Streamer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveListCalls++
	if m.SaveListErr != nil {
		return m.SaveListErr
	}
	m.List = make([]models.Streamer, len(list))
	copy(m.List, list)
	return nil
}
