package persistence

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	json "github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"github.com/roju/auto-live-recorder/internal/models"
	"github.com/roju/auto-live-recorder/internal/providers"
	"github.com/roju/auto-live-recorder/internal/structures"
)

// GatewayInterface translates between domain values and the persisted wire
// shapes. Preferences live in preferences.toml, the streamer list in
// streamer-list.json.
type GatewayInterface interface {
	Defaults() models.Preferences
	// LoadPreferences returns the stored preferences merged over the
	// defaults. On error it still returns the defaults, never a zero
	// value, so callers may cache the result unconditionally.
	LoadPreferences() (models.Preferences, error)
	SavePreferences(prefs models.Preferences) error
	LoadStreamerList() ([]models.Streamer, error)
	SaveStreamerList(list []models.Streamer) error
}

type FileGateway struct {
	dir      string
	defaults models.Preferences
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	backups  BackuperInterface
}

func NewFileGateway(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, backups BackuperInterface) GatewayInterface {
	downloadDir := xdg.UserDirs.Download
	if downloadDir == "" {
		logger.Warnf(providers.TypePersistence, "Could not determine the Downloads folder")
	}

	return &FileGateway{
		dir:      conf.Persistence.Dir,
		defaults: models.DefaultPreferences(downloadDir),
		logger:   logger,
		metrics:  metrics,
		backups:  backups,
	}
}

func (g *FileGateway) preferencesPath() string {
	return filepath.Join(g.dir, "preferences.toml")
}

func (g *FileGateway) streamerListPath() string {
	return filepath.Join(g.dir, "streamer-list.json")
}

func (g *FileGateway) Defaults() models.Preferences {
	return g.defaults.Clone()
}

// LoadPreferences reads the stored preferences merged over the defaults:
// the file is decoded into a defaults-initialized value, so absent fields
// keep their default. A missing file yields the pure defaults.
func (g *FileGateway) LoadPreferences() (models.Preferences, error) {
	start := time.Now()
	defer func() { g.metrics.ObservePersistenceDuration("load_preferences", time.Since(start)) }()

	prefs := g.defaults.Clone()
	data, err := os.ReadFile(g.preferencesPath())
	if err != nil {
		if os.IsNotExist(err) {
			return prefs, nil
		}
		return g.defaults.Clone(), err
	}

	if err := toml.Unmarshal(data, &prefs); err != nil {
		return g.defaults.Clone(), err
	}
	if prefs.DashboardColumnVisibility == nil {
		prefs.DashboardColumnVisibility = g.defaults.Clone().DashboardColumnVisibility
	}
	return prefs, nil
}

func (g *FileGateway) SavePreferences(prefs models.Preferences) error {
	start := time.Now()
	defer func() { g.metrics.ObservePersistenceDuration("save_preferences", time.Since(start)) }()

	data, err := toml.Marshal(prefs)
	if err != nil {
		return err
	}
	if err := writeAtomic(g.preferencesPath(), data); err != nil {
		return err
	}
	g.backups.Snapshot("preferences", data)
	return nil
}

// LoadStreamerList decodes the persisted list. A missing file is an empty
// list. Records referencing an unknown platform are skipped with a warning
// so one bad record cannot poison the rest.
func (g *FileGateway) LoadStreamerList() ([]models.Streamer, error) {
	start := time.Now()
	defer func() { g.metrics.ObservePersistenceDuration("load_streamers", time.Since(start)) }()

	data, err := os.ReadFile(g.streamerListPath())
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Streamer{}, nil
		}
		return nil, err
	}

	var doc models.StreamerListDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	list := make([]models.Streamer, 0, len(doc.Streamers))
	for _, w := range doc.Streamers {
		s, err := models.StreamerFromWire(w)
		if err != nil {
			g.logger.Warnf(providers.TypePersistence, "Skipping stored streamer %s/%s: %s", w.Platform, w.Username, err)
			g.metrics.IncDecodeSkips()
			continue
		}
		list = append(list, s)
	}
	return list, nil
}

func (g *FileGateway) SaveStreamerList(list []models.Streamer) error {
	start := time.Now()
	defer func() { g.metrics.ObservePersistenceDuration("save_streamers", time.Since(start)) }()

	doc := models.StreamerListDocument{Streamers: make([]models.WireStreamer, 0, len(list))}
	for _, s := range list {
		doc.Streamers = append(doc.Streamers, s.ToWire())
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}
	if err := writeAtomic(g.streamerListPath(), data); err != nil {
		return err
	}
	g.backups.Snapshot("streamer-list", data)
	return nil
}

// writeAtomic writes through a temp file and renames it into place, so a
// crash mid-write never leaves a torn state file.
func writeAtomic(fileName string, data []byte) error {
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}
