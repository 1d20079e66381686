package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/roju/auto-live-recorder/internal/providers"
	"github.com/roju/auto-live-recorder/internal/structures"
)

// BackuperInterface takes compressed snapshots of persisted state files.
// Snapshots are best effort: a failed backup never fails the save that
// triggered it.
type BackuperInterface interface {
	Snapshot(name string, data []byte)
}

type BackupManager struct {
	dir     string
	keep    int
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	logger  providers.Logger
}

func NewBackupManager(conf *structures.Config, logger providers.Logger) (BackuperInterface, error) {
	if !conf.Backup.Enabled {
		logger.Infof(providers.TypePersistence, "Backups disabled")
		return &noopBackups{}, nil
	}

	dir := filepath.Join(conf.Persistence.Dir, "backups")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &BackupManager{
		dir:     dir,
		keep:    conf.Backup.Keep,
		encoder: encoder,
		decoder: decoder,
		logger:  logger,
	}, nil
}

func (b *BackupManager) Snapshot(name string, data []byte) {
	compressed := b.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))

	stamp := time.Now().UTC().Format("20060102T150405.000")
	path := filepath.Join(b.dir, fmt.Sprintf("%s-%s.zst", name, stamp))
	if err := os.WriteFile(path, compressed, 0644); err != nil {
		b.logger.Warnf(providers.TypePersistence, "Backup of %s failed: %s", name, err)
		return
	}

	b.prune(name)
}

// ReadSnapshot decompresses one snapshot file.
func (b *BackupManager) ReadSnapshot(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return b.decoder.DecodeAll(data, nil)
}

// prune drops the oldest snapshots of name beyond the retention count. The
// timestamp in the filename sorts lexicographically.
func (b *BackupManager) prune(name string) {
	matches, err := filepath.Glob(filepath.Join(b.dir, name+"-*.zst"))
	if err != nil || len(matches) <= b.keep {
		return
	}
	sort.Strings(matches)
	for _, path := range matches[:len(matches)-b.keep] {
		if err := os.Remove(path); err != nil {
			b.logger.Warnf(providers.TypePersistence, "Could not prune backup %s: %s", path, err)
		}
	}
}

type noopBackups struct{}

func (n *noopBackups) Snapshot(_ string, _ []byte) {}
