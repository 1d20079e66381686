package persistence

import (
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/roju/auto-live-recorder/internal/structures"
	"github.com/roju/auto-live-recorder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backupConfig(dir string, keep int) *structures.Config {
	return &structures.Config{
		Persistence: structures.PersistenceConfig{Dir: dir},
		Backup:      structures.BackupConfig{Enabled: true, Keep: keep},
	}
}

func TestNewBackupManager_DisabledIsNoop(t *testing.T) {
	conf := &structures.Config{Backup: structures.BackupConfig{Enabled: false}}
	b, err := NewBackupManager(conf, &testutil.MockLogger{})
	require.NoError(t, err)

	_, ok := b.(*noopBackups)
	assert.True(t, ok)
}

func TestSnapshot_WritesCompressedCopy(t *testing.T) {
	dir := t.TempDir()
	b, err := NewBackupManager(backupConfig(dir, 5), &testutil.MockLogger{})
	require.NoError(t, err)
	mgr := b.(*BackupManager)

	data := []byte(`{"streamer-list": []}`)
	mgr.Snapshot("streamer-list", data)

	matches, err := filepath.Glob(filepath.Join(dir, "backups", "streamer-list-*.zst"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	restored, err := mgr.ReadSnapshot(matches[0])
	require.NoError(t, err)
	assert.Equal(t, data, restored)
}

func TestSnapshot_PrunesBeyondRetention(t *testing.T) {
	dir := t.TempDir()
	b, err := NewBackupManager(backupConfig(dir, 2), &testutil.MockLogger{})
	require.NoError(t, err)
	mgr := b.(*BackupManager)

	for i := 0; i < 4; i++ {
		mgr.Snapshot("preferences", []byte{byte('a' + i)})
		time.Sleep(3 * time.Millisecond) // distinct timestamps
	}

	matches, err := filepath.Glob(filepath.Join(dir, "backups", "preferences-*.zst"))
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// the newest snapshots survive
	sort.Strings(matches)
	restored, err := mgr.ReadSnapshot(matches[1])
	require.NoError(t, err)
	assert.Equal(t, []byte{'d'}, restored)
}
