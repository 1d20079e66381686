package models

import (
	"errors"

	"github.com/roju/auto-live-recorder/internal/platforms"
)

type BotStatus string

const (
	BotPaused     BotStatus = "paused"
	BotMonitoring BotStatus = "monitoring"
	BotRecording  BotStatus = "recording"
	BotError      BotStatus = "error"
)

type LiveStatus string

const (
	LiveLive    LiveStatus = "live"
	LiveLagging LiveStatus = "lagging"
	LiveOffline LiveStatus = "offline"
	LiveUnknown LiveStatus = "unknown"
	LiveError   LiveStatus = "error"
)

// LastLiveUnknown is the sentinel stored when a streamer has never been
// seen live. Otherwise LastLive holds an ISO-8601 timestamp string.
const LastLiveUnknown = "unknown"

var ErrEmptyUsername = errors.New("streamer username must be non-empty")

// Streamer is an immutable value describing one monitored account.
// Mutation always goes through CloneWith; instances are compared by ID,
// never by reference.
type Streamer struct {
	Platform   platforms.StreamingPlatform
	Username   string
	BotStatus  BotStatus
	LiveStatus LiveStatus
	LastLive   string
	VODs       int
	AutoRecord bool
	// VodPath overrides the template-derived save path; empty means
	// "use the default".
	VodPath string
}

// NewStreamer builds a Streamer, resolving the platform key against the
// registry. An unknown platform is a construction-time error.
func NewStreamer(platformName, username string, botStatus BotStatus, liveStatus LiveStatus, lastLive string, vods int, autoRecord bool, vodPath string) (Streamer, error) {
	platform, err := platforms.Resolve(platformName)
	if err != nil {
		return Streamer{}, err
	}
	if username == "" {
		return Streamer{}, ErrEmptyUsername
	}
	if lastLive == "" {
		lastLive = LastLiveUnknown
	}
	return Streamer{
		Platform:   platform,
		Username:   username,
		BotStatus:  botStatus,
		LiveStatus: liveStatus,
		LastLive:   lastLive,
		VODs:       vods,
		AutoRecord: autoRecord,
		VodPath:    vodPath,
	}, nil
}

// ID is the derived identity, unique across the list.
func (s Streamer) ID() string {
	return s.Platform.Name + "-" + s.Username
}

// StreamerChanges is a partial change set applied by CloneWith. Nil fields
// keep the original value. Platform and username are identity and cannot
// change.
type StreamerChanges struct {
	BotStatus  *BotStatus
	LiveStatus *LiveStatus
	LastLive   *string
	VODs       *int
	AutoRecord *bool
	VodPath    *string
}

// CloneWith returns a new Streamer with the change set merged over s.
func (s Streamer) CloneWith(c StreamerChanges) Streamer {
	out := s
	if c.BotStatus != nil {
		out.BotStatus = *c.BotStatus
	}
	if c.LiveStatus != nil {
		out.LiveStatus = *c.LiveStatus
	}
	if c.LastLive != nil {
		out.LastLive = *c.LastLive
	}
	if c.VODs != nil {
		out.VODs = *c.VODs
	}
	if c.AutoRecord != nil {
		out.AutoRecord = *c.AutoRecord
	}
	if c.VodPath != nil {
		out.VodPath = *c.VodPath
	}
	return out
}
