package models

// WireStreamer is the flat record shape used by the persistence service.
// Only the paused flag survives of the bot status; live-session state
// (recording, live status) is never persisted.
type WireStreamer struct {
	Platform   string `json:"platform"`
	Username   string `json:"username"`
	Paused     bool   `json:"paused"`
	LastLive   string `json:"last_live"`
	VODs       int    `json:"vods"`
	AutoRecord bool   `json:"auto_record"`
	VodPath    string `json:"vod_path"`
}

// StreamerListDocument is the persisted envelope for the streamer list.
type StreamerListDocument struct {
	Streamers []WireStreamer `json:"streamer-list"`
}

// ToWire converts a domain Streamer to its wire record.
func (s Streamer) ToWire() WireStreamer {
	return WireStreamer{
		Platform:   s.Platform.Name,
		Username:   s.Username,
		Paused:     s.BotStatus == BotPaused,
		LastLive:   s.LastLive,
		VODs:       s.VODs,
		AutoRecord: s.AutoRecord,
		VodPath:    s.VodPath,
	}
}

// StreamerFromWire decodes a wire record into a domain Streamer. Transient
// state resets: paused stays paused, everything else comes back as
// monitoring with live status unknown.
func StreamerFromWire(w WireStreamer) (Streamer, error) {
	botStatus := BotMonitoring
	if w.Paused {
		botStatus = BotPaused
	}
	return NewStreamer(w.Platform, w.Username, botStatus, LiveUnknown, w.LastLive, w.VODs, w.AutoRecord, w.VodPath)
}
