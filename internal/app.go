package internal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/roju/auto-live-recorder/internal/autosave"
	"github.com/roju/auto-live-recorder/internal/models"
	"github.com/roju/auto-live-recorder/internal/pathcheck"
	"github.com/roju/auto-live-recorder/internal/platforms"
	"github.com/roju/auto-live-recorder/internal/providers"
	"github.com/roju/auto-live-recorder/internal/stores"
	"github.com/roju/auto-live-recorder/internal/structures"
	"github.com/roju/auto-live-recorder/internal/template"
	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// App is the desktop shell bound to the frontend. All state flows through
// the two stores; the shell adds dialogs, URL handling and the optional
// localhost debug listener.
type App struct {
	ctx       context.Context
	conf      *structures.Config
	logger    providers.Logger
	streamers stores.StreamerStoreInterface
	prefs     stores.PreferenceStoreInterface
	tplBinder *autosave.Binder[string]
	startTime time.Time
	debugSrv  *http.Server
}

func NewApp(conf *structures.Config, logger providers.Logger, streamers stores.StreamerStoreInterface, prefs stores.PreferenceStoreInterface) *App {
	a := &App{
		conf:      conf,
		logger:    logger,
		streamers: streamers,
		prefs:     prefs,
		startTime: time.Now(),
	}
	a.tplBinder = autosave.New(conf.AutoSave.Debounce, func(tpl string) {
		if err := a.prefs.Persist(models.PreferenceChanges{VodPathTemplate: &tpl}); err != nil {
			a.logger.Errorf(providers.TypeUI, "Auto-save of vod path template failed: %s", err)
		}
	})
	return a
}

// Startup hydrates both stores and starts the debug listener. Called by the
// Wails runtime once the frontend is ready.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	a.logger.Infof(providers.TypeApp, "Starting %s", a.conf.AppName)

	a.prefs.Hydrate()
	if err := a.streamers.Hydrate(); err != nil {
		a.logger.Errorf(providers.TypeApp, "Initial streamer hydration failed: %s", err)
	}

	if a.conf.DebugServer.Enabled {
		a.startDebugServer()
	}
}

func (a *App) Shutdown(_ context.Context) {
	a.tplBinder.Close()
	if a.debugSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.debugSrv.Shutdown(ctx); err != nil {
			a.logger.Errorf(providers.TypeApp, "Debug server shutdown: %s", err)
		}
	}
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
}

// StreamerView is the JSON-safe projection of a Streamer for the frontend.
type StreamerView struct {
	ID              string `json:"id"`
	Platform        string `json:"platform"`
	PlatformDisplay string `json:"platform_display"`
	Username        string `json:"username"`
	BotStatus       string `json:"bot_status"`
	LiveStatus      string `json:"live_status"`
	LastLive        string `json:"last_live"`
	VODs            int    `json:"vods"`
	AutoRecord      bool   `json:"auto_record"`
	VodPath         string `json:"vod_path"`
}

func viewOf(s models.Streamer) StreamerView {
	return StreamerView{
		ID:              s.ID(),
		Platform:        s.Platform.Name,
		PlatformDisplay: s.Platform.DisplayName,
		Username:        s.Username,
		BotStatus:       string(s.BotStatus),
		LiveStatus:      string(s.LiveStatus),
		LastLive:        s.LastLive,
		VODs:            s.VODs,
		AutoRecord:      s.AutoRecord,
		VodPath:         s.VodPath,
	}
}

// HydrateStreamers re-fetches the persisted list and returns it.
func (a *App) HydrateStreamers() ([]StreamerView, error) {
	if err := a.streamers.Hydrate(); err != nil {
		return nil, err
	}
	return a.Streamers(), nil
}

func (a *App) Streamers() []StreamerView {
	list := a.streamers.List()
	out := make([]StreamerView, 0, len(list))
	for _, s := range list {
		out = append(out, viewOf(s))
	}
	return out
}

func (a *App) AddStreamer(platformName, username string, autoRecord bool, vodPath string) error {
	s, err := models.NewStreamer(platformName, username, models.BotMonitoring, models.LiveUnknown, models.LastLiveUnknown, 0, autoRecord, vodPath)
	if err != nil {
		return err
	}
	return a.streamers.Add(s)
}

func (a *App) RemoveStreamer(streamerID string) error {
	return a.streamers.Remove(streamerID)
}

func (a *App) RemoveAllStreamers() error {
	return a.streamers.RemoveAll()
}

func (a *App) SetStreamerPaused(streamerID string, paused bool) error {
	status := models.BotMonitoring
	if paused {
		status = models.BotPaused
	}
	return a.updateStreamer(streamerID, models.StreamerChanges{BotStatus: &status})
}

func (a *App) SetStreamerAutoRecord(streamerID string, autoRecord bool) error {
	return a.updateStreamer(streamerID, models.StreamerChanges{AutoRecord: &autoRecord})
}

func (a *App) SetStreamerVodPath(streamerID, vodPath string) error {
	return a.updateStreamer(streamerID, models.StreamerChanges{VodPath: &vodPath})
}

func (a *App) updateStreamer(streamerID string, changes models.StreamerChanges) error {
	for _, s := range a.streamers.List() {
		if s.ID() == streamerID {
			return a.streamers.Update(s, changes)
		}
	}
	return fmt.Errorf("no streamer with id %q", streamerID)
}

func (a *App) HydratePreferences() models.Preferences {
	return a.prefs.Hydrate()
}

func (a *App) Preferences() models.Preferences {
	return a.prefs.Get()
}

func (a *App) SetTheme(theme string) error {
	return a.prefs.Persist(models.PreferenceChanges{Theme: &theme})
}

func (a *App) SetRootFolder(folder string) error {
	return a.prefs.Persist(models.PreferenceChanges{RootFolder: &folder})
}

func (a *App) SetVodPathTemplate(tpl string) error {
	return a.prefs.Persist(models.PreferenceChanges{VodPathTemplate: &tpl})
}

// ObserveVodPathTemplate feeds the template field's current value as the
// user types; the store is updated once the field has been quiet for the
// configured debounce delay.
func (a *App) ObserveVodPathTemplate(value string) {
	a.tplBinder.Observe(value)
}

// DeriveVodFolder resolves the save directory for a platform/username pair
// from the current path template. Pure string work, no storage round trip.
func (a *App) DeriveVodFolder(platformName, username string) (string, error) {
	p, err := platforms.Resolve(platformName)
	if err != nil {
		return "", err
	}
	return template.Directory(a.prefs.Get().VodPathTemplate, p.DisplayName, username), nil
}

func (a *App) SetDashboardColumnVisibility(vis map[string]bool) error {
	return a.prefs.Persist(models.PreferenceChanges{DashboardColumnVisibility: vis})
}

// ParsedLiveURL is the result of matching a pasted URL against the platform
// registry.
type ParsedLiveURL struct {
	Platform string `json:"platform"`
	Username string `json:"username"`
}

// ParseLiveURL extracts the platform and username from a live or profile
// URL. An unmatched URL yields empty fields, not an error.
func (a *App) ParseLiveURL(url string) ParsedLiveURL {
	for _, p := range platforms.All() {
		if username := p.UsernameFromURL(url); username != "" {
			return ParsedLiveURL{Platform: p.Name, Username: username}
		}
	}
	return ParsedLiveURL{}
}

func (a *App) ChooseDirectory() (string, error) {
	dir, err := wailsruntime.OpenDirectoryDialog(a.ctx, wailsruntime.OpenDialogOptions{
		Title: "Choose a Directory",
	})
	if err != nil {
		return "", err
	}
	return dir, nil
}

func (a *App) ValidateDownloadPath(archiveFolder, userInput string) (string, error) {
	return pathcheck.ValidateDownloadPath(archiveFolder, userInput)
}

func (a *App) BrowserOpenURL(url string) {
	wailsruntime.BrowserOpenURL(a.ctx, url)
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Streamers     int     `json:"streamers"`
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(a.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Streamers:     len(a.streamers.List()),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func (a *App) startDebugServer() {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.health)
	mux.Handle("/metrics", promhttp.Handler())

	a.debugSrv = &http.Server{
		Addr:         a.conf.DebugServer.Addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		a.logger.Infof(providers.TypeApp, "Debug server listening on %s", a.conf.DebugServer.Addr)
		if err := a.debugSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Errorf(providers.TypeApp, "Debug server error: %s", err)
		}
	}()
}
