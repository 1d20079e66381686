package models

const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

const DefaultVodPathTemplate = "VODs/{platform}/{user}/{date}_{time}.mp4"

// Preferences holds the user settings persisted to preferences.toml.
type Preferences struct {
	Theme                     string          `toml:"theme" json:"theme"`
	RootFolder                string          `toml:"root_folder" json:"root_folder"`
	VodPathTemplate           string          `toml:"vod_path_template" json:"vod_path_template"`
	DashboardColumnVisibility map[string]bool `toml:"dashboard_column_visibility" json:"dashboard_column_visibility"`
}

// DefaultPreferences returns the hard-coded defaults. A non-hydrated store
// always hands these out, never a nil value.
func DefaultPreferences(downloadDir string) Preferences {
	return Preferences{
		Theme:           ThemeSystem,
		RootFolder:      downloadDir,
		VodPathTemplate: DefaultVodPathTemplate,
		DashboardColumnVisibility: map[string]bool{
			"last_live":   true,
			"vods":        true,
			"platform":    false,
			"auto_record": false,
		},
	}
}

// PreferenceChanges is a partial change set. Nil fields keep the current
// value; a non-nil column visibility map replaces the whole mapping.
type PreferenceChanges struct {
	Theme                     *string
	RootFolder                *string
	VodPathTemplate           *string
	DashboardColumnVisibility map[string]bool
}

// Apply returns a new Preferences with the change set merged over p.
func (p Preferences) Apply(c PreferenceChanges) Preferences {
	out := p
	out.DashboardColumnVisibility = copyVisibility(p.DashboardColumnVisibility)
	if c.Theme != nil {
		out.Theme = *c.Theme
	}
	if c.RootFolder != nil {
		out.RootFolder = *c.RootFolder
	}
	if c.VodPathTemplate != nil {
		out.VodPathTemplate = *c.VodPathTemplate
	}
	if c.DashboardColumnVisibility != nil {
		out.DashboardColumnVisibility = copyVisibility(c.DashboardColumnVisibility)
	}
	return out
}

// Clone returns a deep copy, so callers can hand Preferences to the UI
// without sharing the visibility map.
func (p Preferences) Clone() Preferences {
	out := p
	out.DashboardColumnVisibility = copyVisibility(p.DashboardColumnVisibility)
	return out
}

func copyVisibility(m map[string]bool) map[string]bool {
	if m == nil {
		return nil
	}
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
