package structures

import "time"

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

type PersistenceConfig struct {
	Dir string `yaml:"dir" validate:"required"`
}

type BackupConfig struct {
	Enabled bool `yaml:"enabled"`
	Keep    int  `yaml:"keep" validate:"min:0"`
}

type AutoSaveConfig struct {
	Debounce time.Duration `yaml:"debounce" validate:"required|min:1"`
}

type DebugServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Logger      LoggerConfig      `yaml:"logger"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Backup      BackupConfig      `yaml:"backup"`
	AutoSave    AutoSaveConfig    `yaml:"autoSave"`
	DebugServer DebugServerConfig `yaml:"debugServer"`
}
