package providers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/roju/auto-live-recorder/internal/structures"
	"github.com/spf13/viper"
)

const AppName = "AutoLiveRecorder"

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	configDir, err := UserConfigDir(AppName)
	if err != nil {
		return nil, err
	}

	configPath := flags.ConfigPath
	if configPath == "" {
		configPath = filepath.Join(configDir, "config.yaml")
	}

	v := viper.New()
	filename := filepath.Base(configPath)
	v.AddConfigPath(filepath.Dir(configPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", filepath.Join(configDir, "logs"))
	v.SetDefault("persistence.dir", configDir)
	v.SetDefault("backup.enabled", true)
	v.SetDefault("backup.keep", 5)
	v.SetDefault("autoSave.debounce", 300*time.Millisecond)
	v.SetDefault("debugServer.enabled", false)
	v.SetDefault("debugServer.addr", "127.0.0.1:6363")

	v.BindEnv("logger.level", "ALR_LOG_LEVEL")
	v.BindEnv("persistence.dir", "ALR_DATA_DIR")
	v.BindEnv("backup.enabled", "ALR_BACKUP_ENABLED")
	v.BindEnv("autoSave.debounce", "ALR_AUTOSAVE_DEBOUNCE")
	v.BindEnv("debugServer.enabled", "ALR_DEBUG_SERVER")

	// The config file is optional for a desktop install; defaults cover
	// a fresh profile.
	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(conf.Logger.Dir, 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(conf.Persistence.Dir, 0755); err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = configPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

// UserConfigDir returns (and creates) the per-OS config directory for the app.
func UserConfigDir(appName string) (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("LOCALAPPDATA")
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, "Library", "Preferences")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}

	fullPath := filepath.Join(base, appName)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		return "", err
	}
	return fullPath, nil
}
