//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"github.com/roju/auto-live-recorder/internal"
	"github.com/roju/auto-live-recorder/internal/persistence"
	"github.com/roju/auto-live-recorder/internal/providers"
	"github.com/roju/auto-live-recorder/internal/stores"
	"github.com/roju/auto-live-recorder/internal/structures"
)

func InitApp(flags *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,

		persistence.NewBackupManager,
		persistence.NewFileGateway,
		stores.NewStreamerStore,
		stores.NewPreferenceStore,
		internal.NewApp,
	)

	return nil, nil
}
