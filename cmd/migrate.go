package cmd

import (
	"context"

	"go.uber.org/zap"

	"droscher.com/CookBook/configs"
	"droscher.com/CookBook/pkg/repository"
)

type MigrateCmd struct {
	ConfigFile string `default:".CookBook.toml" help:"Path to config file" short:"c"`
}

func (m *MigrateCmd) Run(cliContext *Context) error {
	logger := developmentLogger(cliContext.Debug)
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(m.ConfigFile, logger)
	if err != nil {
		logger.Error("error loading config", zap.Error(err))

		return err
	}

	repo, err := repository.Open(conf, logger)
	if err != nil {
		logger.Error("error connecting to database", zap.Error(err))

		return err
	}
	defer repo.Close()

	return repo.Migrate(context.Background())
}
