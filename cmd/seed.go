package cmd

import (
	"context"
	"os"

	"go.uber.org/zap"

	"droscher.com/CookBook/configs"
	"droscher.com/CookBook/pkg/repository"
	"droscher.com/CookBook/pkg/seed"
)

type SeedCmd struct {
	ConfigFile string `default:".CookBook.toml" help:"Path to config file"  short:"c"`
	File       string `help:"YAML catalog to load"  required:""     short:"f" type:"existingfile"`
}

func (s *SeedCmd) Run(cliContext *Context) error {
	logger := developmentLogger(cliContext.Debug)
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(s.ConfigFile, logger)
	if err != nil {
		logger.Error("error loading config", zap.Error(err))

		return err
	}

	file, err := os.Open(s.File)
	if err != nil {
		return err
	}
	defer file.Close()

	catalog, err := seed.Load(file)
	if err != nil {
		logger.Error("error reading catalog", zap.String("file", s.File), zap.Error(err))

		return err
	}

	repo, err := repository.Open(conf, logger)
	if err != nil {
		logger.Error("error connecting to database", zap.Error(err))

		return err
	}
	defer repo.Close()

	ctx := context.Background()

	if err := repo.Migrate(ctx); err != nil {
		return err
	}

	seeder := seed.NewSeeder(repository.NewCooks(repo), repository.NewDishes(repo), repository.NewIngredients(repo), logger)

	_, err = seeder.Seed(ctx, catalog)

	return err
}
