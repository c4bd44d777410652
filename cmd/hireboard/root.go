package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mkoster/hireboard/internal/config"
	"github.com/mkoster/hireboard/internal/logger"
	"github.com/mkoster/hireboard/internal/store"
)

const app = "hireboard"

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hireboard is the recruiter dashboard for interview management",
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hireboard.yaml in the current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("server.debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("server.json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Missing config file is fine: defaults plus flags and env cover the
	// CLI commands. A broken file is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			cobra.CheckErr(err)
		}
	}
}

// buildLogger constructs the zap logger from the loaded configuration.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.Server.JSON, cfg.Server.Debug)
}

// buildStore opens the configured store backend. The returned cleanup is
// a no-op for the REST backend.
func buildStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (store.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		dsn, err := config.DatabaseURL()
		if err != nil {
			return nil, nil, err
		}
		pg, err := store.ConnectPostgres(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		return pg, pg.Close, nil
	case config.BackendREST:
		apiKey, err := config.StoreAPIKey()
		if err != nil {
			return nil, nil, err
		}
		return store.NewRESTStore(cfg.Store.RESTURL, apiKey, log), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
