package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mkoster/hireboard/internal/assistant"
	"github.com/mkoster/hireboard/internal/config"
	"github.com/mkoster/hireboard/internal/ingest"
	"github.com/mkoster/hireboard/internal/llm"
	"github.com/mkoster/hireboard/internal/questions"
	"github.com/mkoster/hireboard/internal/server"
	"github.com/mkoster/hireboard/internal/session"
	"github.com/mkoster/hireboard/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8080, "listen port (overrides server.port)")
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	backend, closeStore, err := buildStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()
	collections := store.NewCollections(backend)

	jwtSecret, err := config.JWTSecret()
	if err != nil {
		return err
	}
	apiKey, err := config.StoreAPIKey()
	if err != nil {
		return err
	}
	authClient := session.NewClient(cfg.Auth.URL, apiKey, log)

	chat, suggester, closeLLM, err := buildAssistant(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeLLM()

	srv := server.New(server.Config{
		Port:        cfg.Server.Port,
		Collections: collections,
		Questions:   questions.NewManager(collections, log),
		Assistant:   chat,
		Suggester:   suggester,
		Auth:        authClient,
		Verifier:    session.NewVerifier(jwtSecret),
		Importer:    ingest.NewImporter(cfg.Ingest.UseBrowser, log),
		Logger:      log,
	})

	log.Info("starting hireboard",
		zap.Int("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Backend),
		zap.String("assistant", cfg.Assistant.Provider),
	)
	return srv.Start()
}

// buildAssistant selects the chat provider and builds the question
// suggester. The suggester always needs a Gemini client since the http
// provider has no JSON mode.
func buildAssistant(ctx context.Context, cfg *config.Config, log *zap.Logger) (assistant.Assistant, *assistant.Suggester, func(), error) {
	geminiKey, err := config.GeminiAPIKey()
	if err != nil {
		return nil, nil, nil, err
	}

	llmCfg := llm.DefaultConfig()
	if cfg.Assistant.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierStandard, cfg.Assistant.Model)
	}
	client, err := llm.NewGeminiClient(ctx, llmCfg, geminiKey)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("building LLM client: %w", err)
	}
	closeLLM := func() { _ = client.Close() }

	var chat assistant.Assistant
	switch cfg.Assistant.Provider {
	case config.ProviderHTTP:
		chat = assistant.NewHTTPAssistant(cfg.Assistant.Endpoint, log)
	case config.ProviderGemini:
		chat = assistant.NewGeminiAssistant(client, log)
	default:
		closeLLM()
		return nil, nil, nil, fmt.Errorf("unknown assistant provider %q", cfg.Assistant.Provider)
	}

	return chat, assistant.NewSuggester(client), closeLLM, nil
}
