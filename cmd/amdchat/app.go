package main

import (
	"fmt"
	"io"
	"log/slog"

	"amdchat/pkg/ai"
	"amdchat/pkg/chat"
	"amdchat/pkg/config"
	"amdchat/pkg/conversation"
	"amdchat/pkg/logging"
)

// app is the wired pipeline shared by the TUI and the ask command.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	session *chat.Session
}

// loadConfig reads the config file, falling back to the default path.
func loadConfig(configPath string) (config.Config, error) {
	if configPath == "" {
		configPath = config.GetConfigPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newApp validates the configuration and builds the chat pipeline. It fails
// before any network activity when the credential is missing.
func newApp(configPath string, stderr io.Writer) (*app, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.Init(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: file logging disabled: %v\n", err)
	}

	provider, err := ai.NewOpenRouterProvider(cfg.OpenRouter)
	if err != nil {
		return nil, err
	}
	return newAppWithExchanger(cfg, ai.NewClient(provider, cfg, logger), logger), nil
}

func newAppWithExchanger(cfg config.Config, client chat.Exchanger, logger *slog.Logger) *app {
	store := conversation.New(cfg.SystemPrompt)
	session := chat.NewSession(client, store, cfg.SystemPrompt, logger)
	logger.Info("app_started", "session_id", session.ID(), "model", cfg.OpenRouter.Model)
	return &app{cfg: cfg, logger: logger, session: session}
}

func (a *app) Close() {
	a.session.Close()
	a.logger.Info("app_stopped", "session_id", a.session.ID())
}
