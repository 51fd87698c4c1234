package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/Shahidshaik999/gemini-chatbot-go/internal/config"
	"github.com/Shahidshaik999/gemini-chatbot-go/internal/llm"
	"github.com/Shahidshaik999/gemini-chatbot-go/internal/logger"
	"github.com/Shahidshaik999/gemini-chatbot-go/internal/session"
	"github.com/Shahidshaik999/gemini-chatbot-go/internal/telemetry"
)

var cli struct {
	Config      string  `help:"Path to the config file." type:"path"`
	Model       string  `help:"Remote model id (overrides config)."`
	Temperature float64 `help:"Sampling temperature (overrides config)." default:"-1"`
	LogLevel    string  `help:"Log level (debug|info|warn|error)." name:"log-level"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("chatbot"),
		kong.Description("Interactive Gemini chat assistant."),
	)

	if cli.Config != "" {
		os.Setenv("CONFIG_PATH", cli.Config)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cli.Model != "" {
		cfg.LLM.Model = cli.Model
	}
	if cli.Temperature >= 0 {
		cfg.LLM.Temperature = cli.Temperature
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}

	logger.Init(cfg.Log.File)
	logger.SetLevel(cfg.Log.Level)

	ctx := context.Background()
	tracer, meter, cleanup, err := telemetry.Init(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize telemetry: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	provider, err := llm.NewProvider(ctx, cfg.LLM)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize provider: %v\n", err)
		os.Exit(1)
	}
	defer provider.Close()

	fmt.Println("Welcome! I am your Gemini AI assistant.")
	fmt.Printf("Ask me anything about technology, science, history, or just chat! (type %q to exit)\n\n", session.Sentinel)

	sess := session.New(provider, os.Stdin, os.Stdout, tracer, meter)
	logger.L.Info("session started",
		"session_id", sess.ID(),
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model,
		"temperature", cfg.LLM.Temperature,
	)

	if err := sess.Run(ctx); err != nil {
		// The session already printed the error to the console.
		provider.Close()
		cleanup()
		os.Exit(1)
	}
}
