// Command listmodels is a connectivity and credential sanity check: it lists
// the models the configured credential can reach, one name per line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/Shahidshaik999/gemini-chatbot-go/internal/config"
	"github.com/Shahidshaik999/gemini-chatbot-go/internal/llm"
	"github.com/Shahidshaik999/gemini-chatbot-go/internal/logger"
)

var cli struct {
	Config   string `help:"Path to the config file." type:"path"`
	Verbose  bool   `help:"Also print display names." short:"v"`
	LogLevel string `help:"Log level (debug|info|warn|error)." name:"log-level"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("listmodels"),
		kong.Description("List the models available to the configured credential."),
	)

	if cli.Config != "" {
		os.Setenv("CONFIG_PATH", cli.Config)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Log.File)
	logger.SetLevel(cfg.Log.Level)

	ctx := context.Background()
	provider, err := llm.NewProvider(ctx, cfg.LLM)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize provider: %v\n", err)
		os.Exit(1)
	}
	defer provider.Close()

	// Single-shot diagnostic: any failure is printed and fatal, no retry.
	it := provider.Models(ctx)
	for {
		m, err := it.Next()
		if errors.Is(err, llm.Done) {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if cli.Verbose && m.DisplayName != "" {
			fmt.Printf("%s\t%s\n", m.Name, m.DisplayName)
		} else {
			fmt.Println(m.Name)
		}
	}
}
