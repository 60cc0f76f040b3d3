package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"cineforge/config"
	"cineforge/generator"
	"cineforge/ratelimit"
	"cineforge/server"
	"cineforge/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	configPath := flag.String("config", "config.yaml", "path to config.yaml")
	addr := flag.String("addr", "", "http listen address (overrides config.server_addr)")
	flag.Parse()

	// Local dev convenience; deployments set real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	chain := buildChain(cfg)
	limiter := ratelimit.New(cfg.RateLimit.PerWindow, cfg.RateLimit.Window())
	stopSweeper := limiter.StartSweeper(cfg.RateLimit.Window())
	defer stopSweeper()

	srv, err := server.New(chain, store.New(), limiter)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	listen := cfg.ServerAddr
	if *addr != "" {
		listen = *addr
	}
	log.Printf("[main] CineForge backend listening on %s (%d provider tiers)", listen, len(chain.Clients()))
	if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildChain assembles the provider cascade in priority order. Tiers without
// credentials are skipped entirely; with none configured the chain runs in
// template-only mode.
func buildChain(cfg config.Config) *generator.Chain {
	var clients []generator.Client
	if cfg.Gemini.APIKey != "" {
		clients = append(clients, generator.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout()))
	}
	if cfg.HuggingFace.APIKey != "" {
		clients = append(clients, generator.NewHuggingFaceClient(cfg.HuggingFace.APIKey, cfg.HuggingFace.Model, cfg.HuggingFace.Timeout()))
	}
	if cfg.OpenAI.APIKey != "" {
		openaiClient, err := generator.NewOpenAIClient(generator.OpenAISettings{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
			Timeout: cfg.OpenAI.Timeout(),
		})
		if err != nil {
			log.Printf("[main] openai tier disabled: %v", err)
		} else {
			clients = append(clients, openaiClient)
		}
	}
	return generator.NewChain(clients...)
}
