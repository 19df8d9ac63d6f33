package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	Addr     string
	Provider string // gemini, openai or mock
	Store    string // file, sqlite or memory
	DataPath string

	TextModel  string
	ImageModel string
	TTSModel   string
	Voice      string
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("missing -addr")
	}
	switch c.Provider {
	case "gemini", "openai", "mock":
	default:
		return fmt.Errorf("unknown -provider %q (want gemini, openai or mock)", c.Provider)
	}
	switch c.Store {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown -store %q (want file, sqlite or memory)", c.Store)
	}
	if c.Store != "memory" && c.DataPath == "" {
		return errors.New("missing -data")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Addr:     ":8080",
		Provider: "gemini",
		Store:    "file",
		DataPath: filepath.FromSlash("data/archive.json"),
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.Provider, "provider", envOr("REFLECT_PROVIDER", cfg.Provider), "Generation provider: gemini, openai or mock")
	fs.StringVar(&cfg.Store, "store", envOr("REFLECT_STORE", cfg.Store), "Archive backend: file, sqlite or memory")
	fs.StringVar(&cfg.DataPath, "data", envOr("REFLECT_DATA", cfg.DataPath), "Archive path (file: JSON blob, sqlite: database file)")
	fs.StringVar(&cfg.TextModel, "text-model", "", "Override the text analysis model")
	fs.StringVar(&cfg.ImageModel, "image-model", "", "Override the image generation model")
	fs.StringVar(&cfg.TTSModel, "tts-model", "", "Override the speech synthesis model")
	fs.StringVar(&cfg.Voice, "voice", "", "Override the speech voice")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.DataPath != "" {
		cfg.DataPath = filepath.Clean(cfg.DataPath)
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
