// Package main is the finsight CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hyperjump/finsight/internal/cli"
	"github.com/hyperjump/finsight/internal/config"
	"github.com/hyperjump/finsight/internal/finance"
	"github.com/hyperjump/finsight/internal/models"
	"github.com/hyperjump/finsight/internal/server"
	"github.com/hyperjump/finsight/internal/storage"
	"github.com/hyperjump/finsight/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/finsight/config.yaml"

// loadConfig loads config from path. When path is the default, config.yaml in the current
// directory wins if it exists; when neither exists, defaults plus environment are used.
// Returns the config and the path that was actually loaded ("" for defaults only).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			cfg, err := config.Default()
			if err != nil {
				return nil, "", err
			}
			return cfg, "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	if err := config.LoadDotEnv(); err != nil {
		fmt.Printf("Failed to load .env: %v\n", err)
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "analyze":
		runAnalyze()
	case "status":
		runStatus()
	case "init":
		runInit()
	case "version", "--version", "-v":
		fmt.Printf("finsight version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (pipeline stages, provider calls)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(context.Background(), cfg, logger, nil)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	srv := server.NewServer(components.Pipeline, components.Storage, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func printAnalyzeUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: finsight analyze [flags] <ticker>\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  finsight analyze NVDA
  finsight analyze --output json AAPL
`)
}

func runAnalyze() {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	output := fs.String("output", "text", "output format: text or json")
	debug := fs.Bool("debug", false, "enable debug logging")
	fs.Usage = func() { printAnalyzeUsage(fs) }
	_ = fs.Parse(flagsFirst(os.Args[2:]))

	if fs.NArg() != 1 {
		printAnalyzeUsage(fs)
		os.Exit(1)
	}
	format, err := cli.ParseOutputFormat(*output)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ticker := fs.Arg(0)
	err = analyze(context.Background(), cfg, ticker, format, os.Stdout, logger)
	if errors.Is(err, finance.ErrFetch) {
		fmt.Fprintf(os.Stderr, "Could not fetch data for %s\n", models.NormalizeTicker(ticker))
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// analyze runs the pipeline once in-process and writes the result to w.
func analyze(ctx context.Context, cfg *config.Config, ticker string, format cli.OutputFormat, w io.Writer, logger *zap.Logger) error {
	components, err := initializeComponents(ctx, cfg, logger, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize components: %w", err)
	}
	defer components.Close()

	res, err := components.Pipeline.Run(ctx, ticker)
	if err != nil {
		return err
	}
	return cli.WriteAnalysis(w, res, format)
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	output := fs.String("output", "text", "output format: text or json")
	latest := fs.Int("latest", 5, "number of most recent stored articles to list")
	_ = fs.Parse(flagsFirst(os.Args[2:]))

	if fs.NArg() != 1 {
		fmt.Println("Usage: finsight status [flags] <ticker>")
		os.Exit(1)
	}
	format, err := cli.ParseOutputFormat(*output)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	st, err := tickerStatus(context.Background(), cfg, fs.Arg(0), *latest)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cli.WriteStatus(os.Stdout, st, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// tickerStatus reads what storage holds for ticker without touching any network provider.
func tickerStatus(ctx context.Context, cfg *config.Config, ticker string, latest int) (*cli.TickerStatus, error) {
	store, err := storage.New(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	st := &cli.TickerStatus{Ticker: models.NormalizeTicker(ticker)}
	snap, err := store.GetSnapshot(ctx, st.Ticker)
	switch {
	case err == nil:
		st.Snapshot = snap
	case !errors.Is(err, storage.ErrNotFound):
		return nil, err
	}
	if st.Articles, err = store.CountArticles(ctx, st.Ticker); err != nil {
		return nil, err
	}
	if latest > 0 {
		if st.Latest, err = store.ListArticles(ctx, st.Ticker, latest); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func runInit() {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "overwrite an existing file")
	_ = fs.Parse(os.Args[2:])

	path := "config.yaml"
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if err := writeDefaultConfig(path, *force); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}

// writeDefaultConfig writes the built-in defaults to path. Secrets are left empty;
// they come from the environment at load time.
func writeDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return config.Save(path, cfg)
}

// flagsFirst moves flags that follow the positional ticker in front of it, so
// "finsight analyze NVDA --output json" parses like "finsight analyze --output json NVDA".
func flagsFirst(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func printUsage() {
	fmt.Println(`finsight - Stock analysis from market data and recent news

Usage:
  finsight server [flags]             Start the HTTP server
  finsight analyze [flags] <ticker>   Analyze one ticker and print the result
  finsight status [flags] <ticker>    Show the stored snapshot and article count
  finsight init [--force] [path]      Write a default config file (default: ./config.yaml)
  finsight version                    Show version
  finsight help                       Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/finsight/config.yaml)
  --debug            Enable debug logging (pipeline stages, provider calls)

Analyze Flags:
  --config string    Config file path
  --output string    Output format: text or json (default: text)
  --debug            Enable debug logging

Status Flags:
  --config string    Config file path
  --output string    Output format: text or json (default: text)
  --latest int       Most recent stored articles to list (default: 5)

Environment:
  DATABASE_URL, QDRANT_URL, QDRANT_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY, ANTHROPIC_API_KEY,
  EODHD_API_KEY, ALPACA_API_KEY, ALPACA_API_SECRET (also read from ./.env)

Examples:
  finsight server
  finsight analyze NVDA
  finsight analyze --output json AAPL
  finsight status NVDA`)
}
