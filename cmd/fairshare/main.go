package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"fairshare/internal/config"
	"fairshare/internal/imaginator"
	"fairshare/internal/mcp"
	"fairshare/internal/session"
	"fairshare/internal/store"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"list": true, "create": true, "select": true, "delete": true,
	"rename": true, "set": true, "show": true, "stories": true,
	"imagine": true, "story-delete": true,
	"export": true, "import": true, "serve": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version
// info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without
// args.
func printBanner() {
	fmt.Println(`
   __      _          _
  / _|__ _(_)_ _ ____| |_  __ _ _ _ ___
 |  _/ _' | | '_(_-< '  \/ _' | '_/ -_)
 |_| \__,_|_|_| /__/_||_\__,_|_| \___|

  Carbon-footprint scenario explorer

  Usage: fairshare <command> [options]
         fairshare serve        (web UI)
         fairshare --help

  MCP server mode requires piped input.`)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before store init (no store needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil, nil, nil, "")
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Best-effort: a local .env may carry OPENAI_API_KEY
	_ = godotenv.Load()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}
	baseDir := filepath.Join(homeDir, ".fairshare")

	database, err := store.Init(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	store.ConfigurePool(database, cfg)

	logger := zerolog.New(zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
		cw.Out = os.Stderr
	})).With().Timestamp().Logger()

	gateway := store.NewSQLite(database, logger)
	sess := session.New(context.Background(), gateway)

	im := newImaginator(sess, cfg, logger)

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(sess, im, cfg, baseDir)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'fairshare --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if err := mcp.Run(sess, im, cfg, baseDir, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newImaginator wires the story generator if an API key is configured.
// Without a key, generation surfaces are disabled rather than failing at
// startup.
func newImaginator(sess *session.Session, cfg *config.Config, logger zerolog.Logger) *imaginator.Imaginator {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = cfg.GeneratorAPIKey
	}
	if apiKey == "" {
		return nil
	}

	client, err := imaginator.NewClient(imaginator.ClientConfig{
		APIKey:  apiKey,
		BaseURL: cfg.GeneratorBaseURL,
		Model:   cfg.GeneratorModel,
		Timeout: time.Duration(cfg.GeneratorTimeoutSecs) * time.Second,
	}, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("story generator disabled")
		return nil
	}
	return imaginator.New(sess, client)
}
