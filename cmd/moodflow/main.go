// MoodFlow: a local mood journal served over MCP.
//
// Entries live in a SQLite file and the mood/tag/goal vocabulary in a JSON
// document, both in the data directory. A host application (an AI client
// or a thin UI shell) drives the journal through stdin/stdout.
//
// Usage:
//
//	moodflow serve    # Start MCP server (stdio transport)
//	moodflow version  # Print the version
package main

import (
	"fmt"
	"os"

	"github.com/HendryAvila/moodflow/internal/config"
	"github.com/HendryAvila/moodflow/internal/logging"
	moodserver "github.com/HendryAvila/moodflow/internal/server"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("moodflow v%s\n", moodserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, os.Stderr)

	s, cleanup, err := moodserver.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// ServeStdio handles SIGINT/SIGTERM itself and returns on shutdown.
	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `MoodFlow v%s: local mood journal (MCP server)

Usage:
  moodflow serve     Start the MCP server (stdio transport)
  moodflow version   Print the version

Environment (a .env file in the working directory is read first):
  MOODFLOW_DATA_DIR       Directory for the journal and settings (default: .)
  MOODFLOW_DB_FILE        Journal database file name (default: moodflow.db)
  MOODFLOW_SETTINGS_FILE  Settings document (default: settings.json)
  MOODFLOW_LOG_LEVEL      debug, info, warn or error (default: info)
  MOODFLOW_RECENT_LIMIT   Entries shown by mood_history (default: 20)

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "moodflow": {
        "command": "moodflow",
        "args": ["serve"]
      }
    }
  }
`, moodserver.Version)
}
