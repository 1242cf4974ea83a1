package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/docfield/mcp-invoice-parser/internal/config"
	"github.com/docfield/mcp-invoice-parser/internal/mcp"
	"github.com/docfield/mcp-invoice-parser/internal/pdf"
)

// Version information - set during build
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			os.Exit(0)
		}
	}

	// Load configuration from command line flags and environment
	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set version from build information
	if version != "dev" {
		cfg.Version = version
	}

	// Configure logging based on mode
	setupLogging(cfg)

	// Create the invoice service
	pdfService, err := pdf.NewService(cfg.MaxFileSize, cfg.InvoiceDirectory)
	if err != nil {
		log.Fatalf("Failed to create invoice service: %v", err)
	}

	// Create the MCP server
	mcpServer, err := mcp.NewServer(cfg, pdfService)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	// Run based on mode
	switch {
	case cfg.IsStdioMode():
		runStdioMode(mcpServer)
	case cfg.IsServerMode():
		runServerMode(mcpServer, cfg)
	default:
		log.Fatalf("Unknown mode: %s", cfg.Mode)
	}
}

// setupLogging configures logging based on the server mode
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// In stdio mode, log to stderr to avoid interfering with MCP protocol
		if cfg.IsDebug() {
			log.SetOutput(os.Stderr)
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			// Suppress most logging in stdio mode unless debug is enabled
			devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
			if err == nil {
				log.SetOutput(devNull)
			} else {
				log.SetOutput(os.Stderr)
				log.SetFlags(0)
			}
		}
	} else {
		// In server mode, use standard logging
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// runStdioMode runs the server in stdio mode for MCP communication
func runStdioMode(mcpServer *mcp.Server) {
	ctx := context.Background()
	if err := mcpServer.Run(ctx); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}

// runServerMode runs the server in server mode with graceful shutdown
func runServerMode(mcpServer *mcp.Server, cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	// Start the server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP Invoice Parser in server mode on %s", cfg.Address())
		serverErr <- mcpServer.Run(ctx)
	}()

	// Wait for either a signal or server error
	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
		<-serverErr
		log.Println("Server shutdown complete")
	case err := <-serverErr:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("MCP Invoice Parser\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
