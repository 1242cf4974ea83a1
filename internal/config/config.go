package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ModeStdio  = "stdio"
	ModeServer = "server"

	DefaultHost        = "127.0.0.1"
	DefaultPort        = 8080
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024

	// Permissions used when the invoice directory has to be created.
	DefaultDirPerm = 0o750
)

// envPrefix namespaces every environment variable, e.g. INVOICE_PARSER_DIR.
const envPrefix = "INVOICE_PARSER"

// Config holds the full runtime configuration of the server.
type Config struct {
	Mode string // ModeStdio or ModeServer
	Host string
	Port int

	// InvoiceDirectory bounds every file operation; paths outside it
	// are rejected by the service layer.
	InvoiceDirectory string

	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64
}

// DefaultConfig returns the configuration used when no flag or
// environment variable overrides it. The invoice directory defaults to
// the working directory so a bare invocation is immediately useful.
func DefaultConfig() *Config {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}

	return &Config{
		Mode:             ModeStdio,
		Host:             DefaultHost,
		Port:             DefaultPort,
		InvoiceDirectory: dir,
		Version:          "1.0.0",
		ServerName:       "mcp-invoice-parser",
		LogLevel:         DefaultLogLevel,
		MaxFileSize:      DefaultMaxFileSize,
	}
}

// LoadFromFlags builds the configuration from defaults, INVOICE_PARSER_*
// environment variables, and command line flags, in increasing order of
// precedence. A --version argument short-circuits with an error so the
// caller can print build information instead.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	registerFlags(cfg)
	pflag.Usage = printUsage

	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return nil, errors.New("version requested")
		}
	}

	pflag.Parse()

	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.InvoiceDirectory = viper.GetString("dir")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")

	if cfg.InvoiceDirectory != "" {
		if abs, err := filepath.Abs(cfg.InvoiceDirectory); err == nil {
			cfg.InvoiceDirectory = abs
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// registerFlags declares each setting once: viper default, pflag flag,
// and the binding between them.
func registerFlags(cfg *Config) {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	specs := []struct {
		name  string
		value interface{}
		usage string
	}{
		{"mode", cfg.Mode, "Run mode: 'stdio' for MCP standard I/O, 'server' for HTTP"},
		{"host", cfg.Host, "Listen address (server mode only)"},
		{"port", cfg.Port, "Listen port (server mode only)"},
		{"dir", cfg.InvoiceDirectory, "Directory containing invoice PDF files"},
		{"loglevel", cfg.LogLevel, "Log level: debug, info, warn, or error"},
		{"maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes"},
	}

	for _, s := range specs {
		viper.SetDefault(s.name, s.value)
		switch v := s.value.(type) {
		case string:
			pflag.String(s.name, v, s.usage)
		case int:
			pflag.Int(s.name, v, s.usage)
		case int64:
			pflag.Int64(s.name, v, s.usage)
		}
		_ = viper.BindPFlag(s.name, pflag.Lookup(s.name))
	}
}

func printUsage() {
	prog := os.Args[0]
	fmt.Fprintf(os.Stderr, "MCP Invoice Parser - extracts structured fields from invoice PDFs over MCP\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\nOptions:\n", prog)
	pflag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  %[1]s                            stdio mode over the working directory
  %[1]s --dir=/srv/invoices        stdio mode over a fixed directory
  %[1]s --mode=server --port=8081  HTTP mode

Every option can also be set through the environment with the
%[2]s_ prefix, e.g. %[2]s_DIR=/srv/invoices.
`, prog, envPrefix)
}

// Validate rejects inconsistent settings and creates the invoice
// directory when it does not exist yet.
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}
	if c.InvoiceDirectory == "" {
		return errors.New("invoice directory cannot be empty")
	}

	switch _, err := os.Stat(c.InvoiceDirectory); {
	case os.IsNotExist(err):
		if err := os.MkdirAll(c.InvoiceDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create invoice directory %s: %w", c.InvoiceDirectory, err)
		}
	case err != nil:
		return fmt.Errorf("cannot access invoice directory %s: %w", c.InvoiceDirectory, err)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the host:port the HTTP mode listens on.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug reports whether debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsServerMode reports whether the server runs in HTTP mode.
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode reports whether the server runs over standard I/O.
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, InvoiceDirectory: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Host, c.Port, c.InvoiceDirectory, c.LogLevel, c.MaxFileSize)
}
