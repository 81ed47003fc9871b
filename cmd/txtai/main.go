package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	logging "github.com/mutablelogic/go-txtai/pkg/logging"
	tracing "github.com/mutablelogic/go-txtai/pkg/tracing"
	version "github.com/mutablelogic/go-txtai/pkg/version"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// Logging
	LogLevel string `name:"log-level" env:"LOG_LEVEL" help:"Log level (trace, debug, info, warn, error, silent)" default:"info"`
	LogFile  string `name:"log-file" env:"LOG_FILE" help:"Log file (defaults to a file in the user cache directory for the console)" optional:""`

	// HTTP client
	HTTP struct {
		Endpoint string        `name:"endpoint" env:"API_URL" help:"txtai service endpoint" default:"http://localhost:8000"`
		Timeout  time.Duration `name:"timeout" help:"Request timeout, zero for none" default:"0s"`
	} `embed:""`

	// Private fields
	ctx      context.Context
	execName string
	tracer   trace.Tracer
	logger   *logging.Logger
	defaults *Defaults
	closers  []io.Closer
}

type CLI struct {
	Globals
	AgentCommands
	WorkflowCommands
	ScrapeCommands
	ConsoleCommands
	VersionCommands
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultsFile = "defaults.json"
	logFile      = "console.log"
)

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	name := execName()

	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(name),
		kong.Description("txtai agent and workflow console"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = name

	// Logging to stderr, the console replaces this with a file
	cli.Globals.logger = logging.New(nil, cli.LogLevel)
	if cli.LogFile != "" {
		logger, closer, err := logging.NewFile(cli.LogFile, cli.LogLevel)
		cmd.FatalIfErrorf(err)
		cli.Globals.logger = logger
		cli.Globals.closers = append(cli.Globals.closers, closer)
	}

	// Tracing, when an OTLP endpoint is set
	if err := tracing.Init(ctx, name, version.Version()); err != nil {
		cmd.FatalIfErrorf(err)
	} else if tracing.Enabled() {
		cli.Globals.tracer = tracing.Tracer(name)
	}

	// Persisted defaults
	if path, err := defaultsPath(); err != nil {
		cmd.FatalIfErrorf(err)
	} else if defaults, err := NewDefaults(path); err != nil {
		cmd.FatalIfErrorf(err)
	} else {
		cli.Globals.defaults = defaults
	}

	// Run the command
	err := cmd.Run(&cli.Globals)
	cli.Globals.close()
	cmd.FatalIfErrorf(err)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}

// defaultsPath returns the path of the defaults file in the user config
// directory.
func defaultsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "txtai", defaultsFile), nil
}

// consoleLogPath returns the path of the console log file in the user
// cache directory.
func consoleLogPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "txtai", logFile), nil
}

// close flushes the tracer and releases any log files.
func (g *Globals) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var result error
	if err := tracing.Shutdown(ctx); err != nil {
		result = errors.Join(result, err)
	}
	for _, closer := range g.closers {
		result = errors.Join(result, closer.Close())
	}
	if result != nil {
		g.logger.Warn().Err(result).Msg("shutdown")
	}
}
