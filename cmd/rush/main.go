package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"rush/internal/evaluator"
	"rush/internal/history"
	rushlog "rush/internal/log"
	"rush/internal/object"
	"rush/internal/repl"
	"rush/internal/sys"
	"rush/internal/util"
	"syscall"
)

var (
	// Version is set at build time with -ldflags.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
	help      bool
	version   bool
	// config file
	configPath string
	// logging
	logLevel string
	logFile  string
	// repl config
	prompt       string
	capture      string
	historyDSN   string
	historySize  int
	debugAST     string
	errorContext bool
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	flag.StringVar(&configPath, "config", "", "Path to a TOML config file")
	// repl config
	flag.StringVar(&prompt, "prompt", util.DefaultPrompt, "Prompt shown before each line")
	flag.StringVar(&capture, "capture", "combined", "Command output to capture: stderr, stdout, combined")
	flag.StringVar(&historyDSN, "history", "", "History store: a sqlite path, sqlite://, mysql:// or postgres:// DSN")
	flag.IntVar(&historySize, "history-size", util.DefaultHistorySz, "Number of history entries to preload")
	flag.StringVar(&debugAST, "debug-ast", "", "Dump each parsed segment to stderr: text, json, yaml")
	flag.BoolVar(&errorContext, "error-context", false, "Mark the failing column under syntax errors")
	// log config
	flag.StringVar(&logLevel, "log-level", util.DefaultLogLevel, "Log level: trace, debug, info, warn, error, none")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
}

func main() {

	flag.Parse()

	if version {
		printVersion()
		return
	}

	if help {
		printHelp()
		return
	}

	config, err := loadConfiguration()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	logger, logCloser, err := rushlog.New(config.LogLevel, config.LogFile, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	slog.SetDefault(logger)

	code := run(config)
	logCloser.Close()
	os.Exit(code)
}

// loadConfiguration layers defaults, the rc file and explicitly set flags.
func loadConfiguration() (util.Configuration, error) {
	config := util.DefaultConfiguration(util.RushHomeFromEnv())
	config.Version = Version
	config.BuildDate = BuildDate
	config.Commit = Commit

	path, required := configPath, true
	if path == "" {
		home, _ := os.UserHomeDir()
		path, required = util.RcPath(config.RushHome, home), false
	}
	if err := config.LoadFile(path, required); err != nil {
		return config, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "prompt":
			config.Prompt = prompt
		case "capture":
			config.Capture = capture
		case "history":
			config.HistoryDSN = historyDSN
		case "history-size":
			config.HistorySize = historySize
		case "debug-ast":
			config.DebugAST = debugAST
		case "error-context":
			config.ErrorContext = errorContext
		case "log-level":
			config.LogLevel = logLevel
		case "log-file":
			config.LogFile = logFile
		}
	})

	return config, config.Validate()
}

func run(config util.Configuration) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	mode, err := sys.ParseCapture(config.Capture)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}
	runner := &sys.ExecRunner{Capture: mode, Stdout: os.Stdout, Stderr: os.Stderr}

	var store *history.Store
	if config.HistoryDSN != "" {
		store, err = history.Open(ctx, config.HistoryDSN)
		if err != nil {
			slog.Warn("history disabled", slog.Any("error", err))
			store = nil
		} else {
			defer store.Close()
		}
	}

	session := &repl.Repl{
		Out:          os.Stdout,
		ErrOut:       os.Stderr,
		Evaluator:    evaluator.New(object.NewEnvironment(), runner),
		Prompt:       config.Prompt,
		DebugAST:     config.DebugAST,
		ErrorContext: config.ErrorContext,
	}
	if store != nil {
		session.History = store
	}

	if isTerminal(os.Stdin) {
		reader := repl.NewLinerReader()
		defer reader.Close()
		if store != nil {
			reader.Preload(recentInputs(ctx, store, config.HistorySize))
		}
		session.Reader = reader

		// keep Ctrl-C during a running command from ending the session;
		// the child still receives it
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		defer signal.Stop(sigint)
		go func() {
			for range sigint {
				slog.Debug("interrupt received")
			}
		}()
	} else {
		session.Reader = repl.NewScannerReader(os.Stdin, nil)
	}

	slog.Info("starting rush",
		slog.String("version", config.Version),
		slog.String("capture", config.Capture),
		slog.Bool("history", store != nil),
	)

	if err := session.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}

func recentInputs(ctx context.Context, store *history.Store, n int) []string {
	entries, err := store.Recent(ctx, n)
	if err != nil {
		slog.Warn("failed to preload history", slog.Any("error", err))
		return nil
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Input)
	}
	return lines
}

func isTerminal(w io.Reader) bool {
	if f, ok := w.(*os.File); ok {
		fi, err := f.Stat()
		if err != nil {
			return false
		}
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func printVersion() {

	fmt.Printf("rush version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: rush [options]

Options:
  -config <path>        Read settings from a TOML file. Default is $RUSH_HOME/rushrc.toml or ~/.rushrc.toml.
  -prompt <text>        Prompt shown before each line. Default is '>> '.
  -capture <mode>       Command output returned as a value: stderr, stdout, combined. Default is 'combined'.
  -history <dsn>        History store: a sqlite path, sqlite://, mysql:// or postgres:// DSN.
  -history-size <n>     Number of history entries to preload into the line editor. Default is 500.
  -debug-ast <format>   Dump each parsed segment to stderr as text, json or yaml.
  -error-context        Mark the failing column under syntax errors.
  -log-level <level>    Set the log level: trace, debug, info, warn, error, none. Default is 'none'.
  -log-file <path>      Specify a log file to write logs. Default is stderr.
  -help                 Display this help information and exit.
  -version              Display version information and exit.

Details:
Each line is split on ';' and every segment is evaluated on its own. A segment
that starts with a word runs that word as a program; anything else is an
expression. Prefix a segment with ':' to force expression mode.

Examples:
  >> 1 + 2 * 3
  7 : Num
  >> if 1 < 2 then true else false
  true : Bool
  >> echo hello (40 + 2)
  hello 42 : Sym

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, Version, BuildDate, Commit)
}
