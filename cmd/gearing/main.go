package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chasinglogic/appdirs"
	"github.com/hashicorp/go-version"

	"github.com/treykane/cli-gearing/internal/app"
	"github.com/treykane/cli-gearing/internal/cli"
	"github.com/treykane/cli-gearing/internal/config"
	"github.com/treykane/cli-gearing/internal/logging"
	"github.com/treykane/cli-gearing/internal/store"
)

const appName = "cli-gearing"

// appVersion is overridden at build time with -ldflags "-X main.appVersion=...".
var appVersion = ""

var log = logging.New("main")

type options struct {
	level     logLevelFlag
	version   bool
	showDirs  bool
	noPersist bool
	args      []string
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(cli.ExitUsage)
	}
	if opts.level.set {
		logging.SetLevel(opts.level.value)
	}

	switch {
	case opts.version:
		fmt.Println(versionString(buildVersion()))
		return
	case opts.showDirs:
		showDirs(os.Stdout)
		return
	case len(opts.args) > 0:
		if !cli.IsSubcommand(opts.args[0]) {
			fmt.Fprintf(os.Stderr, "error: unknown command %q\n\n", opts.args[0])
			cli.PrintUsage(os.Stderr)
			os.Exit(cli.ExitUsage)
		}
		os.Exit(cli.Run(opts.args, os.Stdout, os.Stderr))
	}

	if err := runUI(opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cli.ExitError)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	opts.level.value = logLevelDefault()

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Var(&opts.level, "loglevel", "set log level (debug, info, warn, error)")
	fs.BoolVar(&opts.version, "version", false, "Show the version and exit")
	fs.BoolVar(&opts.showDirs, "show-dirs", false, "Show where settings, inputs and logs are stored")
	fs.BoolVar(&opts.noPersist, "no-persist", false, "Keep inputs in memory only")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] [calc|table|help ...]\n\n", appName)
		fmt.Fprintln(stderr, "Without a command the interactive calculator starts.")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.args = fs.Args()
	return opts, nil
}

func logLevelDefault() logLevelFlag {
	var l logLevelFlag
	if err := l.Set(os.Getenv("GEARING_LOG_LEVEL")); err != nil {
		l = logLevelFlag{}
	}
	l.set = false
	return l
}

func runUI(opts options) error {
	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrNotConfigured) {
		return err
	}

	if cfg.LogToFile {
		path, closer, err := logging.UseFile(appdirs.New(appName).UserLog())
		if err != nil {
			log.Warn("could not open log file", "error", err)
		} else {
			defer closer.Close()
			log.Debug("logging to file", "path", path)
		}
	}

	m := app.New(app.Options{
		Store:   openStore(cfg, opts.noPersist),
		Unit:    cfg.Unit(),
		Theme:   cfg.Theme,
		Version: buildVersion(),
	})
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// openStore returns the persistent input store, falling back to memory when
// the file cannot be read so the calculator still starts.
func openStore(cfg config.Config, noPersist bool) store.KV {
	if noPersist {
		return &store.Memory{}
	}
	path := cfg.StorePath
	if path == "" {
		path = store.DefaultPath()
	}
	f, err := store.Open(path)
	if err != nil {
		log.Warn("store unavailable, inputs will not be saved", "path", path, "error", err)
		return &store.Memory{}
	}
	return f
}

func showDirs(w io.Writer) {
	dirs := appdirs.New(appName)
	cfgPath, err := config.ConfigPath()
	if err != nil {
		cfgPath = "(unknown: " + err.Error() + ")"
	}
	fmt.Fprintf(w, "Settings: %s\n", cfgPath)
	fmt.Fprintf(w, "Inputs: %s\n", store.DefaultPath())
	fmt.Fprintf(w, "Logs: %s\n", dirs.UserLog())
}

// buildVersion parses appVersion. Development builds return nil.
func buildVersion() *version.Version {
	if appVersion == "" {
		return nil
	}
	v, err := version.NewVersion(appVersion)
	if err != nil {
		log.Warn("ignoring malformed build version", "version", appVersion, "error", err)
		return nil
	}
	return v
}

func versionString(v *version.Version) string {
	if v == nil {
		return appName + " (dev)"
	}
	return appName + " v" + v.String()
}
