package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/movie-booth/internal/app"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envPrefix     = "MOVIE_BOOTH_"
	defaultDBPath = "movie-booth.db"
)

// ErrHelp is returned when --help was requested.
var ErrHelp = pflag.ErrHelp

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. A flag given on
// the command line wins over MOVIE_BOOTH_* variables, which win over the
// YAML file named by --config.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs, v := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return Config{}, fmt.Errorf("unexpected argument: %s", rest[0])
	}

	path := *v.configPath
	if !fs.Changed("config") {
		path = env[envName("config")]
	}
	fileValues, err := loadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := applyLayers(fs, env, fileValues); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			DBPath:        *v.db,
			CustomerID:    *v.customer,
			SeedPath:      *v.seed,
			Workers:       *v.workers,
			FetchTimeout:  *v.fetchTimeout,
			ClockInterval: *v.clockInterval,
			Width:         *v.width,
			Height:        *v.height,
			ShowFooter:    *v.footer,
			Verbose:       *v.verbose,
		},
		Logging: Logging{
			FilePath: *v.logFile,
			Trace:    *v.trace,
		},
		Features: Features{
			Verbose: *v.verbose,
		},
		Flags: map[string]string{
			"config":        path,
			"db":            *v.db,
			"customer":      strconv.Itoa(*v.customer),
			"seed":          *v.seed,
			"workers":       strconv.Itoa(*v.workers),
			"fetchTimeout":  v.fetchTimeout.String(),
			"clockInterval": v.clockInterval.String(),
			"width":         strconv.Itoa(*v.width),
			"height":        strconv.Itoa(*v.height),
			"footer":        strconv.FormatBool(*v.footer),
			"trace":         strconv.FormatBool(*v.trace),
			"verbose":       strconv.FormatBool(*v.verbose),
			"logFile":       *v.logFile,
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

// applyLayers fills every flag the command line left unset, first from the
// environment and then from the config file.
func applyLayers(fs *pflag.FlagSet, env, file map[string]string) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Changed {
			return
		}
		if v, ok := env[envName(f.Name)]; ok && strings.TrimSpace(v) != "" {
			if err := fs.Set(f.Name, v); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", envName(f.Name), err))
			}
			return
		}
		if v, ok := file[f.Name]; ok {
			if err := fs.Set(f.Name, v); err != nil {
				errs = append(errs, fmt.Errorf("config file %s: %w", f.Name, err))
			}
		}
	})
	return errors.Join(errs...)
}

// loadFile reads a flat YAML mapping keyed by flag name. An empty path
// yields no values.
func loadFile(path string) (map[string]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	values := make(map[string]string, len(raw))
	for key, value := range raw {
		if value == nil {
			continue
		}
		values[strings.ReplaceAll(key, "_", "-")] = fmt.Sprint(value)
	}
	return values, nil
}

func envName(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if errors.Is(err, ErrHelp) {
		fmt.Fprintln(os.Stderr, Usage())
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Usage returns the flag summary.
func Usage() string {
	fs, _ := newFlagSet()
	return "Usage: movie-booth --customer ID [flags]\n\n" + fs.FlagUsages() +
		"\nEvery flag can also be set through MOVIE_BOOTH_<FLAG> or the --config YAML file.\n"
}

type flagValues struct {
	configPath    *string
	db            *string
	customer      *int
	seed          *string
	workers       *int
	fetchTimeout  *time.Duration
	clockInterval *time.Duration
	width         *int
	height        *int
	footer        *bool
	trace         *bool
	verbose       *bool
	logFile       *string
}

func newFlagSet() (*pflag.FlagSet, flagValues) {
	fs := pflag.NewFlagSet("movie-booth", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	v := flagValues{
		configPath:    fs.String("config", "", "path to a YAML file with default option values"),
		db:            fs.String("db", defaultDBPath, "path to the SQLite database"),
		customer:      fs.Int("customer", 0, "id of the signed-in customer (required)"),
		seed:          fs.String("seed", "", "YAML fixture loaded into the database at start"),
		workers:       fs.Int("workers", 4, "number of concurrent background fetches"),
		fetchTimeout:  fs.Duration("fetch-timeout", 10*time.Second, "limit for a single fetch (0 disables)"),
		clockInterval: fs.Duration("clock-interval", time.Second, "refresh interval of the header clock"),
		width:         fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)"),
		height:        fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)"),
		footer:        fs.Bool("footer", false, "enable footer hint row (disabled by default)"),
		trace:         fs.Bool("trace", false, "enable verbose JSON trace logging"),
		verbose:       fs.Bool("verbose", false, "show background task counts in the status line"),
		logFile:       fs.String("log-file", "", "path to the log file"),
	}
	return fs, v
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	a := cfg.App
	switch {
	case strings.TrimSpace(a.DBPath) == "":
		return errors.New("db path is required")
	case a.CustomerID <= 0:
		return fmt.Errorf("customer must be > 0 (got %d)", a.CustomerID)
	case a.Workers <= 0:
		return fmt.Errorf("workers must be > 0 (got %d)", a.Workers)
	case a.FetchTimeout < 0:
		return fmt.Errorf("fetch-timeout must be >= 0 (got %s)", a.FetchTimeout)
	case a.ClockInterval <= 0:
		return fmt.Errorf("clock-interval must be > 0 (got %s)", a.ClockInterval)
	case a.Width < 0:
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	case a.Height < 0:
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	}
	return nil
}
