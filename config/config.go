// Package config loads and holds the runtime configuration for the
// skin-menu include compiler: where the declarative configuration lives,
// where the user-customization overlay and fingerprint file live, which
// output paths to write, and the ambient logging setup.
package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/yaoapp/kun/exception"
	"github.com/yaoapp/kun/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Conf is the process-wide configuration, populated by Init.
var Conf Config

// LogOutput is the rotating log file writer.
var LogOutput io.WriteCloser

// Config holds every knob the build pipeline reads at startup.
type Config struct {
	Root string `env:"SKINSHORTCUTS_ROOT"`
	Mode string `env:"SKINSHORTCUTS_MODE" envDefault:"production"`

	// ShortcutsDir is the directory containing menus.xml, widgets.xml,
	// backgrounds.xml, properties.xml, templates.xml and views.xml.
	ShortcutsDir string `env:"SKINSHORTCUTS_DIR" envDefault:"shortcuts"`

	// UserDataFile is the path to the JSON user-customization overlay.
	UserDataFile string `env:"SKINSHORTCUTS_USERDATA" envDefault:"userdata.json"`

	// OutputPaths is every location the merged <includes> document is
	// written to (atomically, to every path).
	OutputPaths []string `env:"SKINSHORTCUTS_OUTPUT" envSeparator:"," envDefault:"includes.xml"`

	// FingerprintFile stores the hash-gate's persisted fingerprint map.
	FingerprintFile string `env:"SKINSHORTCUTS_FINGERPRINT" envDefault:".skinshortcuts.hash"`

	// Metadata folded into the hash gate's fingerprint alongside file
	// digests, so a script or host upgrade forces a rebuild.
	ScriptVersion string `env:"SKINSHORTCUTS_SCRIPT_VERSION" envDefault:"1.0.0"`
	SkinDir       string `env:"SKINSHORTCUTS_SKIN_DIR"`
	HostVersion   string `env:"SKINSHORTCUTS_HOST_VERSION"`

	Log           string `env:"SKINSHORTCUTS_LOG"`
	LogLevel      string `env:"SKINSHORTCUTS_LOG_LEVEL" envDefault:"info"`
	LogMode       string `env:"SKINSHORTCUTS_LOG_MODE"`
	LogMaxSize    int    `env:"SKINSHORTCUTS_LOG_MAXSIZE" envDefault:"100"`
	LogMaxBackups int    `env:"SKINSHORTCUTS_LOG_MAXBACKUPS" envDefault:"5"`
	LogMaxAge     int    `env:"SKINSHORTCUTS_LOG_MAXAGE" envDefault:"30"`
	LogLocalTime  bool   `env:"SKINSHORTCUTS_LOG_LOCALTIME" envDefault:"true"`
}

func init() {
	Init()
}

// Init takes the application root from SKINSHORTCUTS_ROOT (or the
// current directory when unset) and loads Conf, reading the .env file in
// that root when one exists.
func Init() {
	root := os.Getenv("SKINSHORTCUTS_ROOT")
	if root == "" {
		root = "."
	}

	filename, _ := filepath.Abs(filepath.Join(root, ".env"))
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		Conf = LoadWithRoot(root)
		ApplyMode()
		return
	}

	Conf = LoadFromWithRoot(filename, root)
	ApplyMode()
}

// ApplyMode switches logging verbosity and format for the configured mode.
func ApplyMode() {
	switch Conf.Mode {
	case "production":
		Production()
	case "development":
		Development()
	}
}

// LoadFrom loads configuration from a specific .env file.
func LoadFrom(envfile string) Config {
	return LoadFromWithRoot(envfile, "")
}

// LoadFromWithRoot loads configuration from a specific .env file with an
// explicit root override.
func LoadFromWithRoot(envfile string, root string) Config {
	file, err := filepath.Abs(envfile)
	if err != nil {
		cfg := LoadWithRoot(root)
		ReloadLog()
		return cfg
	}

	godotenv.Overload(file)
	cfg := LoadWithRoot(root)
	ReloadLog()
	return cfg
}

// Load loads configuration using only environment variables.
func Load() Config {
	return LoadWithRoot("")
}

// LoadWithRoot loads configuration, resolving every relative path
// (shortcuts dir, user-data file, fingerprint file, outputs) against root.
func LoadWithRoot(root string) Config {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		exception.New("can't read config: %s", 500, err.Error()).Throw()
	}

	if root != "" {
		cfg.Root, _ = filepath.Abs(root)
	} else if cfg.Root != "" {
		cfg.Root, _ = filepath.Abs(cfg.Root)
	} else {
		cfg.Root, _ = filepath.Abs(".")
	}

	if !filepath.IsAbs(cfg.ShortcutsDir) {
		cfg.ShortcutsDir = filepath.Join(cfg.Root, cfg.ShortcutsDir)
	}
	if !filepath.IsAbs(cfg.UserDataFile) {
		cfg.UserDataFile = filepath.Join(cfg.Root, cfg.UserDataFile)
	}
	if !filepath.IsAbs(cfg.FingerprintFile) {
		cfg.FingerprintFile = filepath.Join(cfg.Root, cfg.FingerprintFile)
	}
	for i, p := range cfg.OutputPaths {
		if !filepath.IsAbs(p) {
			cfg.OutputPaths[i] = filepath.Join(cfg.Root, p)
		}
	}

	return cfg
}

func setLogLevel() {
	level := int(log.InfoLevel)
	switch strings.ToLower(Conf.LogLevel) {
	case "trace":
		level = int(log.TraceLevel)
	case "debug":
		level = int(log.DebugLevel)
	case "info":
		level = int(log.InfoLevel)
	case "warn":
		level = int(log.WarnLevel)
	case "error":
		level = int(log.ErrorLevel)
	default:
		switch Conf.Mode {
		case "production":
			level = int(log.ErrorLevel)
		case "development":
			level = int(log.TraceLevel)
		}
	}
	log.SetLevel(log.Level(level))
}

// Production switches to production logging (text/JSON, error-level default).
func Production() {
	os.Setenv("SKINSHORTCUTS_MODE", "production")
	Conf.Mode = "production"
	setLogLevel()
	log.SetFormatter(log.TEXT)
	if Conf.LogMode == "JSON" {
		log.SetFormatter(log.JSON)
	}
	ReloadLog()
}

// Development switches to development logging (trace-level default).
func Development() {
	os.Setenv("SKINSHORTCUTS_MODE", "development")
	Conf.Mode = "development"
	setLogLevel()
	log.SetFormatter(log.TEXT)
	if Conf.LogMode == "JSON" {
		log.SetFormatter(log.JSON)
	}
	ReloadLog()
}

// ReloadLog closes and reopens the rotating log file.
func ReloadLog() {
	CloseLog()
	OpenLog()
}

// OpenLog opens (or creates) the rotating log file.
func OpenLog() {
	if Conf.Log == "" {
		Conf.Log = filepath.Join(Conf.Root, "logs", "skinshortcuts.log")
	}
	if !filepath.IsAbs(Conf.Log) {
		Conf.Log = filepath.Join(Conf.Root, Conf.Log)
	}

	logfile, err := filepath.Abs(Conf.Log)
	if err != nil {
		return
	}
	logpath := filepath.Dir(logfile)

	if _, err := os.Stat(logpath); errors.Is(err, os.ErrNotExist) {
		if mkErr := os.MkdirAll(logpath, 0755); mkErr != nil {
			devnull, _ := os.OpenFile(os.DevNull, os.O_WRONLY, 0666)
			log.SetOutput(devnull)
			return
		}
	}

	LogOutput = &lumberjack.Logger{
		Filename:   logfile,
		MaxSize:    Conf.LogMaxSize,
		MaxBackups: Conf.LogMaxBackups,
		MaxAge:     Conf.LogMaxAge,
		LocalTime:  Conf.LogLocalTime,
	}
	log.SetOutput(LogOutput)
}

// CloseLog closes the rotating log file.
func CloseLog() {
	if LogOutput != nil {
		if err := LogOutput.Close(); err != nil {
			log.Error("failed to close log output: %v", err)
		}
	}
}

// IsDevelopment reports whether the current mode is development.
func IsDevelopment() bool {
	return Conf.Mode == "development"
}
