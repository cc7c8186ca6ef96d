package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

var (
	errConfigRead = errors.New("failed to read config file")
	errLoggerInit = errors.New("failed to initialize logger")
)

const (
	ConfigDirName     = "board-tui"
	DefaultConfigName = "board-tui"
	DefaultDBName     = "board-tui.db"
	DefaultLogName    = "board-tui.log"
	RecordingDirName  = "sessions"
	EnvPrefix         = "boardtui"
)

type Config struct {
	// ServerURL is the websocket endpoint of the game server, ws:// or wss://.
	ServerURL string `mapstructure:"server_url"`
	// Username prefills the login form when no previous login is stored.
	Username string `mapstructure:"username"`
	// CellAspect is how many board units one terminal line represents. Terminal cells are
	// roughly twice as tall as they are wide.
	CellAspect    int    `mapstructure:"cell_aspect"`
	DialTimeoutMs int    `mapstructure:"dial_timeout_ms"`
	LogLevel      string `mapstructure:"log_level"`
	Debug         bool   `mapstructure:"debug"`
	// ReplayPath, when set, plays back a recorded session instead of connecting to ServerURL.
	ReplayPath string `mapstructure:"replay_path"`
	// RecordSessions writes every received frame under the cache dir for later replay.
	RecordSessions bool `mapstructure:"record_sessions"`
}

func (c Config) DialTimeout() time.Duration {
	return time.Duration(c.DialTimeoutMs) * time.Millisecond
}

// Level parses LogLevel, falling back to info for empty or unknown values. Debug mode always
// logs at debug level.
func (c Config) Level() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}

	return level
}

// Path generates a path pointing to the filename under this apps defined $XDG_CONFIG_HOME.
func Path(name string) string {
	fullPath, errFullPath := xdg.ConfigFile(path.Join(ConfigDirName, name))
	if errFullPath != nil {
		panic(errFullPath)
	}

	return fullPath
}

func PathCache(name string) string {
	cacheDir, found := os.LookupEnv("CACHE_DIR")
	if found && cacheDir != "" {
		return path.Join(cacheDir, name)
	}

	return path.Join(xdg.CacheHome, ConfigDirName, name)
}

// LoggerInit sets up the slog global handler to use a log file as we cant print to the console.
func LoggerInit(logPath string, level slog.Level) (io.Closer, error) {
	logFile, errLogFile := os.Create(Path(logPath))
	if errLogFile != nil {
		return nil, errors.Join(errLogFile, errLoggerInit)
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}))

	slog.SetDefault(logger)

	return logFile, nil
}
