package config

import (
	"errors"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Loader handles setting up viper, loading configuration from files, and broadcasting configuration changes.
type Loader struct {
	*viper.Viper
	changes chan<- Config
}

func NewLoader(changes chan<- Config) *Loader {
	loader := Loader{changes: changes, Viper: viper.New()}
	loader.SetDefault("server_url", "ws://127.0.0.1:8080/ws")
	loader.SetDefault("username", "")
	loader.SetDefault("cell_aspect", 2)
	loader.SetDefault("dial_timeout_ms", 10000)
	loader.SetDefault("log_level", "info")
	loader.SetDefault("debug", false)
	loader.SetDefault("replay_path", "")
	loader.SetDefault("record_sessions", false)
	loader.SetConfigName(DefaultConfigName)
	loader.SetConfigType("yaml")
	loader.SetEnvPrefix(EnvPrefix)
	loader.AddConfigPath(Path(""))
	loader.AddConfigPath(".")
	loader.AutomaticEnv()

	return &loader
}

// Watch starts watching the config file for external edits. Every successful reload is sent
// on the changes channel.
func (cl *Loader) Watch() {
	if cl.ConfigFileUsed() == "" {
		slog.Debug("No config file loaded, not watching for changes")

		return
	}

	cl.OnConfigChange(cl.onConfigChange)
	cl.WatchConfig()
}

func (cl *Loader) Path() string {
	return cl.ConfigFileUsed()
}

func (cl *Loader) onConfigChange(in fsnotify.Event) {
	if !in.Has(fsnotify.Write) && !in.Has(fsnotify.Rename) {
		return
	}

	slog.Debug("External config reload triggered")
	config, err := cl.Read()
	if err != nil {
		slog.Error("Error reading config", slog.String("error", err.Error()))

		return
	}

	cl.changes <- config
}

// Read loads the config file if one exists. A missing file is not an error, the defaults
// and environment are used instead.
func (cl *Loader) Read() (Config, error) {
	if err := cl.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return Config{}, errors.Join(err, errConfigRead)
		}
	}

	var config Config
	if err := cl.Unmarshal(&config); err != nil {
		return Config{}, errors.Join(err, errConfigRead)
	}

	if config.CellAspect < 1 {
		config.CellAspect = 1
	}

	return config, nil
}
