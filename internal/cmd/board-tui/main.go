package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/fang"
	_ "github.com/joho/godotenv/autoload"
	"github.com/leighmacdonald/board-tui/internal/config"
	"github.com/leighmacdonald/board-tui/internal/network"
	"github.com/leighmacdonald/board-tui/internal/record"
	"github.com/leighmacdonald/board-tui/internal/store"
	"github.com/leighmacdonald/board-tui/internal/view"
	"github.com/spf13/cobra"
)

var (
	BuildVersion   = "master"
	BuildCommit    = "00000000"
	BuildDate      = time.Now().Format("2006-01-02T15:04:05Z")
	BuildGoVersion = runtime.Version()
	cfgFile        string
	replayFile     string
	rootCmd        = &cobra.Command{
		Use:   "board-tui",
		Short: "Board game terminal client",
		Long:  `board-tui - A terminal client for websocket board game servers`,
		RunE:  run,
	}

	versionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Long:              "Print detailed version information about board-tui",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run:               version,
	}
)

var errApp = errors.New("application error")

func main() {
	configPath := config.Path(config.DefaultConfigName + ".yaml")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", configPath, "Config file path")
	rootCmd.Flags().StringVar(&replayFile, "replay", "", "Play back a recorded session file instead of connecting")
	rootCmd.AddCommand(versionCmd)

	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		slog.Error("Exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func version(_ *cobra.Command, _ []string) {
	fmt.Printf("board-tui - Board Game Terminal UI\n\n") //nolint:forbidigo
	fmt.Printf("  Version: %s\n", BuildVersion)          //nolint:forbidigo
	fmt.Printf("  Commit:  %s\n", BuildCommit)           //nolint:forbidigo
	fmt.Printf("  Built:   %s\n", BuildDate)             //nolint:forbidigo
	fmt.Printf("  Runtime: %s\n\n", BuildGoVersion)      //nolint:forbidigo
}

// run is the main entry point of board-tui.
func run(cmd *cobra.Command, _ []string) error {
	// If PROFILE is set, it will be used as the output file path for the profiler.
	if len(os.Getenv("PROFILE")) > 0 {
		f, err := os.Create(os.Getenv("PROFILE"))
		if err != nil {
			return errors.Join(err, errApp)
		}

		if errStart := pprof.StartCPUProfile(f); errStart != nil {
			return errors.Join(errStart, errApp)
		}
		defer pprof.StopCPUProfile()
	}

	// Make sure our config & data home exists.
	if err := os.MkdirAll(path.Join(xdg.ConfigHome, config.ConfigDirName), 0o750); err != nil {
		return errors.Join(err, errApp)
	}

	configUpdates := make(chan config.Config)
	configLoader := config.NewLoader(configUpdates)
	if cmd.Flags().Changed("config") {
		configLoader.SetConfigFile(cfgFile)
	}

	userConfig, errConfig := configLoader.Read()
	if errConfig != nil {
		return errors.Join(errApp, errConfig)
	}

	if replayFile != "" {
		userConfig.ReplayPath = replayFile
	}

	// Setup file based logger. This is very useful for us as our console is taken over by the ui.
	logFile, errLogger := config.LoggerInit(config.DefaultLogName, userConfig.Level())
	if errLogger != nil {
		return errors.Join(errLogger, errApp)
	}

	defer func(closer io.Closer) {
		if err := closer.Close(); err != nil {
			slog.Error("Failed to close log file", slog.String("error", err.Error()))
		}
	}(logFile)

	slog.Info("Starting board-tui", slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit), slog.String("date", BuildDate),
		slog.String("go", runtime.Version()), slog.String("server", userConfig.ServerURL),
		slog.String("config", configLoader.Path()))

	configLoader.Watch()

	// Setup the sqlite database system.
	database, errDB := store.Open(cmd.Context(), config.Path(config.DefaultDBName), true)
	if errDB != nil {
		return errors.Join(errDB, errApp)
	}

	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Error closing database", slog.String("error", err.Error()))
		}
	}()

	app := NewApp(userConfig, configUpdates)

	var client view.Network
	if userConfig.ReplayPath != "" {
		slog.Info("Replaying session", slog.String("path", userConfig.ReplayPath))
		client = network.NewReplay(userConfig.ReplayPath, app)
	} else {
		wsClient := network.NewClient(userConfig.ServerURL, userConfig.DialTimeout(), app)
		if userConfig.RecordSessions {
			session, errSession := openRecording()
			if errSession != nil {
				return errors.Join(errSession, errApp)
			}

			defer func() {
				if err := session.Close(); err != nil {
					slog.Error("Error closing recording", slog.String("error", err.Error()))
				}
			}()

			wsClient.SetRecorder(session)
		}

		client = wsClient
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	done := make(chan any)
	userInterface := app.createUI(ctx, client, store.New(database))

	go func() {
		if err := userInterface.Run(); err != nil {
			slog.Error("Failed to run UI", slog.String("error", err.Error()))
		}

		close(done)
	}()

	app.Start(ctx, done)

	return nil
}

// openRecording prunes stale recordings and starts a new one.
func openRecording() (*record.Session, error) {
	recordings, errRecordings := record.New(config.PathCache(config.RecordingDirName))
	if errRecordings != nil {
		return nil, errRecordings
	}

	now := time.Now()
	if removed, err := recordings.Prune(now); err != nil {
		slog.Warn("Failed to prune recordings", slog.String("error", err.Error()))
	} else if removed > 0 {
		slog.Debug("Pruned stale recordings", slog.Int("count", removed))
	}

	return recordings.Create(now)
}
