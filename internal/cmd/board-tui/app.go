package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/board-tui/internal/bus"
	"github.com/leighmacdonald/board-tui/internal/config"
	"github.com/leighmacdonald/board-tui/internal/ui"
	"github.com/leighmacdonald/board-tui/internal/view"
)

type UI interface {
	Send(msg tea.Msg)
	Run() error
}

// App is the main application container. Very little logic is contained within this struct. Its mostly
// responsible for routing messages from background goroutines to the UI.
type App struct {
	ui            UI
	config        config.Config
	uiUpdates     chan tea.Msg
	configUpdates chan config.Config
	stopped       chan struct{}
}

// NewApp returns a new application instance. To actually start the app you must call
// Start().
func NewApp(conf config.Config, configUpdates chan config.Config) *App {
	return &App{
		config:        conf,
		configUpdates: configUpdates,
		uiUpdates:     make(chan tea.Msg),
		stopped:       make(chan struct{}),
	}
}

// Publish implements bus.Publisher. Network goroutines publish here and the messages are replayed
// on the UI owned bus from the bubbletea event loop.
func (app *App) Publish(msg bus.Message) {
	select {
	case app.uiUpdates <- msg:
	case <-app.stopped:
	}
}

// Start brings up the background goroutines and runs the main event processing loop until
// either the context is cancelled or the UI exits.
func (app *App) Start(ctx context.Context, done <-chan any) {
	defer close(app.stopped)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start sending UI updates to the UI.
	go app.uiSender(ctx)

	for {
		select {
		case conf := <-app.configUpdates:
			app.config = conf
			app.uiUpdates <- conf
		case <-ctx.Done():
			return
		case <-done:
			return
		}
	}
}

// uiSender handles forwarding all events to the UI.
func (app *App) uiSender(ctx context.Context) {
	for {
		select {
		case msg := <-app.uiUpdates:
			if app.ui != nil {
				app.ui.Send(msg)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (app *App) createUI(ctx context.Context, network view.Network, history ui.LoginHistory) UI {
	if app.ui == nil {
		app.ui = ui.New(ctx, app.config, network, history, BuildVersion)
	}

	return app.ui
}
