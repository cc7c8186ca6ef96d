package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/board-tui/internal/board"
	"github.com/leighmacdonald/board-tui/internal/bus"
	"github.com/leighmacdonald/board-tui/internal/config"
	"github.com/leighmacdonald/board-tui/internal/view"
	zone "github.com/lrstanley/bubblezone"
)

var ErrUIExit = errors.New("ui error returned")

type UI struct {
	program    *tea.Program
	controller *view.Controller
	detach     func()
}

func New(ctx context.Context, conf config.Config, network view.Network, history LoginHistory, buildVersion string) *UI {
	zone.NewGlobal()

	events := bus.NewBus()
	gameBoard := board.New()
	detach := gameBoard.Subscribe(events)
	controller := view.NewController(network, events)

	return &UI{
		controller: controller,
		detach:     detach,
		program: tea.NewProgram(
			newRootModel(ctx, conf, events, controller, gameBoard, history, buildVersion),
			tea.WithMouseCellMotion(),
			tea.WithAltScreen(),
			tea.WithContext(ctx),
			tea.WithFPS(30)),
	}
}

func (t UI) Run() error {
	defer func() {
		t.controller.Stop()
		t.detach()
	}()

	if _, err := t.program.Run(); err != nil {
		return errors.Join(err, ErrUIExit)
	}

	return nil
}

func (t UI) Send(msg tea.Msg) {
	t.program.Send(msg)
}
