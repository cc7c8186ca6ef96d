package ui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/board-tui/internal/board"
	"github.com/leighmacdonald/board-tui/internal/bus"
	"github.com/leighmacdonald/board-tui/internal/config"
	"github.com/leighmacdonald/board-tui/internal/ui/command"
	"github.com/leighmacdonald/board-tui/internal/ui/component"
	"github.com/leighmacdonald/board-tui/internal/ui/input"
	"github.com/leighmacdonald/board-tui/internal/ui/model"
	"github.com/leighmacdonald/board-tui/internal/ui/pages"
	"github.com/leighmacdonald/board-tui/internal/ui/styles"
	"github.com/leighmacdonald/board-tui/internal/view"
	zone "github.com/lrstanley/bubblezone"
)

// LoginHistory remembers which usernames were used against which server.
type LoginHistory interface {
	RecordLogin(ctx context.Context, username string, serverURL string) error
	LastUsername(ctx context.Context, serverURL string) (string, error)
	RecentUsernames(ctx context.Context, serverURL string, limit int) ([]string, error)
}

const recentUsernameLimit = 5

type pageModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	Render(state model.ViewState) string
}

// rootModel is the top level model for the ui side of the app. All bus messages are republished
// from here so every subscriber runs on the bubbletea event loop.
type rootModel struct {
	ctx        context.Context
	events     *bus.Bus
	controller *view.Controller
	board      *board.Board
	history    LoginHistory
	serverURL  string
	viewState  model.ViewState
	pages      map[view.Page]pageModel
	statusBar  *component.StatusBarModel
}

func newRootModel(ctx context.Context, conf config.Config, events *bus.Bus, controller *view.Controller,
	gameBoard *board.Board, history LoginHistory, buildVersion string,
) rootModel {
	return rootModel{
		ctx:        ctx,
		events:     events,
		controller: controller,
		board:      gameBoard,
		history:    history,
		serverURL:  conf.ServerURL,
		viewState: model.ViewState{
			Page:       controller.Visible(),
			Layout:     gameBoard.Layout(),
			CellAspect: conf.CellAspect,
		},
		pages: map[view.Page]pageModel{
			view.PageConnecting:   pages.NewConnecting(conf.ServerURL),
			view.PageLogin:        pages.NewLogin(conf.Username),
			view.PageLobby:        pages.NewLobby(gameBoard),
			view.PageDisconnected: pages.NewDisconnected(),
			view.PageUnsupported:  pages.NewUnsupported(conf.ServerURL),
		},
		statusBar: component.NewStatusBarModel(buildVersion, conf.ServerURL),
	}
}

func (m rootModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle(config.DefaultConfigName),
		command.Start,
		m.loadUsername(),
	}

	for _, page := range view.AllPages {
		if pm, found := m.pages[page]; found {
			cmds = append(cmds, pm.Init())
		}
	}

	return tea.Batch(cmds...)
}

func (m rootModel) Update(inMsg tea.Msg) (tea.Model, tea.Cmd) {
	logMsg(inMsg)

	var cmds []tea.Cmd

	switch msg := inMsg.(type) {
	case tea.WindowSizeMsg:
		m.viewState.Height = msg.Height
		m.viewState.Width = msg.Width
		m.viewState.Layout = m.board.RecomputeLayout(msg.Width)
	case config.Config:
		m.viewState.CellAspect = max(msg.CellAspect, 1)
	case command.StartMsg:
		m.controller.Start(m.ctx)
	case bus.Message:
		m.events.Publish(msg)

		if fatal, ok := msg.(bus.FatalError); ok {
			cmds = append(cmds, command.SetStatusMessage(fatal.Description(), true))
		}
	case command.LoginSubmitMsg:
		m.controller.OnLoginSubmit(msg.Username)
		cmds = append(cmds, m.recordLogin(msg.Username))
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, input.Default.Quit):
			return m, tea.Quit
		case key.Matches(msg, input.Default.QuitShort):
			// q is a valid username character.
			if m.controller.Visible() != view.PageLogin {
				return m, tea.Quit
			}
		case key.Matches(msg, input.Default.Reconnect):
			if m.controller.Reconnect(m.ctx) {
				m.viewState.Page = m.controller.Visible()

				return m, nil
			}
		}
	}

	m.viewState.Page = m.controller.Visible()
	cmds = append(cmds, m.propagate(inMsg))

	return m, tea.Batch(cmds...)
}

// propagate forwards input only to the visible page. Everything else reaches every page so hidden
// pages stay current.
func (m rootModel) propagate(msg tea.Msg) tea.Cmd {
	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		if page, found := m.pages[m.viewState.Page]; found {
			return page.Update(msg)
		}

		return nil
	}

	cmds := make([]tea.Cmd, 0, len(m.pages)+1)
	for _, page := range view.AllPages {
		if pm, found := m.pages[page]; found {
			cmds = append(cmds, pm.Update(msg))
		}
	}

	cmds = append(cmds, m.statusBar.Update(msg))

	return tea.Batch(cmds...)
}

func (m rootModel) View() string {
	if !m.isInitialized() {
		return ""
	}

	footer := styles.FooterContainerStyle.
		Width(m.viewState.Width).
		Render(m.statusBar.Render(m.viewState))

	state := m.viewState
	state.Content = max(state.Height-lipgloss.Height(footer), 0)

	var content string
	if page, found := m.pages[state.Page]; found {
		content = page.Render(state)
	}

	ctr := styles.ContentContainerStyle.Height(state.Content).Render(content)

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, ctr, footer))
}

func (m rootModel) isInitialized() bool {
	return m.viewState.Height != 0 && m.viewState.Width != 0
}

func (m rootModel) loadUsername() tea.Cmd {
	return func() tea.Msg {
		if m.history == nil {
			return nil
		}

		username, err := m.history.LastUsername(m.ctx, m.serverURL)
		if err != nil {
			slog.Error("Failed to load previous username", slog.String("error", err.Error()))

			return nil
		}

		recent, errRecent := m.history.RecentUsernames(m.ctx, m.serverURL, recentUsernameLimit)
		if errRecent != nil {
			slog.Error("Failed to load recent usernames", slog.String("error", errRecent.Error()))
		}

		if username == "" && len(recent) == 0 {
			return nil
		}

		return command.UsernameMsg{Username: username, Recent: recent}
	}
}

func (m rootModel) recordLogin(username string) tea.Cmd {
	return func() tea.Msg {
		if m.history == nil {
			return nil
		}

		if err := m.history.RecordLogin(m.ctx, username, m.serverURL); err != nil {
			slog.Error("Failed to record login", slog.String("error", err.Error()))
		}

		return nil
	}
}

// logMsg is useful for debugging events. Tail the log file ~/.config/board-tui/board-tui.log
func logMsg(inMsg tea.Msg) {
	// Filter out very noisy stuff
	switch inMsg.(type) {
	case spinner.TickMsg:
	case tea.MouseMsg:
		break
	default:
		slog.Debug("tea.Msg", slog.Any("msg", inMsg))
	}
}
