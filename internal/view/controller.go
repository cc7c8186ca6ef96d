// Package view owns which page is visible and turns user actions into network commands.
package view

import (
	"context"
	"log/slog"

	"github.com/leighmacdonald/board-tui/internal/bus"
)

// CommandSetUsername is sent when the user submits the login form.
const CommandSetUsername = "set-username"

// Network is the subset of the network client used by the views.
type Network interface {
	// IsSupported reports whether the client is able to open a connection at all.
	IsSupported() bool
	// Connect starts connecting in the background. The outcome is published as either
	// bus.Connected or bus.Disconnected.
	Connect(ctx context.Context)
	// SendMessage queues a command for the server without waiting for a reply.
	SendMessage(command string, payload any)
}

type Controller struct {
	pages    *Pages
	network  Network
	events   *bus.Bus
	detachFn []func()
}

func NewController(network Network, events *bus.Bus) *Controller {
	return &Controller{
		pages:   NewPages(),
		network: network,
		events:  events,
	}
}

// Start shows the first page and begins connecting. When the network is unsupported only the
// unsupported page is shown and nothing else happens.
func (c *Controller) Start(ctx context.Context) {
	if !c.network.IsSupported() {
		c.ShowPage(PageUnsupported)

		return
	}

	c.ShowPage(PageConnecting)

	// Subscribing before connecting means a network that reports back immediately is still seen.
	c.detachFn = append(c.detachFn,
		bus.On(c.events, func(_ bus.Connected) {
			c.ShowPage(PageLogin)
		}),
		bus.On(c.events, func(msg bus.Disconnected) {
			if msg.Err != nil {
				slog.Warn("Disconnected from server", slog.String("error", msg.Err.Error()))
			}

			c.ShowPage(PageDisconnected)
		}),
		bus.On(c.events, c.onFatalError))

	c.network.Connect(ctx)
}

// Stop removes the controllers bus subscriptions.
func (c *Controller) Stop() {
	for _, detach := range c.detachFn {
		detach()
	}

	c.detachFn = nil
}

// Reconnect retries the connection after it was lost. It does nothing unless the
// disconnected page is showing.
func (c *Controller) Reconnect(ctx context.Context) bool {
	if !c.pages.IsVisible(PageDisconnected) {
		return false
	}

	c.ShowPage(PageConnecting)
	c.network.Connect(ctx)

	return true
}

// onFatalError returns to the login page when the server rejects the username that was optimistically
// accepted. Other errors leave the page alone.
func (c *Controller) onFatalError(msg bus.FatalError) {
	if !msg.IsLoginError() {
		slog.Error("Server reported fatal error", slog.String("code", msg.Code))

		return
	}

	slog.Warn("Server rejected username", slog.String("code", msg.Code))

	if c.pages.IsVisible(PageLobby) || c.pages.IsVisible(PageLogin) {
		c.ShowPage(PageLogin)
	}
}

func (c *Controller) ShowPage(page Page) {
	slog.Debug("Showing page", slog.String("page", string(page)))
	c.pages.Show(page)
}

// OnLoginSubmit sends the username to the server and moves straight to the lobby without
// waiting for the server to accept it.
func (c *Controller) OnLoginSubmit(username string) {
	c.network.SendMessage(CommandSetUsername, username)
	c.ShowPage(PageLobby)
}

func (c *Controller) Visible() Page {
	return c.pages.Visible()
}

func (c *Controller) Pages() *Pages {
	return c.pages
}
