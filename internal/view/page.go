package view

import (
	"log/slog"
)

// Page identifies one of the mutually exclusive full screen views.
type Page string

const (
	PageNone         Page = ""
	PageConnecting   Page = "connecting"
	PageLogin        Page = "login"
	PageLobby        Page = "lobby"
	PageDisconnected Page = "disconnected"
	PageUnsupported  Page = "websocket-not-supported"
)

// AllPages lists every known page in display order.
var AllPages = []Page{ //nolint:gochecknoglobals
	PageConnecting,
	PageLogin,
	PageLobby,
	PageDisconnected,
	PageUnsupported,
}

// Pages tracks the visibility of every page. At most one page is visible at a time.
type Pages struct {
	visible map[Page]bool
}

func NewPages() *Pages {
	visible := make(map[Page]bool, len(AllPages))
	for _, page := range AllPages {
		visible[page] = false
	}

	return &Pages{visible: visible}
}

// Show hides every page and then shows the requested one. An unknown page leaves nothing visible.
func (p *Pages) Show(page Page) {
	for known := range p.visible {
		p.visible[known] = false
	}

	if _, found := p.visible[page]; !found {
		slog.Warn("Tried to show unknown page", slog.String("page", string(page)))

		return
	}

	p.visible[page] = true
}

func (p *Pages) IsVisible(page Page) bool {
	return p.visible[page]
}

// Visible returns the currently visible page or PageNone.
func (p *Pages) Visible() Page {
	for _, page := range AllPages {
		if p.visible[page] {
			return page
		}
	}

	return PageNone
}

// VisibleCount is the number of pages currently shown.
func (p *Pages) VisibleCount() int {
	count := 0
	for _, shown := range p.visible {
		if shown {
			count++
		}
	}

	return count
}
