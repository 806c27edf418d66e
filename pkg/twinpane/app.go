package twinpane

import (
	"github.com/filetug/twinpane/pkg/dirprovider"
	"github.com/rivo/tview"
)

// App is the terminal a Manager drives. Its QueueUpdate runs f on the
// event loop and redraws, so panes hand it to their providers as the Dispatcher.
type App interface {
	dirprovider.Dispatcher
	SetRoot(root tview.Primitive, fullscreen bool)
	SetFocus(p tview.Primitive)
	EnableMouse(enable bool)
	Stop()
}

// NewApp adapts a tview application. Running it stays with the caller.
func NewApp(app *tview.Application) App {
	if app == nil {
		panic("tview application is nil")
	}
	return terminal{app: app}
}

var _ App = terminal{}

type terminal struct {
	app *tview.Application
}

func (t terminal) QueueUpdate(f func()) {
	t.app.QueueUpdateDraw(f)
}

func (t terminal) SetRoot(root tview.Primitive, fullscreen bool) {
	t.app.SetRoot(root, fullscreen)
}

func (t terminal) SetFocus(p tview.Primitive) {
	t.app.SetFocus(p)
}

func (t terminal) EnableMouse(enable bool) {
	t.app.EnableMouse(enable)
}

func (t terminal) Stop() {
	t.app.Stop()
}
