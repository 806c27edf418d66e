// Package twinpane is a dual-pane terminal shell over the browsing and transfer core.
package twinpane

import (
	"context"
	"errors"

	"github.com/filetug/twinpane/pkg/appenv"
	"github.com/filetug/twinpane/pkg/files"
	"github.com/filetug/twinpane/pkg/transfer"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	pageMain   = "main"
	pagePrompt = "prompt"
)

// Options configures a Manager.
type Options struct {
	LeftPath   string
	RightPath  string
	ShowHidden bool
}

// Manager lays out two panes side by side and runs drops between them.
type Manager struct {
	ctx     context.Context
	app     App
	env     *appenv.Environment
	store   files.Store
	logger  *zap.Logger
	printer *message.Printer

	panes  [2]*Pane
	active int

	pages  *tview.Pages
	status *tview.TextView

	drop   transfer.Drop
	source *Pane
}

func NewManager(ctx context.Context, app App, env *appenv.Environment, store files.Store, options Options) *Manager {
	m := &Manager{
		ctx:     ctx,
		app:     app,
		env:     env,
		store:   store,
		logger:  env.Logger.Named("twinpane"),
		printer: message.NewPrinter(language.English),
	}
	m.panes[0] = NewPane(ctx, "left", app, env, store, PaneOptions{Path: options.LeftPath, ShowHidden: options.ShowHidden})
	m.panes[1] = NewPane(ctx, "right", app, env, store, PaneOptions{Path: options.RightPath, ShowHidden: options.ShowHidden})
	for _, p := range m.panes {
		p.onNavigate = m.onNavigate
	}

	m.status = tview.NewTextView().SetDynamicColors(true)
	panes := tview.NewFlex().
		AddItem(m.panes[0].Primitive(), 0, 1, true).
		AddItem(m.panes[1].Primitive(), 0, 1, false)
	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(panes, 0, 1, true).
		AddItem(m.status, 1, 0, false)
	layout.SetInputCapture(m.inputCapture)
	m.pages = tview.NewPages().AddPage(pageMain, layout, true, true)
	m.setStatus("[gray]Tab[-] switch  [gray]Space[-] select  [gray]F5[-] copy  [gray]F6[-] copy into  [gray]F8[-] delete  [gray]q[-] quit")
	return m
}

// Primitive is the root of the layout.
func (m *Manager) Primitive() tview.Primitive {
	return m.pages
}

func (m *Manager) Pane(i int) *Pane {
	return m.panes[i]
}

func (m *Manager) Active() *Pane {
	return m.panes[m.active]
}

func (m *Manager) Other() *Pane {
	return m.panes[1-m.active]
}

// Drop is the drop in progress, if any.
func (m *Manager) Drop() transfer.Drop {
	return m.drop
}

// Start shows the layout and lists both panes.
func (m *Manager) Start() {
	m.app.SetRoot(m.pages, true)
	m.app.EnableMouse(true)
	m.app.SetFocus(m.Active().Focusable())
	for _, p := range m.panes {
		p.Refresh()
	}
}

func (m *Manager) Close() {
	for _, p := range m.panes {
		p.Close()
	}
}

// SwitchPane makes the other pane active.
func (m *Manager) SwitchPane() {
	m.active = 1 - m.active
	m.app.SetFocus(m.Active().Focusable())
}

func (m *Manager) onNavigate(p *Pane) {
	parent, last := p.PathCrumbs()
	m.logger.Debug("navigated", zap.String("pane", p.Name()), zap.String("path", parent+last))
}

func (m *Manager) setStatus(text string) {
	m.status.SetText(text)
}

// StartDrop drops the items of the active pane onto the other pane in the given role.
// RoleBrowser copies into the other pane's folder, RoleFolder onto the entry under its cursor,
// RoleTrash deletes the items.
func (m *Manager) StartDrop(role transfer.Role) {
	if m.drop != nil {
		m.setStatus("[red]A drop is already in progress[-]")
		return
	}
	source := m.Active()
	items := source.DropItems()
	if len(items) == 0 {
		m.setStatus("[yellow]Nothing to drop[-]")
		return
	}

	var destination files.Entry
	switch role {
	case transfer.RoleBrowser:
		destination = m.Other().CurrentFolder()
	case transfer.RoleFolder:
		entry, ok := m.Other().CurrentEntry()
		if !ok {
			m.setStatus("[yellow]No drop target under the cursor[-]")
			return
		}
		destination = entry
	}

	target := transfer.NewTarget(role, m.store, items, destination, m.callbacks(),
		transfer.WithLogger(m.env.Logger.Named("transfer")),
		transfer.WithMetrics(m.env.Metrics),
	)
	if !target.ValidateDrop() {
		m.setStatus("[yellow]Nothing to drop[-]")
		return
	}
	if target.ProposeOperation() == transfer.OpForbidden {
		m.setStatus("[red]Items can not be dropped here[-]")
		return
	}
	drop, ok := target.(transfer.Drop)
	if !ok {
		return
	}
	m.drop = drop
	m.source = source
	if !drop.PerformDrop() {
		m.drop, m.source = nil, nil
	}
}

func (m *Manager) callbacks() transfer.Callbacks {
	return transfer.Callbacks{
		OnConfirmDrop: m.confirmDrop,
		OnConfirmItem: m.confirmItem,
		OnDropped:     m.onDropped,
		OnComplete:    m.onComplete,
	}
}

func (m *Manager) onDropped(d transfer.Drop, item files.Entry, err error) {
	if err != nil {
		m.setStatus(m.printer.Sprintf("[red]%v[-]", err))
		return
	}
	m.logger.Debug("item dropped", zap.String("drop", d.ID()), zap.String("item", item.AbsolutePath()))
}

func (m *Manager) onComplete(d transfer.Drop, err error) {
	m.closePrompt()
	switch {
	case err == nil:
		m.setStatus(m.printer.Sprintf("[green]Done: %d item(s)[-]", d.NumberOfItems()))
	case errors.Is(err, transfer.ErrDropCancelled):
		m.setStatus("[yellow]Cancelled[-]")
	default:
		var failed int
		var joined interface{ Unwrap() []error }
		if errors.As(err, &joined) {
			failed = len(joined.Unwrap()) - 1
		}
		m.setStatus(m.printer.Sprintf("[red]%d of %d item(s) failed[-]", failed, d.NumberOfItems()))
	}
	source := m.source
	m.drop, m.source = nil, nil
	if source != nil {
		source.Selection().DropCompleted()
	}
	m.app.SetFocus(m.Active().Focusable())
}

func (m *Manager) inputCapture(event *tcell.EventKey) *tcell.EventKey {
	if m.pages.HasPage(pagePrompt) {
		return event
	}
	switch event.Key() {
	case tcell.KeyTab:
		m.SwitchPane()
		return nil
	case tcell.KeyF5:
		m.StartDrop(transfer.RoleBrowser)
		return nil
	case tcell.KeyF6:
		m.StartDrop(m.roleUnderOtherCursor())
		return nil
	case tcell.KeyF8, tcell.KeyDelete:
		m.StartDrop(transfer.RoleTrash)
		return nil
	case tcell.KeyF10:
		m.app.Stop()
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'c':
			m.StartDrop(transfer.RoleBrowser)
		case 'q':
			m.app.Stop()
		default:
			return event
		}
		return nil
	default:
		return event
	}
}

func (m *Manager) roleUnderOtherCursor() transfer.Role {
	entry, ok := m.Other().CurrentEntry()
	switch {
	case !ok:
		return transfer.RoleForbidden
	case entry.IsFolder():
		return transfer.RoleFolder
	default:
		return transfer.RoleFile
	}
}
