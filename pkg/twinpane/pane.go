package twinpane

import (
	"context"
	"fmt"
	"strings"

	"github.com/filetug/twinpane/pkg/appenv"
	"github.com/filetug/twinpane/pkg/dirprovider"
	"github.com/filetug/twinpane/pkg/events"
	"github.com/filetug/twinpane/pkg/files"
	"github.com/filetug/twinpane/pkg/history"
	"github.com/filetug/twinpane/pkg/selection"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PaneOptions configures a single pane.
type PaneOptions struct {
	// Path is the folder below the store root the pane is confined to.
	Path       string
	ShowHidden bool
}

// Pane browses one folder tree: history, live listing and selection.
// Every method must be called on the UI goroutine.
type Pane struct {
	name   string
	env    *appenv.Environment
	store  files.Store
	app    App
	logger *zap.Logger

	history   *history.Navigator
	provider  *dirprovider.Provider
	selection *selection.Set
	tokens    []events.Token
	printer   *message.Printer

	table  *tview.Table
	header *tview.TextView
	flex   *tview.Flex

	// entries are the rows on screen, in order.
	entries []files.Entry

	// onNavigate is called after the current folder changed.
	onNavigate func(p *Pane)
}

func NewPane(ctx context.Context, name string, app App, env *appenv.Environment, store files.Store, options PaneOptions) *Pane {
	p := &Pane{
		name:    name,
		env:     env,
		store:   store,
		app:     app,
		logger:  env.Logger.Named(name),
		printer: message.NewPrinter(language.English),
	}
	root := store.RootURL()
	p.history = history.NewWithPath(root.Path, options.Path, history.WithExists(func(path string) bool {
		ok, err := store.Exists(ctx, path)
		return err == nil && ok
	}))
	p.provider = dirprovider.New(store, app, p.render,
		dirprovider.WithLogger(p.logger),
		dirprovider.WithMetrics(env.Metrics),
		dirprovider.WithShowHidden(options.ShowHidden),
	)
	p.selection = selection.New(name, env.Events)

	p.header = tview.NewTextView().SetDynamicColors(true)
	p.table = tview.NewTable().SetSelectable(true, false).SetFixed(1, 0)
	p.table.SetBorder(true)
	p.table.SetTitle(" " + store.RootTitle() + " ")
	p.table.SetInputCapture(p.inputCapture)
	p.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.header, 1, 0, false).
		AddItem(p.table, 0, 1, true)

	p.tokens = append(p.tokens,
		env.Events.Subscribe(name, events.EventSelectionChanged, p.onSelectionChanged),
		env.Events.Subscribe(name, events.EventDropCompleted, p.onDropCompleted),
	)
	p.renderHeader()
	return p
}

func (p *Pane) Name() string {
	return p.name
}

func (p *Pane) Primitive() tview.Primitive {
	return p.flex
}

// Focusable is the primitive that receives key events.
func (p *Pane) Focusable() tview.Primitive {
	return p.table
}

func (p *Pane) Selection() *selection.Set {
	return p.selection
}

func (p *Pane) History() history.State {
	return p.history.State()
}

func (p *Pane) Snapshot() files.Snapshot {
	return p.provider.Snapshot()
}

// Refresh re-lists the current folder.
func (p *Pane) Refresh() {
	p.provider.Update(p.history.Root(), p.history.CurrentFilePath())
}

func (p *Pane) navigated() {
	p.renderHeader()
	p.Refresh()
	if p.onNavigate != nil {
		p.onNavigate(p)
	}
}

// BrowseTo moves to an absolute folder path below the pane root.
func (p *Pane) BrowseTo(path string) {
	if !p.history.CanBrowseTo(path) {
		p.logger.Debug("can not browse to", zap.String("path", path))
		return
	}
	p.history.BrowseTo(path)
	p.navigated()
}

// BrowseToRelative moves to a path given relative to the pane root.
func (p *Pane) BrowseToRelative(relPath string) {
	p.BrowseTo(p.history.Root() + strings.TrimPrefix(relPath, "/"))
}

func (p *Pane) Back() {
	if p.history.CanBrowseBack() {
		p.history.BrowseBack()
		p.navigated()
	}
}

func (p *Pane) Forward() {
	if p.history.CanBrowseForward() {
		p.history.BrowseForward()
		p.navigated()
	}
}

func (p *Pane) Parent() {
	if p.history.CanBrowseToParent() {
		p.history.BrowseToParent()
		p.navigated()
	}
}

func (p *Pane) Root() {
	if p.history.CanBrowseToRoot() {
		p.history.BrowseToRoot()
		p.navigated()
	}
}

func (p *Pane) HistoryStart() {
	if p.history.CanBrowseToHistoryStart() {
		p.history.BrowseToHistoryStart()
		p.navigated()
	}
}

func (p *Pane) HistoryEnd() {
	if p.history.CanBrowseToHistoryEnd() {
		p.history.BrowseToHistoryEnd()
		p.navigated()
	}
}

// ResetToRoot forgets the history and shows the root.
func (p *Pane) ResetToRoot() {
	p.history.ResetToRoot()
	p.navigated()
}

// OpenEntry enters entry when it is a folder. Files are left alone.
func (p *Pane) OpenEntry(entry files.Entry) {
	if !entry.IsFolder() {
		return
	}
	p.BrowseTo(entry.AbsolutePath())
}

// CurrentFolder is the folder the pane shows.
func (p *Pane) CurrentFolder() files.Entry {
	return files.NewEntry(files.FolderKind(p.Snapshot().Len()), p.history.Root(), p.history.CurrentFilePath())
}

// CurrentEntry is the entry under the cursor.
func (p *Pane) CurrentEntry() (files.Entry, bool) {
	row, _ := p.table.GetSelection()
	i := row - 1
	if i < 0 || i >= len(p.entries) {
		return files.Entry{}, false
	}
	return p.entries[i], true
}

// ToggleSelection flips the selection of the entry under the cursor.
func (p *Pane) ToggleSelection() {
	if entry, ok := p.CurrentEntry(); ok {
		p.selection.Toggle(entry)
	}
}

// DropItems are the selected entries, or the entry under the cursor when nothing is selected.
func (p *Pane) DropItems() []files.Entry {
	if !p.selection.IsEmpty() {
		return p.selection.Items()
	}
	if entry, ok := p.CurrentEntry(); ok {
		return []files.Entry{entry}
	}
	return nil
}

// PathCrumbs splits the current relative path for display:
// parent is everything up to the last separator, last is the current folder name.
func (p *Pane) PathCrumbs() (parent, last string) {
	rel := strings.Trim(p.history.CurrentFilePath(), "/")
	if rel == "" {
		return "", "/"
	}
	i := strings.LastIndex(rel, "/")
	if i < 0 {
		return "/", rel
	}
	return "/" + rel[:i+1], rel[i+1:]
}

// Close drops subscriptions and stops watching.
func (p *Pane) Close() {
	for _, token := range p.tokens {
		p.env.Events.Unsubscribe(token)
	}
	p.tokens = nil
	p.provider.Close()
}

func (p *Pane) onSelectionChanged(_ events.Event, data any) {
	if change, ok := data.(selection.Change); ok && change.Name == p.name {
		p.render(p.Snapshot())
	}
}

func (p *Pane) onDropCompleted(events.Event, any) {
	p.Refresh()
}

func (p *Pane) renderHeader() {
	parent, last := p.PathCrumbs()
	p.header.SetText(fmt.Sprintf("[gray]%s[-][::b]%s[::-]", tview.Escape(parent), tview.Escape(last)))
}

func (p *Pane) render(snapshot files.Snapshot) {
	var currentKey string
	if entry, ok := p.CurrentEntry(); ok {
		currentKey = entry.Key()
	}
	p.entries = snapshot.Entries

	p.table.Clear()
	for col, title := range []string{"Name", "Size", "Kind"} {
		p.table.SetCell(0, col, tview.NewTableCell(title).
			SetSelectable(false).
			SetTextColor(tcell.ColorYellow).
			SetExpansion(boolToInt(col == 0)))
	}

	selectedRow := 1
	for i, entry := range snapshot.Entries {
		row := i + 1
		if entry.Key() == currentKey {
			selectedRow = row
		}
		name := tview.Escape(entry.DisplayName())
		color := tcell.ColorWhite
		if entry.IsFolder() {
			name += "/"
			color = tcell.ColorLightBlue
		}
		if p.selection.IsSelected(entry) {
			name = "*" + name
			color = tcell.ColorFuchsia
		} else {
			name = " " + name
		}
		p.table.SetCell(row, 0, tview.NewTableCell(name).SetTextColor(color).SetExpansion(1))
		p.table.SetCell(row, 1, tview.NewTableCell(p.sizeText(entry)).SetAlign(tview.AlignRight))
		p.table.SetCell(row, 2, tview.NewTableCell(entry.SpecializedKind().String()))
	}
	if len(snapshot.Entries) > 0 {
		p.table.Select(selectedRow, 0)
	}
}

func (p *Pane) sizeText(entry files.Entry) string {
	if entry.IsFolder() {
		return p.printer.Sprintf("%d items", entry.Kind.ItemCount)
	}
	value, unit := entry.SizeForDisplay()
	if value == "" {
		return ""
	}
	return value + " " + unit
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (p *Pane) inputCapture(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEnter:
		if entry, ok := p.CurrentEntry(); ok {
			p.OpenEntry(entry)
		}
		return nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		p.Parent()
		return nil
	case tcell.KeyInsert:
		p.ToggleSelection()
		return nil
	case tcell.KeyCtrlR:
		p.Refresh()
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case ' ':
			p.ToggleSelection()
		case '[':
			p.Back()
		case ']':
			p.Forward()
		case '{':
			p.HistoryStart()
		case '}':
			p.HistoryEnd()
		case '~':
			p.Root()
		default:
			return event
		}
		return nil
	default:
		return event
	}
}
