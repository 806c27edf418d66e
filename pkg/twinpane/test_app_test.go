package twinpane

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/filetug/twinpane/pkg/appenv"
	"github.com/filetug/twinpane/pkg/files/osfile"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testApp is a minimal App for tests. Queued updates wait in a channel
// until the test pumps them, so they run on the test goroutine like on the UI loop.
type testApp struct {
	queue   chan func()
	focused tview.Primitive
	root    tview.Primitive
	stopped bool
}

func newTestApp() *testApp {
	return &testApp{queue: make(chan func(), 1024)}
}

func (a *testApp) QueueUpdate(f func()) {
	a.queue <- f
}

func (a *testApp) SetFocus(p tview.Primitive) {
	a.focused = p
}

func (a *testApp) SetRoot(root tview.Primitive, fullscreen bool) {
	_ = fullscreen
	a.root = root
}

func (a *testApp) Stop() {
	a.stopped = true
}

func (a *testApp) EnableMouse(_ bool) {}

// pumpUntil runs queued updates until cond holds.
func (a *testApp) pumpUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for !cond() {
		select {
		case f := <-a.queue:
			f()
		case <-deadline:
			t.Fatal("timed out waiting for UI updates")
		}
	}
}

// writeTree creates files below dir; names ending with "/" become folders.
func writeTree(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			require.NoError(t, os.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(name), 0o644))
	}
}

func newTestEnv(t *testing.T) *appenv.Environment {
	t.Helper()
	env := appenv.New(zap.NewNop(), nil)
	t.Cleanup(env.Close)
	return env
}

func newTestPane(t *testing.T, root string, options PaneOptions) (*Pane, *testApp) {
	t.Helper()
	app := newTestApp()
	p := NewPane(context.Background(), "left", app, newTestEnv(t), osfile.NewStore(root), options)
	t.Cleanup(p.Close)
	return p, app
}

func entryNames(p *Pane) []string {
	names := make([]string, 0, len(p.entries))
	for _, entry := range p.entries {
		names = append(names, entry.Filename())
	}
	return names
}

func hasEntries(p *Pane, names ...string) func() bool {
	return func() bool {
		return strings.Join(entryNames(p), ",") == strings.Join(names, ",")
	}
}

func readLine(screen tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		str, _, _ := screen.Get(x, y)
		if str == "" {
			b.WriteRune(' ')
			continue
		}
		b.WriteString(str)
	}
	return b.String()
}

func drawScreen(t *testing.T, p tview.Primitive, width, height int) string {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	defer s.Fini()
	s.SetSize(width, height)
	p.SetRect(0, 0, width, height)
	p.Draw(s)
	lines := make([]string, 0, height)
	for y := 0; y < height; y++ {
		lines = append(lines, readLine(s, y, width))
	}
	return strings.Join(lines, "\n")
}
