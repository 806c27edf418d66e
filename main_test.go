package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubRun(t *testing.T) *int {
	t.Helper()
	oldRun := run
	t.Cleanup(func() { run = oldRun })
	var calls int
	run = func(app application) error {
		calls++
		return nil
	}
	return &calls
}

// testArgs returns flags that keep the command away from the user's config and terminal.
func testArgs(t *testing.T, extra ...string) []string {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte("{}"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "left"), 0o755))
	args := []string{
		"--config", configPath,
		"--root", dir,
		"--left", "/left",
		"--log-file", filepath.Join(dir, "twinpane.log"),
	}
	return append(args, extra...)
}

func execute(args ...string) error {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestMainRoot(t *testing.T) {
	runCalled := stubRun(t)

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = append([]string{"twinpane"}, testArgs(t)...)

	main()

	if *runCalled != 1 {
		t.Fatal("expected main function to call run")
	}
}

func TestMain_Error(t *testing.T) {
	stubRun(t)

	oldArgs, oldOsExit, oldStderr := os.Args, osExit, os.Stderr
	defer func() {
		os.Args, osExit, os.Stderr = oldArgs, oldOsExit, oldStderr
	}()
	r, w, _ := os.Pipe()
	os.Stderr = w
	var exitCode int
	osExit = func(code int) { exitCode = code }
	os.Args = append([]string{"twinpane"}, testArgs(t, "--log-level", "loud")...)

	main()

	_ = w.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	assert.Equal(t, 1, exitCode)
	assert.Contains(t, buf.String(), `unknown log level "loud"`)
}

func Test_newRootCommand(t *testing.T) {
	t.Run("positional_root", func(t *testing.T) {
		stubRun(t)
		args := testArgs(t)
		err := execute(append(args, filepath.Join(t.TempDir(), "missing"))...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not an existing directory")
	})
	t.Run("too_many_args", func(t *testing.T) {
		stubRun(t)
		assert.Error(t, execute("a", "b"))
	})
	t.Run("required_config", func(t *testing.T) {
		stubRun(t)
		err := execute("--config", filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
	t.Run("show_hidden", func(t *testing.T) {
		runCalled := stubRun(t)
		require.NoError(t, execute(testArgs(t, "--show-hidden", "--log-format", "console")...))
		assert.Equal(t, 1, *runCalled)
	})
}

func Test_flagOverrides(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--left", "/a", "--show-hidden", "--metrics", ":9090"}))
	overrides, err := flagOverrides(cmd)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"left":         "/a",
		"show_hidden":  true,
		"metrics_addr": ":9090",
	}, overrides)
}

func Test_servers(t *testing.T) {
	stubRun(t)
	oldListen := httpListenAndServe
	defer func() { httpListenAndServe = oldListen }()

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		addrs = make(map[string]http.Handler)
	)
	wg.Add(2)
	httpListenAndServe = func(addr string, handler http.Handler) error {
		defer wg.Done()
		mu.Lock()
		defer mu.Unlock()
		addrs[addr] = handler
		return errors.New("listen failed")
	}

	require.NoError(t, execute(testArgs(t, "--metrics", "localhost:9999", "--pprof", "localhost:6060")...))
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Contains(t, addrs, "localhost:9999")
	assert.NotNil(t, addrs["localhost:9999"], "metrics get their own mux")
	require.Contains(t, addrs, "localhost:6060")
	assert.Nil(t, addrs["localhost:6060"], "pprof uses the default mux")
}

func Test_profiles(t *testing.T) {
	stubRun(t)
	dir := t.TempDir()
	cpuProfile := filepath.Join(dir, "cpu.prof")
	memProfile := filepath.Join(dir, "mem.prof")

	require.NoError(t, execute(testArgs(t, "--cpuprofile", cpuProfile, "--memprofile", memProfile)...))

	assert.FileExists(t, cpuProfile)
	assert.FileExists(t, memProfile)
}

func Test_panicRecovery(t *testing.T) {
	stubRun(t)
	oldNewApp, oldOsExit, oldStop, oldStderr := newApp, osExit, pprofStopCPUProfile, os.Stderr
	defer func() {
		newApp, osExit, pprofStopCPUProfile, os.Stderr = oldNewApp, oldOsExit, oldStop, oldStderr
	}()
	_, w, _ := os.Pipe()
	os.Stderr = w
	defer func() { _ = w.Close() }()

	newApp = func() *tview.Application {
		panic("boom")
	}
	var exitCode int
	osExit = func(code int) { exitCode = code }
	var stopped bool
	pprofStopCPUProfile = func() { stopped = true }

	assert.NoError(t, execute(testArgs(t)...))
	assert.Equal(t, 1, exitCode)
	assert.True(t, stopped)
}

type fakeApp struct {
	err error
}

func (f fakeApp) Run() error {
	if f.err == nil {
		return nil
	}
	return fmt.Errorf("app failed: %w", f.err)
}

func Test_run(t *testing.T) {
	var expectedErr = errors.New("test error")
	err := run(fakeApp{err: expectedErr})
	require.Error(t, err)
	assert.True(t, errors.Is(err, expectedErr))

	assert.NoError(t, run(fakeApp{}))
}

func TestMain_RunError(t *testing.T) {
	oldRun := run
	defer func() { run = oldRun }()
	run = func(app application) error {
		return errors.New("terminal lost")
	}

	oldArgs, oldOsExit, oldStderr := os.Args, osExit, os.Stderr
	defer func() {
		os.Args, osExit, os.Stderr = oldArgs, oldOsExit, oldStderr
	}()
	r, w, _ := os.Pipe()
	os.Stderr = w
	exitCode := -1
	osExit = func(code int) { exitCode = code }
	os.Args = append([]string{"twinpane"}, testArgs(t)...)

	main()

	_ = w.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	assert.Equal(t, 1, exitCode)
	assert.Contains(t, buf.String(), "terminal lost")
}
