package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime/pprof"

	"github.com/filetug/twinpane/pkg/appenv"
	"github.com/filetug/twinpane/pkg/config"
	"github.com/filetug/twinpane/pkg/files/osfile"
	"github.com/filetug/twinpane/pkg/logging"
	"github.com/filetug/twinpane/pkg/metrics"
	"github.com/filetug/twinpane/pkg/profiling"
	"github.com/filetug/twinpane/pkg/twinpane"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var httpListenAndServe = http.ListenAndServe
var osExit = os.Exit
var pprofStopCPUProfile = pprof.StopCPUProfile

func main() {
	if err := newRootCommand().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		osExit(1)
	}
}

// Flags that map onto config keys. Only flags given on the command line override the config file.
var configFlags = map[string]string{
	"root":        "root",
	"left":        "left",
	"right":       "right",
	"log-level":   "log_level",
	"log-format":  "log_format",
	"log-file":    "log_file",
	"metrics":     "metrics_addr",
	"pprof":       "pprof_addr",
	"show-hidden": "show_hidden",
}

type profileFlags struct {
	cpuProfile string
	memProfile string
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		profiles   profileFlags
	)
	cmd := &cobra.Command{
		Use:   "twinpane [root]",
		Short: "Dual-pane terminal file manager",
		Long: `twinpane shows two folders side by side and copies or deletes
the selected files between them. Both panes stay within the root folder.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := flagOverrides(cmd)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				overrides["root"] = args[0]
			}
			cfg, err := config.Load(configPath, cmd.Flags().Changed("config"), overrides)
			if err != nil {
				return err
			}
			return start(cmd.Context(), cfg, profiles)
		},
	}

	defaults := config.Default()
	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", config.DefaultPath(), "read settings from JSON `file`")
	flags.String("root", defaults.Root, "folder both panes are confined to")
	flags.String("left", defaults.LeftPath, "folder of the left pane, relative to the root")
	flags.String("right", defaults.RightPath, "folder of the right pane, relative to the root")
	flags.String("log-level", defaults.LogLevel, "log level: debug, info, warn or error")
	flags.String("log-format", defaults.LogFormat, "log format: json or console")
	flags.String("log-file", defaults.LogFile, "write logs to `file`")
	flags.String("metrics", "", "serve Prometheus metrics on `address` (e.g. localhost:9090)")
	flags.String("pprof", "", "start pprof http server on `address` (e.g. localhost:6060)")
	flags.Bool("show-hidden", false, "list dot-files")
	flags.StringVar(&profiles.cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flags.StringVar(&profiles.memProfile, "memprofile", "", "write memory profile to `file`")
	return cmd
}

func flagOverrides(cmd *cobra.Command) (map[string]any, error) {
	overrides := make(map[string]any)
	for name, key := range configFlags {
		if !cmd.Flags().Changed(name) {
			continue
		}
		var (
			value any
			err   error
		)
		if name == "show-hidden" {
			value, err = cmd.Flags().GetBool(name)
		} else {
			value, err = cmd.Flags().GetString(name)
		}
		if err != nil {
			return nil, err
		}
		overrides[key] = value
	}
	return overrides, nil
}

func start(ctx context.Context, cfg config.Config, profiles profileFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, err := logging.New(cfg.Logging())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	restoreGlobals := zap.ReplaceGlobals(logger)
	defer restoreGlobals()

	m := metrics.New(nil)
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		serve("metrics", cfg.MetricsAddr, mux)
	}
	if cfg.PprofAddr != "" {
		serve("pprof", cfg.PprofAddr, nil)
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("recovered from panic", zap.Any("panic", r))
			_, _ = fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			pprofStopCPUProfile()
			osExit(1)
		}
	}()

	if profiles.cpuProfile != "" {
		stopCPUProfiling := profiling.DoCPUProfiling(profiles.cpuProfile)
		defer stopCPUProfiling()
	}

	if profiles.memProfile != "" {
		stopMemProfiling := profiling.DoMemProfiling(profiles.memProfile)
		defer stopMemProfiling()
	}

	env := appenv.New(logger, m)
	defer env.Close()

	logger.Info("starting",
		zap.String("root", cfg.Root),
		zap.String("left", cfg.LeftPath),
		zap.String("right", cfg.RightPath),
	)

	app := newApp()
	manager := twinpane.NewManager(ctx, twinpane.NewApp(app), env, osfile.NewStore(cfg.Root), twinpane.Options{
		LeftPath:   cfg.LeftPath,
		RightPath:  cfg.RightPath,
		ShowHidden: cfg.ShowHidden,
	})
	defer manager.Close()
	manager.Start()

	return run(app)
}

func serve(name, addr string, handler http.Handler) {
	go func() {
		err := httpListenAndServe(addr, handler)
		if err != nil {
			zap.L().Error(name+" server error", zap.String("addr", addr), zap.Error(err))
			_, _ = fmt.Fprintf(os.Stderr, "%s server error: %v\n", name, err)
		}
	}()
}

var newApp = tview.NewApplication

type application interface{ Run() error }

var run = func(app application) error {
	if err := app.Run(); err != nil {
		return fmt.Errorf("application stopped with error: %w", err)
	}
	return nil
}
