package command

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spaolacci/murmur3"
	"github.com/urfave/cli/v2"

	"github.com/azimuth-cloud/configomatic/internal/core/loader"
	"github.com/azimuth-cloud/configomatic/internal/infra/confloader"
	"github.com/azimuth-cloud/configomatic/internal/infra/shutdown"
	"github.com/azimuth-cloud/configomatic/internal/server/httpserver"
	"github.com/azimuth-cloud/configomatic/internal/telemetry/logger"
	"github.com/azimuth-cloud/configomatic/internal/telemetry/metric"
)

// WatchCommand returns the watch command.
func WatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Resolve the configuration and print it again whenever it changes",
		Description: "Watches the directory of the configuration file and of every --watch\n" +
			"path. A result is printed only when it differs from the last one.\n" +
			"Stops on SIGINT or SIGTERM.",
		Flags: append(loaderFlags(),
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Minimum time between two resolutions",
				Value: confloader.DefaultReloadInterval,
			},
			&cli.StringSliceFlag{
				Name:  "watch",
				Usage: "Additional file whose directory is watched, e.g. an included file (repeatable)",
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Serve /metrics, /status and /healthz on this address (e.g., :9090)",
			},
			&cli.DurationFlag{
				Name:  "shutdown-timeout",
				Usage: "Time allowed for the HTTP server to stop",
				Value: 5 * time.Second,
			},
		),
		Action: watchAction,
	}
}

func watchAction(c *cli.Context) error {
	opts, err := loaderOptions(c)
	if err != nil {
		return err
	}

	log := logger.Named("configomatic.watch")
	sh := shutdown.NewHandler(c.Duration("shutdown-timeout"))
	defer sh.Shutdown()

	w := &watchPrinter{render: func(values map[string]any) error {
		return render(c, values)
	}}

	if addr := c.String("metrics-addr"); addr != "" {
		reg := metric.NewRegistry()
		reg.MustRegister(metric.NewCollector(loader.DefaultRegistry()))
		opts = append(opts, confloader.WithMetrics(reg))

		srv := httpserver.New(addr, httpserver.NewRouter(&httpserver.RouterConfig{
			Metrics: reg,
			Status:  func() any { return w.Status() },
			Logger:  logger.Named("configomatic.http"),
		}))
		if err := srv.Start(log); err != nil {
			return err
		}
		sh.OnShutdown(srv.Shutdown)
	}

	ctx, stop := sh.Context(c.Context)
	defer stop()
	ctx = logger.WithLogger(ctx, log)

	r := confloader.NewReloader(
		confloader.NewLoader(append(opts, confloader.WithLogger(logger.Named("configomatic.resolve")))...),
		func(rl confloader.Reload) {
			w.handle(logger.WithReloadID(ctx, ulid.Make().String()), rl)
		},
		confloader.WithReloadInterval(c.Duration("interval")),
		confloader.WithWatchPaths(c.StringSlice("watch")...),
		confloader.WithReloaderLogger(log),
	)
	if len(r.Paths()) == 0 {
		return errors.New("nothing to watch: no configuration file and no --watch path")
	}
	return r.Run(ctx)
}

// WatchStatus is the outcome of the latest resolution. Fingerprint
// identifies the last printed configuration.
type WatchStatus struct {
	ReloadID    string    `json:"reload_id"`
	Trigger     string    `json:"trigger"`
	Fingerprint uint64    `json:"fingerprint"`
	Changed     bool      `json:"changed"`
	Error       string    `json:"error,omitempty"`
	At          time.Time `json:"at"`
	Reloads     int       `json:"reloads"`
}

// watchPrinter renders resolutions whose fingerprint differs from the last
// rendered one.
type watchPrinter struct {
	render  func(map[string]any) error
	last    uint64
	printed bool

	mu     sync.Mutex
	status WatchStatus
}

// Status returns the outcome of the latest resolution.
func (w *watchPrinter) Status() WatchStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// handle reports whether the resolution was rendered.
func (w *watchPrinter) handle(ctx context.Context, rl confloader.Reload) bool {
	st := WatchStatus{
		ReloadID: logger.ReloadIDFromContext(ctx),
		Trigger:  rl.Trigger,
		At:       time.Now(),
	}
	changed := w.process(ctx, rl, &st)

	w.mu.Lock()
	st.Reloads = w.status.Reloads + 1
	st.Fingerprint = w.last
	w.status = st
	w.mu.Unlock()
	return changed
}

func (w *watchPrinter) process(ctx context.Context, rl confloader.Reload, st *WatchStatus) bool {
	log := logger.L(ctx).With("trigger", rl.Trigger)
	if rl.Err != nil {
		st.Error = rl.Err.Error()
		log.Error("configuration not resolved", "error", rl.Err)
		return false
	}

	sum, err := fingerprint(rl.Values)
	if err != nil {
		st.Error = err.Error()
		log.Error("configuration not fingerprinted", "error", err)
		return false
	}
	if w.printed && sum == w.last {
		log.Debug("configuration unchanged", "fingerprint", sum)
		return false
	}

	if err := w.render(rl.Values); err != nil {
		st.Error = err.Error()
		log.Error("configuration not printed", "error", err)
		return false
	}
	w.last, w.printed = sum, true
	st.Changed = true
	log.Info("configuration changed", "fingerprint", sum)
	return true
}

// fingerprint hashes the canonical JSON encoding of a layer. Map keys are
// encoded in sorted order, so equal layers hash equally.
func fingerprint(values map[string]any) (uint64, error) {
	b, err := json.Marshal(values)
	if err != nil {
		return 0, err
	}
	return murmur3.Sum64(b), nil
}
