// Package cli implements the bn command line using Cobra.
// Without --serial, bn lists batteries; with it, bn runs one threshold check.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bn-notify/bn/internal/domain"
	"github.com/bn-notify/bn/internal/infra/metrics"
	"github.com/bn-notify/bn/internal/infra/notify"
	"github.com/bn-notify/bn/internal/infra/power"
	"github.com/bn-notify/bn/internal/infra/state"
	"github.com/bn-notify/bn/internal/monitor"
)

// backends constructs the collaborators; tests replace them.
type backends struct {
	provider func(ctx context.Context, name string) (domain.BatteryProvider, error)
	notifier func(name string) (domain.Notifier, error)
}

func defaultBackends() backends {
	return backends{provider: power.New, notifier: notify.New}
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	cmd := newRootCmd(defaultBackends())
	cmd.Version = version

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(b backends) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "bn",
		Short: "Simple application to notify when the battery drops too low",
		Long: `bn compares the battery's charge with the charge seen on its previous run
and shows a desktop notification when it drops to or below a threshold.
Run it periodically, e.g. from cron or a systemd timer.

Without --serial, bn lists the batteries it can see.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			configureLogging(cmd.ErrOrStderr(), opts.Verbose)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			opts.CriticalSet = f.Changed("critical-percentage")
			opts.WarnSet = f.Changed("warn-percentage")
			if err := opts.Validate(); err != nil {
				return err
			}
			if !opts.CheckMode() {
				fmt.Fprintln(cmd.OutOrStdout(), "No serial given, listing possible batteries")
				return runListing(cmd, b, opts)
			}
			return runCheck(cmd, b, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.Serial, "serial", "s", "", "The serial number of the battery to check. If not provided, this command will list all batteries.")
	f.Uint32VarP(&opts.Critical, "critical-percentage", "c", 0, "When the battery drops to this level, send an urgent critical notification (0-100)")
	f.Uint32VarP(&opts.Warn, "warn-percentage", "w", 0, "When the battery drops to this level, send a warning notification (0-100)")
	f.StringVar(&opts.StateFile, "state-file", state.DefaultPath(), "Where the last seen percentage is kept")
	f.StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus gauges for node_exporter's textfile collector to this path")
	f.StringVar(&opts.Notifier, "notifier", notify.BackendAuto, "Notification backend: auto, dbus or beeep")

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.Provider, "provider", power.BackendAuto, "Battery backend: auto, upower or sysfs")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "Log diagnostics to stderr")

	cmd.AddCommand(newListCmd(b, opts))
	return cmd
}

// runCheck performs one threshold check against the selected battery.
func runCheck(cmd *cobra.Command, b backends, opts *Options) error {
	ctx := cmd.Context()

	provider, err := b.provider(ctx, opts.Provider)
	if err != nil {
		return err
	}
	notifier := &lazyNotifier{build: func() (domain.Notifier, error) { return b.notifier(opts.Notifier) }}

	m := monitor.New(provider, notifier, state.NewFileStore(opts.StateFile))
	m.Out = cmd.ErrOrStderr()
	m.Status = cmd.OutOrStdout()
	m.Log = log.Default()

	res, err := m.Check(ctx, opts.Serial, opts.Thresholds())
	if err != nil {
		return err
	}
	if res != nil && opts.MetricsFile != "" {
		rec := metrics.NewRecorder()
		rec.Observe(opts.Serial, res.Prev, res.Reading, res.Level, time.Now())
		if err := rec.WriteTextfile(opts.MetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

// lazyNotifier connects to the notifier backend on the first Show, so a
// run that notifies nothing never needs a session bus.
type lazyNotifier struct {
	build    func() (domain.Notifier, error)
	notifier domain.Notifier
}

func (l *lazyNotifier) Show(ctx context.Context, n domain.Notification) error {
	if l.notifier == nil {
		notifier, err := l.build()
		if err != nil {
			return err
		}
		l.notifier = notifier
	}
	return l.notifier.Show(ctx, n)
}

// configureLogging routes the [component] log lines to w when verbose.
func configureLogging(w io.Writer, verbose bool) {
	log.SetFlags(log.LstdFlags)
	if verbose {
		log.SetOutput(w)
		return
	}
	log.SetOutput(io.Discard)
}
