package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"wright/builtins"
	"wright/config"
	"wright/eval"
	"wright/metrics"
	"wright/program"
	"wright/task"
	"wright/trace"
)

func newRunCommand() *cobra.Command {
	var (
		traceEnabled bool
		traceFilters []string
		maxDepth     int
		showMetrics  bool
	)

	cmd := &cobra.Command{
		Use:   "run <program.yaml>...",
		Short: "Run dialogue programs",
		Long: `Run one or more Wright programs in order. Each program gets a fresh
environment with the standard natives; textbox output goes to stdout.

A runtime error prints a traceback and stops with exit status 1.`,
		Example: `  # Run a scene
  wright run scene.yaml

  # Trace calls to natives starting with "text"
  wright run --trace --trace-filter 'text*' scene.yaml

  # Dump the interpreter counters afterwards
  wright run --metrics scene.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("trace") {
				cfg.Trace.Enabled = traceEnabled
			}
			if cmd.Flags().Changed("trace-filter") {
				cfg.Trace.Filters = traceFilters
			}
			if cmd.Flags().Changed("max-depth") {
				cfg.MaxDepth = maxDepth
			}
			if cmd.Flags().Changed("metrics") {
				cfg.Metrics.Enabled = showMetrics
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			cleanup, err := setupLogging(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			r, err := newRunner(cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			for _, path := range args {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				if err := r.runFile(path, cmd.ErrOrStderr()); err != nil {
					return err
				}
			}
			if cfg.Metrics.Enabled {
				return dumpMetrics(cmd.ErrOrStderr(), r.registry)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&traceEnabled, "trace", false, "enable execution tracing")
	cmd.Flags().StringSliceVar(&traceFilters, "trace-filter", nil, "trace only functions matching these glob patterns")
	cmd.Flags().IntVar(&maxDepth, "max-depth", eval.DefaultMaxDepth, "maximum evaluation nesting depth (0 for the default)")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print interpreter counters after the run")

	return cmd
}

// runner runs program files with shared metrics
type runner struct {
	cfg      *config.Config
	out      io.Writer
	registry *prometheus.Registry
	metrics  *metrics.Collector
}

func newRunner(cfg *config.Config, out io.Writer) (*runner, error) {
	r := &runner{cfg: cfg, out: out}
	if cfg.Metrics.Enabled {
		r.registry = prometheus.NewRegistry()
		c, err := metrics.NewCollector(r.registry)
		if err != nil {
			return nil, err
		}
		r.metrics = c
	}
	return r, nil
}

// runFile loads, binds and runs one program. A runtime error is reported
// with its traceback on errOut and returned.
func (r *runner) runFile(path string, errOut io.Writer) error {
	p, err := program.Load(path)
	if err != nil {
		return err
	}
	logger := log.With().Str("program", path).Logger()

	env := eval.NewEnvironment(nil)
	if err := builtins.NewRegistry(builtins.WriterSink{W: r.out}).Install(env); err != nil {
		return err
	}
	if err := p.Bind(env); err != nil {
		fmt.Fprintf(errOut, "%s: %v\n", path, err)
		return err
	}

	opts := []eval.Option{
		eval.WithTracer(trace.Global()),
		eval.WithMetrics(r.metrics),
		eval.WithManager(task.GetManager()),
	}
	if r.cfg.MaxDepth > 0 {
		opts = append(opts, eval.WithMaxDepth(r.cfg.MaxDepth))
	}
	ev := eval.New(opts...)

	logger.Debug().Int("statements", p.Main.Len()).Msg("Running program")
	outcome, err := ev.Run(p.Main, env)
	defer task.GetManager().CleanupCompletedTasks()
	if err != nil {
		for _, line := range task.FormatTraceback(ev.Task().ErrorStack(), err) {
			fmt.Fprintln(errOut, line)
		}
		logger.Debug().Err(err).Dur("duration", ev.Task().Duration()).Msg("Program failed")
		return err
	}

	if outcome.Exited {
		logger.Debug().Dur("duration", ev.Task().Duration()).Msg("Program exited")
		return nil
	}
	logger.Info().
		Str("result", outcome.Value.String()).
		Dur("duration", ev.Task().Duration()).
		Msg("Program completed")
	return nil
}

// dumpMetrics prints every counter with a non-zero value
func dumpMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			value := m.GetCounter().GetValue()
			if value == 0 {
				continue
			}
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, value))
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	return nil
}
