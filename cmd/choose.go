package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/mwt/mwt"
	"github.com/inference-sim/mwt/mwt/policy"
	"github.com/inference-sim/mwt/mwt/recorder"
)

// unitContext is the context the CLI attaches to every decision.
type unitContext struct {
	Features map[string]string `json:"features,omitempty"`
}

func newChooseCommand() *cobra.Command {
	var (
		configPath string
		features   map[string]string
	)
	cmd := &cobra.Command{
		Use:   "choose [unit-key...]",
		Short: "Choose an action for each unit key (read from stdin when none are given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			keys := args
			if len(keys) == 0 {
				if keys, err = readKeys(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			_, err = runChoose(cmd.OutOrStdout(), cfg, keys, unitContext{Features: features})
			return err
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "mwt.yaml", "Path to the YAML config")
	cmd.Flags().StringToStringVar(&features, "feature", nil, "Context feature key=value attached to every decision")
	return cmd
}

// readKeys returns the non-blank lines of r.
func readKeys(r io.Reader) ([]string, error) {
	var keys []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if key := strings.TrimSpace(scanner.Text()); key != "" {
			keys = append(keys, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read unit keys: %w", err)
	}
	return keys, nil
}

// runChoose decides for every key, writing "key<TAB>action" lines to out.
// It returns the summary of the decisions the configured sink accepted.
func runChoose(out io.Writer, cfg *Config, keys []string, c unitContext) (*recorder.Summary, error) {
	sink, closeSink, err := openRecorder(cfg.Recorder)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closeSink(); err != nil {
			logrus.Errorf("close recorder: %v", err)
		}
	}()
	return chooseWith(out, cfg, sink, keys, c)
}

// chooseWith runs the decisions against an already opened sink.
func chooseWith(out io.Writer, cfg *Config, sink mwt.Recorder[unitContext], keys []string, c unitContext) (*recorder.Summary, error) {
	accepted := &acceptedRecorder{sink: sink, kept: recorder.NewMemory[unitContext]()}
	reg := prometheus.NewRegistry()
	e, err := mwt.NewExplorer[unitContext](cfg.AppID, accepted,
		mwt.WithMetrics(mwt.NewMetrics(reg)))
	if err != nil {
		return nil, err
	}
	p, err := policy.New(cfg.Policy.policyConfig(), cfg.Policy.callbacks())
	if err != nil {
		return nil, err
	}

	logrus.Infof("Choosing actions for %d units: app=%q policy=%s recorder=%s",
		len(keys), cfg.AppID, cfg.Policy.Name, cfg.Recorder.Kind)
	for _, key := range keys {
		action, err := e.ChooseAction(p, key, c)
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", key, err)
		}
		logrus.Debugf("unit=%q action=%d", key, action)
		if _, err := fmt.Fprintf(out, "%s\t%d\n", key, action); err != nil {
			return nil, err
		}
	}

	summary := recorder.Summarize(accepted.kept.Records())
	logrus.Infof("Recorded %d of %d decisions (%d unique units, mean p=%.4f, min p=%.4f)",
		summary.Total, len(keys), summary.UniqueKeys, summary.MeanProbability, summary.MinProbability)
	logCounters(reg)
	return summary, nil
}

// acceptedRecorder forwards to sink and keeps a copy of each record the
// sink accepted, for the run summary.
type acceptedRecorder struct {
	sink mwt.Recorder[unitContext]
	kept *recorder.Memory[unitContext]
}

func (r *acceptedRecorder) Record(c unitContext, action int, probability float64, uniqueKey string) error {
	if err := r.sink.Record(c, action, probability, uniqueKey); err != nil {
		return err
	}
	return r.kept.Record(c, action, probability, uniqueKey)
}

// noopRecorder discards records for recorder kind "none".
type noopRecorder struct{}

func (noopRecorder) Record(unitContext, int, float64, string) error { return nil }

// openRecorder builds the configured sink and the function that releases it.
func openRecorder(cfg RecorderConfig) (mwt.Recorder[unitContext], func() error, error) {
	var (
		sink    mwt.Recorder[unitContext]
		release = func() error { return nil }
	)
	switch cfg.Kind {
	case "none", "memory":
		// memory records are only kept for the run summary
		sink = noopRecorder{}
	case "jsonl":
		f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open jsonl recorder: %w", err)
		}
		sink, release = recorder.NewJSONL[unitContext](f), f.Close
	case "sqlite":
		s, err := recorder.OpenSQLite[unitContext](cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite recorder: %w", err)
		}
		sink, release = s, s.Close
	default:
		return nil, nil, fmt.Errorf("unknown recorder kind %q", cfg.Kind)
	}

	if cfg.AsyncBuffer > 0 {
		async := recorder.NewAsync[unitContext](sink, cfg.AsyncBuffer, func(r recorder.Record[unitContext], err error) {
			logrus.Warnf("async recorder: dropped record for %q: %v", r.UniqueKey, err)
		})
		inner := release
		sink = async
		release = func() error {
			async.Close()
			return inner()
		}
	}
	return sink, release, nil
}

// logCounters logs every counter gathered from reg at info level.
func logCounters(reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		logrus.Warnf("gather metrics: %v", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			logrus.Infof("%s %v", mf.GetName(), m.GetCounter().GetValue())
		}
	}
}
