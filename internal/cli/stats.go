package cli

import (
	"fmt"
	"sort"
	"strings"

	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show load diagnostics",
	Long: `Load layouts and print the diagnostics recorded while doing so:
load duration, layouts rejected by validation, migrations, storage errors
and fallbacks.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}
		defer a.Close()

		families, err := a.registry.Gather()
		if err != nil {
			return fmt.Errorf("failed to gather metrics: %w", err)
		}

		samples := make(map[string]float64)
		for _, mf := range families {
			for _, m := range mf.GetMetric() {
				samples[sampleName(mf.GetName(), m)] = sampleValue(mf.GetType(), m)
			}
		}

		if jsonOutput {
			return outputJSON(samples)
		}

		names := make([]string, 0, len(samples))
		for name := range samples {
			names = append(names, name)
		}
		sort.Strings(names)

		PrintSection("Diagnostics")
		rows := make([][]string, 0, len(names))
		for _, name := range names {
			rows = append(rows, []string{name, fmt.Sprintf("%g", samples[name])})
		}
		PrintTable([]string{"METRIC", "VALUE"}, rows)
		return nil
	},
}

// sampleName renders name{label="value",...}.
func sampleName(name string, m *dto.Metric) string {
	if len(m.GetLabel()) == 0 {
		return name
	}
	pairs := make([]string, 0, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		pairs = append(pairs, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
	}
	return name + "{" + strings.Join(pairs, ",") + "}"
}

// sampleValue returns the value of a counter or gauge, or the sum of a histogram.
func sampleValue(t dto.MetricType, m *dto.Metric) float64 {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	case dto.MetricType_HISTOGRAM:
		return m.GetHistogram().GetSampleSum()
	default:
		return 0
	}
}
