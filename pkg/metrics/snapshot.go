package metrics

import (
	"sort"
	"strings"

	dto "github.com/prometheus/client_model/go"
)

// Sample is one gathered series value. Histograms contribute a _count and a
// _sum sample.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// Snapshot gathers the custom registry into flat samples sorted by name and
// labels.
func Snapshot() ([]Sample, error) {
	families, err := customRegistry.Gather()
	if err != nil {
		return nil, err
	}

	var out []Sample
	for _, f := range families {
		for _, m := range f.GetMetric() {
			labels := labelString(m.GetLabel())
			switch f.GetType() {
			case dto.MetricType_COUNTER:
				out = append(out, Sample{Name: f.GetName(), Labels: labels, Value: m.GetCounter().GetValue()})
			case dto.MetricType_GAUGE:
				out = append(out, Sample{Name: f.GetName(), Labels: labels, Value: m.GetGauge().GetValue()})
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				out = append(out,
					Sample{Name: f.GetName() + "_count", Labels: labels, Value: float64(h.GetSampleCount())},
					Sample{Name: f.GetName() + "_sum", Labels: labels, Value: h.GetSampleSum()},
				)
			default:
				out = append(out, Sample{Name: f.GetName(), Labels: labels, Value: m.GetUntyped().GetValue()})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Labels < out[j].Labels
	})
	return out, nil
}

func labelString(pairs []*dto.LabelPair) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.GetName() + "=" + p.GetValue()
	}
	return strings.Join(parts, ",")
}
