// Package stats holds the Prometheus collectors of the translator.
package stats

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "a32ir"

// Collectors records translation statistics. A nil *Collectors is valid and
// records nothing.
type Collectors struct {
	instructions *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	blockNodes   prometheus.Histogram
}

// New returns Collectors registered with reg.
func New(reg prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		instructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instructions_translated_total",
			Help:      "How many guest instructions were accepted, by handler",
		}, []string{"tag"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instructions_rejected_total",
			Help:      "How many guest instructions were rejected, by raised exception",
		}, []string{"exception"}),
		blockNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "block_ir_nodes",
			Help:      "How many IR instructions a translated block holds",
			Buckets:   prometheus.ExponentialBuckets(4, 2, 8),
		}),
	}
	var err error
	if c.instructions, err = register(reg, c.instructions); err != nil {
		return nil, err
	}
	if c.rejections, err = register(reg, c.rejections); err != nil {
		return nil, err
	}
	if c.blockNodes, err = register(reg, c.blockNodes); err != nil {
		return nil, err
	}
	return c, nil
}

// register registers col with reg. When an identical collector is already
// registered, that one is returned so translators can share a registry.
func register[C prometheus.Collector](reg prometheus.Registerer, col C) (C, error) {
	err := reg.Register(col)
	if err == nil {
		return col, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return col, err
}

// InstructionTranslated counts one instruction accepted by the handler tag.
func (c *Collectors) InstructionTranslated(tag string) {
	if c == nil {
		return
	}
	c.instructions.WithLabelValues(tag).Inc()
}

// InstructionRejected counts one instruction that raised exception.
func (c *Collectors) InstructionRejected(exception string) {
	if c == nil {
		return
	}
	c.rejections.WithLabelValues(exception).Inc()
}

// BlockTranslated observes the size of a finished block.
func (c *Collectors) BlockTranslated(nodes int) {
	if c == nil {
		return
	}
	c.blockNodes.Observe(float64(nodes))
}

// WriteSnapshot gathers g and prints one line per sample, sorted by metric
// name. Histograms print their count and sum.
func WriteSnapshot(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName() + formatLabels(m.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				_, err = fmt.Fprintf(w, "%s %g\n", name, m.GetCounter().GetValue())
			case dto.MetricType_GAUGE:
				_, err = fmt.Fprintf(w, "%s %g\n", name, m.GetGauge().GetValue())
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				_, err = fmt.Fprintf(w, "%s count=%d sum=%g\n", name, h.GetSampleCount(), h.GetSampleSum())
			default:
				continue
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func formatLabels(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
