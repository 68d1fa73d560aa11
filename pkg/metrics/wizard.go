package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WizardMetrics tracks the quotation flow: step transitions, validation
// rejections, totals recomputations and finalized quotes.
type WizardMetrics struct {
	transitions  *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	recompute    prometheus.Histogram
	finalized    prometheus.Counter
	sessionStart prometheus.Counter
}

// NewWizardMetrics registers the wizard metrics on the provided registerer.
func NewWizardMetrics(reg prometheus.Registerer) *WizardMetrics {
	if reg == nil {
		return &WizardMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wizard_step_transitions",
		Help: "Completed wizard step transitions by target step.",
	}, []string{"step"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wizard_validation_rejections",
		Help: "Step transitions rejected by a validator, by step.",
	}, []string{"step"})
	recompute := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "wizard_recompute_duration_seconds",
		Help:    "Duration of quote totals recomputation.",
		Buckets: prometheus.DefBuckets,
	})
	finalized := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wizard_quotes_finalized",
		Help: "Quotes finalized and persisted.",
	})
	sessionStart := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wizard_sessions_started",
		Help: "Wizard sessions started.",
	})
	reg.MustRegister(transitions, rejections, recompute, finalized, sessionStart)
	return &WizardMetrics{
		transitions:  transitions,
		rejections:   rejections,
		recompute:    recompute,
		finalized:    finalized,
		sessionStart: sessionStart,
	}
}

// IncTransition counts a successful transition into the named step.
func (w *WizardMetrics) IncTransition(step string) {
	if w == nil || w.transitions == nil {
		return
	}
	w.transitions.WithLabelValues(normalizeLabel(step)).Inc()
}

// IncRejection counts a validator rejection at the named step.
func (w *WizardMetrics) IncRejection(step string) {
	if w == nil || w.rejections == nil {
		return
	}
	w.rejections.WithLabelValues(normalizeLabel(step)).Inc()
}

// ObserveRecompute records one totals recomputation duration.
func (w *WizardMetrics) ObserveRecompute(duration time.Duration) {
	if w == nil || w.recompute == nil {
		return
	}
	w.recompute.Observe(duration.Seconds())
}

// IncFinalized counts one finalized quote.
func (w *WizardMetrics) IncFinalized() {
	if w == nil || w.finalized == nil {
		return
	}
	w.finalized.Inc()
}

// IncSessionStarted counts one started session.
func (w *WizardMetrics) IncSessionStarted() {
	if w == nil || w.sessionStart == nil {
		return
	}
	w.sessionStart.Inc()
}
