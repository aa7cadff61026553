package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

// BusinessMetrics covers the proposal pipeline itself.
type BusinessMetrics struct {
	ProposalsSubmittedTotal *prometheus.CounterVec
	GasFallbackTotal        prometheus.Counter
	ProposalBuildDuration   prometheus.Histogram
	BatchPayoutCount        prometheus.Histogram
}

// Global Metrics Instance
var Business *BusinessMetrics

func initBusinessMetrics() {
	Business = &BusinessMetrics{
		ProposalsSubmittedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "proposer_proposals_submitted_total",
			Help: "The total number of proposals accepted by the transaction service",
		}, []string{"safe"}),
		GasFallbackTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "proposer_gas_fallback_total",
			Help: "Runs where the relay estimate failed and the fixed gas budget was used",
		}),
		ProposalBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "proposer_proposal_build_duration_seconds",
			Help:    "Time from payout load to submission acknowledgment",
			Buckets: prometheus.DefBuckets,
		}),
		BatchPayoutCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "proposer_batch_payout_count",
			Help:    "Number of transfers per submitted batch",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		}),
	}

	prometheus.MustRegister(
		Business.ProposalsSubmittedTotal,
		Business.GasFallbackTotal,
		Business.ProposalBuildDuration,
		Business.BatchPayoutCount,
	)
}
