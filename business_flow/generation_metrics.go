package businessflow

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation outcomes used as metric labels
const (
	outcomeSuccess  = "success"
	outcomeConfig   = "config_error"
	outcomeConflict = "conflict"
	outcomeStorage  = "storage_error"
)

var (
	// Generation runs partitioned by outcome and whether prior output was regenerated
	generationRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_generation_runs_total",
			Help: "Total number of campaign generation runs",
		},
		[]string{"outcome", "regenerate"},
	)

	// End to end generation latency including lock wait and commit
	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campaign_generation_duration_seconds",
			Help:    "Campaign generation latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	// Entities written by successful runs
	generatedEntitiesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_generation_entities_total",
			Help: "Total number of generated entities by kind",
		},
		[]string{"kind"},
	)

	// Data rows dropped because their campaign name rendered blank
	generationSkippedRowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campaign_generation_skipped_rows_total",
			Help: "Total number of data rows excluded for a blank campaign name",
		},
	)
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case IsGenerationConfigError(err):
		return outcomeConfig
	case IsGenerationConflict(err):
		return outcomeConflict
	default:
		return outcomeStorage
	}
}

func observeGeneration(start time.Time, regenerate bool, err error, result *writeResult, skipped int) {
	outcome := outcomeOf(err)
	regen := "false"
	if regenerate {
		regen = "true"
	}

	generationRunsTotal.WithLabelValues(outcome, regen).Inc()
	generationDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if err != nil || result == nil {
		return
	}
	generatedEntitiesTotal.WithLabelValues("campaign").Add(float64(len(result.Campaigns)))
	generatedEntitiesTotal.WithLabelValues("ad_group").Add(float64(result.AdGroups))
	generatedEntitiesTotal.WithLabelValues("ad").Add(float64(result.Ads))
	generatedEntitiesTotal.WithLabelValues("keyword").Add(float64(result.Keywords))
	generationSkippedRowsTotal.Add(float64(skipped))
}
