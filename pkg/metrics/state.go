package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// initStateMetrics initializes experience-processing metrics.
func (m *Manager) initStateMetrics(cfg Config) {
	m.updates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mind_updates_total",
			Help: "Total number of experience updates by outcome",
		},
		[]string{"outcome"},
	)

	m.updateDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mind_update_duration_seconds",
			Help:    "Experience update duration in seconds",
			Buckets: cfg.UpdateDurationBuckets,
		},
	)

	m.queryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mind_query_duration_seconds",
			Help:    "Query duration in seconds",
			Buckets: cfg.QueryDurationBuckets,
		},
	)

	m.plasticity = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mind_plasticity",
			Help: "Current plasticity per state",
		},
		[]string{"state_id"},
	)

	m.occupiedSlots = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mind_occupied_slots",
			Help: "Occupied memory slots per state",
		},
		[]string{"state_id"},
	)

	m.statesActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mind_states_active",
			Help: "Number of states currently managed",
		},
	)

	m.registry.MustRegister(m.updates)
	m.registry.MustRegister(m.updateDuration)
	m.registry.MustRegister(m.queryDuration)
	m.registry.MustRegister(m.plasticity)
	m.registry.MustRegister(m.occupiedSlots)
	m.registry.MustRegister(m.statesActive)
}

// RecordUpdate records an experience update with its outcome label and
// the resulting state gauges.
func (m *Manager) RecordUpdate(stateID, outcome string, plasticity float64, occupied int, duration time.Duration) {
	if !m.enabled {
		return
	}
	m.updates.WithLabelValues(outcome).Inc()
	m.updateDuration.Observe(duration.Seconds())
	m.plasticity.WithLabelValues(stateID).Set(plasticity)
	m.occupiedSlots.WithLabelValues(stateID).Set(float64(occupied))
}

// RecordQuery records a query duration.
func (m *Manager) RecordQuery(duration time.Duration) {
	if !m.enabled {
		return
	}
	m.queryDuration.Observe(duration.Seconds())
}

// SetStatesActive sets the number of managed states.
func (m *Manager) SetStatesActive(n int) {
	if !m.enabled {
		return
	}
	m.statesActive.Set(float64(n))
}

// RemoveState drops the per-state gauges for a destroyed state.
func (m *Manager) RemoveState(stateID string) {
	if !m.enabled {
		return
	}
	m.plasticity.DeleteLabelValues(stateID)
	m.occupiedSlots.DeleteLabelValues(stateID)
}
