// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package capability

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

func newCallsVec() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "enginehost",
			Subsystem: "capability",
			Name:      "calls_total",
			Help:      "Gated engine calls by capability and outcome.",
		},
		[]string{"capability", "outcome"},
	)
}

// registerCalls registers vec with reg. If an identical collector is already
// registered (a second Gate on the same registry) the existing one is reused.
func registerCalls(reg prometheus.Registerer, vec *prometheus.CounterVec) *prometheus.CounterVec {
	if reg == nil {
		return vec
	}
	if err := reg.Register(vec); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
	}
	return vec
}
