/*
 * SCSGraph
 *
 * Copyright 2026 SCSGraph Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package neptune

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Metrics
// =======

var (
	queryAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "scsgraph",
		Subsystem: "neptune",
		Name:      "query_attempts_total",
		Help:      "Total number of query attempts",
	})

	queryRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scsgraph",
		Subsystem: "neptune",
		Name:      "query_retries_total",
		Help:      "Total number of retried query attempts by failure class",
	}, []string{"class"})

	queryFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scsgraph",
		Subsystem: "neptune",
		Name:      "query_failures_total",
		Help:      "Total number of failed queries by failure class",
	}, []string{"class"})

	reconnects = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scsgraph",
		Subsystem: "neptune",
		Name:      "reconnects_total",
		Help:      "Total number of reconnects by reason",
	}, []string{"reason"})

	queryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "scsgraph",
		Subsystem: "neptune",
		Name:      "query_duration_seconds",
		Help:      "Duration of queries including all retries",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})
)

// Tracing
// =======

var tracer = otel.Tracer("devt.de/krotik/scsgraph/neptune")

/*
startQuerySpan creates a span for a query.
*/
func startQuerySpan(ctx context.Context, transactional bool) (context.Context, trace.Span) {
	return tracer.Start(ctx, "neptune.query",
		trace.WithAttributes(attribute.Bool("neptune.transactional", transactional)))
}

/*
endQuerySpan records the outcome of a query on its span.
*/
func endQuerySpan(span trace.Span, attempts int, err error) {
	span.SetAttributes(attribute.Int("neptune.attempts", attempts))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, Classify(err).String())
	}

	span.End()
}
