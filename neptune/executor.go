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
	"fmt"
	"time"

	"devt.de/krotik/scsgraph/config"
	"devt.de/krotik/scsgraph/gremlin"
)

/*
QueryFunc is a query which runs on a given traversal source.
*/
type QueryFunc func(ctx context.Context, g *gremlin.Source) (gremlin.Result, error)

/*
SourceProvider provides traversal sources for query attempts.
*/
type SourceProvider interface {

	/*
		Source returns the traversal source for the next attempt.
	*/
	Source(ctx context.Context, transactional bool) (*gremlin.Source, error)

	/*
		Reopen reconnects after a connection failure.
	*/
	Reopen(ctx context.Context, refresh bool) error
}

/*
Executor runs queries and retries failed attempts if the failure is
recoverable.
*/
type Executor struct {
	provider  SourceProvider
	Retries   int           // Number of retries for calls outside of a transaction
	RetryWait time.Duration // Wait time between attempts
}

/*
NewExecutor creates a new executor which reads the retry parameters from
config.Config.
*/
func NewExecutor(provider SourceProvider) *Executor {
	if config.Config == nil {
		config.LoadDefaultConfig()
	}

	return &Executor{
		provider:  provider,
		Retries:   int(config.Int(config.QueryRetries)),
		RetryWait: time.Duration(config.Int(config.RetryWaitMillis)) * time.Millisecond,
	}
}

/*
Query runs a query function. Transactional calls are never retried. Returns
either the result of a successful attempt or the error of the last attempt.
*/
func (e *Executor) Query(ctx context.Context, transactional bool, fn QueryFunc) (gremlin.Result, error) {
	var attempt int
	var res gremlin.Result
	var err error

	start := time.Now()

	ctx, span := startQuerySpan(ctx, transactional)

	defer func() {
		queryDuration.Observe(time.Since(start).Seconds())
		endQuerySpan(span, attempt+1, err)
	}()

	retries := e.Retries
	if transactional {
		retries = 0
	}

	for attempt = 0; ; attempt++ {

		if attempt > 0 {
			LogInfo("Retry attempt no: ", attempt)
		}

		if res, err = e.attempt(ctx, transactional, fn); err == nil {
			return res, nil
		}

		decision := Decide(err, transactional)

		if decision.Action == ActionFail || attempt >= retries {
			LogInfo("Unrecoverable error: ", err)
			queryFailures.WithLabelValues(decision.Class.String()).Inc()
			return nil, err
		}

		LogDebug(fmt.Sprintf("Query failed (%v) - retrying after waiting %v",
			decision.Class, e.RetryWait))

		if err = e.wait(ctx); err != nil {
			queryFailures.WithLabelValues(Classify(err).String()).Inc()
			return nil, err
		}

		switch decision.Action {
		case ActionReopen:
			LogInfo("Reopening connection")
			reconnects.WithLabelValues(decision.Class.String()).Inc()
			err = e.provider.Reopen(ctx, false)

		case ActionRefreshCredentials:
			LogInfo("Refreshing credentials")
			reconnects.WithLabelValues(decision.Class.String()).Inc()
			err = e.provider.Reopen(ctx, true)
		}

		if err != nil {
			LogInfo("Could not reconnect: ", err)
			queryFailures.WithLabelValues(Classify(err).String()).Inc()
			return nil, err
		}

		queryRetries.WithLabelValues(decision.Class.String()).Inc()
	}
}

/*
attempt runs a single attempt of a query.
*/
func (e *Executor) attempt(ctx context.Context, transactional bool, fn QueryFunc) (gremlin.Result, error) {
	queryAttempts.Inc()

	g, err := e.provider.Source(ctx, transactional)
	if err != nil {
		return nil, err
	}

	return fn(ctx, g)
}

/*
wait waits between two attempts.
*/
func (e *Executor) wait(ctx context.Context) error {
	if e.RetryWait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(e.RetryWait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
