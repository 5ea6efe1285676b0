/*
 * SCSGraph
 *
 * Copyright 2026 SCSGraph Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package server contains a local Gremlin server which serves an in-memory graph.

The server speaks the same websocket protocol as Neptune and is used for local
development (LOCAL_MODE) and for end-to-end tests of the query layer.
*/
package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"devt.de/krotik/common/httputil"
	"devt.de/krotik/common/lockutil"
	"devt.de/krotik/scsgraph/config"
	"devt.de/krotik/scsgraph/graph"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

/*
Using custom consolelogger type so we can test log.Fatal calls with unit tests. Overwrite
these if the server should not call os.Exit on a fatal error.
*/
type consolelogger func(v ...interface{})

var fatal = consolelogger(log.Fatal)
var print = consolelogger(log.Print)

/*
Base path for all file (used by unit tests)
*/
var basepath = ""

/*
MetricsEndpoint is the path of the prometheus metrics endpoint
*/
const MetricsEndpoint = "/metrics"

/*
StartServer runs the local Gremlin server. The server uses config.Config for all
its configuration parameters.
*/
func StartServer() {
	StartServerWithSingleOp(nil)
}

/*
StartServerWithSingleOp runs the local Gremlin server. If the singleOperation
function is not nil then the server executes the function before it starts
listening and exits if the function returns true.
*/
func StartServerWithSingleOp(singleOperation func(*graph.Manager) bool) {

	print(fmt.Sprintf("SCSGraph %v", config.ProductVersion))

	// Ensure we have a configuration - use the default configuration if nothing was set

	if config.Config == nil {
		config.LoadDefaultConfig()
	}

	print("Creating in-memory graph")

	gm := graph.NewManager()

	if singleOperation != nil && singleOperation(gm) {
		return
	}

	gs := NewGremlinServer(gm, config.Int(config.SessionTimeout))

	http.Handle(GremlinEndpoint, gs)
	http.Handle(MetricsEndpoint, promhttp.Handler())

	// Start HTTP server

	hs := &httputil.HTTPServer{}

	var wg sync.WaitGroup
	wg.Add(1)

	addr := config.Str(config.LocalServerHost) + ":" + config.Str(config.LocalServerPort)

	print("Starting server on: ", addr)

	go hs.RunHTTPServer(addr, &wg)

	// Wait until the server has started

	wg.Wait()

	if hs.LastError != nil {
		fatal(hs.LastError)
		return
	}

	// Create a lockfile so the server can be shut down

	lockfile := filepath.Join(basepath, config.Str(config.LockFile))

	lf := lockutil.NewLockFile(lockfile, time.Duration(2)*time.Second)

	lf.Start()

	go func() {

		// Check if the lockfile watcher is running and
		// call shutdown once it has finished

		for lf.WatcherRunning() {
			time.Sleep(time.Duration(1) * time.Second)
		}

		print("Lockfile was modified")

		hs.Shutdown()
	}()

	// Add to the wait group so we can wait for the shutdown

	wg.Add(1)

	print("Waiting for shutdown")
	wg.Wait()

	print("Shutting down")

	os.RemoveAll(lockfile)
}
