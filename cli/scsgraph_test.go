/*
 * SCSGraph
 *
 * Copyright 2026 SCSGraph Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package main

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/scsgraph/config"
	"devt.de/krotik/scsgraph/dataaccess"
	"devt.de/krotik/scsgraph/graph"
	"devt.de/krotik/scsgraph/gremlin"
	"devt.de/krotik/scsgraph/neptune"
	"devt.de/krotik/scsgraph/server"
)

func TestMain(m *testing.M) {
	gm := graph.NewManager()
	ts := httptest.NewServer(server.NewGremlinServer(gm, 0))

	host, port, err := net.SplitHostPort(strings.TrimPrefix(ts.URL, "http://"))
	errorutil.AssertOk(err)

	connect = func(opts *options) *dataaccess.NeptuneDB {
		return dataaccess.NewNeptuneDBWithResolver(&neptune.ConnectionResolver{
			Endpoint:   host,
			Port:       port,
			SolutionID: "SO0001",
			LocalMode:  true,
		})
	}

	res := m.Run()

	ts.Close()

	os.Exit(res)
}

/*
run executes the command line with the given arguments.
*/
func run(args ...string) (string, error) {
	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestCommands(t *testing.T) {

	out, err := run("create", "location", "description=Berlin", "type=seller", "userDefinedFields={}")
	errorutil.AssertOk(err)

	var loc map[string]interface{}
	errorutil.AssertOk(json.Unmarshal([]byte(out), &loc))

	locID, _ := loc["id"].(string)

	if locID == "" || loc["description"] != "Berlin" {
		t.Error("Unexpected result:", out)
		return
	}

	// Unique creation returns the existing vertex

	out, err = run("create", "--unique", "description", "location", "description=Berlin", "type=distributor",
		"userDefinedFields={}")
	errorutil.AssertOk(err)

	var loc2 map[string]interface{}
	errorutil.AssertOk(json.Unmarshal([]byte(out), &loc2))

	if loc2["id"] != locID || loc2["type"] != "seller" {
		t.Error("Unexpected result:", out)
		return
	}

	if _, err := run("create", "--unique", "sku", "location", "description=Paris", "type=seller",
		"userDefinedFields={}"); err == nil ||
		err.Error() != "Unique property sku is not given" {
		t.Error("Unexpected result:", err)
		return
	}

	// Invalid properties are rejected before anything is sent

	if _, err := run("create", "location", "description=Paris", "type=castle"); err == nil ||
		!strings.Contains(err.Error(), "Invalid value for type: castle") {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err := run("create", "planet", "name=Earth"); err == nil ||
		!strings.Contains(err.Error(), "Unknown label") {
		t.Error("Unexpected result:", err)
		return
	}

	out, err = run("get", "location", locID)
	if err != nil || !strings.Contains(out, `"description": "Berlin"`) {
		t.Error("Unexpected result:", out, err)
		return
	}

	out, err = run("get", "location", "unknown")
	if err != nil || strings.TrimSpace(out) != "null" {
		t.Error("Unexpected result:", out, err)
		return
	}

	out, err = run("list", "location", "type=seller")
	if err != nil || !strings.Contains(out, locID) {
		t.Error("Unexpected result:", out, err)
		return
	}

	out, err = run("list", "location", "type=distributor")
	if err != nil || strings.TrimSpace(out) != "[]" {
		t.Error("Unexpected result:", out, err)
		return
	}

	if _, err := run("list", "location", "type"); err == nil ||
		err.Error() != "Invalid property (expected key=value): type" {
		t.Error("Unexpected result:", err)
		return
	}

	out, err = run("connected", "location", "item", locID, "in")
	if err != nil || strings.TrimSpace(out) != "[]" {
		t.Error("Unexpected result:", out, err)
		return
	}

	if _, err := run("connected", "location", "item", locID, "up"); err == nil ||
		!strings.Contains(err.Error(), "Invalid edge direction") {
		t.Error("Unexpected result:", err)
		return
	}

	out, err = run("invalid-items", "--location", locID)
	if err != nil || strings.TrimSpace(out) != "[]" {
		t.Error("Unexpected result:", out, err)
		return
	}

	out, err = run("delete", "location", locID)
	if err != nil || !strings.Contains(out, `"deleted": true`) {
		t.Error("Unexpected result:", out, err)
		return
	}

	out, err = run("get", "location", locID)
	if err != nil || strings.TrimSpace(out) != "null" {
		t.Error("Unexpected result:", out, err)
		return
	}
}

func TestServeCommand(t *testing.T) {
	var called bool

	serve = func() { called = true }
	defer func() { serve = server.StartServer }()

	if _, err := run("serve"); err != nil || !called {
		t.Error("Unexpected result:", called, err)
		return
	}

	if _, err := run("serve", "now"); err == nil {
		t.Error("Extra arguments should be rejected")
		return
	}
}

func TestConfigOptions(t *testing.T) {
	defer config.LoadDefaultConfig()

	dir := t.TempDir()
	cfg := filepath.Join(dir, "test.config.json")

	serve = func() {}
	defer func() { serve = server.StartServer }()

	_, err := run("--config", cfg, "--debug", "serve")
	errorutil.AssertOk(err)

	if _, err := os.Stat(cfg); err != nil {
		t.Error("Config file should have been created:", err)
		return
	}

	if config.Str(config.LocalServerPort) == "" {
		t.Error("Unexpected result:", config.Config)
		return
	}

	neptune.LogDebug = neptune.LogNull
	gremlin.LogDebug = gremlin.LogNull
}

func TestParseValue(t *testing.T) {

	if res := parseValue("42"); res != int64(42) {
		t.Error("Unexpected result:", res)
		return
	}

	if res := parseValue("1.5"); res != 1.5 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := parseValue("true"); res != true {
		t.Error("Unexpected result:", res)
		return
	}

	if res, ok := parseValue("2023-05-01T00:00:00Z").(time.Time); !ok || res.Year() != 2023 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := parseValue("Berlin"); res != "Berlin" {
		t.Error("Unexpected result:", res)
		return
	}
}
