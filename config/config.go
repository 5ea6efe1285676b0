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
Package config contains the configuration of the graph query layer.

Configuration values are read from a JSON file (created with default values if
it does not exist) and can be overwritten by environment variables. The
environment is the primary configuration source when running as a serverless
function; the file is mostly used by the command line tool.
*/
package config

import (
	"fmt"
	"os"
	"strconv"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/common/fileutil"
)

// Global variables
// ================

/*
ProductVersion is the current version of SCSGraph
*/
const ProductVersion = "1.0.0"

/*
DefaultConfigFile is the default config file which will be used to configure SCSGraph
*/
var DefaultConfigFile = "scsgraph.config.json"

/*
Known configuration options for SCSGraph
*/
const (
	NeptuneEndpoint = "NeptuneEndpoint"
	NeptunePort     = "NeptunePort"
	SolutionID      = "SolutionID"
	LocalMode       = "LocalMode"
	AWSRegion       = "AWSRegion"
	QueryRetries    = "QueryRetries"
	RetryWaitMillis = "RetryWaitMillis"
	EnableDebugLog  = "EnableDebugLog"
	LocalServerHost = "LocalServerHost"
	LocalServerPort = "LocalServerPort"
	SessionTimeout  = "SessionTimeoutSeconds"
	LockFile        = "LockFile"
)

/*
DefaultConfig is the defaut configuration
*/
var DefaultConfig = map[string]interface{}{
	NeptuneEndpoint: "",
	NeptunePort:     "8182",
	SolutionID:      "",
	LocalMode:       false,
	AWSRegion:       "",
	QueryRetries:    3,
	RetryWaitMillis: 100,
	EnableDebugLog:  false,
	LocalServerHost: "127.0.0.1",
	LocalServerPort: "8182",
	SessionTimeout:  600,
	LockFile:        "scsgraph.lck",
}

/*
EnvironmentMapping maps environment variable names to configuration options.
Several variables may map to the same option; the first one found wins.
*/
var EnvironmentMapping = []struct {
	Variable string
	Key      string
}{
	{"NEPTUNE_ENDPOINT", NeptuneEndpoint},
	{"NEPTUNE_PORT", NeptunePort},
	{"API_METRICS_SOLUTION_ID_ENV_KEY", SolutionID},
	{"LOCAL_MODE", LocalMode},
	{"AWS_REGION", AWSRegion},
	{"AWS_DEFAULT_REGION", AWSRegion},
	{"SCSGRAPH_RETRIES", QueryRetries},
	{"SCSGRAPH_RETRY_WAIT_MS", RetryWaitMillis},
	{"SCSGRAPH_DEBUG", EnableDebugLog},
}

/*
Config is the actual config which is used
*/
var Config map[string]interface{}

/*
LoadConfigFile loads a given config file. If the config file does not exist it is
created with the default options.
*/
func LoadConfigFile(configfile string) error {
	var err error

	Config, err = fileutil.LoadConfig(configfile, DefaultConfig)

	return err
}

/*
LoadDefaultConfig loads the default configuration.
*/
func LoadDefaultConfig() {
	data := make(map[string]interface{})
	for k, v := range DefaultConfig {
		data[k] = v
	}

	Config = data
}

/*
LoadEnvironment overlays the current configuration with values from the
environment. The default configuration is loaded first if no configuration
was loaded yet.
*/
func LoadEnvironment() {

	if Config == nil {
		LoadDefaultConfig()
	}

	seen := make(map[string]bool)

	for _, m := range EnvironmentMapping {
		if seen[m.Key] {
			continue
		}

		if val, ok := os.LookupEnv(m.Variable); ok {
			Config[m.Key] = val
			seen[m.Key] = true
		}
	}

	// LOCAL_MODE is a flag - any non-empty value which is not a
	// false value switches it on

	if seen[LocalMode] {
		v := fmt.Sprint(Config[LocalMode])
		b, err := strconv.ParseBool(v)
		Config[LocalMode] = v != "" && (err != nil || b)
	}
}

// Helper functions
// ================

/*
HasValue checks if a config value is set and not empty.
*/
func HasValue(key string) bool {
	val, ok := Config[key]
	return ok && val != nil && fmt.Sprint(val) != ""
}

/*
Str reads a config value as a string value.
*/
func Str(key string) string {
	return fmt.Sprint(Config[key])
}

/*
Int reads a config value as an int value.
*/
func Int(key string) int64 {
	val := fmt.Sprint(Config[key])

	// JSON numbers are decoded as floats

	if f, err := strconv.ParseFloat(val, 64); err == nil {
		return int64(f)
	}

	ret, err := strconv.ParseInt(val, 10, 64)

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}

/*
Bool reads a config value as a boolean value.
*/
func Bool(key string) bool {
	ret, err := strconv.ParseBool(fmt.Sprint(Config[key]))

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}
