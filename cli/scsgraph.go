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
SCSGraph is the command line client of the supply chain graph.

The serve command runs a local Gremlin server on an in-memory graph. All
other commands connect to the configured graph database (NEPTUNE_ENDPOINT,
NEPTUNE_PORT, ...) and print their results as JSON.
*/
package main

import (
	"context"
	"log"
	"os"

	"devt.de/krotik/common/fileutil"
	"devt.de/krotik/scsgraph/config"
	"devt.de/krotik/scsgraph/dataaccess"
	"devt.de/krotik/scsgraph/gremlin"
	"devt.de/krotik/scsgraph/neptune"
	"devt.de/krotik/scsgraph/server"
	"github.com/spf13/cobra"
)

/*
options are the global command line options.
*/
type options struct {
	configFile string
	useIAM     bool
	debug      bool
}

/*
connect creates the data access layer for a command.
*/
var connect = func(opts *options) *dataaccess.NeptuneDB {
	return dataaccess.NewNeptuneDB(opts.useIAM)
}

/*
serve runs the local server.
*/
var serve = server.StartServer

/*
newRootCmd creates the root command with all subcommands.
*/
func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "scsgraph",
		Short:         "Query and manage the supply chain graph",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "",
		"Configuration file (created with defaults if it does not exist)")
	root.PersistentFlags().BoolVar(&opts.useIAM, "iam", false,
		"Sign connections with IAM credentials")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false,
		"Enable debug logging")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run a local Gremlin server on an in-memory graph",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				serve()
			},
		},
		newGetCmd(opts),
		newListCmd(opts),
		newCreateCmd(opts),
		newDeleteCmd(opts),
		newConnectedCmd(opts),
		newInvalidItemsCmd(opts),
	)

	return root
}

/*
loadConfig loads the configuration and overlays it with the environment.
*/
func loadConfig(opts *options) error {

	if opts.configFile != "" {
		if ok, _ := fileutil.PathExists(opts.configFile); !ok {
			log.Print("Creating configuration file: ", opts.configFile)
		}
		if err := config.LoadConfigFile(opts.configFile); err != nil {
			return err
		}
	} else {
		config.LoadDefaultConfig()
	}

	config.LoadEnvironment()

	if opts.debug || config.Bool(config.EnableDebugLog) {
		neptune.LogDebug = neptune.Logger(log.Print)
		gremlin.LogDebug = gremlin.Logger(log.Print)
	}

	return nil
}

/*
withDB runs a function with a connected data access layer.
*/
func withDB(opts *options, f func(ctx context.Context, db *dataaccess.NeptuneDB) error) error {
	ctx := context.Background()
	db := connect(opts)

	err := f(ctx, db)

	if cerr := db.Close(ctx); err == nil {
		err = cerr
	}

	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Print("Error: ", err)
		os.Exit(1)
	}
}
