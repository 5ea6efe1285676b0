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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"devt.de/krotik/scsgraph/dataaccess"
	"devt.de/krotik/scsgraph/gremlin"
	"devt.de/krotik/scsgraph/model"
	"github.com/spf13/cobra"
)

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <label> <id>",
		Short: "Show a vertex",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, err := model.ParseVertexLabel(args[0])
			if err != nil {
				return err
			}

			return withDB(opts, func(ctx context.Context, db *dataaccess.NeptuneDB) error {
				res, err := db.GetByID(ctx, label, args[1])
				if err == nil {
					err = writeJSON(cmd.OutOrStdout(), res)
				}
				return err
			})
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list <label> [key=value...]",
		Short: "List all vertices of a label which have the given property values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, err := model.ParseVertexLabel(args[0])
			if err != nil {
				return err
			}

			filter, err := parseProperties(args[1:])
			if err != nil {
				return err
			}

			return withDB(opts, func(ctx context.Context, db *dataaccess.NeptuneDB) error {
				res, err := db.GetAll(ctx, label, filter)
				if err == nil {
					err = writeJSON(cmd.OutOrStdout(), orEmpty(res))
				}
				return err
			})
		},
	}
}

func newCreateCmd(opts *options) *cobra.Command {
	var unique string

	cmd := &cobra.Command{
		Use:   "create <label> [key=value...]",
		Short: "Create a vertex",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, err := model.ParseVertexLabel(args[0])
			if err != nil {
				return err
			}

			props, err := parseProperties(args[1:])
			if err != nil {
				return err
			}

			if err := model.Validate(label, props, true, false); err != nil {
				return err
			}

			return withDB(opts, func(ctx context.Context, db *dataaccess.NeptuneDB) error {
				var res gremlin.PropertyMap

				if unique != "" {
					value, ok := props[unique]
					if !ok {
						return fmt.Errorf("Unique property %v is not given", unique)
					}
					res, err = db.CreateUniqueVertex(ctx, label, unique, value, props, false)
				} else {
					res, err = db.CreateVertex(ctx, label, props, false)
				}

				if err == nil {
					err = writeJSON(cmd.OutOrStdout(), res)
				}
				return err
			})
		},
	}

	cmd.Flags().StringVar(&unique, "unique", "", "Only create the vertex if no vertex has the same value for this key")

	return cmd
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <label> <id>",
		Short: "Delete a vertex and all its edges",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, err := model.ParseVertexLabel(args[0])
			if err != nil {
				return err
			}

			return withDB(opts, func(ctx context.Context, db *dataaccess.NeptuneDB) error {
				ok, err := db.DeleteByID(ctx, label, args[1], false)
				if err == nil {
					err = writeJSON(cmd.OutOrStdout(), map[string]bool{"deleted": ok})
				}
				return err
			})
		},
	}
}

func newConnectedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "connected <start label> <end label> <id> <in|out>",
		Short: "List all vertices which are adjacent to a vertex",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := model.ParseVertexLabel(args[0])
			if err != nil {
				return err
			}

			end, err := model.ParseVertexLabel(args[1])
			if err != nil {
				return err
			}

			dir, err := model.ParseDirection(args[3])
			if err != nil {
				return err
			}

			return withDB(opts, func(ctx context.Context, db *dataaccess.NeptuneDB) error {
				res, err := db.GetAllConnected(ctx, start, end, args[2], dir, nil)
				if err == nil {
					err = writeJSON(cmd.OutOrStdout(), orEmpty(res))
				}
				return err
			})
		},
	}
}

func newInvalidItemsCmd(opts *options) *cobra.Command {
	var locationID, itemID string

	cmd := &cobra.Command{
		Use:   "invalid-items",
		Short: "List all items which violate a rule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(opts, func(ctx context.Context, db *dataaccess.NeptuneDB) error {
				res, err := db.InvalidItems(ctx, locationID, itemID)
				if err == nil {
					err = writeJSON(cmd.OutOrStdout(), res)
				}
				return err
			})
		},
	}

	cmd.Flags().StringVar(&locationID, "location", "", "Only items of this location")
	cmd.Flags().StringVar(&itemID, "item", "", "Only this item")

	return cmd
}

// Helper functions
// ================

/*
parseProperties parses key=value arguments. Values are converted into
numbers, booleans or dates where possible.
*/
func parseProperties(args []string) (gremlin.PropertyMap, error) {
	props := make(gremlin.PropertyMap, len(args))

	for _, arg := range args {
		kv := strings.SplitN(arg, "=", 2)

		if len(kv) != 2 || kv[0] == "" {
			return nil, fmt.Errorf("Invalid property (expected key=value): %v", arg)
		}

		props[kv[0]] = parseValue(kv[1])
	}

	return props, nil
}

/*
parseValue converts a string value.
*/
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	} else if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	} else if b, err := strconv.ParseBool(s); err == nil {
		return b
	} else if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return s
}

/*
orEmpty makes sure a nil list is written as an empty JSON list.
*/
func orEmpty(l []gremlin.PropertyMap) []gremlin.PropertyMap {
	if l == nil {
		return []gremlin.PropertyMap{}
	}
	return l
}

/*
writeJSON writes an object as indented JSON.
*/
func writeJSON(w io.Writer, o interface{}) error {
	out, err := json.MarshalIndent(o, "", "  ")
	if err == nil {
		_, err = fmt.Fprintln(w, string(out))
	}
	return err
}
