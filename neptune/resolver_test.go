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
	"errors"
	"strings"
	"testing"
	"time"

	"devt.de/krotik/scsgraph/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

func TestResolverConfig(t *testing.T) {
	ctx := context.Background()

	cr := &ConnectionResolver{}

	if _, err := cr.Resolve(ctx, false); err == nil || err.Error() !=
		"NeptuneError: Invalid configuration (Env variable NEPTUNE_ENDPOINT not found)" {
		t.Error("Unexpected result:", err)
		return
	}

	cr.Endpoint = "db.local"

	if _, err := cr.Resolve(ctx, false); err == nil || err.Error() !=
		"NeptuneError: Invalid configuration (Env variable NEPTUNE_PORT not found)" {
		t.Error("Unexpected result:", err)
		return
	}

	cr.Port = "8182"

	if _, err := cr.Resolve(ctx, false); !errors.Is(err, ErrConfig) ||
		!strings.Contains(err.Error(), "API_METRICS_SOLUTION_ID_ENV_KEY") {
		t.Error("Unexpected result:", err)
		return
	}

	// Parameters are read from the configuration

	config.LoadDefaultConfig()
	config.Config[config.NeptuneEndpoint] = "db.local"
	config.Config[config.SolutionID] = "SO0001"
	config.Config[config.LocalMode] = true

	defer config.LoadDefaultConfig()

	cr = NewConnectionResolver(false)

	info, err := cr.Resolve(ctx, false)
	if err != nil {
		t.Error(err)
		return
	}

	if info.URL != "ws://db.local:8182/gremlin" || len(info.Header) != 0 {
		t.Error("Unexpected result:", info)
		return
	}

	cr.LocalMode = false

	if info, _ = cr.Resolve(ctx, false); info.URL != "wss://db.local:8182/gremlin" {
		t.Error("Unexpected result:", info)
		return
	}
}

func TestResolverSigning(t *testing.T) {
	ctx := context.Background()
	retrieved := 0

	cr := &ConnectionResolver{
		UseIAM:     true,
		Endpoint:   "db.neptune.amazonaws.com",
		Port:       "8182",
		SolutionID: "SO0001",
		Credentials: aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			retrieved++
			return aws.Credentials{AccessKeyID: "AKID", SecretAccessKey: "SECRET",
				SessionToken: "TOKEN"}, nil
		}),
		Now: func() time.Time {
			return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		},
	}

	info, err := cr.Resolve(ctx, false)
	if err != nil {
		t.Error(err)
		return
	}

	if info.URL != "wss://db.neptune.amazonaws.com:8182/gremlin" {
		t.Error("Unexpected result:", info.URL)
		return
	}

	if res := info.Header.Get("Authorization"); !strings.HasPrefix(res,
		"AWS4-HMAC-SHA256 Credential=AKID/20240101/us-east-1/neptune-db/aws4_request") {
		t.Error("Unexpected result:", res)
		return
	}

	if info.Header.Get("X-Amz-Date") != "20240101T000000Z" ||
		info.Header.Get("X-Amz-Security-Token") != "TOKEN" ||
		info.Header.Get(MetricsHeaderKey) != "SO0001" ||
		info.Header.Get("Host") != "db.neptune.amazonaws.com:8182" {
		t.Error("Unexpected result:", info.Header)
		return
	}

	// Credentials are cached until a refresh is requested

	cr.Resolve(ctx, false)

	if retrieved != 1 {
		t.Error("Unexpected result:", retrieved)
		return
	}

	cr.Resolve(ctx, true)

	if retrieved != 2 {
		t.Error("Unexpected result:", retrieved)
		return
	}

	// Incomplete credentials are rejected

	cr = &ConnectionResolver{
		UseIAM:      true,
		Endpoint:    "db.neptune.amazonaws.com",
		Port:        "8182",
		SolutionID:  "SO0001",
		Region:      "eu-west-1",
		Credentials: credentials.NewStaticCredentialsProvider("", "", ""),
	}

	if _, err := cr.Resolve(ctx, false); !errors.Is(err, ErrCredentials) {
		t.Error("Unexpected result:", err)
		return
	}
}
