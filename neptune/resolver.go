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
	"net/http"
	"sync"
	"time"

	"devt.de/krotik/scsgraph/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

/*
SigningService is the SigV4 service name of Neptune
*/
const SigningService = "neptune-db"

/*
DefaultRegion is used for signing if no region could be determined
*/
const DefaultRegion = "us-east-1"

/*
emptyPayloadHash is the SHA256 hash of an empty request body
*/
const emptyPayloadHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

/*
gremlinPath is the path of the Gremlin endpoint
*/
const gremlinPath = "/gremlin"

/*
ConnectionInfo contains everything which is needed to open a connection.
*/
type ConnectionInfo struct {
	URL    string
	Header http.Header
}

/*
Resolver produces connection information. If refresh is set then cached
credentials must not be used.
*/
type Resolver interface {
	Resolve(ctx context.Context, refresh bool) (*ConnectionInfo, error)
}

/*
ConnectionResolver resolves connection information from the configuration.
*/
type ConnectionResolver struct {
	UseIAM     bool   // Flag if the handshake should be signed
	Endpoint   string // Host name of the database
	Port       string // Port of the database
	SolutionID string // Value of the metrics header
	Region     string // Signing region (default chain region or DefaultRegion if empty)
	LocalMode  bool   // Flag if an unencrypted connection should be used

	/*
		Credentials is the credentials provider for signing. The AWS default
		credential chain is used if this is nil.
	*/
	Credentials aws.CredentialsProvider

	Now func() time.Time // Clock for the signature

	signer *v4.Signer
	cache  *aws.CredentialsCache
	mutex  *sync.Mutex
}

/*
NewConnectionResolver creates a new resolver which reads its parameters from
config.Config. The handshake is signed if useIAM is set.
*/
func NewConnectionResolver(useIAM bool) *ConnectionResolver {
	if config.Config == nil {
		config.LoadDefaultConfig()
	}

	return &ConnectionResolver{
		UseIAM:     useIAM,
		Endpoint:   configValue(config.NeptuneEndpoint),
		Port:       configValue(config.NeptunePort),
		SolutionID: configValue(config.SolutionID),
		Region:     configValue(config.AWSRegion),
		LocalMode:  config.Bool(config.LocalMode),
		Now:        time.Now,
		mutex:      &sync.Mutex{},
	}
}

/*
configValue returns a config value or an empty string if it is not set.
*/
func configValue(key string) string {
	if !config.HasValue(key) {
		return ""
	}
	return config.Str(key)
}

/*
Resolve produces the URL and the handshake headers for a connection.
*/
func (cr *ConnectionResolver) Resolve(ctx context.Context, refresh bool) (*ConnectionInfo, error) {

	if cr.Endpoint == "" {
		return nil, &Error{ErrConfig, "Env variable NEPTUNE_ENDPOINT not found"}
	} else if cr.Port == "" {
		return nil, &Error{ErrConfig, "Env variable NEPTUNE_PORT not found"}
	} else if cr.SolutionID == "" {
		return nil, &Error{ErrConfig, "Env variable API_METRICS_SOLUTION_ID_ENV_KEY not found"}
	}

	host := cr.Endpoint + ":" + cr.Port

	if !cr.UseIAM {
		scheme := "wss"
		if cr.LocalMode {
			scheme = "ws"
		}

		// Unsigned connections carry no handshake headers

		return &ConnectionInfo{fmt.Sprintf("%v://%v%v", scheme, host, gremlinPath), http.Header{}}, nil
	}

	creds, region, err := cr.credentials(ctx, refresh)
	if err != nil {
		return nil, err
	}

	// Sign a plain GET request of the websocket handshake

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("https://%v%v", host, gremlinPath), nil)
	if err != nil {
		return nil, &Error{ErrConfig, err.Error()}
	}

	req.Header.Set(MetricsHeaderKey, cr.SolutionID)

	now := time.Now
	if cr.Now != nil {
		now = cr.Now
	}

	if cr.signer == nil {
		cr.signer = v4.NewSigner()
	}

	if err := cr.signer.SignHTTP(ctx, creds, req, emptyPayloadHash,
		SigningService, region, now()); err != nil {
		return nil, &Error{ErrCredentials, err.Error()}
	}

	header := req.Header.Clone()
	header.Set("Host", host)

	LogDebug("Signed connection to ", host, " in region ", region)

	return &ConnectionInfo{fmt.Sprintf("wss://%v%v", host, gremlinPath), header}, nil
}

/*
credentials retrieves credentials and the signing region.
*/
func (cr *ConnectionResolver) credentials(ctx context.Context, refresh bool) (aws.Credentials, string, error) {
	if cr.mutex == nil {
		cr.mutex = &sync.Mutex{}
	}

	cr.mutex.Lock()
	defer cr.mutex.Unlock()

	region := cr.Region

	if cr.cache == nil {
		provider := cr.Credentials

		if provider == nil {
			cfg, err := awsconfig.LoadDefaultConfig(ctx)
			if err != nil {
				return aws.Credentials{}, "", &Error{ErrCredentials, err.Error()}
			}

			provider = cfg.Credentials

			if region == "" {
				region = cfg.Region
			}
		}

		if provider == nil {
			return aws.Credentials{}, "", &Error{ErrCredentials, "No credentials provider"}
		}

		if cache, ok := provider.(*aws.CredentialsCache); ok {
			cr.cache = cache
		} else {
			cr.cache = aws.NewCredentialsCache(provider)
		}

	} else if refresh {
		cr.cache.Invalidate()
	}

	if region == "" {
		region = DefaultRegion
	}

	cr.Region = region

	creds, err := cr.cache.Retrieve(ctx)
	if err != nil {
		return aws.Credentials{}, "", &Error{ErrCredentials, err.Error()}
	}

	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return aws.Credentials{}, "", &Error{ErrCredentials, "Access key and secret key are required"}
	}

	return creds, region, nil
}
