package planet

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/maskwatch/maskwatch-research-cli/internal/properties"
	"golang.org/x/oauth2/clientcredentials"
)

// Client talks to the Planet Data API. Authentication comes from the
// environment: OAuth2 client credentials when PLANET_CLIENT_ID and
// PLANET_CLIENT_SECRET are set, otherwise HTTP basic auth with
// PL_API_KEY as the username.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(ctx context.Context) (*Client, error) {
	baseURL := properties.PlanetBaseURL()

	clientID := properties.PlanetClientID()
	clientSecret := properties.PlanetClientSecret()
	if clientID != "" && clientSecret != "" {
		tokenURL := properties.PlanetTokenURL()
		if tokenURL == "" {
			return nil, fmt.Errorf("missing required environment variable: PLANET_TOKEN_URL")
		}
		config := &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		}
		return &Client{baseURL: baseURL, http: config.Client(ctx)}, nil
	}

	apiKey := properties.PlanetAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("missing required environment variables: PL_API_KEY or PLANET_CLIENT_ID/PLANET_CLIENT_SECRET")
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: &apiKeyTransport{apiKey: apiKey},
			Timeout:   5 * time.Minute,
		},
	}, nil
}

type apiKeyTransport struct {
	apiKey string
	base   http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.SetBasicAuth(t.apiKey, "")
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(cloned)
}
