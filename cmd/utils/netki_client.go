package utils

import (
	"fmt"

	"github.com/netkicorp/go-partner-client/internal/httpclient"
	"github.com/netkicorp/go-partner-client/pkg/netki"
)

// NewNetkiClient creates a Netki API client from the global options. observer may be nil.
func NewNetkiClient(opts GlobalOptionsType, observer netki.RequestObserver) (*netki.Client, error) {
	auth, err := opts.Authenticator()
	if err != nil {
		return nil, fmt.Errorf("building authenticator: %w", err)
	}

	client, err := netki.NewClient(netki.ClientOptions{
		BaseURL:    opts.APIURL,
		Auth:       auth,
		HTTPClient: httpclient.DefaultClient(),
		Observer:   observer,
	})
	if err != nil {
		return nil, fmt.Errorf("creating netki client: %w", err)
	}

	return client, nil
}
