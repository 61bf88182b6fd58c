package netki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/netkicorp/go-partner-client/internal/httpclient"
)

// DefaultBaseURL is the production Netki API.
const DefaultBaseURL = "https://api.netki.com"

const (
	walletNamePath    = "/v1/partner/walletname"
	domainsPath       = "/api/domain"
	partnerDomainPath = "/v1/partner/domain"
	domainDNSSECPath  = "/v1/partner/domain/dnssec"
	adminPartnerPath  = "/v1/admin/partner"
	certificatePath   = "/v1/certificate"
	certProductsPath  = "/v1/certificate/products"
	certBalancePath   = "/v1/certificate/balance"
	certCABundlePath  = "/v1/certificate/cacert"
)

// ClientInterface is the set of Netki API operations offered by Client.
//
//go:generate mockery --name=ClientInterface --case=underscore --structname=MockClient --filename=client_mock.go --inpackage
type ClientInterface interface {
	ListWalletNames(ctx context.Context, filter WalletNameFilter) ([]*WalletName, error)
	NewWalletName(domainName, name string, wallets map[string]string, externalID string) *WalletName

	GetPartners(ctx context.Context) ([]Partner, error)
	CreatePartner(ctx context.Context, partnerName string) (*Partner, error)
	DeletePartner(ctx context.Context, partnerName string) error

	GetDomains(ctx context.Context) ([]Domain, error)
	GetDomainStatus(ctx context.Context, domainName string) (*DomainStatus, error)
	GetDomainDNSSECDetails(ctx context.Context, domainName string) (*DNSSECDetails, error)
	CreatePartnerDomain(ctx context.Context, domainName, subPartnerID string) (*Domain, error)
	DeletePartnerDomain(ctx context.Context, domainName string) error

	GetAvailableProducts(ctx context.Context) ([]Product, error)
	GetCertificate(ctx context.Context, certificateID string) (*Certificate, error)
	GetAccountBalance(ctx context.Context) (*AccountBalance, error)
	GetCACertBundle(ctx context.Context) (*CACertBundle, error)
}

// ClientOptions configures a Client.
type ClientOptions struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	Auth    Authenticator
	// HTTPClient defaults to httpclient.DefaultClient().
	HTTPClient httpclient.HTTPClientInterface
	// Observer is optional.
	Observer RequestObserver
}

// Validate validates the ClientOptions fields.
func (opts ClientOptions) Validate() error {
	if opts.BaseURL != "" && !govalidator.IsRequestURL(opts.BaseURL) {
		return fmt.Errorf("baseURL %q is not a valid URL", opts.BaseURL)
	}
	if opts.Auth == nil {
		return errors.New("auth is required")
	}
	return nil
}

// Client talks to the Netki partner API and creates the WalletName handles bound to it.
// It is immutable after NewClient and can be shared between goroutines.
type Client struct {
	baseURL   string
	auth      Authenticator
	transport *Transport
}

// NewClient creates a new instance of Netki Client.
func NewClient(opts ClientOptions) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validating client options: %w", err)
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		auth:      opts.Auth,
		transport: NewTransport(opts.HTTPClient, opts.Observer),
	}, nil
}

// BaseURL returns the API base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// endpoint joins path elements to the base URL, escaping them as needed.
func (c *Client) endpoint(elem ...string) (*url.URL, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	return u.JoinPath(elem...), nil
}

// call encodes payload (when not nil), executes the request and normalizes the response.
func (c *Client) call(ctx context.Context, method string, u *url.URL, payload any, exp Expectation) (*Result, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s request: %w", exp.Operation, err)
		}
	}

	env, err := c.transport.Execute(ctx, c.auth, u.String(), method, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", exp.Operation, err)
	}

	return Normalize(env, exp)
}

var _ ClientInterface = (*Client)(nil)
