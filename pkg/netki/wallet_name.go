package netki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"
	"golang.org/x/exp/slices"
)

// WalletName is a local handle on a human-readable alias that maps currencies to wallet
// addresses within a domain. An empty ID means the wallet name does not exist remotely yet.
//
// A WalletName is not safe for concurrent mutation.
type WalletName struct {
	// ID is assigned by the Netki API and must not be set by hand for new wallet names.
	ID         string
	DomainName string
	Name       string
	// Wallets maps a currency code (e.g. "btc") to a wallet address.
	Wallets    map[string]string
	ExternalID string

	client *Client
}

// WalletNameFilter narrows ListWalletNames. Empty fields are not sent.
type WalletNameFilter struct {
	DomainName string `schema:"domain_name,omitempty"`
	ExternalID string `schema:"external_id,omitempty"`
}

type walletPayload struct {
	Currency      string `json:"currency"`
	WalletAddress string `json:"wallet_address"`
}

type walletNamePayload struct {
	DomainName string          `json:"domain_name"`
	Name       string          `json:"name"`
	Wallets    []walletPayload `json:"wallets"`
	ExternalID *string         `json:"external_id"`
	ID         string          `json:"id,omitempty"`
}

type walletNameDeletePayload struct {
	DomainName string `json:"domain_name"`
	ID         string `json:"id"`
}

type walletNamesRequest[T any] struct {
	WalletNames []T `json:"wallet_names"`
}

type walletNameRecord struct {
	ID         string          `json:"id"`
	DomainName string          `json:"domain_name"`
	Name       string          `json:"name"`
	ExternalID *string         `json:"external_id"`
	Wallets    []walletPayload `json:"wallets"`
}

type walletNamesResponse struct {
	Success     *bool              `json:"success"`
	WalletNames []walletNameRecord `json:"wallet_names"`
}

// ListWalletNames returns the partner's wallet names, optionally filtered by domain name and/or
// external ID. Every returned WalletName is bound to c.
func (c *Client) ListWalletNames(ctx context.Context, filter WalletNameFilter) ([]*WalletName, error) {
	u, err := c.endpoint(walletNamePath)
	if err != nil {
		return nil, fmt.Errorf("building URL path: %w", err)
	}

	params := url.Values{}
	if err = schema.NewEncoder().Encode(filter, params); err != nil {
		return nil, fmt.Errorf("encoding wallet name filter: %w", err)
	}
	// url.Values.Encode sorts by key, which keeps domain_name ahead of external_id.
	u.RawQuery = params.Encode()

	result, err := c.call(ctx, http.MethodGet, u, nil, Expectation{Kind: ErrListFailed, Operation: "list wallet names"})
	if err != nil {
		return nil, err
	}

	// The count is checked on its own so that a zero count never depends on the rest of the body.
	var count struct {
		WalletNameCount int `json:"wallet_name_count"`
	}
	if err = result.Decode(&count); err != nil || count.WalletNameCount == 0 {
		return []*WalletName{}, nil
	}

	var resp walletNamesResponse
	if err = result.Decode(&resp); err != nil {
		return nil, &APIError{
			Kind:       ErrListFailed,
			Operation:  "list wallet names",
			StatusCode: result.StatusCode,
			Message:    "unable to parse wallet names from response",
		}
	}

	walletNames := make([]*WalletName, 0, len(resp.WalletNames))
	for _, record := range resp.WalletNames {
		wn := &WalletName{
			ID:         record.ID,
			DomainName: record.DomainName,
			Name:       record.Name,
			Wallets:    make(map[string]string, len(record.Wallets)),
			client:     c,
		}
		if record.ExternalID != nil {
			wn.ExternalID = *record.ExternalID
		}
		for _, wallet := range record.Wallets {
			wn.Wallets[wallet.Currency] = wallet.WalletAddress
		}
		walletNames = append(walletNames, wn)
	}

	return walletNames, nil
}

// NewWalletName builds a WalletName bound to c without calling the API. Call Save to create it
// remotely. wallets is copied.
func (c *Client) NewWalletName(domainName, name string, wallets map[string]string, externalID string) *WalletName {
	owned := make(map[string]string, len(wallets))
	for currency, address := range wallets {
		owned[currency] = address
	}

	return &WalletName{
		DomainName: domainName,
		Name:       name,
		Wallets:    owned,
		ExternalID: externalID,
		client:     c,
	}
}

// SetClient binds w to c, which Save and Delete use to reach the API.
func (w *WalletName) SetClient(c *Client) {
	w.client = c
}

// IsPersisted reports whether w mirrors a remote wallet name.
func (w *WalletName) IsPersisted() bool {
	return w.ID != ""
}

// Currencies returns a copy of the currency to wallet address mapping.
func (w *WalletName) Currencies() map[string]string {
	currencies := make(map[string]string, len(w.Wallets))
	for currency, address := range w.Wallets {
		currencies[currency] = address
	}
	return currencies
}

// WalletAddress returns the wallet address for currency.
func (w *WalletName) WalletAddress(currency string) (string, bool) {
	address, ok := w.Wallets[currency]
	return address, ok
}

// SetCurrencyAddress adds or replaces the wallet address for currency. The change is local
// until Save is called.
func (w *WalletName) SetCurrencyAddress(currency, walletAddress string) {
	if w.Wallets == nil {
		w.Wallets = map[string]string{}
	}
	w.Wallets[currency] = walletAddress
}

// RemoveCurrencyAddress removes currency. Removing an unknown currency does nothing.
func (w *WalletName) RemoveCurrencyAddress(currency string) {
	delete(w.Wallets, currency)
}

func (w *WalletName) payload() walletNamePayload {
	currencies := make([]string, 0, len(w.Wallets))
	for currency := range w.Wallets {
		currencies = append(currencies, currency)
	}
	slices.Sort(currencies)

	wallets := make([]walletPayload, 0, len(currencies))
	for _, currency := range currencies {
		wallets = append(wallets, walletPayload{Currency: currency, WalletAddress: w.Wallets[currency]})
	}

	p := walletNamePayload{
		DomainName: w.DomainName,
		Name:       w.Name,
		Wallets:    wallets,
		ID:         w.ID,
	}
	if w.ExternalID != "" {
		externalID := w.ExternalID
		p.ExternalID = &externalID
	}
	return p
}

// Save creates the wallet name when it has no ID (POST) and updates it otherwise (PUT). On
// success the non-empty ID returned for the first matching wallet name is adopted. On failure w is left untouched.
func (w *WalletName) Save(ctx context.Context) error {
	if w.client == nil {
		return ErrNoConnection
	}

	u, err := w.client.endpoint(walletNamePath)
	if err != nil {
		return fmt.Errorf("building URL path: %w", err)
	}

	method := http.MethodPost
	if w.IsPersisted() {
		method = http.MethodPut
	}

	payload := walletNamesRequest[walletNamePayload]{WalletNames: []walletNamePayload{w.payload()}}
	result, err := w.client.call(ctx, method, u, payload, Expectation{Kind: ErrSaveFailed, Operation: "save wallet name"})
	if err != nil {
		return err
	}

	var resp walletNamesResponse
	if err = result.Decode(&resp); err != nil {
		// The write went through; there is just no ID to learn from this body.
		return nil
	}
	if resp.Success == nil || !*resp.Success {
		return nil
	}
	for _, record := range resp.WalletNames {
		if record.DomainName == w.DomainName && record.Name == w.Name && record.ID != "" {
			w.ID = record.ID
			break
		}
	}

	return nil
}

// Delete removes the wallet name remotely. It fails with ErrNotPersisted, without calling the
// API, when w has no ID. w itself is not modified.
func (w *WalletName) Delete(ctx context.Context) error {
	if !w.IsPersisted() {
		return ErrNotPersisted
	}
	if w.client == nil {
		return ErrNoConnection
	}

	u, err := w.client.endpoint(walletNamePath)
	if err != nil {
		return fmt.Errorf("building URL path: %w", err)
	}

	payload := walletNamesRequest[walletNameDeletePayload]{
		WalletNames: []walletNameDeletePayload{{DomainName: w.DomainName, ID: w.ID}},
	}
	_, err = w.client.call(ctx, http.MethodDelete, u, payload, Expectation{
		Kind:         ErrDeleteFailed,
		Operation:    "delete wallet name",
		SuccessCodes: walletNameDeleteCodes,
	})
	return err
}

// MarshalJSON renders w in the wire shape used by Save.
func (w *WalletName) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.payload())
}
