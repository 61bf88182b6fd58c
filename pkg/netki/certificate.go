package netki

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"product_name"`
	TierName string          `json:"tier_name"`
	Term     int             `json:"term"`
	Price    decimal.Decimal `json:"price"`
}

type Certificate struct {
	ID                string `json:"id"`
	ProductID         string `json:"product"`
	OrderStatus       string `json:"order_status"`
	OrderError        string `json:"order_error,omitempty"`
	CertificateBundle string `json:"certificate_bundle,omitempty"`
}

// IsOrderComplete reports whether the certificate has been issued.
func (c Certificate) IsOrderComplete() bool {
	return c.OrderStatus == "Order Finalized"
}

type AccountBalance struct {
	AvailableBalance decimal.Decimal `json:"available_balance"`
}

type CACertBundle struct {
	CACerts string `json:"cacerts"`
}

// GetAvailableProducts lists the certificate products the partner can order.
func (c *Client) GetAvailableProducts(ctx context.Context) ([]Product, error) {
	var resp struct {
		Products []Product `json:"products"`
	}
	if err := c.getCertificateResource(ctx, "get available products", &resp, certProductsPath); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// GetCertificate retrieves an existing certificate order.
func (c *Client) GetCertificate(ctx context.Context, certificateID string) (*Certificate, error) {
	if certificateID == "" {
		return nil, fmt.Errorf("certificateID is required")
	}

	var resp struct {
		Certificate Certificate `json:"certificate"`
	}
	if err := c.getCertificateResource(ctx, "get certificate", &resp, certificatePath, url.PathEscape(certificateID)); err != nil {
		return nil, err
	}
	return &resp.Certificate, nil
}

// GetAccountBalance returns the partner's certificate deposit account balance.
func (c *Client) GetAccountBalance(ctx context.Context) (*AccountBalance, error) {
	var balance AccountBalance
	if err := c.getCertificateResource(ctx, "get account balance", &balance, certBalancePath); err != nil {
		return nil, err
	}
	return &balance, nil
}

// GetCACertBundle returns the Netki CA certificate bundle.
func (c *Client) GetCACertBundle(ctx context.Context) (*CACertBundle, error) {
	var bundle CACertBundle
	if err := c.getCertificateResource(ctx, "get CA bundle", &bundle, certCABundlePath); err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (c *Client) getCertificateResource(ctx context.Context, operation string, v any, elem ...string) error {
	u, err := c.endpoint(elem...)
	if err != nil {
		return fmt.Errorf("building URL path: %w", err)
	}

	result, err := c.call(ctx, http.MethodGet, u, nil, Expectation{Operation: operation})
	if err != nil {
		return err
	}
	return result.Decode(v)
}
