package netki

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Partner is a tenant that owns domains and wallet names.
type Partner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GetPartners lists the partners visible to the authenticated partner.
func (c *Client) GetPartners(ctx context.Context) ([]Partner, error) {
	u, err := c.endpoint(adminPartnerPath)
	if err != nil {
		return nil, fmt.Errorf("building URL path: %w", err)
	}

	result, err := c.call(ctx, http.MethodGet, u, nil, Expectation{Operation: "get partners"})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Partners []Partner `json:"partners"`
	}
	if err = result.Decode(&resp); err != nil {
		return nil, err
	}
	return resp.Partners, nil
}

// CreatePartner creates a sub-partner named partnerName.
func (c *Client) CreatePartner(ctx context.Context, partnerName string) (*Partner, error) {
	if partnerName == "" {
		return nil, fmt.Errorf("partnerName is required")
	}

	u, err := c.endpoint(adminPartnerPath, url.PathEscape(partnerName))
	if err != nil {
		return nil, fmt.Errorf("building URL path: %w", err)
	}

	result, err := c.call(ctx, http.MethodPost, u, nil, Expectation{Operation: "create partner"})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Partner Partner `json:"partner"`
	}
	if err = result.Decode(&resp); err != nil {
		return nil, err
	}
	return &resp.Partner, nil
}

// DeletePartner deletes the partner named partnerName.
func (c *Client) DeletePartner(ctx context.Context, partnerName string) error {
	if partnerName == "" {
		return fmt.Errorf("partnerName is required")
	}

	u, err := c.endpoint(adminPartnerPath, url.PathEscape(partnerName))
	if err != nil {
		return fmt.Errorf("building URL path: %w", err)
	}

	_, err = c.call(ctx, http.MethodDelete, u, nil, Expectation{
		Operation:    "delete partner",
		SuccessCodes: adminDeleteSuccessCodes,
	})
	return err
}
