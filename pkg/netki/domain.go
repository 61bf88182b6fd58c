package netki

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type Domain struct {
	DomainName  string   `json:"domain_name"`
	Status      string   `json:"status,omitempty"`
	Nameservers []string `json:"nameservers,omitempty"`
}

// DomainStatus is the provisioning state of a partner domain.
type DomainStatus struct {
	Status            string `json:"status"`
	DelegationStatus  bool   `json:"delegation_status"`
	DelegationMessage string `json:"delegation_message"`
	WalletNameCount   int    `json:"wallet_name_count"`
}

// Pending domain statuses, as reported while DNS delegation and signing are being set up.
var pendingDomainStatuses = []string{"", "pending", "queued", "processing"}

// IsPending reports whether the domain is still being provisioned.
func (s DomainStatus) IsPending() bool {
	for _, status := range pendingDomainStatuses {
		if s.Status == status {
			return true
		}
	}
	return false
}

type DNSSECDetails struct {
	PublicKeySigningKey string   `json:"public_key_signing_key"`
	DSRecords           []string `json:"ds_records"`
	Nameservers         []string `json:"nameservers"`
	NextRoll            string   `json:"nextroll_date"`
}

// GetDomains lists every domain available to the partner.
func (c *Client) GetDomains(ctx context.Context) ([]Domain, error) {
	u, err := c.endpoint(domainsPath)
	if err != nil {
		return nil, fmt.Errorf("building URL path: %w", err)
	}

	result, err := c.call(ctx, http.MethodGet, u, nil, Expectation{Operation: "get domains"})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Domains []Domain `json:"domains"`
	}
	if err = result.Decode(&resp); err != nil {
		return nil, err
	}
	return resp.Domains, nil
}

func (c *Client) GetDomainStatus(ctx context.Context, domainName string) (*DomainStatus, error) {
	if domainName == "" {
		return nil, fmt.Errorf("domainName is required")
	}

	u, err := c.endpoint(partnerDomainPath, url.PathEscape(domainName))
	if err != nil {
		return nil, fmt.Errorf("building URL path: %w", err)
	}

	result, err := c.call(ctx, http.MethodGet, u, nil, Expectation{Operation: "get domain status"})
	if err != nil {
		return nil, err
	}

	var status DomainStatus
	if err = result.Decode(&status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) GetDomainDNSSECDetails(ctx context.Context, domainName string) (*DNSSECDetails, error) {
	if domainName == "" {
		return nil, fmt.Errorf("domainName is required")
	}

	u, err := c.endpoint(domainDNSSECPath, url.PathEscape(domainName))
	if err != nil {
		return nil, fmt.Errorf("building URL path: %w", err)
	}

	result, err := c.call(ctx, http.MethodGet, u, nil, Expectation{Operation: "get domain DNSSEC details"})
	if err != nil {
		return nil, err
	}

	var details DNSSECDetails
	if err = result.Decode(&details); err != nil {
		return nil, err
	}
	return &details, nil
}

// CreatePartnerDomain registers domainName. When subPartnerID is set the domain is created on
// behalf of that sub-partner.
func (c *Client) CreatePartnerDomain(ctx context.Context, domainName, subPartnerID string) (*Domain, error) {
	if domainName == "" {
		return nil, fmt.Errorf("domainName is required")
	}

	u, err := c.endpoint(partnerDomainPath, url.PathEscape(domainName))
	if err != nil {
		return nil, fmt.Errorf("building URL path: %w", err)
	}

	var payload any
	if subPartnerID != "" {
		payload = map[string]string{"partner_id": subPartnerID}
	}

	result, err := c.call(ctx, http.MethodPost, u, payload, Expectation{Operation: "create partner domain"})
	if err != nil {
		return nil, err
	}

	domain := Domain{DomainName: domainName}
	if err = result.Decode(&domain); err != nil {
		return nil, err
	}
	return &domain, nil
}

func (c *Client) DeletePartnerDomain(ctx context.Context, domainName string) error {
	if domainName == "" {
		return fmt.Errorf("domainName is required")
	}

	u, err := c.endpoint(partnerDomainPath, url.PathEscape(domainName))
	if err != nil {
		return fmt.Errorf("building URL path: %w", err)
	}

	_, err = c.call(ctx, http.MethodDelete, u, nil, Expectation{
		Operation:    "delete partner domain",
		SuccessCodes: adminDeleteSuccessCodes,
	})
	return err
}
