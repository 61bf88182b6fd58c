package netki

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) ListWalletNames(ctx context.Context, filter WalletNameFilter) ([]*WalletName, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*WalletName), args.Error(1)
}

func (m *MockClient) NewWalletName(domainName, name string, wallets map[string]string, externalID string) *WalletName {
	args := m.Called(domainName, name, wallets, externalID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*WalletName)
}

func (m *MockClient) GetPartners(ctx context.Context) ([]Partner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Partner), args.Error(1)
}

func (m *MockClient) CreatePartner(ctx context.Context, partnerName string) (*Partner, error) {
	args := m.Called(ctx, partnerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Partner), args.Error(1)
}

func (m *MockClient) DeletePartner(ctx context.Context, partnerName string) error {
	args := m.Called(ctx, partnerName)
	return args.Error(0)
}

func (m *MockClient) GetDomains(ctx context.Context) ([]Domain, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Domain), args.Error(1)
}

func (m *MockClient) GetDomainStatus(ctx context.Context, domainName string) (*DomainStatus, error) {
	args := m.Called(ctx, domainName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DomainStatus), args.Error(1)
}

func (m *MockClient) GetDomainDNSSECDetails(ctx context.Context, domainName string) (*DNSSECDetails, error) {
	args := m.Called(ctx, domainName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DNSSECDetails), args.Error(1)
}

func (m *MockClient) CreatePartnerDomain(ctx context.Context, domainName, subPartnerID string) (*Domain, error) {
	args := m.Called(ctx, domainName, subPartnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Domain), args.Error(1)
}

func (m *MockClient) DeletePartnerDomain(ctx context.Context, domainName string) error {
	args := m.Called(ctx, domainName)
	return args.Error(0)
}

func (m *MockClient) GetAvailableProducts(ctx context.Context) ([]Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockClient) GetCertificate(ctx context.Context, certificateID string) (*Certificate, error) {
	args := m.Called(ctx, certificateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Certificate), args.Error(1)
}

func (m *MockClient) GetAccountBalance(ctx context.Context) (*AccountBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AccountBalance), args.Error(1)
}

func (m *MockClient) GetCACertBundle(ctx context.Context) (*CACertBundle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CACertBundle), args.Error(1)
}

// NewMockClient creates a new MockClient and asserts its expectations when the test ends.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ ClientInterface = (*MockClient)(nil)
