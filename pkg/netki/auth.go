package netki

import (
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/netkicorp/go-partner-client/internal/utils"
)

// Authenticator produces the credential headers attached to every request.
type Authenticator interface {
	// Headers returns the headers for a request to uri carrying body (nil for no body).
	Headers(uri string, body []byte) (map[string]string, error)
}

// APIKeyAuth authenticates as a partner with an API key.
type APIKeyAuth struct {
	APIKey    string
	PartnerID string
}

func (a APIKeyAuth) Headers(_ string, _ []byte) (map[string]string, error) {
	return map[string]string{
		"Authorization": a.APIKey,
		"X-Partner-ID":  a.PartnerID,
	}, nil
}

// DistributedAuth authenticates an end user whose key was signed by a partner. Requests are
// signed with the user key so the API can tie them to the partner's key signature.
type DistributedAuth struct {
	// PartnerKeySigningKey is the partner's hex encoded DER public key.
	PartnerKeySigningKey string
	// UserKeySignature is the partner's hex encoded signature over the user's public key.
	UserKeySignature string
	UserKey          *secp256k1.PrivateKey
}

func (a DistributedAuth) Headers(uri string, body []byte) (map[string]string, error) {
	if a.UserKey == nil {
		return nil, errors.New("user key is required")
	}
	headers, err := signedIdentityHeaders(a.UserKey, uri, body)
	if err != nil {
		return nil, err
	}
	headers["X-Partner-Key"] = a.PartnerKeySigningKey
	headers["X-Partner-KeySig"] = a.UserKeySignature
	return headers, nil
}

// CertificateAuth authenticates certificate API calls with a user key on behalf of a partner.
type CertificateAuth struct {
	UserKey   *secp256k1.PrivateKey
	PartnerID string
}

func (a CertificateAuth) Headers(uri string, body []byte) (map[string]string, error) {
	if a.UserKey == nil {
		return nil, errors.New("user key is required")
	}
	headers, err := signedIdentityHeaders(a.UserKey, uri, body)
	if err != nil {
		return nil, err
	}
	headers["X-Partner-ID"] = a.PartnerID
	return headers, nil
}

// signedIdentityHeaders signs uri followed by body.
func signedIdentityHeaders(userKey *secp256k1.PrivateKey, uri string, body []byte) (map[string]string, error) {
	identity, err := utils.PublicKeyDERHex(userKey.PubKey())
	if err != nil {
		return nil, fmt.Errorf("encoding user public key: %w", err)
	}

	signedData := append([]byte(uri), body...)
	return map[string]string{
		"X-Identity":  identity,
		"X-Signature": utils.SignHex(userKey, signedData),
	}, nil
}

var (
	_ Authenticator = APIKeyAuth{}
	_ Authenticator = DistributedAuth{}
	_ Authenticator = CertificateAuth{}
)
