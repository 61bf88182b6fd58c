package utils

import (
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/sirupsen/logrus"

	"github.com/netkicorp/go-partner-client/internal/crashtracker"
	"github.com/netkicorp/go-partner-client/internal/monitor"
	"github.com/netkicorp/go-partner-client/internal/utils"
	"github.com/netkicorp/go-partner-client/pkg/netki"
)

type GlobalOptionsType struct {
	LogLevel         logrus.Level
	SentryDSN        string
	CrashTrackerType crashtracker.CrashTrackerType
	Environment      string
	Version          string
	GitCommit        string
	MetricsTextfile  string
	MetricType       monitor.MetricType

	APIURL               string
	AuthMode             AuthMode
	APIKey               string
	PartnerID            string
	UserKey              string
	PartnerKeySigningKey string
	UserKeySignature     string
}

// populateConfigOptions populates the CrastTrackerOptions from the global options.
func (g GlobalOptionsType) PopulateCrashTrackerOptions(crashTrackerOptions *crashtracker.CrashTrackerOptions) {
	if crashTrackerOptions.CrashTrackerType == crashtracker.CrashTrackerTypeSentry {
		crashTrackerOptions.SentryDSN = g.SentryDSN
	}
	crashTrackerOptions.Environment = g.Environment
	crashTrackerOptions.GitCommit = g.GitCommit
}

// Authenticator builds the netki.Authenticator selected by the auth-mode option.
func (g GlobalOptionsType) Authenticator() (netki.Authenticator, error) {
	switch g.AuthMode {
	case AuthModeAPIKey, "":
		if g.APIKey == "" || g.PartnerID == "" {
			return nil, errors.New("api-key and partner-id are required when auth-mode is API_KEY")
		}
		return netki.APIKeyAuth{APIKey: g.APIKey, PartnerID: g.PartnerID}, nil

	case AuthModeDistributed:
		if g.PartnerKeySigningKey == "" || g.UserKeySignature == "" {
			return nil, errors.New("partner-key-signing-key and user-key-signature are required when auth-mode is DISTRIBUTED")
		}
		userKey, err := g.parseUserKey()
		if err != nil {
			return nil, err
		}
		return netki.DistributedAuth{
			PartnerKeySigningKey: g.PartnerKeySigningKey,
			UserKeySignature:     g.UserKeySignature,
			UserKey:              userKey,
		}, nil

	case AuthModeCertificate:
		if g.PartnerID == "" {
			return nil, errors.New("partner-id is required when auth-mode is CERTIFICATE")
		}
		userKey, err := g.parseUserKey()
		if err != nil {
			return nil, err
		}
		return netki.CertificateAuth{UserKey: userKey, PartnerID: g.PartnerID}, nil

	default:
		return nil, fmt.Errorf("unsupported auth mode %q", g.AuthMode)
	}
}

func (g GlobalOptionsType) parseUserKey() (*secp256k1.PrivateKey, error) {
	if g.UserKey == "" {
		return nil, fmt.Errorf("user-key is required when auth-mode is %s", g.AuthMode)
	}
	userKey, err := utils.ParseSecp256k1PrivateKeyHex(g.UserKey)
	if err != nil {
		return nil, fmt.Errorf("parsing user-key: %w", err)
	}
	return userKey, nil
}
