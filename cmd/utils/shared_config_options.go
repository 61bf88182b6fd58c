package utils

import (
	"go/types"

	"github.com/stellar/go-stellar-sdk/support/config"

	"github.com/netkicorp/go-partner-client/internal/crashtracker"
	"github.com/netkicorp/go-partner-client/pkg/netki"
)

func CrashTrackerTypeConfigOption(targetPointer interface{}) *config.ConfigOption {
	return &config.ConfigOption{
		Name:           "crash-tracker-type",
		Usage:          `Crash tracker type. Options: "SENTRY", "DRY_RUN"`,
		OptType:        types.String,
		CustomSetValue: SetConfigOptionCrashTrackerType,
		ConfigKey:      targetPointer,
		FlagDefault:    string(crashtracker.CrashTrackerTypeDryRun),
		Required:       true,
	}
}

// NetkiAPIConfigOptions returns the options used to reach and authenticate against the Netki partner API.
func NetkiAPIConfigOptions(opts *GlobalOptionsType) []*config.ConfigOption {
	return []*config.ConfigOption{
		{
			Name:           "api-url",
			Usage:          "The base URL of the Netki partner API.",
			OptType:        types.String,
			CustomSetValue: SetConfigOptionURLString,
			ConfigKey:      &opts.APIURL,
			FlagDefault:    netki.DefaultBaseURL,
			Required:       true,
		},
		{
			Name:           "auth-mode",
			Usage:          `How requests are authenticated. Options: "API_KEY", "DISTRIBUTED", "CERTIFICATE"`,
			OptType:        types.String,
			CustomSetValue: SetConfigOptionAuthMode,
			ConfigKey:      &opts.AuthMode,
			FlagDefault:    string(AuthModeAPIKey),
			Required:       true,
		},
		{
			Name:      "api-key",
			Usage:     "The partner API key. Required when auth-mode is API_KEY.",
			OptType:   types.String,
			ConfigKey: &opts.APIKey,
			Required:  false,
		},
		{
			Name:      "partner-id",
			Usage:     "The partner ID. Required when auth-mode is API_KEY or CERTIFICATE.",
			OptType:   types.String,
			ConfigKey: &opts.PartnerID,
			Required:  false,
		},
		{
			Name:           "user-key",
			Usage:          "The hex encoded DER secp256k1 private key that signs requests. Required when auth-mode is DISTRIBUTED or CERTIFICATE.",
			OptType:        types.String,
			CustomSetValue: SetConfigOptionSecp256k1PrivateKey,
			ConfigKey:      &opts.UserKey,
			Required:       false,
		},
		{
			Name:      "partner-key-signing-key",
			Usage:     "The partner's hex encoded DER public key. Required when auth-mode is DISTRIBUTED.",
			OptType:   types.String,
			ConfigKey: &opts.PartnerKeySigningKey,
			Required:  false,
		},
		{
			Name:      "user-key-signature",
			Usage:     "The partner's hex encoded signature over the user's public key. Required when auth-mode is DISTRIBUTED.",
			OptType:   types.String,
			ConfigKey: &opts.UserKeySignature,
			Required:  false,
		},
	}
}
