package utils

import (
	"fmt"
	"strings"
)

// AuthMode selects which credentials the CLI sends to the Netki API.
type AuthMode string

const (
	AuthModeAPIKey      AuthMode = "API_KEY"
	AuthModeDistributed AuthMode = "DISTRIBUTED"
	AuthModeCertificate AuthMode = "CERTIFICATE"
)

func ParseAuthMode(authModeStr string) (AuthMode, error) {
	authModeStrUpper := strings.ToUpper(authModeStr)
	amType := AuthMode(authModeStrUpper)

	switch amType {
	case AuthModeAPIKey, AuthModeDistributed, AuthModeCertificate:
		return amType, nil
	default:
		return "", fmt.Errorf("invalid auth mode %q", authModeStrUpper)
	}
}
