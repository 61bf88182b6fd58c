package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/asaskevich/govalidator"
)

var rxCurrency = regexp.MustCompile(`^[a-z0-9]{2,10}$`)

// ValidateDNS will validate the given string as a DNS name
func ValidateDNS(domain string) error {
	isDNS := govalidator.IsDNSName(domain)
	if !isDNS {
		return fmt.Errorf("%q is not a valid DNS name", domain)
	}

	return nil
}

// ValidateWalletNameLabel checks that name can be prepended to a domain as a single DNS label.
func ValidateWalletNameLabel(name string) error {
	if name == "" {
		return fmt.Errorf("wallet name cannot be empty")
	}
	if strings.Contains(name, ".") || !govalidator.IsDNSName(name) {
		return fmt.Errorf("%q is not a valid wallet name label", name)
	}

	return nil
}

// ValidateCurrency expects the short lowercase currency code used by the wallet name API, e.g. "btc".
func ValidateCurrency(currency string) error {
	if currency == "" {
		return fmt.Errorf("currency cannot be empty")
	}

	if !rxCurrency.MatchString(currency) {
		return fmt.Errorf("%q is not a valid currency code", currency)
	}

	return nil
}

func ValidateWalletAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return fmt.Errorf("wallet address cannot be empty")
	}

	if !govalidator.IsPrintableASCII(address) || strings.ContainsAny(address, " \t") {
		return fmt.Errorf("the provided wallet address is not valid")
	}

	return nil
}
