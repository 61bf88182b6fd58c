package utils

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/netkicorp/go-partner-client/internal/crashtracker"
	"github.com/netkicorp/go-partner-client/internal/monitor"
	"github.com/netkicorp/go-partner-client/internal/utils"
)

func SetConfigOptionMetricType(co *config.ConfigOption) error {
	metricType := viper.GetString(co.Name)

	metricTypeParsed, err := monitor.ParseMetricType(metricType)
	if err != nil {
		return fmt.Errorf("couldn't parse metric type: %w", err)
	}

	*(co.ConfigKey.(*monitor.MetricType)) = metricTypeParsed
	return nil
}

func SetConfigOptionCrashTrackerType(co *config.ConfigOption) error {
	ctType := viper.GetString(co.Name)

	ctTypeParsed, err := crashtracker.ParseCrashTrackerType(ctType)
	if err != nil {
		return fmt.Errorf("couldn't parse crash tracker type: %w", err)
	}

	*(co.ConfigKey.(*crashtracker.CrashTrackerType)) = ctTypeParsed
	return nil
}

func SetConfigOptionAuthMode(co *config.ConfigOption) error {
	authMode := viper.GetString(co.Name)

	authModeParsed, err := ParseAuthMode(authMode)
	if err != nil {
		return fmt.Errorf("couldn't parse auth mode: %w", err)
	}

	key, ok := co.ConfigKey.(*AuthMode)
	if !ok {
		return fmt.Errorf("configKey has an invalid type %T", co.ConfigKey)
	}
	*key = authModeParsed
	return nil
}

func SetConfigOptionLogLevel(co *config.ConfigOption) error {
	// parse string to logLevel object
	logLevelStr := viper.GetString(co.Name)
	logLevel, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		return fmt.Errorf("couldn't parse log level: %w", err)
	}

	// update the configKey
	key, ok := co.ConfigKey.(*logrus.Level)
	if !ok {
		return fmt.Errorf("configKey has an invalid type %T", co.ConfigKey)
	}
	*key = logLevel

	// Log for debugging
	if config.IsExplicitlySet(co) {
		log.Debugf("Setting log level to: %q", logLevel)
		log.DefaultLogger.SetLevel(*key)
	} else {
		log.Debugf("Using default log level: %q", logLevel)
	}
	return nil
}

// SetConfigOptionSecp256k1PrivateKey validates the incoming value as a hex encoded DER secp256k1 private key.
// An empty value is accepted, the auth mode decides whether the key is needed.
func SetConfigOptionSecp256k1PrivateKey(co *config.ConfigOption) error {
	key, ok := co.ConfigKey.(*string)
	if !ok {
		return fmt.Errorf("not a valid secp256k1 private key: the expected type for this config key is a string, but got a %T instead", co.ConfigKey)
	}

	privateKey := strings.TrimSpace(viper.GetString(co.Name))
	if privateKey == "" {
		*key = ""
		return nil
	}

	_, err := utils.ParseSecp256k1PrivateKeyHex(privateKey)
	if err != nil {
		return fmt.Errorf("error validating private key %q: %w", utils.TruncateString(privateKey, 2), err)
	}

	*key = privateKey
	return nil
}

func SetConfigOptionURLString(co *config.ConfigOption) error {
	u := viper.GetString(co.Name)

	if u == "" {
		return fmt.Errorf("api url cannot be empty")
	}

	_, err := url.ParseRequestURI(u)
	if err != nil {
		return fmt.Errorf("error parsing api url: %w", err)
	}

	key, ok := co.ConfigKey.(*string)
	if !ok {
		return fmt.Errorf("the expected type for this config key is a string, but got a %T instead", co.ConfigKey)
	}
	*key = strings.TrimRight(u, "/")

	return nil
}
