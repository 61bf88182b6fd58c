package cmd

import (
	"context"
	"fmt"
	"go/types"
	"time"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	cmdUtils "github.com/netkicorp/go-partner-client/cmd/utils"
	"github.com/netkicorp/go-partner-client/internal/crashtracker"
	"github.com/netkicorp/go-partner-client/internal/monitor"
)

const crashTrackerFlushTimeout = 2 * time.Second

var (
	// globalOptions is a variable that holds the global CLI options that can be
	// applied to any command or subcommand.
	globalOptions cmdUtils.GlobalOptionsType

	crashTrackerClient crashtracker.CrashTrackerClient
	monitorService     monitor.MonitorServiceInterface
)

func rootCmd() *cobra.Command {
	configOpts := config.ConfigOptions{
		{
			Name:           "log-level",
			Usage:          `The log level used in this project. Options: "TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL", or "PANIC".`,
			OptType:        types.String,
			FlagDefault:    "INFO",
			ConfigKey:      &globalOptions.LogLevel,
			CustomSetValue: cmdUtils.SetConfigOptionLogLevel,
			Required:       true,
		},
		{
			Name:      "sentry-dsn",
			Usage:     "The DSN (client key) of the Sentry project. If not provided, Sentry will not be used.",
			OptType:   types.String,
			ConfigKey: &globalOptions.SentryDSN,
			Required:  false,
		},
		cmdUtils.CrashTrackerTypeConfigOption(&globalOptions.CrashTrackerType),
		{
			Name:        "environment",
			Usage:       `The environment where the CLI is running. Example: "development", "staging", "production".`,
			OptType:     types.String,
			FlagDefault: "development",
			ConfigKey:   &globalOptions.Environment,
			Required:    true,
		},
		{
			Name:      "metrics-textfile",
			Usage:     "When set, Prometheus metrics about the Netki API calls are written to this file when the command ends, e.g. for the node_exporter textfile collector.",
			OptType:   types.String,
			ConfigKey: &globalOptions.MetricsTextfile,
			Required:  false,
		},
		{
			Name:           "metrics-type",
			Usage:          `Metric monitor type. Options: "PROMETHEUS"`,
			OptType:        types.String,
			CustomSetValue: cmdUtils.SetConfigOptionMetricType,
			ConfigKey:      &globalOptions.MetricType,
			FlagDefault:    string(monitor.MetricTypePrometheus),
			Required:       true,
		},
	}
	configOpts = append(configOpts, cmdUtils.NetkiAPIConfigOptions(&globalOptions)...)

	rootCmd := &cobra.Command{
		Use:           "netki",
		Short:         "Netki partner API client",
		Long:          "Manage wallet names, domains, partners and certificates through the Netki partner API.",
		Version:       globalOptions.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			configOpts.Require()
			if err := configOpts.SetValues(); err != nil {
				return fmt.Errorf("setting values of config options: %w", err)
			}
			log.Ctx(ctx).Debug("Version: ", globalOptions.Version)
			log.Ctx(ctx).Debug("GitCommit: ", globalOptions.GitCommit)

			crashTrackerOptions := crashtracker.CrashTrackerOptions{CrashTrackerType: globalOptions.CrashTrackerType}
			globalOptions.PopulateCrashTrackerOptions(&crashTrackerOptions)
			client, err := crashtracker.GetClient(ctx, crashTrackerOptions)
			if err != nil {
				return fmt.Errorf("creating crash tracker client: %w", err)
			}
			crashTrackerClient = client

			if globalOptions.MetricsTextfile != "" {
				err = monitorService.Start(monitor.MetricOptions{
					MetricType:  globalOptions.MetricType,
					Environment: globalOptions.Environment,
				})
				if err != nil {
					return fmt.Errorf("starting monitor service: %w", err)
				}
			}

			return nil
		},
		RunE: cmdUtils.CallHelpCommand,
	}
	rootCmd.PersistentFlags().String(cmdUtils.EnvFileFlagName, "", "Comma separated list of env files to load before reading the options. Defaults to .env in the working directory.")

	err := configOpts.Init(rootCmd)
	if err != nil {
		log.Fatalf("Error initializing a config option: %s", err.Error())
	}

	return rootCmd
}

// SetupCLI sets up the CLI and returns the root command with the subcommands
// attached.
func SetupCLI(version, gitCommit string) *cobra.Command {
	globalOptions.Version = version
	globalOptions.GitCommit = gitCommit
	crashTrackerClient = nil
	monitorService = &monitor.MonitorService{}
	rootCmd := rootCmd()

	netkiService := &NetkiCmdService{}

	// Add subcommands
	rootCmd.AddCommand((&WalletNamesCommand{}).Command(netkiService, monitorService))
	rootCmd.AddCommand((&PartnersCommand{}).Command(netkiService, monitorService))
	rootCmd.AddCommand((&DomainsCommand{}).Command(netkiService, monitorService))
	rootCmd.AddCommand((&CertificatesCommand{}).Command(netkiService, monitorService))
	rootCmd.AddCommand((&KeysCommand{}).Command())

	return rootCmd
}

// Finalize runs once the command returned: it writes the metrics textfile when one was requested, and reports err
// to the crash tracker.
func Finalize(ctx context.Context, err error) {
	if globalOptions.MetricsTextfile != "" && monitorService != nil {
		if writeErr := monitorService.WriteToTextfile(globalOptions.MetricsTextfile); writeErr != nil {
			log.Ctx(ctx).Errorf("Error writing metrics: %v", writeErr)
		}
	}

	if err == nil {
		return
	}
	if crashTrackerClient == nil {
		log.Ctx(ctx).Error(err)
		return
	}
	crashTrackerClient.LogAndReportErrors(ctx, err, "netki command failed")
	crashTrackerClient.FlushEvents(crashTrackerFlushTimeout)
}
