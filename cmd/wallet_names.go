package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/log"

	cmdUtils "github.com/netkicorp/go-partner-client/cmd/utils"
	"github.com/netkicorp/go-partner-client/internal/monitor"
	"github.com/netkicorp/go-partner-client/internal/ui"
	"github.com/netkicorp/go-partner-client/internal/utils"
	"github.com/netkicorp/go-partner-client/internal/walletnamecsv"
	"github.com/netkicorp/go-partner-client/pkg/netki"
)

const (
	importResultCreated = "created"
	importResultUpdated = "updated"
	importResultFailed  = "failed"
)

var errWalletNameNotFound = errors.New("wallet name not found")

// WalletNamesCommand manages the partner's wallet names.
type WalletNamesCommand struct {
	// Confirm defaults to ui.Confirm.
	Confirm ui.ConfirmFunc
}

// ImportSummary is printed once an import finishes.
type ImportSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

func (c *WalletNamesCommand) Command(netkiService NetkiCmdServiceInterface, monitorService monitor.MonitorServiceInterface) *cobra.Command {
	if c.Confirm == nil {
		c.Confirm = ui.Confirm
	}

	var client netki.ClientInterface
	walletNamesCmd := &cobra.Command{
		Use:     "wallet-names",
		Aliases: []string{"wn"},
		Short:   "Wallet name related commands",
		RunE:    cmdUtils.CallHelpCommand,
	}
	walletNamesCmd.PersistentPreRunE = clientPreRun(walletNamesCmd, netkiService, monitorService, &client)

	walletNamesCmd.AddCommand(
		c.listCommand(&client),
		c.createCommand(&client),
		c.updateCommand(&client),
		c.deleteCommand(&client),
		c.importCommand(&client, monitorService),
	)

	return walletNamesCmd
}

func (c *WalletNamesCommand) listCommand(client *netki.ClientInterface) *cobra.Command {
	filter := netki.WalletNameFilter{}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List wallet names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			walletNames, err := (*client).ListWalletNames(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("listing wallet names: %w", err)
			}
			return printJSON(cmd, walletNames)
		},
	}
	listCmd.Flags().StringVar(&filter.DomainName, "domain", "", "Only list the wallet names of this domain")
	listCmd.Flags().StringVar(&filter.ExternalID, "external-id", "", "Only list the wallet names with this external ID")

	return listCmd
}

func (c *WalletNamesCommand) createCommand(client *netki.ClientInterface) *cobra.Command {
	var wallets []string
	var externalID string
	createCmd := &cobra.Command{
		Use:   "create <domain> <name>",
		Short: "Create a wallet name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			domainName, name := strings.ToLower(args[0]), strings.ToLower(args[1])
			if err := validateWalletNameArgs(domainName, name); err != nil {
				return err
			}

			currencies, err := parseWalletFlags(wallets)
			if err != nil {
				return err
			}
			if len(currencies) == 0 {
				return errors.New("at least one --wallet is required")
			}

			walletName := (*client).NewWalletName(domainName, name, currencies, externalID)
			if err = walletName.Save(ctx); err != nil {
				return fmt.Errorf("creating wallet name %s.%s: %w", name, domainName, err)
			}
			log.Ctx(ctx).Infof("🎉 Created wallet name %s.%s with ID %s", name, domainName, walletName.ID)
			return printJSON(cmd, walletName)
		},
	}
	createCmd.Flags().StringArrayVar(&wallets, "wallet", nil, `A wallet in the "currency=address" form, e.g. "btc=1BoatSLRHtKNngkdXEeobR76b53LETtpyT". Can be repeated.`)
	createCmd.Flags().StringVar(&externalID, "external-id", "", "An identifier of the wallet name owner in the partner's own system")

	return createCmd
}

func (c *WalletNamesCommand) updateCommand(client *netki.ClientInterface) *cobra.Command {
	var wallets, removedCurrencies []string
	var externalID string
	updateCmd := &cobra.Command{
		Use:   "update <domain> <name>",
		Short: "Add, replace or remove the wallets of a wallet name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			domainName, name := strings.ToLower(args[0]), strings.ToLower(args[1])
			if err := validateWalletNameArgs(domainName, name); err != nil {
				return err
			}

			currencies, err := parseWalletFlags(wallets)
			if err != nil {
				return err
			}
			if len(currencies) == 0 && len(removedCurrencies) == 0 && !cmd.Flags().Changed("external-id") {
				return errors.New("nothing to update, use --wallet, --remove-currency or --external-id")
			}

			walletName, err := findWalletName(ctx, *client, domainName, name)
			if err != nil {
				return err
			}
			for currency, address := range currencies {
				walletName.SetCurrencyAddress(currency, address)
			}
			for _, currency := range removedCurrencies {
				walletName.RemoveCurrencyAddress(strings.ToLower(strings.TrimSpace(currency)))
			}
			if cmd.Flags().Changed("external-id") {
				walletName.ExternalID = externalID
			}
			if len(walletName.Wallets) == 0 {
				return errors.New("a wallet name needs at least one wallet, use delete to remove it")
			}

			if err = walletName.Save(ctx); err != nil {
				return fmt.Errorf("updating wallet name %s.%s: %w", name, domainName, err)
			}
			log.Ctx(ctx).Infof("🎉 Updated wallet name %s.%s", name, domainName)
			return printJSON(cmd, walletName)
		},
	}
	updateCmd.Flags().StringArrayVar(&wallets, "wallet", nil, `A wallet to add or replace in the "currency=address" form. Can be repeated.`)
	updateCmd.Flags().StringArrayVar(&removedCurrencies, "remove-currency", nil, "A currency to remove from the wallet name. Can be repeated.")
	updateCmd.Flags().StringVar(&externalID, "external-id", "", "Replace the external ID, an empty value clears it")

	return updateCmd
}

func (c *WalletNamesCommand) deleteCommand(client *netki.ClientInterface) *cobra.Command {
	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <domain> <name>",
		Short: "Delete a wallet name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			domainName, name := strings.ToLower(args[0]), strings.ToLower(args[1])

			walletName, err := findWalletName(ctx, *client, domainName, name)
			if err != nil {
				return err
			}

			if !yes {
				confirmed, confirmErr := c.Confirm(fmt.Sprintf("Delete wallet name %s.%s", name, domainName))
				if confirmErr != nil {
					return confirmErr
				}
				if !confirmed {
					log.Ctx(ctx).Info("Wallet name was not deleted")
					return nil
				}
			}

			if err = walletName.Delete(ctx); err != nil {
				return fmt.Errorf("deleting wallet name %s.%s: %w", name, domainName, err)
			}
			log.Ctx(ctx).Infof("🎉 Deleted wallet name %s.%s", name, domainName)
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return deleteCmd
}

func (c *WalletNamesCommand) importCommand(client *netki.ClientInterface, monitorService monitor.MonitorServiceInterface) *cobra.Command {
	var filePath string
	var dryRun bool
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Create or update wallet names in bulk from a CSV file",
		Long: "Create or update wallet names in bulk from a CSV file with the columns domain_name, name, currency, " +
			"wallet_address and external_id, one row per wallet. The whole file is validated before any wallet name " +
			"is saved. Existing wallet names get their wallets replaced by the ones in the file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if filePath == "" {
				return errors.New("--file is required")
			}

			f, err := os.Open(filePath)
			if err != nil {
				return fmt.Errorf("opening wallet names file: %w", err)
			}
			defer utils.DeferredClose(ctx, f, "closing wallet names file")

			entries, err := walletnamecsv.Parse(f)
			if err != nil {
				return err
			}
			log.Ctx(ctx).Infof("Read %d wallet names from %s", len(entries), filePath)
			if dryRun {
				log.Ctx(ctx).Info("Dry run, no wallet name was saved")
				return nil
			}

			summary := importWalletNames(ctx, *client, monitorService, entries)
			if err = printJSON(cmd, summary); err != nil {
				return err
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d wallet names failed to import", summary.Failed, len(entries))
			}
			log.Ctx(ctx).Infof("🎉 Imported %d wallet names", len(entries))
			return nil
		},
	}
	importCmd.Flags().StringVarP(&filePath, "file", "f", "", "Path of the CSV file to import")
	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only validate the file")

	return importCmd
}

// importWalletNames saves every entry, updating the wallet names that already exist. A failing entry is logged and
// counted without stopping the import.
func importWalletNames(ctx context.Context, client netki.ClientInterface, monitorService monitor.MonitorServiceInterface, entries []walletnamecsv.Entry) ImportSummary {
	summary := ImportSummary{}
	existingByDomain := map[string]map[string]*netki.WalletName{}

	for _, entry := range entries {
		result, err := importWalletName(ctx, client, existingByDomain, entry)
		switch {
		case err != nil:
			summary.Failed++
			log.Ctx(ctx).Errorf("line %d: importing wallet name %s.%s: %v", entry.Line, entry.Name, entry.DomainName, err)
		case result == importResultCreated:
			summary.Created++
		default:
			summary.Updated++
		}

		if globalOptions.MetricsTextfile != "" {
			if err = monitorService.MonitorCounters(monitor.WalletNameImportsTotalTag, monitor.WalletNameImportLabels{Result: result}.ToMap()); err != nil {
				log.Ctx(ctx).Errorf("monitoring wallet name import: %v", err)
			}
		}
	}

	return summary
}

func importWalletName(ctx context.Context, client netki.ClientInterface, existingByDomain map[string]map[string]*netki.WalletName, entry walletnamecsv.Entry) (string, error) {
	existing, ok := existingByDomain[entry.DomainName]
	if !ok {
		walletNames, err := client.ListWalletNames(ctx, netki.WalletNameFilter{DomainName: entry.DomainName})
		if err != nil {
			return importResultFailed, fmt.Errorf("listing wallet names of %s: %w", entry.DomainName, err)
		}
		existing = make(map[string]*netki.WalletName, len(walletNames))
		for _, walletName := range walletNames {
			existing[walletName.Name] = walletName
		}
		existingByDomain[entry.DomainName] = existing
	}

	walletName, ok := existing[entry.Name]
	result := importResultUpdated
	if ok {
		walletName.Wallets = make(map[string]string, len(entry.Wallets))
		for currency, address := range entry.Wallets {
			walletName.SetCurrencyAddress(currency, address)
		}
		walletName.ExternalID = entry.ExternalID
	} else {
		walletName = client.NewWalletName(entry.DomainName, entry.Name, entry.Wallets, entry.ExternalID)
		result = importResultCreated
	}

	if err := walletName.Save(ctx); err != nil {
		return importResultFailed, err
	}
	existing[entry.Name] = walletName

	return result, nil
}

func findWalletName(ctx context.Context, client netki.ClientInterface, domainName, name string) (*netki.WalletName, error) {
	walletNames, err := client.ListWalletNames(ctx, netki.WalletNameFilter{DomainName: domainName})
	if err != nil {
		return nil, fmt.Errorf("listing wallet names of %s: %w", domainName, err)
	}
	for _, walletName := range walletNames {
		if walletName.Name == name {
			return walletName, nil
		}
	}
	return nil, fmt.Errorf("%w: %s.%s", errWalletNameNotFound, name, domainName)
}

func validateWalletNameArgs(domainName, name string) error {
	if err := utils.ValidateDNS(domainName); err != nil {
		return fmt.Errorf("invalid domain: %w", err)
	}
	return utils.ValidateWalletNameLabel(name)
}

// parseWalletFlags turns "currency=address" values into a currency to address map.
func parseWalletFlags(values []string) (map[string]string, error) {
	wallets := make(map[string]string, len(values))
	for _, value := range values {
		currency, address, found := strings.Cut(value, "=")
		if !found {
			return nil, fmt.Errorf("wallet %q must be in the currency=address form", value)
		}
		currency = strings.ToLower(strings.TrimSpace(currency))
		address = strings.TrimSpace(address)

		if err := utils.ValidateCurrency(currency); err != nil {
			return nil, err
		}
		if err := utils.ValidateWalletAddress(address); err != nil {
			return nil, fmt.Errorf("wallet %s: %w", currency, err)
		}
		if _, ok := wallets[currency]; ok {
			return nil, fmt.Errorf("currency %q is repeated", currency)
		}
		wallets[currency] = address
	}
	return wallets, nil
}
