package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/log"

	cmdUtils "github.com/netkicorp/go-partner-client/cmd/utils"
	"github.com/netkicorp/go-partner-client/internal/ui"
	"github.com/netkicorp/go-partner-client/internal/utils"
	"github.com/netkicorp/go-partner-client/pkg/netki"
)

var errDomainPending = errors.New("domain is still pending")

// DomainsCommand manages the partner domains that wallet names live in.
type DomainsCommand struct {
	// Confirm defaults to ui.Confirm.
	Confirm ui.ConfirmFunc
}

type waitOptions struct {
	Wait         bool
	Attempts     uint
	PollInterval time.Duration
}

func (c *DomainsCommand) Command(netkiService NetkiCmdServiceInterface, observer netki.RequestObserver) *cobra.Command {
	if c.Confirm == nil {
		c.Confirm = ui.Confirm
	}

	var client netki.ClientInterface
	domainsCmd := &cobra.Command{
		Use:   "domains",
		Short: "Partner domain related commands",
		RunE:  cmdUtils.CallHelpCommand,
	}
	domainsCmd.PersistentPreRunE = clientPreRun(domainsCmd, netkiService, observer, &client)

	domainsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the domains available to the partner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			domains, err := client.GetDomains(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing domains: %w", err)
			}
			return printJSON(cmd, domains)
		},
	})

	domainsCmd.AddCommand(c.statusCommand(&client))

	domainsCmd.AddCommand(&cobra.Command{
		Use:   "dnssec <domain>",
		Short: "Show the DNSSEC details of a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := client.GetDomainDNSSECDetails(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("getting DNSSEC details of %q: %w", args[0], err)
			}
			return printJSON(cmd, details)
		},
	})

	var subPartnerID string
	createCmd := &cobra.Command{
		Use:   "create <domain>",
		Short: "Create a domain for the partner or one of its sub-partners",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domainName := args[0]
			if err := utils.ValidateDNS(domainName); err != nil {
				return err
			}

			domain, err := client.CreatePartnerDomain(cmd.Context(), domainName, subPartnerID)
			if err != nil {
				return fmt.Errorf("creating domain %q: %w", domainName, err)
			}
			log.Ctx(cmd.Context()).Infof("🎉 Created domain %q", domain.DomainName)
			return printJSON(cmd, domain)
		},
	}
	createCmd.Flags().StringVar(&subPartnerID, "sub-partner-id", "", "Create the domain on behalf of this sub-partner")
	domainsCmd.AddCommand(createCmd)

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <domain>",
		Short: "Delete a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			domainName := args[0]

			if !yes {
				confirmed, err := c.Confirm(fmt.Sprintf("Delete domain %s", domainName))
				if err != nil {
					return err
				}
				if !confirmed {
					log.Ctx(ctx).Info("Domain was not deleted")
					return nil
				}
			}

			if err := client.DeletePartnerDomain(ctx, domainName); err != nil {
				return fmt.Errorf("deleting domain %q: %w", domainName, err)
			}
			log.Ctx(ctx).Infof("🎉 Deleted domain %q", domainName)
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	domainsCmd.AddCommand(deleteCmd)

	return domainsCmd
}

func (c *DomainsCommand) statusCommand(client *netki.ClientInterface) *cobra.Command {
	opts := waitOptions{}
	statusCmd := &cobra.Command{
		Use:   "status <domain>",
		Short: "Show the provisioning status of a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			domainName := args[0]

			var status *netki.DomainStatus
			var err error
			if opts.Wait {
				if opts.Attempts == 0 {
					return errors.New("--attempts must be greater than zero")
				}
				status, err = waitForDomain(ctx, *client, domainName, opts)
			} else {
				status, err = (*client).GetDomainStatus(ctx, domainName)
			}
			if err != nil {
				return fmt.Errorf("getting status of %q: %w", domainName, err)
			}
			return printJSON(cmd, status)
		},
	}
	statusCmd.Flags().BoolVar(&opts.Wait, "wait", false, "Poll until the domain is no longer pending")
	statusCmd.Flags().UintVar(&opts.Attempts, "attempts", 10, "Maximum number of status reads when --wait is set")
	statusCmd.Flags().DurationVar(&opts.PollInterval, "poll-interval", 2*time.Second, "Initial delay between status reads when --wait is set, doubled after each read")

	return statusCmd
}

// waitForDomain polls the domain status until it leaves the pending states. API errors stop the polling.
func waitForDomain(ctx context.Context, client netki.ClientInterface, domainName string, opts waitOptions) (*netki.DomainStatus, error) {
	var status *netki.DomainStatus
	err := retry.Do(
		func() error {
			var err error
			status, err = client.GetDomainStatus(ctx, domainName)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			if status.IsPending() {
				return fmt.Errorf("%w: status %q", errDomainPending, status.Status)
			}
			return nil
		},
		retry.Attempts(opts.Attempts),
		retry.Delay(opts.PollInterval),
		retry.MaxDelay(30*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debugf("Waiting for domain %s (attempt %d): %v", domainName, n+1, err)
		}),
	)
	if err != nil {
		return nil, err
	}

	return status, nil
}
