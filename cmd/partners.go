package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/log"

	cmdUtils "github.com/netkicorp/go-partner-client/cmd/utils"
	"github.com/netkicorp/go-partner-client/internal/ui"
	"github.com/netkicorp/go-partner-client/pkg/netki"
)

// PartnersCommand manages the sub-partners of an admin partner.
type PartnersCommand struct {
	// Confirm defaults to ui.Confirm.
	Confirm ui.ConfirmFunc
}

func (c *PartnersCommand) Command(netkiService NetkiCmdServiceInterface, observer netki.RequestObserver) *cobra.Command {
	if c.Confirm == nil {
		c.Confirm = ui.Confirm
	}

	var client netki.ClientInterface
	partnersCmd := &cobra.Command{
		Use:   "partners",
		Short: "Admin partner related commands",
		RunE:  cmdUtils.CallHelpCommand,
	}
	partnersCmd.PersistentPreRunE = clientPreRun(partnersCmd, netkiService, observer, &client)

	partnersCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the partners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			partners, err := client.GetPartners(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing partners: %w", err)
			}
			return printJSON(cmd, partners)
		},
	})

	partnersCmd.AddCommand(&cobra.Command{
		Use:   "create <partner-name>",
		Short: "Create a partner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			partner, err := client.CreatePartner(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("creating partner %q: %w", args[0], err)
			}
			log.Ctx(cmd.Context()).Infof("🎉 Created partner %q with ID %s", partner.Name, partner.ID)
			return printJSON(cmd, partner)
		},
	})

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <partner-name>",
		Short: "Delete a partner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			partnerName := args[0]

			if !yes {
				confirmed, err := c.Confirm(fmt.Sprintf("Delete partner %s", partnerName))
				if err != nil {
					return err
				}
				if !confirmed {
					log.Ctx(ctx).Info("Partner was not deleted")
					return nil
				}
			}

			if err := client.DeletePartner(ctx, partnerName); err != nil {
				return fmt.Errorf("deleting partner %q: %w", partnerName, err)
			}
			log.Ctx(ctx).Infof("🎉 Deleted partner %q", partnerName)
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	partnersCmd.AddCommand(deleteCmd)

	return partnersCmd
}
