package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/log"

	cmdUtils "github.com/netkicorp/go-partner-client/cmd/utils"
	"github.com/netkicorp/go-partner-client/pkg/netki"
)

// CertificatesCommand reads the partner's certificate products, orders and balance.
type CertificatesCommand struct{}

func (c *CertificatesCommand) Command(netkiService NetkiCmdServiceInterface, observer netki.RequestObserver) *cobra.Command {
	var client netki.ClientInterface
	certificatesCmd := &cobra.Command{
		Use:   "certificates",
		Short: "Certificate related commands",
		RunE:  cmdUtils.CallHelpCommand,
	}
	certificatesCmd.PersistentPreRunE = clientPreRun(certificatesCmd, netkiService, observer, &client)

	certificatesCmd.AddCommand(&cobra.Command{
		Use:   "products",
		Short: "List the certificate products available to the partner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := client.GetAvailableProducts(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing certificate products: %w", err)
			}
			return printJSON(cmd, products)
		},
	})

	certificatesCmd.AddCommand(&cobra.Command{
		Use:   "get <certificate-id>",
		Short: "Show a certificate order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			certificate, err := client.GetCertificate(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("getting certificate %q: %w", args[0], err)
			}
			if !certificate.IsOrderComplete() {
				log.Ctx(cmd.Context()).Warnf("Certificate order %s is %q", certificate.ID, certificate.OrderStatus)
			}
			return printJSON(cmd, certificate)
		},
	})

	certificatesCmd.AddCommand(&cobra.Command{
		Use:   "balance",
		Short: "Show the partner's account balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			balance, err := client.GetAccountBalance(cmd.Context())
			if err != nil {
				return fmt.Errorf("getting account balance: %w", err)
			}
			return printJSON(cmd, balance)
		},
	})

	var outputPath string
	caCertCmd := &cobra.Command{
		Use:   "cacert",
		Short: "Download the CA certificate bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bundle, err := client.GetCACertBundle(cmd.Context())
			if err != nil {
				return fmt.Errorf("getting CA certificate bundle: %w", err)
			}

			if outputPath == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), bundle.CACerts)
				return err
			}
			if err = os.WriteFile(outputPath, []byte(bundle.CACerts), 0o644); err != nil {
				return fmt.Errorf("writing CA certificate bundle: %w", err)
			}
			log.Ctx(cmd.Context()).Infof("CA certificate bundle written to %s", outputPath)
			return nil
		},
	}
	caCertCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the PEM bundle to this file instead of stdout")
	certificatesCmd.AddCommand(caCertCmd)

	return certificatesCmd
}
