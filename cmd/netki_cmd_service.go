package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	cmdUtils "github.com/netkicorp/go-partner-client/cmd/utils"
	"github.com/netkicorp/go-partner-client/pkg/netki"
)

type NetkiCmdServiceInterface interface {
	GetClient(opts cmdUtils.GlobalOptionsType, observer netki.RequestObserver) (netki.ClientInterface, error)
}

// NetkiCmdService builds the Netki API client used by the commands.
type NetkiCmdService struct{}

func (s *NetkiCmdService) GetClient(opts cmdUtils.GlobalOptionsType, observer netki.RequestObserver) (netki.ClientInterface, error) {
	client, err := cmdUtils.NewNetkiClient(opts, observer)
	if err != nil {
		return nil, err
	}
	return client, nil
}

var _ NetkiCmdServiceInterface = (*NetkiCmdService)(nil)

// clientPreRun returns the persistent pre-run hook of owner. It runs the hooks above owner and then stores a Netki
// client in client. cobra calls the hook with the executed subcommand, so owner is needed to find the parents.
func clientPreRun(owner *cobra.Command, netkiService NetkiCmdServiceInterface, observer netki.RequestObserver, client *netki.ClientInterface) func(cmd *cobra.Command, args []string) error {
	return func(_ *cobra.Command, args []string) error {
		if err := cmdUtils.PropagatePersistentPreRun(owner, args); err != nil {
			return err
		}

		c, err := netkiService.GetClient(globalOptions, observer)
		if err != nil {
			return fmt.Errorf("getting netki client: %w", err)
		}
		*client = c

		return nil
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
