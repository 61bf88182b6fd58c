package cmd

import (
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/log"

	cmdUtils "github.com/netkicorp/go-partner-client/cmd/utils"
	"github.com/netkicorp/go-partner-client/internal/utils"
)

// UserKey is the key material printed by the keys commands. Identity is the value sent in the X-Identity header
// and the one a partner signs to produce a user-key-signature.
type UserKey struct {
	PrivateKey string `json:"private_key,omitempty"`
	Identity   string `json:"identity"`
}

// KeysCommand manages the secp256k1 user keys used by the DISTRIBUTED and CERTIFICATE auth modes.
type KeysCommand struct{}

func (c *KeysCommand) Command() *cobra.Command {
	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "User key related commands",
		RunE:  cmdUtils.CallHelpCommand,
	}

	keysCmd.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: "Generate a new secp256k1 user key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			privateKey, err := secp256k1.GeneratePrivateKey()
			if err != nil {
				return fmt.Errorf("generating private key: %w", err)
			}

			userKey, err := newUserKey(privateKey, true)
			if err != nil {
				return err
			}
			log.Ctx(cmd.Context()).Warn("Store the private key safely, it is not saved anywhere")
			return printJSON(cmd, userKey)
		},
	})

	keysCmd.AddCommand(&cobra.Command{
		Use:   "identity",
		Short: "Print the identity of the configured user-key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if globalOptions.UserKey == "" {
				return errors.New("user-key is required")
			}
			privateKey, err := utils.ParseSecp256k1PrivateKeyHex(globalOptions.UserKey)
			if err != nil {
				return fmt.Errorf("parsing user-key: %w", err)
			}

			userKey, err := newUserKey(privateKey, false)
			if err != nil {
				return err
			}
			return printJSON(cmd, userKey)
		},
	})

	return keysCmd
}

func newUserKey(privateKey *secp256k1.PrivateKey, withPrivateKey bool) (*UserKey, error) {
	identity, err := utils.PublicKeyDERHex(privateKey.PubKey())
	if err != nil {
		return nil, fmt.Errorf("encoding identity: %w", err)
	}
	userKey := &UserKey{Identity: identity}

	if withPrivateKey {
		userKey.PrivateKey, err = utils.MarshalSecp256k1PrivateKeyHex(privateKey)
		if err != nil {
			return nil, fmt.Errorf("encoding private key: %w", err)
		}
	}

	return userKey, nil
}
