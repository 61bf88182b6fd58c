package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmdUtils "github.com/netkicorp/go-partner-client/cmd/utils"
	"github.com/netkicorp/go-partner-client/internal/utils"
)

func runKeysCommand(t *testing.T, args ...string) (*UserKey, error) {
	t.Helper()
	cmdUtils.ClearTestEnvironment(t)

	root := rootCmd()
	root.AddCommand((&KeysCommand{}).Command())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append(args, "--log-level", "ERROR"))
	if err := root.Execute(); err != nil {
		return nil, err
	}

	var userKey UserKey
	require.NoError(t, json.Unmarshal(out.Bytes(), &userKey))
	return &userKey, nil
}

func Test_KeysCommand(t *testing.T) {
	generated, err := runKeysCommand(t, "keys", "generate")
	require.NoError(t, err)

	privateKey, err := utils.ParseSecp256k1PrivateKeyHex(generated.PrivateKey)
	require.NoError(t, err)
	identity, err := utils.PublicKeyDERHex(privateKey.PubKey())
	require.NoError(t, err)
	assert.Equal(t, identity, generated.Identity)
	assert.Len(t, generated.Identity, 176)

	t.Run("identity requires a user key", func(t *testing.T) {
		_, err := runKeysCommand(t, "keys", "identity")
		assert.EqualError(t, err, "user-key is required")
	})

	t.Run("🎉 identity matches the generated key", func(t *testing.T) {
		derived, err := runKeysCommand(t, "keys", "identity", "--user-key", generated.PrivateKey)
		require.NoError(t, err)
		assert.Equal(t, generated.Identity, derived.Identity)
		assert.Empty(t, derived.PrivateKey)
	})
}
