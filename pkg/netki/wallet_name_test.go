package netki

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const listWalletNamesResponse = `{
	"success": true,
	"wallet_name_count": 2,
	"wallet_names": [
		{
			"id": "wn-1",
			"domain_name": "example.com",
			"name": "alice",
			"external_id": "ext-1",
			"wallets": [
				{"currency": "btc", "wallet_address": "1BoatSLRHtKNngkdXEeobR76b53LETtpyT"},
				{"currency": "ltc", "wallet_address": "LQL9pVH1LsMfKwt82Y2wGhNGkrjF8vwUst"},
				{"currency": "btc", "wallet_address": "1btc-last"}
			]
		},
		{
			"id": "wn-2",
			"domain_name": "example.com",
			"name": "bob",
			"external_id": null,
			"wallets": []
		}
	]
}`

func Test_Client_ListWalletNames(t *testing.T) {
	ctx := context.Background()

	t.Run("http client error", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		httpClientMock.
			On("Do", mock.Anything).
			Return(nil, errors.New("connection refused")).
			Once()

		walletNames, err := client.ListWalletNames(ctx, WalletNameFilter{})
		assert.EqualError(t, err, "list wallet names: making HTTP request: connection refused")
		assert.Nil(t, walletNames)
	})

	t.Run("API failure", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		httpClientMock.
			On("Do", mock.Anything).
			Return(jsonResponse(http.StatusBadRequest, `{"success": false, "message": "Invalid domain name"}`), nil).
			Once()

		walletNames, err := client.ListWalletNames(ctx, WalletNameFilter{DomainName: "invalid"})
		require.ErrorIs(t, err, ErrListFailed)
		assert.EqualError(t, err, "wallet name list failed: Invalid domain name")
		assert.Equal(t, http.StatusBadRequest, StatusCode(err))
		assert.Nil(t, walletNames)
	})

	t.Run("wallet names cannot be parsed", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		httpClientMock.
			On("Do", mock.Anything).
			Return(jsonResponse(http.StatusOK, `{"success": true, "wallet_name_count": 1, "wallet_names": "oops"}`), nil).
			Once()

		walletNames, err := client.ListWalletNames(ctx, WalletNameFilter{})
		require.ErrorIs(t, err, ErrListFailed)
		assert.Nil(t, walletNames)
	})

	t.Run("🎉 zero count returns an empty list", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		httpClientMock.
			On("Do", mock.Anything).
			Return(jsonResponse(http.StatusOK, `{"success": true, "wallet_name_count": 0, "wallet_names": [{"id": "ignored"}]}`), nil).
			Run(func(args mock.Arguments) {
				req, body := requestBody(t, args)
				assert.Equal(t, "http://localhost:8080/v1/partner/walletname", req.URL.String())
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Empty(t, body)
			}).
			Once()

		walletNames, err := client.ListWalletNames(ctx, WalletNameFilter{})
		require.NoError(t, err)
		assert.NotNil(t, walletNames)
		assert.Empty(t, walletNames)
	})

	t.Run("🎉 filters are sent domain first and escaped", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		httpClientMock.
			On("Do", mock.Anything).
			Return(jsonResponse(http.StatusOK, `{"success": true, "wallet_name_count": 0}`), nil).
			Run(func(args mock.Arguments) {
				req, _ := requestBody(t, args)
				assert.Equal(t, "http://localhost:8080/v1/partner/walletname?domain_name=example.com&external_id=a%26b", req.URL.String())
			}).
			Once()

		walletNames, err := client.ListWalletNames(ctx, WalletNameFilter{DomainName: "example.com", ExternalID: "a&b"})
		require.NoError(t, err)
		assert.Empty(t, walletNames)
	})

	t.Run("🎉 only the external ID filter", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		httpClientMock.
			On("Do", mock.Anything).
			Return(jsonResponse(http.StatusOK, `{"success": true, "wallet_name_count": 0}`), nil).
			Run(func(args mock.Arguments) {
				req, _ := requestBody(t, args)
				assert.Equal(t, "external_id=ext-1", req.URL.RawQuery)
			}).
			Once()

		_, err := client.ListWalletNames(ctx, WalletNameFilter{ExternalID: "ext-1"})
		require.NoError(t, err)
	})

	t.Run("🎉 successfully lists wallet names", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		httpClientMock.
			On("Do", mock.Anything).
			Return(jsonResponse(http.StatusOK, listWalletNamesResponse), nil).
			Run(func(args mock.Arguments) {
				req, _ := requestBody(t, args)
				assert.Equal(t, "domain_name=example.com", req.URL.RawQuery)
			}).
			Once()

		walletNames, err := client.ListWalletNames(ctx, WalletNameFilter{DomainName: "example.com"})
		require.NoError(t, err)
		require.Len(t, walletNames, 2)

		alice := walletNames[0]
		assert.Equal(t, "wn-1", alice.ID)
		assert.Equal(t, "example.com", alice.DomainName)
		assert.Equal(t, "alice", alice.Name)
		assert.Equal(t, "ext-1", alice.ExternalID)
		assert.Equal(t, map[string]string{
			"btc": "1btc-last",
			"ltc": "LQL9pVH1LsMfKwt82Y2wGhNGkrjF8vwUst",
		}, alice.Wallets)
		assert.True(t, alice.IsPersisted())
		assert.Same(t, client, alice.client)

		bob := walletNames[1]
		assert.Equal(t, "wn-2", bob.ID)
		assert.Empty(t, bob.ExternalID)
		assert.Empty(t, bob.Wallets)
		assert.Same(t, client, bob.client)
	})
}

func Test_Client_NewWalletName(t *testing.T) {
	client, _ := newClientWithMocks(t)
	wallets := map[string]string{"btc": "1btc"}

	wn := client.NewWalletName("example.com", "alice", wallets, "ext-1")
	assert.Empty(t, wn.ID)
	assert.False(t, wn.IsPersisted())
	assert.Equal(t, "example.com", wn.DomainName)
	assert.Equal(t, "alice", wn.Name)
	assert.Equal(t, "ext-1", wn.ExternalID)
	assert.Same(t, client, wn.client)

	wallets["ltc"] = "Lltc"
	assert.Equal(t, map[string]string{"btc": "1btc"}, wn.Wallets)
}

func Test_WalletName_addressBook(t *testing.T) {
	wn := &WalletName{}

	_, ok := wn.WalletAddress("btc")
	assert.False(t, ok)

	wn.SetCurrencyAddress("btc", "1btc")
	wn.SetCurrencyAddress("ltc", "Lltc")
	wn.SetCurrencyAddress("btc", "1btc-new")

	address, ok := wn.WalletAddress("btc")
	assert.True(t, ok)
	assert.Equal(t, "1btc-new", address)

	currencies := wn.Currencies()
	assert.Equal(t, map[string]string{"btc": "1btc-new", "ltc": "Lltc"}, currencies)
	currencies["doge"] = "Ddoge"
	_, ok = wn.WalletAddress("doge")
	assert.False(t, ok)

	wn.RemoveCurrencyAddress("ltc")
	wn.RemoveCurrencyAddress("unknown")
	assert.Equal(t, map[string]string{"btc": "1btc-new"}, wn.Currencies())
}

func Test_WalletName_MarshalJSON(t *testing.T) {
	t.Run("new wallet name", func(t *testing.T) {
		wn := &WalletName{
			DomainName: "example.com",
			Name:       "alice",
			Wallets:    map[string]string{"ltc": "Lltc", "btc": "1btc"},
		}
		raw, err := json.Marshal(wn)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"domain_name": "example.com",
			"name": "alice",
			"wallets": [
				{"currency": "btc", "wallet_address": "1btc"},
				{"currency": "ltc", "wallet_address": "Lltc"}
			],
			"external_id": null
		}`, string(raw))
	})

	t.Run("persisted wallet name", func(t *testing.T) {
		wn := &WalletName{ID: "wn-1", DomainName: "example.com", Name: "alice", ExternalID: "ext-1"}
		raw, err := json.Marshal(wn)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"id": "wn-1",
			"domain_name": "example.com",
			"name": "alice",
			"wallets": [],
			"external_id": "ext-1"
		}`, string(raw))
	})
}

func Test_WalletName_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("no client", func(t *testing.T) {
		wn := &WalletName{DomainName: "example.com", Name: "alice"}
		err := wn.Save(ctx)
		assert.ErrorIs(t, err, ErrNoConnection)
	})

	t.Run("🎉 creates a new wallet name and adopts its ID", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		httpClientMock.
			On("Do", mock.Anything).
			Return(jsonResponse(http.StatusCreated, `{
				"success": true,
				"wallet_names": [
					{"id": "other-id", "domain_name": "example.com", "name": "bob"},
					{"id": "new-id", "domain_name": "example.com", "name": "alice"}
				]
			}`), nil).
			Run(func(args mock.Arguments) {
				req, body := requestBody(t, args)
				assert.Equal(t, "http://localhost:8080/v1/partner/walletname", req.URL.String())
				assert.Equal(t, http.MethodPost, req.Method)
				assert.JSONEq(t, `{"wallet_names": [{
					"domain_name": "example.com",
					"name": "alice",
					"wallets": [
						{"currency": "btc", "wallet_address": "1btc"},
						{"currency": "eth", "wallet_address": "0xeth"}
					],
					"external_id": null
				}]}`, body)
			}).
			Once()

		wn := client.NewWalletName("example.com", "alice", map[string]string{"eth": "0xeth", "btc": "1btc"}, "")
		require.NoError(t, wn.Save(ctx))
		assert.Equal(t, "new-id", wn.ID)
	})

	t.Run("🎉 updates a persisted wallet name", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		httpClientMock.
			On("Do", mock.Anything).
			Return(jsonResponse(http.StatusOK, `{"success": true, "wallet_names": [{"id": "wn-1", "domain_name": "example.com", "name": "alice"}]}`), nil).
			Run(func(args mock.Arguments) {
				req, body := requestBody(t, args)
				assert.Equal(t, http.MethodPut, req.Method)
				assert.JSONEq(t, `{"wallet_names": [{
					"id": "wn-1",
					"domain_name": "example.com",
					"name": "alice",
					"wallets": [{"currency": "btc", "wallet_address": "1btc"}],
					"external_id": "ext-1"
				}]}`, body)
			}).
			Once()

		wn := &WalletName{ID: "wn-1", DomainName: "example.com", Name: "alice", ExternalID: "ext-1", Wallets: map[string]string{"btc": "1btc"}}
		wn.SetClient(client)
		require.NoError(t, wn.Save(ctx))
		assert.Equal(t, "wn-1", wn.ID)
	})

	t.Run("🎉 ID is kept when the response has no matching wallet name", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		httpClientMock.
			On("Do", mock.Anything).
			Return(jsonResponse(http.StatusAccepted, `{"success": true, "wallet_names": [{"id": "x", "domain_name": "other.com", "name": "alice"}]}`), nil).
			Once()

		wn := client.NewWalletName("example.com", "alice", nil, "")
		require.NoError(t, wn.Save(ctx))
		assert.Empty(t, wn.ID)
	})

	t.Run("🎉 ID is kept when the matching wallet name has no id", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		httpClientMock.
			On("Do", mock.Anything).
			Return(jsonResponse(http.StatusOK, `{"success": true, "wallet_names": [
				{"domain_name": "example.com", "name": "alice"},
				{"id": "", "domain_name": "example.com", "name": "alice"}
			]}`), nil).
			Once()

		wn := &WalletName{ID: "wn-1", DomainName: "example.com", Name: "alice", Wallets: map[string]string{"btc": "1btc"}}
		wn.SetClient(client)
		require.NoError(t, wn.Save(ctx))
		assert.Equal(t, "wn-1", wn.ID)
		assert.True(t, wn.IsPersisted())
	})

	t.Run("🎉 the first matching wallet name with an id wins", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		httpClientMock.
			On("Do", mock.Anything).
			Return(jsonResponse(http.StatusCreated, `{"success": true, "wallet_names": [
				{"domain_name": "example.com", "name": "alice"},
				{"id": "first-id", "domain_name": "example.com", "name": "alice"},
				{"id": "second-id", "domain_name": "example.com", "name": "alice"}
			]}`), nil).
			Once()

		wn := client.NewWalletName("example.com", "alice", nil, "")
		require.NoError(t, wn.Save(ctx))
		assert.Equal(t, "first-id", wn.ID)
	})

	t.Run("save fails with success false next to malformed failures", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		httpClientMock.
			On("Do", mock.Anything).
			Return(jsonResponse(http.StatusOK, `{"success": false, "failures": ["bad currency"]}`), nil).
			Once()

		wn := &WalletName{ID: "wn-1", DomainName: "example.com", Name: "alice"}
		wn.SetClient(client)
		err := wn.Save(ctx)
		require.ErrorIs(t, err, ErrSaveFailed)
		assert.EqualError(t, err, "wallet name save failed: save wallet name failed with status code 200")
		assert.Equal(t, "wn-1", wn.ID)
	})

	t.Run("🎉 ID is not adopted without a top-level success flag", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		httpClientMock.
			On("Do", mock.Anything).
			Return(jsonResponse(http.StatusCreated, `{"wallet_names": [{"id": "new-id", "domain_name": "example.com", "name": "alice"}]}`), nil).
			Once()

		wn := client.NewWalletName("example.com", "alice", nil, "")
		require.NoError(t, wn.Save(ctx))
		assert.Empty(t, wn.ID)
	})

	t.Run("save fails with per-item failures", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		httpClientMock.
			On("Do", mock.Anything).
			Return(jsonResponse(http.StatusBadRequest, `{
				"success": false,
				"message": "Bad request",
				"failures": [{"message": "Invalid currency"}, {"message": "Invalid address"}]
			}`), nil).
			Once()

		wn := client.NewWalletName("example.com", "alice", map[string]string{"xxx": "bad"}, "")
		err := wn.Save(ctx)
		require.ErrorIs(t, err, ErrSaveFailed)
		assert.EqualError(t, err, "wallet name save failed: Invalid currency [FAILURES: Invalid currency, Invalid address]")
		assert.Empty(t, wn.ID)
		assert.Equal(t, map[string]string{"xxx": "bad"}, wn.Wallets)
	})

	t.Run("save fails with success false on a success code", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		httpClientMock.
			On("Do", mock.Anything).
			Return(jsonResponse(http.StatusOK, `{"success": false, "wallet_names": [{"id": "new-id", "domain_name": "example.com", "name": "alice"}]}`), nil).
			Once()

		wn := client.NewWalletName("example.com", "alice", nil, "")
		err := wn.Save(ctx)
		require.ErrorIs(t, err, ErrSaveFailed)
		assert.EqualError(t, err, "wallet name save failed: save wallet name failed with status code 200")
		assert.Empty(t, wn.ID)
	})
}

func Test_WalletName_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("not persisted", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		wn := client.NewWalletName("example.com", "alice", nil, "")

		err := wn.Delete(ctx)
		assert.ErrorIs(t, err, ErrNotPersisted)
		httpClientMock.AssertNotCalled(t, "Do", mock.Anything)
	})

	t.Run("not persisted takes precedence over a missing client", func(t *testing.T) {
		wn := &WalletName{DomainName: "example.com", Name: "alice"}
		assert.ErrorIs(t, wn.Delete(ctx), ErrNotPersisted)
	})

	t.Run("no client", func(t *testing.T) {
		wn := &WalletName{ID: "wn-1", DomainName: "example.com", Name: "alice"}
		assert.ErrorIs(t, wn.Delete(ctx), ErrNoConnection)
	})

	t.Run("🎉 successfully deletes the wallet name", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		httpClientMock.
			On("Do", mock.Anything).
			Return(jsonResponse(http.StatusNoContent, ``), nil).
			Run(func(args mock.Arguments) {
				req, body := requestBody(t, args)
				assert.Equal(t, "http://localhost:8080/v1/partner/walletname", req.URL.String())
				assert.Equal(t, http.MethodDelete, req.Method)
				assert.JSONEq(t, `{"wallet_names": [{"domain_name": "example.com", "id": "wn-1"}]}`, body)
			}).
			Once()

		wn := &WalletName{ID: "wn-1", DomainName: "example.com", Name: "alice", client: client}
		require.NoError(t, wn.Delete(ctx))
		assert.Equal(t, "wn-1", wn.ID)
	})

	t.Run("200 is not a successful delete", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		httpClientMock.
			On("Do", mock.Anything).
			Return(jsonResponse(http.StatusOK, `{"success": true}`), nil).
			Once()

		wn := &WalletName{ID: "wn-1", DomainName: "example.com", Name: "alice", client: client}
		err := wn.Delete(ctx)
		require.ErrorIs(t, err, ErrDeleteFailed)
		assert.EqualError(t, err, "wallet name delete failed: delete wallet name failed with status code 200")
	})

	t.Run("delete fails with a server message", func(t *testing.T) {
		client, httpClientMock := newClientWithMocks(t)
		httpClientMock.
			On("Do", mock.Anything).
			Return(jsonResponse(http.StatusNotFound, `{"success": false, "message": "Wallet name not found"}`), nil).
			Once()

		wn := &WalletName{ID: "wn-1", DomainName: "example.com", Name: "alice", client: client}
		err := wn.Delete(ctx)
		require.ErrorIs(t, err, ErrDeleteFailed)
		assert.EqualError(t, err, "wallet name delete failed: Wallet name not found")
		assert.Equal(t, http.StatusNotFound, StatusCode(err))
	})
}
