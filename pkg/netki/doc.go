// Package netki is a client for the Netki partner API.
//
// A Client is configured with an Authenticator (API key and partner ID, or one of the signed
// modes) and offers partner, domain, certificate and wallet name operations. Wallet names are
// handled through WalletName values: a WalletName without ID is created on Save, one with an ID
// is updated, and the ID is only ever learnt from the API.
//
//	client, err := netki.NewClient(netki.ClientOptions{
//		Auth: netki.APIKeyAuth{APIKey: apiKey, PartnerID: partnerID},
//	})
//	wn := client.NewWalletName("example.com", "alice", map[string]string{"btc": "1BoatSLRHtKNngkdXEeobR76b53LETtpyT"}, "")
//	err = wn.Save(ctx)
//
// Every non-successful response is returned as an *APIError that wraps one of the Err* kinds.
package netki
