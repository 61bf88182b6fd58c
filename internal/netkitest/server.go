// Package netkitest runs an in-memory Netki partner API for tests.
package netkitest

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stellar/go-stellar-sdk/support/render/httpjson"

	"github.com/netkicorp/go-partner-client/internal/utils"
)

const (
	APIKey    = "netkitest-api-key"
	PartnerID = "netkitest-partner"

	// spkiSecp256k1Prefix is the DER SubjectPublicKeyInfo header of an uncompressed secp256k1 public key.
	spkiSecp256k1Prefix = "3056301006072a8648ce3d020106052b8104000a034200"
)

type Wallet struct {
	Currency      string `json:"currency"`
	WalletAddress string `json:"wallet_address"`
}

type WalletName struct {
	ID         string   `json:"id"`
	DomainName string   `json:"domain_name"`
	Name       string   `json:"name"`
	Wallets    []Wallet `json:"wallets"`
	ExternalID *string  `json:"external_id"`
}

type Partner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Domain struct {
	DomainName string
	PartnerID  string
	Status     string
	// PendingPolls is the number of status reads left before Status becomes "completed".
	PendingPolls int
}

type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"product_name"`
	TierName string          `json:"tier_name"`
	Term     int             `json:"term"`
	Price    decimal.Decimal `json:"price"`
}

type Certificate struct {
	ID                string `json:"id"`
	ProductID         string `json:"product"`
	OrderStatus       string `json:"order_status"`
	CertificateBundle string `json:"certificate_bundle,omitempty"`
}

type failure struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message,omitempty"`
	Failures []failure `json:"failures,omitempty"`
}

// Server is a fake Netki API. Requests must carry APIKey and PartnerID, or be signed with a secp256k1 user key.
type Server struct {
	*httptest.Server

	// StatusPolls is how many status reads a newly created domain stays pending for.
	StatusPolls int
	CACerts     string

	mu           sync.Mutex
	walletNames  map[string]*WalletName
	domains      map[string]*Domain
	partners     []Partner
	products     []Product
	certificates map[string]Certificate
	balance      decimal.Decimal
}

// NewServer starts a server that is closed when the test ends.
func NewServer(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		CACerts:      "-----BEGIN CERTIFICATE-----\nnetkitest\n-----END CERTIFICATE-----",
		walletNames:  map[string]*WalletName{},
		domains:      map[string]*Domain{},
		certificates: map[string]Certificate{},
		balance:      decimal.RequireFromString("100.00"),
		products: []Product{
			{ID: "prod-basic", Name: "Wallet Certificate", TierName: "Basic", Term: 12, Price: decimal.RequireFromString("19.99")},
		},
	}
	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Close)

	return s
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.authenticate)

	r.Route("/v1/partner/walletname", func(r chi.Router) {
		r.Get("/", s.listWalletNames)
		r.Post("/", s.createWalletNames)
		r.Put("/", s.updateWalletNames)
		r.Delete("/", s.deleteWalletNames)
	})
	r.Get("/api/domain", s.listDomains)
	r.Route("/v1/partner/domain", func(r chi.Router) {
		r.Get("/dnssec/{domain}", s.getDNSSEC)
		r.Get("/{domain}", s.getDomainStatus)
		r.Post("/{domain}", s.createDomain)
		r.Delete("/{domain}", s.deleteDomain)
	})
	r.Route("/v1/admin/partner", func(r chi.Router) {
		r.Get("/", s.listPartners)
		r.Post("/{partner}", s.createPartner)
		r.Delete("/{partner}", s.deletePartner)
	})
	r.Route("/v1/certificate", func(r chi.Router) {
		r.Get("/products", s.listProducts)
		r.Get("/balance", s.getBalance)
		r.Get("/cacert", s.getCACert)
		r.Get("/{id}", s.getCertificate)
	})

	return r
}

// AddDomain registers a domain that is already provisioned.
func (s *Server) AddDomain(domainName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.domains[domainName] = &Domain{DomainName: domainName, Status: "completed"}
}

// AddCertificate registers a certificate order.
func (s *Server) AddCertificate(certificate Certificate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.certificates[certificate.ID] = certificate
}

// WalletNames returns a copy of the stored wallet names, sorted by domain and name.
func (s *Server) WalletNames() []WalletName {
	s.mu.Lock()
	defer s.mu.Unlock()

	walletNames := make([]WalletName, 0, len(s.walletNames))
	for _, wn := range s.walletNames {
		walletNames = append(walletNames, *wn)
	}
	sortWalletNames(walletNames)
	return walletNames
}

// Domains returns a copy of the stored domains.
func (s *Server) Domains() map[string]Domain {
	s.mu.Lock()
	defer s.mu.Unlock()

	domains := make(map[string]Domain, len(s.domains))
	for name, d := range s.domains {
		domains[name] = *d
	}
	return domains
}

func sortWalletNames(walletNames []WalletName) {
	sort.Slice(walletNames, func(i, j int) bool {
		if walletNames[i].DomainName != walletNames[j].DomainName {
			return walletNames[i].DomainName < walletNames[j].DomainName
		}
		return walletNames[i].Name < walletNames[j].Name
	})
}

func renderError(w http.ResponseWriter, statusCode int, resp errorResponse) {
	httpjson.RenderStatus(w, statusCode, resp, httpjson.JSON)
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			renderError(w, http.StatusBadRequest, errorResponse{Message: "Unable to read request body"})
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		if r.Header.Get("Authorization") == APIKey && r.Header.Get("X-Partner-ID") == PartnerID {
			next.ServeHTTP(w, r)
			return
		}
		if s.validSignature(r, body) {
			next.ServeHTTP(w, r)
			return
		}

		renderError(w, http.StatusUnauthorized, errorResponse{Message: "Invalid authentication credentials"})
	})
}

// validSignature checks X-Signature against the uri and body, as signed by the key in X-Identity.
func (s *Server) validSignature(r *http.Request, body []byte) bool {
	identity, found := strings.CutPrefix(r.Header.Get("X-Identity"), spkiSecp256k1Prefix)
	if !found {
		return false
	}
	rawKey, err := hex.DecodeString(identity)
	if err != nil {
		return false
	}
	publicKey, err := secp256k1.ParsePubKey(rawKey)
	if err != nil {
		return false
	}

	uri := "http://" + r.Host + r.URL.RequestURI()
	return utils.VerifyHex(publicKey, append([]byte(uri), body...), r.Header.Get("X-Signature"))
}

func decodeWalletNames(w http.ResponseWriter, r *http.Request) ([]WalletName, bool) {
	var req struct {
		WalletNames []WalletName `json:"wallet_names"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.WalletNames) == 0 {
		renderError(w, http.StatusBadRequest, errorResponse{Message: "wallet_names is required"})
		return nil, false
	}
	return req.WalletNames, true
}

type walletNameResult struct {
	ID         string `json:"id"`
	DomainName string `json:"domain_name"`
	Name       string `json:"name"`
	Success    bool   `json:"success"`
}

func (s *Server) listWalletNames(w http.ResponseWriter, r *http.Request) {
	domainName := r.URL.Query().Get("domain_name")
	externalID := r.URL.Query().Get("external_id")

	walletNames := []WalletName{}
	for _, wn := range s.WalletNames() {
		if domainName != "" && wn.DomainName != domainName {
			continue
		}
		if externalID != "" && (wn.ExternalID == nil || *wn.ExternalID != externalID) {
			continue
		}
		walletNames = append(walletNames, wn)
	}

	httpjson.Render(w, map[string]any{
		"success":           true,
		"wallet_name_count": len(walletNames),
		"wallet_names":      walletNames,
	}, httpjson.JSON)
}

func (s *Server) createWalletNames(w http.ResponseWriter, r *http.Request) {
	walletNames, ok := decodeWalletNames(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var failures []failure
	for _, wn := range walletNames {
		if _, found := s.domains[wn.DomainName]; !found {
			failures = append(failures, failure{Message: "Domain " + wn.DomainName + " does not exist"})
			continue
		}
		for _, existing := range s.walletNames {
			if existing.DomainName == wn.DomainName && existing.Name == wn.Name {
				failures = append(failures, failure{Message: "Wallet name " + wn.Name + "." + wn.DomainName + " already exists"})
			}
		}
	}
	if len(failures) > 0 {
		renderError(w, http.StatusBadRequest, errorResponse{Message: "Unable to create wallet names", Failures: failures})
		return
	}

	results := make([]walletNameResult, 0, len(walletNames))
	for _, wn := range walletNames {
		stored := wn
		stored.ID = uuid.NewString()
		s.walletNames[stored.ID] = &stored
		results = append(results, walletNameResult{ID: stored.ID, DomainName: stored.DomainName, Name: stored.Name, Success: true})
	}

	httpjson.RenderStatus(w, http.StatusCreated, map[string]any{"success": true, "wallet_names": results}, httpjson.JSON)
}

func (s *Server) updateWalletNames(w http.ResponseWriter, r *http.Request) {
	walletNames, ok := decodeWalletNames(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var failures []failure
	for _, wn := range walletNames {
		if _, found := s.walletNames[wn.ID]; !found {
			failures = append(failures, failure{Message: "Wallet name " + wn.ID + " not found"})
		}
	}
	if len(failures) > 0 {
		renderError(w, http.StatusNotFound, errorResponse{Message: "Unable to update wallet names", Failures: failures})
		return
	}

	results := make([]walletNameResult, 0, len(walletNames))
	for _, wn := range walletNames {
		stored := wn
		s.walletNames[stored.ID] = &stored
		results = append(results, walletNameResult{ID: stored.ID, DomainName: stored.DomainName, Name: stored.Name, Success: true})
	}

	httpjson.Render(w, map[string]any{"success": true, "wallet_names": results}, httpjson.JSON)
}

func (s *Server) deleteWalletNames(w http.ResponseWriter, r *http.Request) {
	walletNames, ok := decodeWalletNames(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, wn := range walletNames {
		stored, found := s.walletNames[wn.ID]
		if !found || stored.DomainName != wn.DomainName {
			renderError(w, http.StatusNotFound, errorResponse{Message: "Wallet name " + wn.ID + " not found"})
			return
		}
	}
	for _, wn := range walletNames {
		delete(s.walletNames, wn.ID)
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listDomains(w http.ResponseWriter, _ *http.Request) {
	names := []string{}
	for name := range s.Domains() {
		names = append(names, name)
	}
	sort.Strings(names)

	domains := utils.MapSlice(names, func(name string) map[string]string {
		return map[string]string{"domain_name": name}
	})

	httpjson.Render(w, map[string]any{"domains": domains}, httpjson.JSON)
}

func (s *Server) getDomainStatus(w http.ResponseWriter, r *http.Request) {
	domainName := chi.URLParam(r, "domain")

	s.mu.Lock()
	defer s.mu.Unlock()

	d, found := s.domains[domainName]
	if !found {
		renderError(w, http.StatusNotFound, errorResponse{Message: "Domain not found"})
		return
	}
	if d.PendingPolls > 0 {
		d.PendingPolls--
	} else {
		d.Status = "completed"
	}

	walletNameCount := 0
	for _, wn := range s.walletNames {
		if wn.DomainName == domainName {
			walletNameCount++
		}
	}

	httpjson.Render(w, map[string]any{
		"status":             d.Status,
		"delegation_status":  d.Status == "completed",
		"delegation_message": "Delegation is " + d.Status,
		"wallet_name_count":  walletNameCount,
	}, httpjson.JSON)
}

func (s *Server) getDNSSEC(w http.ResponseWriter, r *http.Request) {
	domainName := chi.URLParam(r, "domain")
	if _, found := s.Domains()[domainName]; !found {
		renderError(w, http.StatusNotFound, errorResponse{Message: "Domain not found"})
		return
	}

	httpjson.Render(w, map[string]any{
		"public_key_signing_key": "257 3 8 netkitest",
		"ds_records":             []string{"12345 8 2 NETKITEST"},
		"nameservers":            []string{"ns1.netki.com", "ns2.netki.com"},
		"nextroll_date":          "2026-12-01",
	}, httpjson.JSON)
}

func (s *Server) createDomain(w http.ResponseWriter, r *http.Request) {
	domainName := chi.URLParam(r, "domain")

	var req struct {
		PartnerID string `json:"partner_id"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			renderError(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.domains[domainName]; found {
		renderError(w, http.StatusConflict, errorResponse{Message: "Domain already exists"})
		return
	}
	s.domains[domainName] = &Domain{DomainName: domainName, PartnerID: req.PartnerID, Status: "pending", PendingPolls: s.StatusPolls}

	httpjson.RenderStatus(w, http.StatusCreated, map[string]any{
		"success":     true,
		"status":      "pending",
		"nameservers": []string{"ns1.netki.com", "ns2.netki.com"},
	}, httpjson.JSON)
}

func (s *Server) deleteDomain(w http.ResponseWriter, r *http.Request) {
	domainName := chi.URLParam(r, "domain")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.domains[domainName]; !found {
		renderError(w, http.StatusNotFound, errorResponse{Message: "Domain not found"})
		return
	}
	for _, wn := range s.walletNames {
		if wn.DomainName == domainName {
			renderError(w, http.StatusBadRequest, errorResponse{Failures: []failure{{Message: "Domain has wallet names"}}})
			return
		}
	}
	delete(s.domains, domainName)

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listPartners(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	partners := append([]Partner{}, s.partners...)
	httpjson.Render(w, map[string]any{"partners": partners}, httpjson.JSON)
}

func (s *Server) createPartner(w http.ResponseWriter, r *http.Request) {
	partnerName := chi.URLParam(r, "partner")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.partners {
		if p.Name == partnerName {
			renderError(w, http.StatusConflict, errorResponse{Message: "Partner already exists"})
			return
		}
	}
	partner := Partner{ID: uuid.NewString(), Name: partnerName}
	s.partners = append(s.partners, partner)

	httpjson.RenderStatus(w, http.StatusCreated, map[string]any{"success": true, "partner": partner}, httpjson.JSON)
}

func (s *Server) deletePartner(w http.ResponseWriter, r *http.Request) {
	partnerName := chi.URLParam(r, "partner")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.partners {
		if p.Name == partnerName {
			s.partners = append(s.partners[:i], s.partners[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}

	renderError(w, http.StatusNotFound, errorResponse{Message: "Partner not found"})
}

func (s *Server) listProducts(w http.ResponseWriter, _ *http.Request) {
	httpjson.Render(w, map[string]any{"products": s.products}, httpjson.JSON)
}

func (s *Server) getBalance(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	httpjson.Render(w, map[string]any{"available_balance": s.balance}, httpjson.JSON)
}

func (s *Server) getCACert(w http.ResponseWriter, _ *http.Request) {
	httpjson.Render(w, map[string]any{"cacerts": s.CACerts}, httpjson.JSON)
}

func (s *Server) getCertificate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	certificate, found := s.certificates[chi.URLParam(r, "id")]
	if !found {
		renderError(w, http.StatusNotFound, errorResponse{Message: "Certificate not found"})
		return
	}

	httpjson.Render(w, map[string]any{"certificate": certificate}, httpjson.JSON)
}
