package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	profileservice "soundmint/contexts/artist-identity/profile-service"
	workregistry "soundmint/contexts/catalog/work-registry"
	workports "soundmint/contexts/catalog/work-registry/ports"
	royaltyledger "soundmint/contexts/finance-core/royalty-ledger"
	royaltyports "soundmint/contexts/finance-core/royalty-ledger/ports"
	treasuryservice "soundmint/contexts/platform-treasury/treasury-service"
	"soundmint/internal/platform/ledger"
)

type testEnv struct {
	server *Server
	book   *ledger.Ledger

	treasury  treasuryservice.Module
	profiles  profileservice.Module
	registry  workregistry.Module
	royalties royaltyledger.Module
}

type testTreasuryGlue struct{ env *testEnv }

func (g testTreasuryGlue) TreasuryAuthority(ctx context.Context) (string, error) {
	treasury, err := g.env.treasury.Service.GetTreasury(ctx)
	if err != nil {
		return "", err
	}
	return treasury.Authority, nil
}

func (g testTreasuryGlue) MintPolicy(ctx context.Context) (workports.MintPolicy, error) {
	treasury, err := g.env.treasury.Service.GetTreasury(ctx)
	if err != nil {
		return workports.MintPolicy{}, err
	}
	return workports.MintPolicy{TreasuryWallet: treasury.TreasuryWallet, MintFee: treasury.MintFee}, nil
}

func (g testTreasuryGlue) DistributionPolicy(ctx context.Context) (royaltyports.DistributionPolicy, error) {
	treasury, err := g.env.treasury.Service.GetTreasury(ctx)
	if err != nil {
		return royaltyports.DistributionPolicy{}, err
	}
	return royaltyports.DistributionPolicy{
		StreamingProvider:      treasury.StreamingProvider,
		TreasuryWallet:         treasury.TreasuryWallet,
		PlatformFeeBasisPoints: treasury.PlatformFeeBasisPoints,
	}, nil
}

func (g testTreasuryGlue) AccrueRevenue(ctx context.Context, amount uint64) error {
	return g.env.treasury.Service.AccrueRevenue(ctx, amount)
}

func (g testTreasuryGlue) ReverseRevenue(ctx context.Context, amount uint64) error {
	return g.env.treasury.Service.ReverseRevenue(ctx, amount)
}

type testProfileGlue struct{ env *testEnv }

func (g testProfileGlue) GetProfile(ctx context.Context, authorityID string) (workports.ArtistProfileView, error) {
	profile, err := g.env.profiles.Service.GetProfile(ctx, authorityID)
	if err != nil {
		return workports.ArtistProfileView{}, err
	}
	return workports.ArtistProfileView{
		Authority:  profile.Authority,
		IsVerified: profile.IsVerified,
		TrackCount: profile.TrackCount,
	}, nil
}

func (g testProfileGlue) RegisterWork(ctx context.Context, authorityID string) error {
	_, err := g.env.profiles.Service.RegisterWork(ctx, authorityID)
	return err
}

type testWorkGlue struct{ env *testEnv }

func (g testWorkGlue) WorkAuthority(ctx context.Context, workID string) (string, error) {
	work, err := g.env.registry.Service.GetWork(ctx, workID)
	if err != nil {
		return "", err
	}
	return work.ArtistAuthority, nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{book: ledger.New(nil)}
	env.treasury = treasuryservice.NewInMemoryModule(env.book, nil)
	env.profiles = profileservice.NewInMemoryModule(testTreasuryGlue{env: env}, nil)
	env.registry = workregistry.NewInMemoryModule(
		testProfileGlue{env: env},
		testTreasuryGlue{env: env},
		env.book,
		ledger.NewAssetIssuer(nil),
		nil,
	)
	env.royalties = royaltyledger.NewInMemoryModule(testWorkGlue{env: env}, testTreasuryGlue{env: env}, env.book, nil)
	env.server = New(env.treasury, env.profiles, env.registry, env.royalties, nil, ":0")
	return env
}

func (env *testEnv) do(t *testing.T, method string, path string, caller string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader([]byte("{}"))
	} else {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if caller != "" {
		req.Header.Set(callerHeader, caller)
	}
	recorder := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response body %q: %v", recorder.Body.String(), err)
	}
	return payload
}

func errorCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	code, _ := decodeBody(t, recorder)["code"].(string)
	return code
}

func TestMutatingRoutesRequireCallerHeader(t *testing.T) {
	env := newTestEnv(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/v1/treasury"},
		{http.MethodPatch, "/v1/treasury/config"},
		{http.MethodPut, "/v1/treasury/streaming-provider"},
		{http.MethodPost, "/v1/treasury/withdrawals"},
		{http.MethodPost, "/v1/artists"},
		{http.MethodPatch, "/v1/artists/artist-1"},
		{http.MethodPost, "/v1/artists/artist-1/verification"},
		{http.MethodPost, "/v1/artists/artist-1/works"},
		{http.MethodPatch, "/v1/works/work-1"},
		{http.MethodPost, "/v1/collections"},
		{http.MethodPost, "/v1/works/work-1/split"},
		{http.MethodPost, "/v1/works/work-1/distributions"},
		{http.MethodPost, "/v1/works/work-1/revenue"},
		{http.MethodPost, "/v1/works/work-1/claims"},
		{http.MethodPost, "/v1/streaming/batches"},
	}
	for _, route := range routes {
		recorder := env.do(t, route.method, route.path, "", nil)
		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without caller header, got %d", route.method, route.path, recorder.Code)
		}
		if code := errorCode(t, recorder); code != "missing_caller" {
			t.Fatalf("%s %s: expected missing_caller, got %q", route.method, route.path, code)
		}
	}
}

func TestTreasuryEndpoints(t *testing.T) {
	env := newTestEnv(t)

	if recorder := env.do(t, http.MethodGet, "/v1/treasury", "", nil); recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before initialization, got %d", recorder.Code)
	}

	recorder := env.do(t, http.MethodPost, "/v1/treasury", "platform-admin", map[string]any{
		"treasury_wallet": "treasury-wallet",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201 on initialize, got %d: %s", recorder.Code, recorder.Body.String())
	}
	data, _ := decodeBody(t, recorder)["data"].(map[string]any)
	if fee, _ := data["mint_fee"].(float64); fee != 10_000_000 {
		t.Fatalf("expected default mint fee 10000000, got %v", data["mint_fee"])
	}
	if bps, _ := data["platform_fee_basis_points"].(float64); bps != 500 {
		t.Fatalf("expected default platform fee 500 bps, got %v", data["platform_fee_basis_points"])
	}

	if recorder := env.do(t, http.MethodPost, "/v1/treasury", "platform-admin", map[string]any{
		"treasury_wallet": "other-wallet",
	}); recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409 on re-initialize, got %d", recorder.Code)
	}

	if recorder := env.do(t, http.MethodPatch, "/v1/treasury/config", "stranger", map[string]any{
		"mint_fee": 1,
	}); recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for stranger config update, got %d", recorder.Code)
	}

	if recorder := env.do(t, http.MethodPatch, "/v1/treasury/config", "platform-admin", map[string]any{
		"platform_fee_basis_points": 10_001,
	}); recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for out-of-range basis points, got %d", recorder.Code)
	}

	recorder = env.do(t, http.MethodPatch, "/v1/treasury/config", "platform-admin", map[string]any{
		"mint_fee": 2_000_000,
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 on config update, got %d", recorder.Code)
	}
	data, _ = decodeBody(t, recorder)["data"].(map[string]any)
	if fee, _ := data["mint_fee"].(float64); fee != 2_000_000 {
		t.Fatalf("expected mint fee 2000000, got %v", data["mint_fee"])
	}
	if bps, _ := data["platform_fee_basis_points"].(float64); bps != 500 {
		t.Fatalf("omitted basis points must stay at 500, got %v", data["platform_fee_basis_points"])
	}

	if recorder := env.do(t, http.MethodPost, "/v1/treasury/withdrawals", "platform-admin", map[string]any{
		"amount": 1_000,
	}); recorder.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402 withdrawing from empty float, got %d", recorder.Code)
	}
}

func TestMintAndRoyaltyEndpoints(t *testing.T) {
	env := newTestEnv(t)

	if recorder := env.do(t, http.MethodPost, "/v1/treasury", "platform-admin", map[string]any{
		"treasury_wallet": "treasury-wallet",
	}); recorder.Code != http.StatusCreated {
		t.Fatalf("initialize treasury: %d", recorder.Code)
	}
	if recorder := env.do(t, http.MethodPut, "/v1/treasury/streaming-provider", "platform-admin", map[string]any{
		"streaming_provider": "stream-net",
	}); recorder.Code != http.StatusOK {
		t.Fatalf("set streaming provider: %d", recorder.Code)
	}
	if recorder := env.do(t, http.MethodPost, "/v1/artists", "artist-7", map[string]any{
		"name": "Nova Reyes",
	}); recorder.Code != http.StatusCreated {
		t.Fatalf("create profile: %d", recorder.Code)
	}

	if recorder := env.do(t, http.MethodPost, "/v1/artists/artist-7/works", "intruder", map[string]any{
		"title": "stolen",
	}); recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403 minting under someone else's profile, got %d", recorder.Code)
	}
	if recorder := env.do(t, http.MethodPost, "/v1/artists/artist-7/works", "artist-7", map[string]any{
		"title": "unfunded",
	}); recorder.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402 minting without funds, got %d", recorder.Code)
	}

	env.book.Deposit("artist-7", 10_000_000)
	recorder := env.do(t, http.MethodPost, "/v1/artists/artist-7/works", "artist-7", map[string]any{
		"title":     "midnight-run",
		"audio_uri": "ipfs://audio/midnight-run",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201 on mint, got %d: %s", recorder.Code, recorder.Body.String())
	}
	data, _ := decodeBody(t, recorder)["data"].(map[string]any)
	workID, _ := data["work_id"].(string)
	if workID == "" {
		t.Fatalf("mint response missing work_id")
	}

	if recorder := env.do(t, http.MethodPost, "/v1/works/"+workID+"/split", "artist-7", map[string]any{
		"collaborators": []map[string]any{
			{"address": "artist-7", "share_basis_points": 6_000},
			{"address": "partner-3", "share_basis_points": 3_000},
		},
	}); recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for shares summing to 9000, got %d", recorder.Code)
	}
	if recorder := env.do(t, http.MethodPost, "/v1/works/"+workID+"/split", "artist-7", map[string]any{
		"collaborators": []map[string]any{
			{"address": "artist-7", "share_basis_points": 6_000},
			{"address": "partner-3", "share_basis_points": 4_000},
		},
	}); recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201 on split create, got %d: %s", recorder.Code, recorder.Body.String())
	}

	if recorder := env.do(t, http.MethodPost, "/v1/works/"+workID+"/distributions", "artist-7", map[string]any{
		"amount": 1_000_000,
	}); recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403 distributing as non-provider, got %d", recorder.Code)
	}

	env.book.Deposit("stream-net", 1_000_000)
	if recorder := env.do(t, http.MethodPost, "/v1/works/"+workID+"/distributions", "stream-net", map[string]any{
		"amount": 1_000_000,
	}); recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 on distribution, got %d: %s", recorder.Code, recorder.Body.String())
	}

	if recorder := env.do(t, http.MethodPost, "/v1/works/"+workID+"/claims", "outsider", nil); recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403 claiming as outsider, got %d", recorder.Code)
	}

	recorder = env.do(t, http.MethodPost, "/v1/works/"+workID+"/claims", "partner-3", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 on claim, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if claimed, _ := decodeBody(t, recorder)["amount_claimed"].(float64); claimed != 380_000 {
		t.Fatalf("expected claim of 380000, got %v", claimed)
	}
	if recorder := env.do(t, http.MethodPost, "/v1/works/"+workID+"/claims", "partner-3", nil); recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second claim, got %d", recorder.Code)
	}
}
