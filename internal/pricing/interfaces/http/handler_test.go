package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/optionpricer/internal/pricing/application"
	"github.com/wyfcoding/optionpricer/internal/pricing/domain"
)

type stubRepository struct {
	results map[string][]*domain.PricingResult
}

func newStubRepository() *stubRepository {
	return &stubRepository{results: make(map[string][]*domain.PricingResult)}
}

func (r *stubRepository) Save(_ context.Context, result *domain.PricingResult) error {
	result.ID = uint(len(r.results[result.Symbol]) + 1)
	r.results[result.Symbol] = append(r.results[result.Symbol], result)
	return nil
}

func (r *stubRepository) GetLatest(_ context.Context, symbol string) (*domain.PricingResult, error) {
	list := r.results[symbol]
	if len(list) == 0 {
		return nil, domain.ErrResultNotFound
	}
	return list[len(list)-1], nil
}

func (r *stubRepository) GetHistory(_ context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	list := r.results[symbol]
	out := make([]*domain.PricingResult, 0, limit)
	for i := len(list) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, list[i])
	}
	return out, nil
}

func newTestRouter() (*gin.Engine, *stubRepository) {
	gin.SetMode(gin.TestMode)
	repo := newStubRepository()
	commands := application.NewPricingCommandService(repo, nil, nil, 500)
	queries := application.NewPricingQuery(repo)
	handler := NewPricingHandler(commands, queries)

	router := gin.New()
	handler.RegisterRoutes(router)
	return router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func priceRequestBody() map[string]any {
	return map[string]any{
		"symbol":           "AAPL-C-100",
		"option_type":      "CALL",
		"strike_price":     100.0,
		"underlying_price": 100.0,
		"expiry":           map[string]any{"value": 365.0, "factor": 365.0},
		"risk_free_rate":   0.05,
		"volatility":       0.2,
		"steps":            200,
	}
}

func TestPriceOptionEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/pricing/option/price", priceRequestBody())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Code int                  `json:"code"`
		Data domain.PricingResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "AAPL-C-100", resp.Data.Symbol)
	assert.Equal(t, domain.PricingModelBinomialCRR, resp.Data.PricingModel)
	assert.InDelta(t, 10.45, resp.Data.OptionPrice.InexactFloat64(), 0.05)
}

func TestPriceOptionEndpointRejectsBadInput(t *testing.T) {
	tests := map[string]func(map[string]any){
		"missing symbol":  func(b map[string]any) { delete(b, "symbol") },
		"bad option type": func(b map[string]any) { b["option_type"] = "SWAP" },
		"zero strike":     func(b map[string]any) { b["strike_price"] = 0.0 },
		"zero factor":     func(b map[string]any) { b["expiry"] = map[string]any{"value": 30.0, "factor": 0.0} },
		"negative steps":  func(b map[string]any) { b["steps"] = -1 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			router, _ := newTestRouter()
			body := priceRequestBody()
			mutate(body)
			rec := doJSON(t, router, http.MethodPost, "/api/v1/pricing/option/price", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestBatchPriceEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	put := priceRequestBody()
	put["symbol"] = "AAPL-P-100"
	put["option_type"] = "PUT"

	rec := doJSON(t, router, http.MethodPost, "/api/v1/pricing/option/price/batch", map[string]any{
		"contracts": []map[string]any{priceRequestBody(), put},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Code int                            `json:"code"`
		Data application.BatchPricingResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.SuccessCount)
	assert.Equal(t, 0, resp.Data.FailureCount)
	assert.Len(t, resp.Data.Results, 2)
}

func TestGetLatestResultEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/api/v1/pricing/results/AAPL-C-100", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/pricing/option/price", priceRequestBody())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/pricing/results/AAPL-C-100", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data domain.PricingResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "AAPL-C-100", resp.Data.Symbol)
}

func TestGetResultHistoryEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	for i := 0; i < 3; i++ {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/pricing/option/price", priceRequestBody())
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/pricing/results/AAPL-C-100/history?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []domain.PricingResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter()
	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
