package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/parcelio/shipping-api/internal/adapter/repo"
	"github.com/parcelio/shipping-api/internal/shipping"
	"github.com/parcelio/shipping-api/internal/usecase"
)

func testEngine(t *testing.T) (*gin.Engine, usecase.CountryRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	countries := repo.DefaultCountryRepo()
	rules := []shipping.Rule{
		shipping.NewBaseCountryRateRule(repo.DefaultBaseRateLoader(), 100),
		shipping.NewWeightSurchargeRule(repo.DefaultWeightSurchargeLoader(), 200),
		shipping.NewFreeShippingRule(repo.DefaultFreeShippingLoader(countries), 300),
		shipping.NewHalfPriceShippingRule(repo.DefaultHalfPriceLoader(countries), 305),
		shipping.NewFridayPromotionRule(repo.DefaultFridayPromotionLoader(), 400),
	}
	calc := usecase.NewCalculateShipping(rules, nil, nil)

	r := gin.New()
	h := NewShippingHandler(calc, countries)
	ch := NewCountryHandler(countries)
	r.POST("/v1/shipping/quote", h.Quote)
	r.GET("/v1/countries", ch.ListActive)
	r.GET("/v1/countries/:code", ch.GetByCode)
	return r, countries
}

func postQuote(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/shipping/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQuoteDomesticOrder(t *testing.T) {
	t.Parallel()
	r, _ := testEngine(t)

	w := postQuote(t, r, `{
		"country": "PL",
		"date": "2026-08-24",
		"products": [{"name": "lamp", "priceCents": 10000, "weightGrams": 2000}]
	}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp quoteResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(1000), resp.CostCents)
	require.Equal(t, "10.00 PLN", resp.ShippingCost)
	require.False(t, resp.FreeShipping)
	require.Equal(t, []string{"base_country_rate"}, resp.AppliedRules)
	require.Len(t, resp.Steps, 1)
	require.NotEmpty(t, resp.OrderID, "order id generated when absent")
}

func TestQuoteStacksDiscountsOnFriday(t *testing.T) {
	t.Parallel()
	r, _ := testEngine(t)

	w := postQuote(t, r, `{
		"orderId": "order-42",
		"country": "US",
		"date": "2026-08-28",
		"products": [{"name": "desk", "priceCents": 50000, "weightGrams": 7200}]
	}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp quoteResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "order-42", resp.OrderID)
	require.Equal(t, int64(1475), resp.CostCents)
	require.Equal(t, []string{
		"base_country_rate", "weight_surcharge", "half_price_shipping", "friday_promotion",
	}, resp.AppliedRules)
	require.Len(t, resp.Steps, 4)
	require.Equal(t, "59.00 PLN", resp.Steps[1].CostAfter)
	require.Equal(t, "29.50 PLN", resp.Steps[2].CostAfter)
}

func TestQuoteFreeShipping(t *testing.T) {
	t.Parallel()
	r, _ := testEngine(t)

	w := postQuote(t, r, `{
		"country": "DE",
		"date": "2026-08-24",
		"products": [{"name": "sofa", "priceCents": 20000, "weightGrams": 1000, "quantity": 2}]
	}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp quoteResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.FreeShipping)
	require.Equal(t, int64(0), resp.CostCents)
	require.Contains(t, resp.AppliedRules, "free_shipping")
}

func TestQuoteUnknownCountryIs404(t *testing.T) {
	t.Parallel()
	r, _ := testEngine(t)

	w := postQuote(t, r, `{
		"country": "XX",
		"products": [{"name": "lamp", "priceCents": 10000, "weightGrams": 2000}]
	}`)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuoteRejectsMalformedBody(t *testing.T) {
	t.Parallel()
	r, _ := testEngine(t)

	require.Equal(t, http.StatusBadRequest, postQuote(t, r, `{`).Code)
	require.Equal(t, http.StatusBadRequest, postQuote(t, r, `{"country": "PL", "products": []}`).Code)
	require.Equal(t, http.StatusBadRequest, postQuote(t, r,
		`{"country": "PL", "products": [{"name": "x", "priceCents": -5, "weightGrams": 100}]}`).Code)
}

func TestQuoteRejectsBadDate(t *testing.T) {
	t.Parallel()
	r, _ := testEngine(t)

	w := postQuote(t, r, `{
		"country": "PL",
		"date": "24/08/2026",
		"products": [{"name": "lamp", "priceCents": 10000, "weightGrams": 2000}]
	}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListCountries(t *testing.T) {
	t.Parallel()
	r, _ := testEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/countries", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []countryResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 8)
}

func TestGetCountryByCode(t *testing.T) {
	t.Parallel()
	r, _ := testEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/countries/pl", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp countryResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "PL", resp.Code)
	require.Equal(t, "Poland", resp.Name)

	req = httptest.NewRequest(http.MethodGet, "/v1/countries/xx", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}
