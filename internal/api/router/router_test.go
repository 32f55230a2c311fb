package router_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/samedayramps/app-samedayramps/internal/api/handlers"
	"github.com/samedayramps/app-samedayramps/internal/api/router"
	"github.com/samedayramps/app-samedayramps/internal/config"
	"github.com/samedayramps/app-samedayramps/internal/domain"
	"github.com/samedayramps/app-samedayramps/internal/maps"
	"github.com/samedayramps/app-samedayramps/internal/services"
)

type testAPI struct {
	srv    *httptest.Server
	db     *gorm.DB
	client *http.Client
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", Conn: sqlDB}, &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Lead{}, &domain.Quote{}, &domain.BusinessSettings{}))

	// A distance upstream that always resolves 10 one-way miles.
	matrix := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"OK","rows":[{"elements":[{"status":"OK","distance":{"value":16093}}]}]}`)
	}))
	t.Cleanup(matrix.Close)

	settingsSvc := services.NewSettingsService(db, nil)
	leadSvc := services.NewLeadService(db, nil)
	emailSvc := services.NewEmailService(&config.EmailConfig{Enabled: false})
	appCfg := &config.AppConfig{Environment: "test"}
	quoteSvc := services.NewQuoteService(db, settingsSvc, emailSvc, appCfg, nil)
	authSvc := services.NewAuthService(db)
	healthSvc := services.NewHealthService("test-api", nil)
	mapsClient := maps.NewClient(&config.MapsConfig{APIKey: "test"}, maps.WithBaseURL(matrix.URL))

	handler := router.New(router.Config{
		DB:       db,
		Health:   handlers.NewHealthHandler(healthSvc),
		Auth:     handlers.NewAuthHandler(authSvc),
		Leads:    handlers.NewLeadsHandler(leadSvc),
		Quotes:   handlers.NewQuotesHandler(quoteSvc),
		Settings: handlers.NewSettingsHandler(settingsSvc),
		Distance: handlers.NewDistanceHandler(mapsClient, settingsSvc),
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testAPI{srv: srv, db: db, client: srv.Client()}
}

func (a *testAPI) createUser(t *testing.T, email, password string, admin bool) {
	t.Helper()
	_, err := services.NewAuthService(a.db).CreateUser(context.Background(), &services.CreateUserInput{
		Email:    email,
		Password: password,
		IsActive: true,
		IsAdmin:  admin,
		IsStaff:  true,
	})
	require.NoError(t, err)
}

func (a *testAPI) login(t *testing.T, email, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := a.client.Post(a.srv.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.NotEmpty(t, result.AccessToken)
	return result.AccessToken
}

func (a *testAPI) do(t *testing.T, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, a.srv.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestRouter_PublicEndpoints(t *testing.T) {
	api := newTestAPI(t)

	resp, err := api.client.Get(api.srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	metricsResp, err := api.client.Get(api.srv.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResp.Body.Close()
	assert.Equal(t, http.StatusOK, metricsResp.StatusCode)
}

func TestRouter_RequiresBearerToken(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/api/v1/leads", "/api/v1/quotes", "/api/v1/settings", "/api/v1/distance?address=x", "/api/v1/auth/me"} {
		resp := api.do(t, http.MethodGet, path, "", nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	// A malformed header is rejected too.
	req, _ := http.NewRequest(http.MethodGet, api.srv.URL+"/api/v1/leads", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := api.client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_LoginAndMe(t *testing.T) {
	api := newTestAPI(t)
	api.createUser(t, "staff@example.com", "valid-password", false)

	token := api.login(t, "staff@example.com", "valid-password")

	resp := api.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me domain.User
	decodeBody(t, resp, &me)
	assert.Equal(t, "staff@example.com", me.Email)
}

func TestRouter_LoginRejectsBadPassword(t *testing.T) {
	api := newTestAPI(t)
	api.createUser(t, "staff@example.com", "valid-password", false)

	body, _ := json.Marshal(map[string]string{"email": "staff@example.com", "password": "wrong"})
	resp, err := api.client.Post(api.srv.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_UserCreationRequiresAdmin(t *testing.T) {
	api := newTestAPI(t)
	api.createUser(t, "staff@example.com", "valid-password", false)
	api.createUser(t, "admin@example.com", "valid-password", true)

	payload := map[string]any{"email": "new@example.com", "password": "valid-password", "is_active": true, "is_staff": true}

	staffToken := api.login(t, "staff@example.com", "valid-password")
	resp := api.do(t, http.MethodPost, "/api/v1/auth/users", staffToken, payload)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminToken := api.login(t, "admin@example.com", "valid-password")
	resp = api.do(t, http.MethodPost, "/api/v1/auth/users", adminToken, payload)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRouter_LeadLifecycle(t *testing.T) {
	api := newTestAPI(t)
	api.createUser(t, "staff@example.com", "valid-password", false)
	token := api.login(t, "staff@example.com", "valid-password")

	leadPayload := map[string]any{
		"first_name":        "Jordan",
		"last_name":         "Avery",
		"email":             "jordan@example.com",
		"phone":             "555-0101",
		"install_timeframe": "ASAP",
		"mobility_aids":     []string{"wheelchair"},
		"install_address":   "123 Main St, Dallas, TX",
	}

	resp := api.do(t, http.MethodPost, "/api/v1/leads", token, leadPayload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var lead domain.Lead
	decodeBody(t, resp, &lead)
	require.NotEmpty(t, lead.ID)

	resp = api.do(t, http.MethodGet, "/api/v1/leads/"+lead.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(t, http.MethodPatch, "/api/v1/leads/"+lead.ID+"/status", token, map[string]string{"status": "CONTACTED"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(t, http.MethodGet, "/api/v1/leads/overview", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var overview services.LeadOverview
	decodeBody(t, resp, &overview)
	assert.Len(t, overview.RecentLeads, 1)

	resp = api.do(t, http.MethodGet, "/api/v1/leads/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats services.LeadStats
	decodeBody(t, resp, &stats)
	assert.Equal(t, int64(1), stats.TotalLeads)

	resp = api.do(t, http.MethodDelete, "/api/v1/leads/"+lead.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(t, http.MethodGet, "/api/v1/leads/"+lead.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_LeadValidationReturns422(t *testing.T) {
	api := newTestAPI(t)
	api.createUser(t, "staff@example.com", "valid-password", false)
	token := api.login(t, "staff@example.com", "valid-password")

	resp := api.do(t, http.MethodPost, "/api/v1/leads", token, map[string]any{"first_name": "OnlyName"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "Invalid form data", body.Message)
	assert.Contains(t, body.Errors, "email")
}

func TestRouter_QuoteFlow(t *testing.T) {
	api := newTestAPI(t)
	api.createUser(t, "staff@example.com", "valid-password", false)
	token := api.login(t, "staff@example.com", "valid-password")

	resp := api.do(t, http.MethodPost, "/api/v1/leads", token, map[string]any{
		"first_name": "Jordan", "last_name": "Avery", "email": "jordan@example.com",
		"phone": "555-0101", "install_timeframe": "ASAP",
		"mobility_aids": []string{"walker"}, "install_address": "123 Main St",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var lead domain.Lead
	decodeBody(t, resp, &lead)

	resp = api.do(t, http.MethodPost, "/api/v1/quotes", token, map[string]any{
		"lead_id": lead.ID, "ramp_length": 10, "platforms": 2, "distance": 20, "action": "send",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var quote domain.Quote
	decodeBody(t, resp, &quote)
	assert.Equal(t, domain.QuoteStatusSent, quote.Status)
	assert.Equal(t, 540.0, quote.Price)
	assert.NotNil(t, quote.ExpiresAt)

	// Deleting a lead with quotes is refused.
	resp = api.do(t, http.MethodDelete, "/api/v1/leads/"+lead.ID, token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(t, http.MethodDelete, "/api/v1/quotes/"+quote.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(t, http.MethodDelete, "/api/v1/leads/"+lead.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_SettingsRoundTrip(t *testing.T) {
	api := newTestAPI(t)
	api.createUser(t, "staff@example.com", "valid-password", false)
	token := api.login(t, "staff@example.com", "valid-password")

	resp := api.do(t, http.MethodGet, "/api/v1/settings", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var settings domain.BusinessSettings
	decodeBody(t, resp, &settings)
	assert.Equal(t, domain.DefaultBusinessSettings().WarehouseAddress, settings.WarehouseAddress)

	resp = api.do(t, http.MethodPut, "/api/v1/settings", token, map[string]any{
		"warehouse_address": "900 Depot Rd, Plano, TX", "base_delivery_fee": 60,
		"delivery_fee_per_mile": 5, "base_install_fee": 55,
		"install_fee_per_component": 45, "rental_rate_per_ft": 12,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(t, http.MethodGet, "/api/v1/settings", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &settings)
	assert.Equal(t, "900 Depot Rd, Plano, TX", settings.WarehouseAddress)
}

func TestRouter_SettingsRejectsNonNumericRate(t *testing.T) {
	api := newTestAPI(t)
	api.createUser(t, "staff@example.com", "valid-password", false)
	token := api.login(t, "staff@example.com", "valid-password")

	resp := api.do(t, http.MethodPut, "/api/v1/settings", token, map[string]any{
		"warehouse_address": "900 Depot Rd", "base_delivery_fee": "lots",
		"delivery_fee_per_mile": 5, "base_install_fee": 55,
		"install_fee_per_component": 45, "rental_rate_per_ft": 12,
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "Invalid form data", body.Message)
	assert.Contains(t, body.Errors, "base_delivery_fee")
}

func TestRouter_DistanceLookup(t *testing.T) {
	api := newTestAPI(t)
	api.createUser(t, "staff@example.com", "valid-password", false)
	token := api.login(t, "staff@example.com", "valid-password")

	resp := api.do(t, http.MethodGet, "/api/v1/distance?address=123+Main+St", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]float64
	decodeBody(t, resp, &body)
	assert.Equal(t, 40.0, body["distance"])

	resp = api.do(t, http.MethodGet, "/api/v1/distance", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
