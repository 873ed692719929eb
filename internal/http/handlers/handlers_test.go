package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	intconfig "bikie/internal/config"
	api "bikie/internal/http"
	"bikie/internal/http/handlers"
	"bikie/internal/relay"
	"bikie/internal/repositories"
	"bikie/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

type testServer struct {
	engine   *gin.Engine
	relayBad atomic.Bool
	relayed  atomic.Int32
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{}

	relaySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.relayed.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if ts.relayBad.Load() {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"message":"Invalid access key"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"message":"Email sent successfully!"}`))
	}))
	t.Cleanup(relaySrv.Close)

	seed, err := repositories.DefaultSeed()
	require.NoError(t, err)
	store := repositories.NewMemoryStore(seed)

	now := func() time.Time { return time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC) }
	auth, err := services.NewAuthService("admin@example.com", "admin123", "", "test-secret", time.Hour)
	require.NoError(t, err)

	hd := &handlers.Handler{
		Catalog: services.CatalogService{Vehicles: store, Testimonials: store, Now: now, Location: time.UTC},
		Bookings: services.BookingService{
			Vehicles: store,
			Relay:    relay.NewClient(relaySrv.URL, "key", 5*time.Second),
			Now:      now,
			Location: time.UTC,
		},
		Admin: services.AdminService{Vehicles: store, Bookings: store, Customers: store, Now: now},
		Auth:  auth,
	}
	ts.engine = api.NewRouter(intconfig.Env{}, api.Deps{Handler: hd})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func (ts *testServer) login(t *testing.T) string {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/admin/login", map[string]string{"email": "admin@example.com", "password": "admin123"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	require.Equal(t, services.RoleAdmin, out.Role)
	return out.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func ids(t *testing.T, v any) []string {
	t.Helper()
	list, ok := v.([]any)
	require.True(t, ok, "not a list: %T", v)
	out := make([]string, 0, len(list))
	for _, it := range list {
		out = append(out, it.(map[string]any)["id"].(string))
	}
	return out
}

func TestHealthAndNoRoute(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode(t, w)["code"])

	w = ts.do(t, http.MethodGet, "/api/routes", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPublicVehicleRoutes(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/vehicles?type=car&sort=priceLow", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"car-3", "car-1", "car-2", "car-4"}, ids(t, decode(t, w)["data"]))

	w = ts.do(t, http.MethodGet, "/api/vehicles?sort=cheapest", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/api/vehicles/featured", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"bike-2", "bike-3", "car-4"}, ids(t, decode(t, w)["data"]))

	w = ts.do(t, http.MethodGet, "/api/vehicles/bike-404", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, decode(t, w)["request_id"])

	w = ts.do(t, http.MethodGet, "/api/home", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestQuoteRoute(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/bookings/quote", map[string]any{"vehicleId": "bike-2", "duration": "3:250"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	quote := decode(t, w)["data"].(map[string]any)["quote"].(map[string]any)
	assert.Equal(t, 250.0, quote["total"])
	assert.Equal(t, 50.0, quote["savings"])

	w = ts.do(t, http.MethodPost, "/api/bookings/quote", map[string]any{"vehicleId": "bike-2", "duration": "2:150"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func bookingBody() map[string]any {
	return map[string]any{
		"firstName":  "Asha",
		"lastName":   "Rao",
		"email":      "asha@example.com",
		"phone":      "98450 12345",
		"vehicleId":  "bike-2",
		"pickupDate": "2026-10-20",
		"pickupTime": "10:00",
		"selection":  map[string]any{"kind": "hourly", "hours": 3},
	}
}

func TestSubmitBooking(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/bookings", bookingBody(), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, 300.0, data["quote"].(map[string]any)["total"])
	assert.Equal(t, int32(1), ts.relayed.Load())

	w = ts.do(t, http.MethodPost, "/api/bookings?format=pdf", bookingBody(), "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "BOOKING_")
}

func TestSubmitBookingFailures(t *testing.T) {
	ts := newTestServer(t)

	body := bookingBody()
	delete(body, "email")
	delete(body, "phone")
	w := ts.do(t, http.MethodPost, "/api/bookings", body, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	details := decode(t, w)["details"].(map[string]any)
	assert.Equal(t, []any{"email", "phone"}, details["missing"])
	assert.Equal(t, int32(0), ts.relayed.Load())

	ts.relayBad.Store(true)
	w = ts.do(t, http.MethodPost, "/api/bookings", bookingBody(), "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Invalid access key", decode(t, w)["message"])
}

func TestAdminRequiresToken(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/admin/overview", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodPost, "/api/admin/login", map[string]string{"email": "admin@example.com", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	_, hasToken := decode(t, w)["token"]
	assert.False(t, hasToken)

	token := ts.login(t)
	w = ts.do(t, http.MethodGet, "/api/admin/overview", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminBookingTransitionsOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	w := ts.do(t, http.MethodPut, "/api/admin/bookings/booking-3/cancel?status=cancelled", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode(t, w)
	assert.Equal(t, "cancelled", out["data"].(map[string]any)["status"])
	assert.Equal(t, []string{"booking-3"}, ids(t, out["view"]))

	w = ts.do(t, http.MethodPut, "/api/admin/bookings/booking-3/complete", nil, token)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodGet, "/api/admin/bookings?status=upcoming", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"booking-4"}, ids(t, decode(t, w)["data"]))
}

func TestAdminVehicleMutations(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	w := ts.do(t, http.MethodPost, "/api/admin/vehicles?type=car",
		map[string]any{"name": "Tata Nexon", "type": "car", "hourlyRate": 200, "available": true}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	out := decode(t, w)
	id := out["data"].(map[string]any)["id"].(string)
	assert.True(t, strings.HasPrefix(id, "car-"))
	assert.Len(t, ids(t, out["view"]), 5)

	w = ts.do(t, http.MethodPost, "/api/admin/vehicles", map[string]any{"type": "car", "hourlyRate": 200}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPatch, "/api/admin/vehicles/"+id+"/availability", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["data"].(map[string]any)["available"])

	w = ts.do(t, http.MethodDelete, "/api/admin/vehicles/"+id, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.do(t, http.MethodGet, "/api/vehicles/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminMutationRejectsBadSortBeforeApplying(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	w := ts.do(t, http.MethodDelete, "/api/admin/vehicles/bike-1?sort=bogus", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = ts.do(t, http.MethodGet, "/api/admin/vehicles/bike-1", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPatch, "/api/admin/vehicles/bike-1/availability?sort=bogus", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = ts.do(t, http.MethodGet, "/api/admin/vehicles/bike-1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["data"].(map[string]any)["available"])

	w = ts.do(t, http.MethodPut, "/api/admin/bookings/booking-3/cancel?sort=bogus", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = ts.do(t, http.MethodGet, "/api/admin/bookings/booking-3", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "upcoming", decode(t, w)["data"].(map[string]any)["status"])
}

func TestAdminCustomerRoutes(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	w := ts.do(t, http.MethodGet, "/api/admin/customers?q=emily", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"customer-4"}, ids(t, decode(t, w)["data"]))

	w = ts.do(t, http.MethodGet, "/api/admin/customers/customer-4/bookings", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"booking-4"}, ids(t, decode(t, w)["data"]))
}
