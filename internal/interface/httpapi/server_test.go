package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"qtholidays-service/internal/domain/entity"
	"qtholidays-service/internal/domain/repository"
	"qtholidays-service/internal/infrastructure/router"
	"qtholidays-service/internal/interface/export"
	memrepo "qtholidays-service/internal/interface/repository"
	"qtholidays-service/internal/usecase"
	"qtholidays-service/pkg/logger"
	"qtholidays-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type staffRepo struct {
	users map[string]*entity.StaffUser
}

func (r *staffRepo) GetByEmail(ctx context.Context, email string) (*entity.StaffUser, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, repository.ErrStaffNotFound
}

func (r *staffRepo) Create(ctx context.Context, user *entity.StaffUser) error {
	user.ID = uint(len(r.users) + 1)
	r.users[user.Email] = user
	return nil
}

// downStore fails every query
type downStore struct {
	repository.DocumentStore
}

func (downStore) Query(ctx context.Context, collection string, opts repository.QueryOptions) ([]repository.Document, error) {
	return nil, errors.New("server selection timeout")
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func newTestServer(t *testing.T, store repository.DocumentStore) *testServer {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	staff := &staffRepo{users: map[string]*entity.StaffUser{
		"desk@qtholidays.in": {ID: 1, Email: "desk@qtholidays.in", Name: "Front Desk", PasswordHash: string(hash), Active: true},
	}}

	clock := fixedClock{now: time.Date(2024, time.May, 17, 10, 0, 0, 0, time.UTC)}
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics("test", reg)
	log := logger.NewNopLogger()

	services := router.NewServiceRouter(log)
	usecase.RegisterRecordServices(services, store, clock, m, log)

	server := NewServer(Deps{
		Services:   services,
		Summary:    usecase.NewSummaryService(services, clock, m, log, export.NewCSVSink(), export.NewXLSXSink()),
		Auth:       usecase.NewAuthService(staff, "test-secret", time.Hour, clock, log),
		Clock:      clock,
		Metrics:    m,
		Gatherer:   reg,
		Logger:     log,
		LoginRate:  1,
		LoginBurst: 3,
	})

	return &testServer{t: t, handler: server.Handler()}
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login() {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "desk@qtholidays.in", "password": "correct-horse"})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	s.token = resp.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, rec)
	detail, ok := body["error"].(map[string]interface{})
	require.True(t, ok, rec.Body.String())
	return detail["code"].(string)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, memrepo.NewMemoryDocumentStore())

	rec := s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestAPIRequiresSession(t *testing.T) {
	s := newTestServer(t, memrepo.NewMemoryDocumentStore())

	rec := s.do(http.MethodGet, "/api/services", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "auth_error", errorCode(t, rec))

	s.token = "garbage"
	rec = s.do(http.MethodGet, "/api/services", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestServer(t, memrepo.NewMemoryDocumentStore())

	rec := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "desk@qtholidays.in", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "auth_error", errorCode(t, rec))

	rec = s.do(http.MethodPost, "/api/auth/login", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginIsRateLimited(t *testing.T) {
	s := newTestServer(t, memrepo.NewMemoryDocumentStore())

	for i := 0; i < 3; i++ {
		rec := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "desk@qtholidays.in", "password": "nope"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "desk@qtholidays.in", "password": "correct-horse"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestLoginLimitIgnoresForwardedHeaders(t *testing.T) {
	s := newTestServer(t, memrepo.NewMemoryDocumentStore())

	limited := 0
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"desk@qtholidays.in","password":"nope"}`))
		req.Header.Set("X-Real-IP", fmt.Sprintf("203.0.113.%d", i+1))
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			limited++
		}
	}

	assert.GreaterOrEqual(t, limited, 6)
}

func TestSessionAndLogout(t *testing.T) {
	s := newTestServer(t, memrepo.NewMemoryDocumentStore())
	s.login()

	rec := s.do(http.MethodGet, "/api/auth/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "desk@qtholidays.in", decode(t, rec)["email"])

	rec = s.do(http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/auth/session", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServiceDescriptors(t *testing.T) {
	s := newTestServer(t, memrepo.NewMemoryDocumentStore())
	s.login()

	rec := s.do(http.MethodGet, "/api/services", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var descriptors []entity.Descriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &descriptors))
	require.Len(t, descriptors, 8)
	assert.Equal(t, "flightBookings", descriptors[0].Collection)

	rec = s.do(http.MethodGet, "/api/services/car-rental", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Car Rentals", decode(t, rec)["displayName"])

	rec = s.do(http.MethodGet, "/api/services/space-travel/records", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown_service", errorCode(t, rec))
}

func TestRecordLifecycle(t *testing.T) {
	s := newTestServer(t, memrepo.NewMemoryDocumentStore())
	s.login()

	rec := s.do(http.MethodPost, "/api/services/flight-booking/records", map[string]interface{}{
		"from": "DEL", "to": "BOM", "flightDate": "2024-05-01",
		"customerQuote": 5000, "supplierCost": 4200,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	id := created["id"].(string)
	assert.NotEmpty(t, id)
	assert.Equal(t, 800.0, created["profit"])
	assert.Equal(t, created["createdAt"], created["updatedAt"])

	rec = s.do(http.MethodPost, "/api/services/flight-booking/records", map[string]interface{}{
		"from": "DEL", "to": "BOM", "flightDate": "2024-05-01",
		"customerQuote": -5, "supplierCost": 4200,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_record", errorCode(t, rec))

	rec = s.do(http.MethodPatch, "/api/services/flight-booking/records/"+id, map[string]interface{}{"supplierCost": 4500})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/services/flight-booking/records", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode(t, rec)
	assert.Equal(t, 1.0, list["count"])
	first := list["records"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "DEL", first["from"])
	assert.Equal(t, 500.0, first["profit"])

	rec = s.do(http.MethodPatch, "/api/services/flight-booking/records/nonexistent", map[string]interface{}{"to": "GOI"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))

	rec = s.do(http.MethodPatch, "/api/services/flight-booking/records/"+id, map[string]interface{}{"createdAt": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, "/api/services/flight-booking/records/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, decode(t, rec)["id"])

	rec = s.do(http.MethodDelete, "/api/services/flight-booking/records/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/services/flight-booking/records?period=decade", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummaryExportAndDashboard(t *testing.T) {
	s := newTestServer(t, memrepo.NewMemoryDocumentStore())
	s.login()

	for _, body := range []map[string]interface{}{
		{"destination": "Goa", "date": "2024-05-03", "seaters": 4, "customerQuote": 1000, "supplierCost": 800},
		{"destination": "Ooty", "date": "2024-05-04", "seaters": 7, "customerQuote": 2000, "supplierCost": 1500},
	} {
		rec := s.do(http.MethodPost, "/api/services/car-rental/records", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := s.do(http.MethodGet, "/api/summary?period=month", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode(t, rec)["summary"].(map[string]interface{})
	assert.Equal(t, 2.0, summary["totalCount"])
	assert.Equal(t, 3000.0, summary["totalRevenue"])
	assert.Equal(t, 2300.0, summary["totalCost"])
	assert.Equal(t, 700.0, summary["totalProfit"])

	rec = s.do(http.MethodGet, "/api/summary?period=fortnight", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/summary/export?period=all&format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="QT_Holidays_Data_2024-05-17.csv"`, rec.Header().Get("Content-Disposition"))
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 3)

	rec = s.do(http.MethodGet, "/api/summary/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")

	rec = s.do(http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tiles []usecase.ServiceTile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tiles))
	require.Len(t, tiles, 8)
	for _, tile := range tiles {
		if tile.Slug == "car-rental" {
			assert.Equal(t, 2, tile.RecordCount)
		}
	}

	rec = s.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_http_requests_total")
	assert.Contains(t, rec.Body.String(), `route="/api/summary"`)
}

func TestStoreUnavailable(t *testing.T) {
	s := newTestServer(t, downStore{DocumentStore: memrepo.NewMemoryDocumentStore()})
	s.login()

	rec := s.do(http.MethodGet, "/api/services/visa/records", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "store_unavailable", errorCode(t, rec))

	rec = s.do(http.MethodGet, "/api/summary", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStatusFor(t *testing.T) {
	status, code := statusFor(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal", code)

	status, code = statusFor(fmt.Errorf("list: %w", entity.ErrCorruptRecord))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "corrupt_record", code)
}
