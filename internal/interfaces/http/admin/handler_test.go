package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avcve/yakawa-sKitchen/internal/auth"
	"github.com/avcve/yakawa-sKitchen/internal/interfaces/http/common"
	"github.com/avcve/yakawa-sKitchen/internal/review/application"
	"github.com/avcve/yakawa-sKitchen/internal/review/domain"
)

type memMonthRepo struct {
	months []domain.Month
}

func (r *memMonthRepo) FindAll(context.Context) ([]domain.Month, error) {
	return append([]domain.Month(nil), r.months...), nil
}

func (r *memMonthRepo) Insert(_ context.Context, month *domain.Month) error {
	r.months = append(r.months, *month)
	return nil
}

func (r *memMonthRepo) UpdateStatus(_ context.Context, id domain.MonthID, status domain.MonthStatus) error {
	for i := range r.months {
		if r.months[i].ID == id {
			r.months[i].Status = status
			return nil
		}
	}
	return application.ErrNotFound
}

func (r *memMonthRepo) UpdateDetails(_ context.Context, month domain.Month) error {
	for i := range r.months {
		if r.months[i].ID == month.ID {
			r.months[i] = month
			return nil
		}
	}
	return application.ErrNotFound
}

type memReviewRepo struct {
	reviews []domain.Review
	nextID  int
}

func (r *memReviewRepo) FindAll(context.Context) ([]domain.Review, error) {
	return append([]domain.Review(nil), r.reviews...), nil
}

func (r *memReviewRepo) Insert(_ context.Context, review *domain.Review) error {
	r.nextID++
	review.ID = fmt.Sprintf("review-%d", r.nextID)
	r.reviews = append([]domain.Review{*review}, r.reviews...)
	return nil
}

func (r *memReviewRepo) SetFeatured(_ context.Context, id string, featured bool) error {
	for i := range r.reviews {
		if r.reviews[i].ID == id {
			r.reviews[i].IsFeatured = featured
			return nil
		}
	}
	return application.ErrNotFound
}

func (r *memReviewRepo) Delete(_ context.Context, id string) error {
	for i := range r.reviews {
		if r.reviews[i].ID == id {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}
	return application.ErrNotFound
}

// injectPrincipal stands in for the server's session middleware.
func injectPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := common.ContextWithPrincipal(r.Context(), auth.Principal{Username: "admin", IssuedAt: time.Now()})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newTestRouter(t *testing.T, months []domain.Month) (*chi.Mux, *application.StateStore, *auth.Gate) {
	t.Helper()
	store := application.NewStateStore(&memMonthRepo{months: months}, &memReviewRepo{})
	require.NoError(t, store.Load(context.Background()))

	tokens := auth.NewTokenIssuer([]byte("test-secret-0123456789"), "test-issuer", time.Hour)
	gate, err := auth.NewGate(context.Background(), auth.Credentials{Username: "admin", Password: "password123"}, nil, tokens)
	require.NoError(t, err)

	handler := NewHandler(Config{
		Logger:   log.New(testWriter{t}, "", 0),
		Gate:     gate,
		Months:   store,
		Reviews:  store,
		Location: time.UTC,
	})
	router := chi.NewRouter()
	router.Route("/admin", func(r chi.Router) {
		handler.Register(r, injectPrincipal)
	})
	return router, store, gate
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func testMonths() []domain.Month {
	now := time.Now().UTC()
	return []domain.Month{
		{ID: "jan-2026", Name: "January 2026", Status: domain.MonthStatusClosed, CreatedAt: now.Add(-time.Hour)},
		{ID: "feb-2026", Name: "February 2026", Status: domain.MonthStatusActive, CreatedAt: now},
	}
}

func TestLoginEndpoint(t *testing.T) {
	router, _, gate := newTestRouter(t, testMonths())

	body := `{"username":"admin","password":"password123"}`
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "admin", resp.Username)

	principal, err := gate.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", principal.Username)
}

func TestLoginEndpointRejectsWrongPassword(t *testing.T) {
	router, _, _ := newTestRouter(t, testMonths())

	body := `{"username":"admin","password":"wrong"}`
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(body)))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSessionEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t, testMonths())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/session", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "admin")
}

func TestMonthCreateEndpoint(t *testing.T) {
	router, store, _ := newTestRouter(t, testMonths())

	body := `{"name":"March 2026"}`
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/admin/months", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "march-2026")
	assert.Contains(t, rr.Body.String(), "upcoming")
	assert.Len(t, store.Months(), 3)
}

func TestMonthCreateEndpointRejectsBlankName(t *testing.T) {
	router, _, _ := newTestRouter(t, testMonths())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/admin/months", strings.NewReader(`{"name":"  "}`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMonthStatusEndpointActivatesAndSelects(t *testing.T) {
	router, store, _ := newTestRouter(t, testMonths())

	body := `{"status":"active"}`
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/admin/months/jan-2026/status", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rr.Code)

	active, ok := store.ActiveMonth()
	require.True(t, ok)
	assert.Equal(t, domain.MonthID("jan-2026"), active.ID)

	// feb-2026 keeps its stored status; activation does not demote others
	for _, m := range store.Months() {
		if m.ID == "feb-2026" {
			assert.Equal(t, domain.MonthStatusActive, m.Status)
		}
	}
}

func TestMonthStatusEndpointUnknownMonth(t *testing.T) {
	router, _, _ := newTestRouter(t, testMonths())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/admin/months/missing/status", strings.NewReader(`{"status":"closed"}`)))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMonthStatusEndpointRejectsUnknownStatus(t *testing.T) {
	router, _, _ := newTestRouter(t, testMonths())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/admin/months/jan-2026/status", strings.NewReader(`{"status":"archived"}`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMonthDetailsEndpoint(t *testing.T) {
	router, store, _ := newTestRouter(t, testMonths())

	body := `{"description":"2月の特別メニュー"}`
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/admin/months/feb-2026", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rr.Code)

	for _, m := range store.Months() {
		if m.ID == "feb-2026" {
			assert.Equal(t, "2月の特別メニュー", m.Description)
		}
	}
}

func TestMonthDetailsEndpointRequiresAField(t *testing.T) {
	router, _, _ := newTestRouter(t, testMonths())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/admin/months/feb-2026", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestReviewModerationEndpoints(t *testing.T) {
	router, store, _ := newTestRouter(t, testMonths())

	created, err := store.SubmitReview(context.Background(), application.SubmitReviewCommand{Rating: 5, Love: "最高"})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/reviews", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), created.ID)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/admin/reviews/"+created.ID+"/featured", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, store.Reviews()[0].IsFeatured)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/admin/reviews/"+created.ID, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, store.Reviews())

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/admin/reviews/"+created.ID, nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCredentialUpdateEndpoint(t *testing.T) {
	router, _, gate := newTestRouter(t, testMonths())

	body := `{"username":"owner","password":"much-stronger"}`
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/admin/credentials", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "owner", gate.Username())

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/admin/credentials", strings.NewReader(`{"username":"owner","password":"short"}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
