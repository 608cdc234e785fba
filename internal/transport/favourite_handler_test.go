package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shopmesh/internal/client"
	"shopmesh/internal/domain"
	"shopmesh/internal/repository"
	"shopmesh/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// mockFavouriteService implements service.FavouriteService for handler
// tests without any transport or storage underneath.
type mockFavouriteService struct {
	views map[domain.FavouriteID]*service.FavouriteView
	saved []*domain.Favourite
}

func newMockFavouriteService() *mockFavouriteService {
	return &mockFavouriteService{views: make(map[domain.FavouriteID]*service.FavouriteView)}
}

func (m *mockFavouriteService) FindAll(ctx context.Context) ([]service.FavouriteView, error) {
	out := make([]service.FavouriteView, 0, len(m.views))
	for _, v := range m.views {
		out = append(out, *v)
	}
	return out, nil
}

func (m *mockFavouriteService) FindByID(ctx context.Context, id domain.FavouriteID) (*service.FavouriteView, error) {
	view, exists := m.views[id]
	if !exists {
		return nil, repository.ErrFavouriteNotFound
	}
	return view, nil
}

func (m *mockFavouriteService) Save(ctx context.Context, favourite *domain.Favourite) error {
	m.saved = append(m.saved, favourite)
	return nil
}

func (m *mockFavouriteService) DeleteByID(ctx context.Context, id domain.FavouriteID) error {
	if _, exists := m.views[id]; !exists {
		return repository.ErrFavouriteNotFound
	}
	delete(m.views, id)
	return nil
}

func passthroughAuth(next http.Handler) http.Handler {
	return next
}

func bytesReader(s string) io.Reader {
	return strings.NewReader(s)
}

func favouriteRouter(svc service.FavouriteService) chi.Router {
	r := chi.NewRouter()
	handler := NewFavouriteHandler(svc, zap.NewNop())
	handler.RegisterRoutes(r, passthroughAuth)
	return r
}

func TestFavouriteGetByCompositeKey(t *testing.T) {
	svc := newMockFavouriteService()
	likeDate := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	id := domain.FavouriteID{UserID: 1, ProductID: 10, LikeDate: likeDate}
	svc.views[id] = &service.FavouriteView{
		UserID:    1,
		ProductID: 10,
		LikeDate:  likeDate,
		User:      &client.UserDetail{UserID: 1, FirstName: "John"},
		Product:   &client.ProductDetail{ProductID: 10, Title: "Laptop"},
	}

	router := favouriteRouter(svc)

	req := httptest.NewRequest("GET", "/api/favourites/1/10/2026-03-01T12:00:00Z", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	for _, key := range []string{"userId", "productId", "likeDate", "user", "product"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("expected key %q in response, body %s", key, w.Body.String())
		}
	}

	var user map[string]interface{}
	json.Unmarshal(payload["user"], &user)
	if user["firstName"] != "John" {
		t.Errorf("expected user.firstName John, got %v", user["firstName"])
	}
	var product map[string]interface{}
	json.Unmarshal(payload["product"], &product)
	if product["title"] != "Laptop" {
		t.Errorf("expected product.title Laptop, got %v", product["title"])
	}
}

func TestFavouriteGetRejectsBadKeyParts(t *testing.T) {
	router := favouriteRouter(newMockFavouriteService())

	cases := []string{
		"/api/favourites/zero/10/2026-03-01T12:00:00Z",
		"/api/favourites/-1/10/2026-03-01T12:00:00Z",
		"/api/favourites/1/abc/2026-03-01T12:00:00Z",
		"/api/favourites/1/10/yesterday",
	}

	for _, path := range cases {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestFavouriteGetMissingKeyIs404(t *testing.T) {
	router := favouriteRouter(newMockFavouriteService())

	req := httptest.NewRequest("GET", "/api/favourites/1/10/2026-03-01T12:00:00Z", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestFavouriteSaveValidatesBody(t *testing.T) {
	svc := newMockFavouriteService()
	router := favouriteRouter(svc)

	// Valid body passes.
	body := `{"userId":1,"productId":10,"likeDate":"2026-03-01T12:00:00Z"}`
	req := httptest.NewRequest("POST", "/api/favourites", bytesReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(svc.saved) != 1 || svc.saved[0].UserID != 1 || svc.saved[0].ProductID != 10 {
		t.Errorf("favourite not saved as expected: %+v", svc.saved)
	}

	// Missing ids fail validation.
	req = httptest.NewRequest("POST", "/api/favourites", bytesReader(`{"likeDate":"2026-03-01T12:00:00Z"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing ids, got %d", w.Code)
	}
}

func TestFavouriteDeleteByCompositeKey(t *testing.T) {
	svc := newMockFavouriteService()
	likeDate := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	id := domain.FavouriteID{UserID: 1, ProductID: 10, LikeDate: likeDate}
	svc.views[id] = &service.FavouriteView{UserID: 1, ProductID: 10, LikeDate: likeDate}

	router := favouriteRouter(svc)

	req := httptest.NewRequest("DELETE", "/api/favourites/1/10/2026-03-01T12:00:00Z", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	// Second delete of the same key is a 404.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for double delete, got %d", w.Code)
	}
}
