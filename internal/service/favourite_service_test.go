package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"shopmesh/internal/client"
	"shopmesh/internal/config"
	"shopmesh/internal/domain"
	"shopmesh/internal/repository"
	"shopmesh/internal/resilience"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

// Mock repository for testing
type mockFavouriteRepository struct {
	favourites map[domain.FavouriteID]*domain.Favourite
	order      []domain.FavouriteID
	failAll    bool
}

func newMockFavouriteRepository() *mockFavouriteRepository {
	return &mockFavouriteRepository{
		favourites: make(map[domain.FavouriteID]*domain.Favourite),
	}
}

func (m *mockFavouriteRepository) FindAll(ctx context.Context) ([]*domain.Favourite, error) {
	if m.failAll {
		return nil, errors.New("connection refused")
	}
	out := make([]*domain.Favourite, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.favourites[id])
	}
	return out, nil
}

func (m *mockFavouriteRepository) FindByID(ctx context.Context, id domain.FavouriteID) (*domain.Favourite, error) {
	if m.failAll {
		return nil, errors.New("connection refused")
	}
	favourite, exists := m.favourites[id]
	if !exists {
		return nil, repository.ErrFavouriteNotFound
	}
	return favourite, nil
}

func (m *mockFavouriteRepository) Save(ctx context.Context, favourite *domain.Favourite) error {
	id := favourite.ID()
	if _, exists := m.favourites[id]; !exists {
		m.order = append(m.order, id)
	}
	m.favourites[id] = favourite
	return nil
}

func (m *mockFavouriteRepository) DeleteByID(ctx context.Context, id domain.FavouriteID) error {
	if _, exists := m.favourites[id]; !exists {
		return repository.ErrFavouriteNotFound
	}
	delete(m.favourites, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Stub fetchers with call counting so tests can assert how many remote
// calls actually happened.
type stubUserFetcher struct {
	users map[int]*client.UserDetail
	fail  bool
	delay time.Duration
	calls atomic.Int64
}

func (s *stubUserFetcher) FetchUser(ctx context.Context, id int) (*client.UserDetail, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.fail {
		return nil, client.ErrRemoteLookup
	}
	detail, exists := s.users[id]
	if !exists {
		return nil, client.ErrRemoteLookup
	}
	return detail, nil
}

type stubProductFetcher struct {
	products map[int]*client.ProductDetail
	fail     bool
	delay    time.Duration
	calls    atomic.Int64
}

func (s *stubProductFetcher) FetchProduct(ctx context.Context, id int) (*client.ProductDetail, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.fail {
		return nil, client.ErrRemoteLookup
	}
	detail, exists := s.products[id]
	if !exists {
		return nil, client.ErrRemoteLookup
	}
	return detail, nil
}

type staticFeatures struct {
	enabled bool
}

func (f staticFeatures) FetchDetailsEnabled() bool { return f.enabled }

type staticResilience struct {
	settings config.ResilienceSettings
}

func (s staticResilience) Settings() config.ResilienceSettings { return s.settings }

// testExecutor returns an executor with three fast attempts and a
// window large enough that the breaker never trips mid-test.
func testExecutor() *resilience.Executor {
	return resilience.New(staticResilience{config.ResilienceSettings{
		MaxAttempts: 3,
		RetryWait:   time.Millisecond,
		FailureRate: 0.5,
		WindowSize:  1000,
		Cooldown:    time.Second,
	}}, zap.NewNop())
}

func seedFavourites(repo *mockFavouriteRepository) (johnLaptop, janeMouse domain.FavouriteID) {
	ctx := context.Background()
	likeOne := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	likeTwo := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	repo.Save(ctx, &domain.Favourite{UserID: 1, ProductID: 10, LikeDate: likeOne})
	repo.Save(ctx, &domain.Favourite{UserID: 2, ProductID: 20, LikeDate: likeTwo})

	return domain.FavouriteID{UserID: 1, ProductID: 10, LikeDate: likeOne},
		domain.FavouriteID{UserID: 2, ProductID: 20, LikeDate: likeTwo}
}

func knownUsers() map[int]*client.UserDetail {
	return map[int]*client.UserDetail{
		1: {UserID: 1, FirstName: "John", LastName: "Smith", Email: "john@example.com"},
		2: {UserID: 2, FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"},
	}
}

func knownProducts() map[int]*client.ProductDetail {
	return map[int]*client.ProductDetail{
		10: {ProductID: 10, Title: "Laptop", SKU: "LPT-01", PriceUnit: 999.99},
		20: {ProductID: 20, Title: "Mouse", SKU: "MSE-01", PriceUnit: 19.99},
	}
}

func TestFindAllEnrichesEveryRow(t *testing.T) {
	repo := newMockFavouriteRepository()
	seedFavourites(repo)
	users := &stubUserFetcher{users: knownUsers()}
	products := &stubProductFetcher{products: knownProducts()}

	svc := NewFavouriteService(repo, users, products, staticFeatures{true}, testExecutor(), zap.NewNop())

	views, err := svc.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}

	if views[0].User == nil || views[0].User.FirstName != "John" {
		t.Errorf("expected first view enriched with John, got %+v", views[0].User)
	}
	if views[0].Product == nil || views[0].Product.Title != "Laptop" {
		t.Errorf("expected first view enriched with Laptop, got %+v", views[0].Product)
	}
	if views[1].User == nil || views[1].User.FirstName != "Jane" {
		t.Errorf("expected second view enriched with Jane, got %+v", views[1].User)
	}
	if views[1].Product == nil || views[1].Product.Title != "Mouse" {
		t.Errorf("expected second view enriched with Mouse, got %+v", views[1].Product)
	}
}

func TestFindByIDEnrichesRow(t *testing.T) {
	repo := newMockFavouriteRepository()
	johnLaptop, _ := seedFavourites(repo)
	users := &stubUserFetcher{users: knownUsers()}
	products := &stubProductFetcher{products: knownProducts()}

	svc := NewFavouriteService(repo, users, products, staticFeatures{true}, testExecutor(), zap.NewNop())

	view, err := svc.FindByID(context.Background(), johnLaptop)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if view.UserID != 1 || view.ProductID != 10 {
		t.Errorf("identifiers not preserved: %+v", view)
	}
	if view.User == nil || view.User.FirstName != "John" {
		t.Errorf("expected user detail for John, got %+v", view.User)
	}
	if view.Product == nil || view.Product.Title != "Laptop" {
		t.Errorf("expected product detail for Laptop, got %+v", view.Product)
	}
}

// Reads must not change state: running FindAll twice yields the same
// rows and leaves the store untouched.
func TestFindAllIsIdempotent(t *testing.T) {
	repo := newMockFavouriteRepository()
	seedFavourites(repo)
	users := &stubUserFetcher{users: knownUsers()}
	products := &stubProductFetcher{products: knownProducts()}

	svc := NewFavouriteService(repo, users, products, staticFeatures{true}, testExecutor(), zap.NewNop())
	ctx := context.Background()

	first, err := svc.FindAll(ctx)
	if err != nil {
		t.Fatalf("first FindAll returned error: %v", err)
	}
	second, err := svc.FindAll(ctx)
	if err != nil {
		t.Fatalf("second FindAll returned error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("result size changed between reads: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].UserID != second[i].UserID || first[i].ProductID != second[i].ProductID {
			t.Errorf("row %d changed between reads: %+v vs %+v", i, first[i], second[i])
		}
	}
	if len(repo.favourites) != 2 {
		t.Errorf("read mutated the store, now %d rows", len(repo.favourites))
	}
}

func TestFindAllDegradesToEmptyListOnLocalFailure(t *testing.T) {
	repo := newMockFavouriteRepository()
	repo.failAll = true
	users := &stubUserFetcher{users: knownUsers()}
	products := &stubProductFetcher{products: knownProducts()}

	svc := NewFavouriteService(repo, users, products, staticFeatures{true}, testExecutor(), zap.NewNop())

	views, err := svc.FindAll(context.Background())
	if err != nil {
		t.Fatalf("expected degraded empty list, got error: %v", err)
	}
	if views == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(views) != 0 {
		t.Fatalf("expected empty list, got %d rows", len(views))
	}
}

// Remote failures degrade the affected field only; the local
// identifiers always survive.
func TestFindByIDDegradesOnRemoteFailure(t *testing.T) {
	repo := newMockFavouriteRepository()
	johnLaptop, _ := seedFavourites(repo)
	users := &stubUserFetcher{fail: true}
	products := &stubProductFetcher{fail: true}

	svc := NewFavouriteService(repo, users, products, staticFeatures{true}, testExecutor(), zap.NewNop())

	view, err := svc.FindByID(context.Background(), johnLaptop)
	if err != nil {
		t.Fatalf("remote failure must not surface as error, got: %v", err)
	}
	if view.UserID != 1 || view.ProductID != 10 {
		t.Errorf("identifiers not preserved in degraded view: %+v", view)
	}
	if view.User != nil {
		t.Errorf("expected nil user detail after failed lookup, got %+v", view.User)
	}
	if view.Product != nil {
		t.Errorf("expected nil product detail after failed lookup, got %+v", view.Product)
	}
}

// The two lookups of one row are independent: a failing user service
// must not take down a product detail that succeeded.
func TestEnrichmentIsolatesFieldFailures(t *testing.T) {
	repo := newMockFavouriteRepository()
	johnLaptop, _ := seedFavourites(repo)
	users := &stubUserFetcher{fail: true}
	products := &stubProductFetcher{products: knownProducts()}

	svc := NewFavouriteService(repo, users, products, staticFeatures{true}, testExecutor(), zap.NewNop())

	view, err := svc.FindByID(context.Background(), johnLaptop)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if view.User != nil {
		t.Errorf("expected nil user detail, got %+v", view.User)
	}
	if view.Product == nil || view.Product.Title != "Laptop" {
		t.Errorf("product lookup should have survived the user failure, got %+v", view.Product)
	}
}

func TestFindByIDMissingRowIsAnError(t *testing.T) {
	repo := newMockFavouriteRepository()
	users := &stubUserFetcher{users: knownUsers()}
	products := &stubProductFetcher{products: knownProducts()}

	svc := NewFavouriteService(repo, users, products, staticFeatures{true}, testExecutor(), zap.NewNop())

	missing := domain.FavouriteID{UserID: 99, ProductID: 99, LikeDate: time.Now().UTC()}
	view, err := svc.FindByID(context.Background(), missing)
	if err != repository.ErrFavouriteNotFound {
		t.Fatalf("expected ErrFavouriteNotFound, got %v", err)
	}
	if view != nil {
		t.Errorf("expected nil view for missing row, got %+v", view)
	}
}

// A single failing lookup is attempted exactly MaxAttempts times, then
// given up on. No extra attempts leak past the budget.
func TestRetryBoundPerLookup(t *testing.T) {
	repo := newMockFavouriteRepository()
	johnLaptop, _ := seedFavourites(repo)
	users := &stubUserFetcher{fail: true}
	products := &stubProductFetcher{products: knownProducts()}

	svc := NewFavouriteService(repo, users, products, staticFeatures{true}, testExecutor(), zap.NewNop())

	if _, err := svc.FindByID(context.Background(), johnLaptop); err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}

	if got := users.calls.Load(); got != 3 {
		t.Errorf("expected exactly 3 attempts against the user service, got %d", got)
	}
	if got := products.calls.Load(); got != 1 {
		t.Errorf("expected 1 attempt against the product service, got %d", got)
	}
}

// Lookups run sequentially per row, so total latency grows with the
// number of remote calls.
func TestLookupsRunSequentially(t *testing.T) {
	repo := newMockFavouriteRepository()
	seedFavourites(repo)
	delay := 15 * time.Millisecond
	users := &stubUserFetcher{users: knownUsers(), delay: delay}
	products := &stubProductFetcher{products: knownProducts(), delay: delay}

	svc := NewFavouriteService(repo, users, products, staticFeatures{true}, testExecutor(), zap.NewNop())

	start := time.Now()
	if _, err := svc.FindAll(context.Background()); err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	elapsed := time.Since(start)

	// 2 rows x 2 lookups each, all successful on the first attempt.
	if minimum := 4 * delay; elapsed < minimum {
		t.Errorf("expected sequential latency of at least %v, finished in %v", minimum, elapsed)
	}
}

// With detail fetching toggled off no remote call happens at all and
// the views carry identifier-only placeholders.
func TestToggleOffSkipsRemoteCalls(t *testing.T) {
	repo := newMockFavouriteRepository()
	seedFavourites(repo)
	users := &stubUserFetcher{users: knownUsers()}
	products := &stubProductFetcher{products: knownProducts()}

	svc := NewFavouriteService(repo, users, products, staticFeatures{false}, testExecutor(), zap.NewNop())

	views, err := svc.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}

	if got := users.calls.Load(); got != 0 {
		t.Errorf("expected zero user service calls with the toggle off, got %d", got)
	}
	if got := products.calls.Load(); got != 0 {
		t.Errorf("expected zero product service calls with the toggle off, got %d", got)
	}

	for i, view := range views {
		if view.User == nil || view.User.UserID != view.UserID || view.User.FirstName != "" {
			t.Errorf("row %d: expected identifier-only user placeholder, got %+v", i, view.User)
		}
		if view.Product == nil || view.Product.ProductID != view.ProductID || view.Product.Title != "" {
			t.Errorf("row %d: expected identifier-only product placeholder, got %+v", i, view.Product)
		}
	}
}

// Property: whatever subset of remote lookups fails, FindAll never
// errors, never drops rows and always preserves the identifiers.
func TestSaveStampsMissingLikeDate(t *testing.T) {
	repo := newMockFavouriteRepository()
	users := &stubUserFetcher{users: knownUsers()}
	products := &stubProductFetcher{products: knownProducts()}

	svc := NewFavouriteService(repo, users, products, staticFeatures{true}, testExecutor(), zap.NewNop())

	before := time.Now()
	favourite := &domain.Favourite{UserID: 1, ProductID: 10}
	if err := svc.Save(context.Background(), favourite); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if favourite.LikeDate.IsZero() {
		t.Fatal("expected a zero LikeDate to be stamped with the current time")
	}
	if favourite.LikeDate.Before(before) || favourite.LikeDate.After(time.Now()) {
		t.Errorf("stamped LikeDate %v outside the call window", favourite.LikeDate)
	}

	stored, ok := repo.favourites[favourite.ID()]
	if !ok {
		t.Fatal("expected the favourite to be stored under the stamped key")
	}
	if !stored.LikeDate.Equal(favourite.LikeDate) {
		t.Errorf("stored LikeDate %v differs from stamped %v", stored.LikeDate, favourite.LikeDate)
	}
}

func TestSaveKeepsProvidedLikeDate(t *testing.T) {
	repo := newMockFavouriteRepository()
	users := &stubUserFetcher{users: knownUsers()}
	products := &stubProductFetcher{products: knownProducts()}

	svc := NewFavouriteService(repo, users, products, staticFeatures{true}, testExecutor(), zap.NewNop())

	likeDate := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	favourite := &domain.Favourite{UserID: 2, ProductID: 20, LikeDate: likeDate}
	if err := svc.Save(context.Background(), favourite); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if !favourite.LikeDate.Equal(likeDate) {
		t.Errorf("expected the caller's LikeDate to be kept, got %v", favourite.LikeDate)
	}
}

func TestProperty_EnrichmentNeverLosesRows(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("rows survive any combination of remote failures", prop.ForAll(
		func(userFail, productFail bool, rowCount int) bool {
			repo := newMockFavouriteRepository()
			ctx := context.Background()
			base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			for i := 0; i < rowCount; i++ {
				repo.Save(ctx, &domain.Favourite{
					UserID:    i + 1,
					ProductID: i + 100,
					LikeDate:  base.Add(time.Duration(i) * time.Hour),
				})
			}

			users := &stubUserFetcher{users: map[int]*client.UserDetail{}, fail: userFail}
			products := &stubProductFetcher{products: map[int]*client.ProductDetail{}, fail: productFail}
			for i := 0; i < rowCount; i++ {
				users.users[i+1] = &client.UserDetail{UserID: i + 1, FirstName: "user"}
				products.products[i+100] = &client.ProductDetail{ProductID: i + 100, Title: "product"}
			}

			svc := NewFavouriteService(repo, users, products, staticFeatures{true}, testExecutor(), zap.NewNop())

			views, err := svc.FindAll(ctx)
			if err != nil {
				return false
			}
			if len(views) != rowCount {
				return false
			}
			for i, view := range views {
				if view.UserID != i+1 || view.ProductID != i+100 {
					return false
				}
				if userFail && view.User != nil {
					return false
				}
				if !userFail && view.User == nil {
					return false
				}
				if productFail && view.Product != nil {
					return false
				}
				if !productFail && view.Product == nil {
					return false
				}
			}
			return true
		},
		gen.Bool(),
		gen.Bool(),
		gen.IntRange(0, 5),
	))

	properties.TestingRun(t)
}
