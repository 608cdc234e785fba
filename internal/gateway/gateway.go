package gateway

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"shopmesh/internal/config"
	"shopmesh/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// route maps an /api path prefix to one upstream service.
type route struct {
	prefix string
	proxy  *httputil.ReverseProxy
}

// Gateway is the single public entry point. It authenticates requests
// and forwards them to the owning service by path prefix.
type Gateway struct {
	routes []route
	router chi.Router
	logger *zap.Logger
}

// publicRoutes do not require a bearer token.
var publicRoutes = map[string]bool{
	"/api/authenticate": true,
}

// New builds a gateway over the configured upstream table.
func New(cfg config.GatewayConfig, jwtSecret string, logger *zap.Logger) (*Gateway, error) {
	g := &Gateway{logger: logger}

	table := []struct {
		prefix string
		host   string
	}{
		{"/api/authenticate", cfg.UserHost},
		{"/api/users", cfg.UserHost},
		{"/api/credentials", cfg.UserHost},
		{"/api/addresses", cfg.UserHost},
		{"/api/products", cfg.ProductHost},
		{"/api/categories", cfg.ProductHost},
		{"/api/carts", cfg.OrderHost},
		{"/api/orders", cfg.OrderHost},
		{"/api/payments", cfg.PaymentHost},
		{"/api/favourites", cfg.FavouriteHost},
		{"/api/shippings", cfg.ShippingHost},
	}

	for _, entry := range table {
		target, err := url.Parse(entry.host)
		if err != nil {
			return nil, err
		}

		proxy := httputil.NewSingleHostReverseProxy(target)
		proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Warn("Upstream unreachable",
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			middleware.RespondWithError(w, http.StatusBadGateway, "upstream service unavailable")
		}

		g.routes = append(g.routes, route{prefix: entry.prefix, proxy: proxy})
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	authMiddleware := middleware.AuthMiddleware(jwtSecret, logger)
	forward := http.HandlerFunc(g.forward)

	router.Handle("/api/*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublic(r) {
			forward.ServeHTTP(w, r)
			return
		}
		authMiddleware(forward).ServeHTTP(w, r)
	}))

	g.router = router
	return g, nil
}

// ServeHTTP implements http.Handler.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.router.ServeHTTP(w, r)
}

func (g *Gateway) forward(w http.ResponseWriter, r *http.Request) {
	for _, rt := range g.routes {
		if r.URL.Path == rt.prefix || strings.HasPrefix(r.URL.Path, rt.prefix+"/") {
			rt.proxy.ServeHTTP(w, r)
			return
		}
	}

	middleware.RespondWithError(w, http.StatusNotFound, "no route for path")
}

func isPublic(r *http.Request) bool {
	if publicRoutes[r.URL.Path] {
		return true
	}
	// Registration is the one unauthenticated write.
	if r.Method == http.MethodPost && r.URL.Path == "/api/users" {
		return true
	}
	return false
}
