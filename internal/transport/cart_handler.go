package transport

import (
	"net/http"
	"strconv"

	"shopmesh/internal/domain"
	"shopmesh/internal/middleware"
	"shopmesh/internal/repository"
	"shopmesh/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CartRequest represents the cart create/update payload
type CartRequest struct {
	UserID int `json:"userId" validate:"required,gt=0"`
}

// CartHandler handles HTTP requests for cart operations
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/carts", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	carts, err := h.cartService.FindAll(r.Context())
	if err != nil {
		h.logger.Error("Failed to list carts", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list carts")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, carts)
}

func (h *CartHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid cart id")
		return
	}

	cart, err := h.cartService.FindByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrCartNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "cart not found")
			return
		}
		h.logger.Error("Failed to get cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CartRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart := &domain.Cart{UserID: req.UserID}

	if err := h.cartService.Create(r.Context(), cart); err != nil {
		h.logger.Error("Failed to create cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, cart)
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid cart id")
		return
	}

	var req CartRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart := &domain.Cart{CartID: id, UserID: req.UserID}

	if err := h.cartService.Update(r.Context(), cart); err != nil {
		if err == repository.ErrCartNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "cart not found")
			return
		}
		h.logger.Error("Failed to update cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid cart id")
		return
	}

	if err := h.cartService.DeleteByID(r.Context(), id); err != nil {
		if err == repository.ErrCartNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "cart not found")
			return
		}
		h.logger.Error("Failed to delete cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "cart deleted"})
}
