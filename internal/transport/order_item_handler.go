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

// OrderItemRequest represents the order item create/update payload
type OrderItemRequest struct {
	ProductID       int `json:"productId" validate:"required,gt=0"`
	OrderID         int `json:"orderId" validate:"required,gt=0"`
	OrderedQuantity int `json:"orderedQuantity" validate:"required,gt=0"`
}

// OrderItemHandler handles HTTP requests for shipping order items
type OrderItemHandler struct {
	orderItemService service.OrderItemService
	logger           *zap.Logger
}

// NewOrderItemHandler creates a new OrderItemHandler
func NewOrderItemHandler(orderItemService service.OrderItemService, logger *zap.Logger) *OrderItemHandler {
	return &OrderItemHandler{
		orderItemService: orderItemService,
		logger:           logger,
	}
}

// RegisterRoutes registers all shipping routes. The composite key
// rides in the path as /{orderId}/{productId}.
func (h *OrderItemHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/shippings", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Post("/", h.Save)
		r.Get("/{orderId}/{productId}", h.GetByID)
		r.Delete("/{orderId}/{productId}", h.Delete)
	})
}

func (h *OrderItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.orderItemService.FindAll(r.Context())
	if err != nil {
		h.logger.Error("Failed to list order items", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list order items")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, items)
}

func (h *OrderItemHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderItemID(w, r)
	if !ok {
		return
	}

	item, err := h.orderItemService.FindByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrOrderItemNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "order item not found")
			return
		}
		h.logger.Error("Failed to get order item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get order item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, item)
}

func (h *OrderItemHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req OrderItemRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item := &domain.OrderItem{
		ProductID:       req.ProductID,
		OrderID:         req.OrderID,
		OrderedQuantity: req.OrderedQuantity,
	}

	if err := h.orderItemService.Save(r.Context(), item); err != nil {
		h.logger.Error("Failed to save order item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save order item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, item)
}

func (h *OrderItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderItemID(w, r)
	if !ok {
		return
	}

	if err := h.orderItemService.DeleteByID(r.Context(), id); err != nil {
		if err == repository.ErrOrderItemNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "order item not found")
			return
		}
		h.logger.Error("Failed to delete order item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete order item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "order item deleted"})
}

func parseOrderItemID(w http.ResponseWriter, r *http.Request) (domain.OrderItemID, bool) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "orderId"))
	if err != nil || orderID <= 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return domain.OrderItemID{}, false
	}

	productID, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil || productID <= 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return domain.OrderItemID{}, false
	}

	return domain.OrderItemID{ProductID: productID, OrderID: orderID}, true
}
