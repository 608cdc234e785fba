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

// PaymentRequest represents the payment create/update payload
type PaymentRequest struct {
	OrderID       int    `json:"orderId" validate:"required,gt=0"`
	IsPayed       bool   `json:"isPayed"`
	PaymentStatus string `json:"paymentStatus" validate:"omitempty,oneof=NOT_STARTED IN_PROGRESS COMPLETED"`
}

// PaymentHandler handles HTTP requests for payment operations
type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// RegisterRoutes registers all payment routes
func (h *PaymentHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/payments", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentService.FindAll(r.Context())
	if err != nil {
		h.logger.Error("Failed to list payments", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list payments")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	payment, err := h.paymentService.FindByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrPaymentNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "payment not found")
			return
		}
		h.logger.Error("Failed to get payment", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get payment")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payment := &domain.Payment{
		OrderID:       req.OrderID,
		IsPayed:       req.IsPayed,
		PaymentStatus: domain.PaymentStatus(req.PaymentStatus),
	}

	if err := h.paymentService.Create(r.Context(), payment); err != nil {
		h.logger.Error("Failed to create payment", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create payment")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, payment)
}

func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	var req PaymentRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payment := &domain.Payment{
		PaymentID:     id,
		OrderID:       req.OrderID,
		IsPayed:       req.IsPayed,
		PaymentStatus: domain.PaymentStatus(req.PaymentStatus),
	}

	if err := h.paymentService.Update(r.Context(), payment); err != nil {
		if err == repository.ErrPaymentNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "payment not found")
			return
		}
		h.logger.Error("Failed to update payment", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update payment")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	if err := h.paymentService.DeleteByID(r.Context(), id); err != nil {
		if err == repository.ErrPaymentNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "payment not found")
			return
		}
		h.logger.Error("Failed to delete payment", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete payment")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "payment deleted"})
}
