package transport

import (
	"net/http"
	"strconv"
	"time"

	"shopmesh/internal/domain"
	"shopmesh/internal/middleware"
	"shopmesh/internal/repository"
	"shopmesh/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FavouriteRequest represents the favourite creation payload. LikeDate
// is optional; the service stamps the current time when it is zero.
type FavouriteRequest struct {
	UserID    int       `json:"userId" validate:"required,gt=0"`
	ProductID int       `json:"productId" validate:"required,gt=0"`
	LikeDate  time.Time `json:"likeDate"`
}

// FavouriteHandler handles HTTP requests for favourite operations
type FavouriteHandler struct {
	favouriteService service.FavouriteService
	logger           *zap.Logger
}

// NewFavouriteHandler creates a new FavouriteHandler
func NewFavouriteHandler(favouriteService service.FavouriteService, logger *zap.Logger) *FavouriteHandler {
	return &FavouriteHandler{
		favouriteService: favouriteService,
		logger:           logger,
	}
}

// RegisterRoutes registers all favourite routes. The composite key
// rides in the path as /{userId}/{productId}/{likeDate} with likeDate
// in RFC 3339.
func (h *FavouriteHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/favourites", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Post("/", h.Save)
		r.Get("/{userId}/{productId}/{likeDate}", h.GetByID)
		r.Delete("/{userId}/{productId}/{likeDate}", h.Delete)
	})
}

func (h *FavouriteHandler) List(w http.ResponseWriter, r *http.Request) {
	favourites, err := h.favouriteService.FindAll(r.Context())
	if err != nil {
		h.logger.Error("Failed to list favourites", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list favourites")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, favourites)
}

func (h *FavouriteHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseFavouriteID(w, r)
	if !ok {
		return
	}

	favourite, err := h.favouriteService.FindByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrFavouriteNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "favourite not found")
			return
		}
		h.logger.Error("Failed to get favourite", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get favourite")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, favourite)
}

func (h *FavouriteHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req FavouriteRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	favourite := &domain.Favourite{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		LikeDate:  req.LikeDate,
	}

	if err := h.favouriteService.Save(r.Context(), favourite); err != nil {
		h.logger.Error("Failed to save favourite", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save favourite")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, favourite)
}

func (h *FavouriteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseFavouriteID(w, r)
	if !ok {
		return
	}

	if err := h.favouriteService.DeleteByID(r.Context(), id); err != nil {
		if err == repository.ErrFavouriteNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "favourite not found")
			return
		}
		h.logger.Error("Failed to delete favourite", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete favourite")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "favourite deleted"})
}

func parseFavouriteID(w http.ResponseWriter, r *http.Request) (domain.FavouriteID, bool) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil || userID <= 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return domain.FavouriteID{}, false
	}

	productID, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil || productID <= 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return domain.FavouriteID{}, false
	}

	likeDate, err := time.Parse(time.RFC3339, chi.URLParam(r, "likeDate"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid like date, expected RFC 3339")
		return domain.FavouriteID{}, false
	}

	return domain.FavouriteID{UserID: userID, ProductID: productID, LikeDate: likeDate}, true
}
