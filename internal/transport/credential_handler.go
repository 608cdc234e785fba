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

// CreateCredentialRequest represents the credential creation payload
type CreateCredentialRequest struct {
	UserID   int    `json:"userId" validate:"required,gt=0"`
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=ROLE_USER ROLE_ADMIN"`
}

// UpdateCredentialRequest represents the credential update payload
type UpdateCredentialRequest struct {
	Role                    string `json:"role" validate:"required,oneof=ROLE_USER ROLE_ADMIN"`
	IsEnabled               bool   `json:"isEnabled"`
	IsAccountNonExpired     bool   `json:"isAccountNonExpired"`
	IsAccountNonLocked      bool   `json:"isAccountNonLocked"`
	IsCredentialsNonExpired bool   `json:"isCredentialsNonExpired"`
}

// CredentialHandler handles HTTP requests for credential operations
type CredentialHandler struct {
	credentialService service.CredentialService
	logger            *zap.Logger
}

// NewCredentialHandler creates a new CredentialHandler
func NewCredentialHandler(credentialService service.CredentialService, logger *zap.Logger) *CredentialHandler {
	return &CredentialHandler{
		credentialService: credentialService,
		logger:            logger,
	}
}

// RegisterRoutes registers all credential routes
func (h *CredentialHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/credentials", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Get("/username/{username}", h.GetByUsername)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *CredentialHandler) List(w http.ResponseWriter, r *http.Request) {
	credentials, err := h.credentialService.FindAll(r.Context())
	if err != nil {
		h.logger.Error("Failed to list credentials", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list credentials")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, credentials)
}

func (h *CredentialHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid credential id")
		return
	}

	credential, err := h.credentialService.FindByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrCredentialNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "credential not found")
			return
		}
		h.logger.Error("Failed to get credential", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get credential")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, credential)
}

func (h *CredentialHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "username is required")
		return
	}

	credential, err := h.credentialService.FindByUsername(r.Context(), username)
	if err != nil {
		if err == repository.ErrCredentialNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "credential not found")
			return
		}
		h.logger.Error("Failed to get credential", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get credential")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, credential)
}

func (h *CredentialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCredentialRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	credential := &domain.Credential{
		UserID:   req.UserID,
		Username: req.Username,
		Role:     req.Role,
	}

	if err := h.credentialService.Create(r.Context(), credential, req.Password); err != nil {
		if err == repository.ErrUserAlreadyExists {
			middleware.RespondWithError(w, http.StatusConflict, "username already taken")
			return
		}
		h.logger.Error("Failed to create credential", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create credential")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, credential)
}

func (h *CredentialHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid credential id")
		return
	}

	var req UpdateCredentialRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	existing, err := h.credentialService.FindByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrCredentialNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "credential not found")
			return
		}
		h.logger.Error("Failed to get credential", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update credential")
		return
	}

	existing.Role = req.Role
	existing.IsEnabled = req.IsEnabled
	existing.IsAccountNonExpired = req.IsAccountNonExpired
	existing.IsAccountNonLocked = req.IsAccountNonLocked
	existing.IsCredentialsNonExpired = req.IsCredentialsNonExpired

	if err := h.credentialService.Update(r.Context(), existing); err != nil {
		if err == repository.ErrCredentialNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "credential not found")
			return
		}
		h.logger.Error("Failed to update credential", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update credential")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, existing)
}

func (h *CredentialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid credential id")
		return
	}

	if err := h.credentialService.DeleteByID(r.Context(), id); err != nil {
		if err == repository.ErrCredentialNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "credential not found")
			return
		}
		h.logger.Error("Failed to delete credential", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete credential")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "credential deleted"})
}
