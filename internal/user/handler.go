package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/redmonkez12/user-api/internal/auth"
	"github.com/redmonkez12/user-api/internal/httputil"
	"github.com/redmonkez12/user-api/internal/logging"
)

// Handler contains HTTP handlers for the user endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateUserRequest is the registration request body
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Create handles user registration. No authentication required.
// @Summary      Register a user
// @Description  Create a new user with name, email and password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "Registration data"
// @Success      201 {object} User
// @Failure      400 {object} httputil.ErrorResponse "Missing required field"
// @Failure      409 {object} httputil.ErrorResponse "Email already exists"
// @Router       /users [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req CreateUserRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	created, err := h.service.Create(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrNameRequired):
			httputil.RespondError(w, "Name is required", http.StatusBadRequest)
		case errors.Is(err, ErrEmailRequired):
			httputil.RespondError(w, "Email is required", http.StatusBadRequest)
		case errors.Is(err, ErrPasswordRequired):
			httputil.RespondError(w, "Password is required", http.StatusBadRequest)
		case errors.Is(err, ErrDuplicateEmail):
			logger.Warn("registration failed: email already exists")
			httputil.RespondError(w, "A user with that email already exists", http.StatusConflict)
		default:
			logger.Error("registration failed: internal error", "error", err.Error())
			httputil.RespondInternalError(w)
		}
		return
	}

	httputil.RespondJSON(w, created, http.StatusCreated)
}

// List handles listing users. Admin only.
// @Summary      List users
// @Description  List users filtered by creation time, ordered and paginated
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        before query string false "Created strictly before (RFC 3339)"
// @Param        after  query string false "Created strictly after (RFC 3339)"
// @Param        order  query string false "Ordering, currently only nameASC"
// @Param        limit  query int    false "Page size"
// @Param        offset query int    false "Page offset"
// @Success      200 {array} User
// @Failure      400 {object} httputil.ErrorResponse "Missing token or bad query"
// @Failure      401 {object} httputil.ErrorResponse "Invalid token"
// @Failure      403 {object} httputil.ErrorResponse "Not an admin"
// @Router       /users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity, _ := auth.GetIdentityFromContext(r.Context())
	if err := auth.Authorize(identity, auth.OpListUsers, uuid.Nil); err != nil {
		httputil.RespondError(w, "Forbidden", http.StatusForbidden)
		return
	}

	filter, err := parseListFilter(r)
	if err != nil {
		httputil.RespondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	users, err := h.service.List(r.Context(), filter)
	if err != nil {
		logger.Error("failed to list users", "error", err.Error())
		httputil.RespondInternalError(w)
		return
	}

	httputil.RespondJSON(w, users, http.StatusOK)
}

// Get handles reading a single user. Self or admin.
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200 {object} User
// @Failure      400 {object} httputil.ErrorResponse "Missing token"
// @Failure      401 {object} httputil.ErrorResponse "Invalid token"
// @Failure      403 {object} httputil.ErrorResponse "Not self and not admin"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /users/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity, _ := auth.GetIdentityFromContext(r.Context())
	targetID := targetUserID(r)

	if err := auth.Authorize(identity, auth.OpReadUser, targetID); err != nil {
		httputil.RespondError(w, "Forbidden", http.StatusForbidden)
		return
	}

	u, err := h.service.Get(r.Context(), targetID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "User not found", http.StatusNotFound)
			return
		}
		logger.Error("failed to get user", "error", err.Error())
		httputil.RespondInternalError(w)
		return
	}

	httputil.RespondJSON(w, u, http.StatusOK)
}

// Update handles patching a user. Self or admin; only the name is mutable.
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        request body UpdatePatch true "Fields to update"
// @Success      200 {object} User
// @Failure      400 {object} httputil.ErrorResponse "Missing token"
// @Failure      401 {object} httputil.ErrorResponse "Invalid token"
// @Failure      403 {object} httputil.ErrorResponse "Not self and not admin"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /users/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity, _ := auth.GetIdentityFromContext(r.Context())
	targetID := targetUserID(r)

	if err := auth.Authorize(identity, auth.OpUpdateUser, targetID); err != nil {
		httputil.RespondError(w, "Forbidden", http.StatusForbidden)
		return
	}

	var patch UpdatePatch
	_ = json.NewDecoder(r.Body).Decode(&patch)

	updated, err := h.service.Update(r.Context(), targetID, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "User not found", http.StatusNotFound)
			return
		}
		logger.Error("failed to update user", "error", err.Error())
		httputil.RespondInternalError(w)
		return
	}

	httputil.RespondJSON(w, updated, http.StatusOK)
}

// Delete handles removing a user. Self or admin.
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200 {object} map[string]string
// @Failure      400 {object} httputil.ErrorResponse "Missing token"
// @Failure      401 {object} httputil.ErrorResponse "Invalid token"
// @Failure      403 {object} httputil.ErrorResponse "Not self and not admin"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /users/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity, _ := auth.GetIdentityFromContext(r.Context())
	targetID := targetUserID(r)

	if err := auth.Authorize(identity, auth.OpDeleteUser, targetID); err != nil {
		httputil.RespondError(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := h.service.Delete(r.Context(), targetID); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "User not found", http.StatusNotFound)
			return
		}
		logger.Error("failed to delete user", "error", err.Error())
		httputil.RespondInternalError(w)
		return
	}

	httputil.RespondJSON(w, map[string]string{"message": "User deleted"}, http.StatusOK)
}

// targetUserID parses the id path parameter. An unparsable id can never
// match an authenticated identity, so uuid.Nil keeps the authorization
// check meaningful and the lookup ends in 404 for admins.
func targetUserID(r *http.Request) uuid.UUID {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	var filter ListFilter
	q := r.URL.Query()

	if v := q.Get("before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errors.New("Invalid before parameter")
		}
		filter.Before = &t
	}
	if v := q.Get("after"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errors.New("Invalid after parameter")
		}
		filter.After = &t
	}

	filter.Order = q.Get("order")

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, errors.New("Invalid limit parameter")
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, errors.New("Invalid offset parameter")
		}
		filter.Offset = n
	}

	return filter, nil
}
