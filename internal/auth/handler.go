package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/redmonkez12/user-api/internal/httputil"
	"github.com/redmonkez12/user-api/internal/logging"
)

// Handler contains HTTP handlers for the token endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateTokensRequest is the login request body
type CreateTokensRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenRequest carries a refresh token for PATCH and DELETE /tokens
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AccessTokenResponse is the refresh response body
type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// Create handles login
// @Summary      Create tokens
// @Description  Authenticate with email and password, receive an access and a refresh token
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Param        request body CreateTokensRequest true "Credentials"
// @Success      201 {object} TokenPair
// @Failure      400 {object} httputil.ErrorResponse "Missing email or password"
// @Failure      401 {object} httputil.ErrorResponse "Incorrect email or password"
// @Router       /tokens [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	// An unreadable body is treated the same as missing fields
	var req CreateTokensRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if req.Email == "" {
		httputil.RespondError(w, "Email is required", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		httputil.RespondError(w, "Password is required", http.StatusBadRequest)
		return
	}

	tokens, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("login failed: invalid credentials")
			httputil.RespondError(w, "Incorrect email or password", http.StatusUnauthorized)
			return
		}
		logger.Error("login failed: internal error", "error", err.Error())
		httputil.RespondInternalError(w)
		return
	}

	httputil.RespondJSON(w, tokens, http.StatusCreated)
}

// Refresh handles access token renewal
// @Summary      Refresh access token
// @Description  Exchange a valid, non-revoked refresh token for a new access token
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Refresh token"
// @Success      200 {object} AccessTokenResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing refresh token"
// @Failure      401 {object} httputil.ErrorResponse "Invalid or revoked refresh token"
// @Router       /tokens [patch]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	refreshToken := decodeRefreshToken(r)
	if refreshToken == "" {
		httputil.RespondError(w, "Refresh token required", http.StatusBadRequest)
		return
	}

	accessToken, err := h.service.Refresh(r.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) {
			logger.Warn("token refresh failed: invalid or revoked token")
			httputil.RespondError(w, "Invalid refresh token", http.StatusUnauthorized)
			return
		}
		logger.Error("token refresh failed: internal error", "error", err.Error())
		httputil.RespondInternalError(w)
		return
	}

	httputil.RespondJSON(w, AccessTokenResponse{AccessToken: accessToken}, http.StatusOK)
}

// Delete handles logout
// @Summary      Delete refresh token
// @Description  Revoke a refresh token by deleting its record
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Refresh token"
// @Success      200 {object} map[string]string
// @Failure      400 {object} httputil.ErrorResponse "Missing refresh token"
// @Failure      401 {object} httputil.ErrorResponse "Invalid refresh token"
// @Router       /tokens [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	refreshToken := decodeRefreshToken(r)
	if refreshToken == "" {
		httputil.RespondError(w, "Refresh token required", http.StatusBadRequest)
		return
	}

	if err := h.service.Logout(r.Context(), refreshToken); err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) {
			logger.Warn("logout failed: invalid refresh token")
			httputil.RespondError(w, "Invalid refresh token", http.StatusUnauthorized)
			return
		}
		logger.Error("logout failed: internal error", "error", err.Error())
		httputil.RespondInternalError(w)
		return
	}

	httputil.RespondJSON(w, map[string]string{"message": "Logged out"}, http.StatusOK)
}

func decodeRefreshToken(r *http.Request) string {
	var req RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return ""
	}
	return req.RefreshToken
}
