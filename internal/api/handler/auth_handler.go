package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hokkom/session-auth/internal/api/metrics"
	"github.com/hokkom/session-auth/internal/api/middleware"
	"github.com/hokkom/session-auth/internal/core/domain"
	"github.com/hokkom/session-auth/internal/core/ports"
)

// CookieConfig describes the session cookie set on login.
type CookieConfig struct {
	Name   string
	Secure bool
	// MaxAge mirrors the session TTL. Zero issues a browser-session cookie.
	MaxAge time.Duration
}

type AuthHandler struct {
	auth     ports.AuthService
	sessions ports.SessionCoordinator
	cookie   CookieConfig
}

func NewAuthHandler(auth ports.AuthService, sessions ports.SessionCoordinator, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, cookie: cookie}
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signupResponse struct {
	Username string `json:"username"`
}

type loginResponse struct {
	SessionID string `json:"session_id"`
	Username  string `json:"username"`
}

type meResponse struct {
	Username  string     `json:"username"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Signup registers a new identity.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      201   {object}  apiResponse{data=signupResponse}
// @Failure      400   {object}  apiResponse
// @Failure      409   {object}  apiResponse
// @Failure      503   {object}  apiResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return err
	}

	user, err := h.auth.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(resultOf(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return c.JSON(http.StatusCreated, success("signup completed", signupResponse{Username: user.Username}))
}

// Login verifies credentials and opens a session, evicting any previous
// session of the same user.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      200   {object}  apiResponse{data=loginResponse}
// @Failure      400   {object}  apiResponse
// @Failure      401   {object}  apiResponse
// @Failure      503   {object}  apiResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return err
	}

	sess, err := h.sessions.PerformLogin(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(resultOf(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	c.SetCookie(h.sessionCookie(sess.ID))
	return c.JSON(http.StatusOK, success("login succeeded", loginResponse{SessionID: sess.ID, Username: sess.Username}))
}

// Logout ends the presented session. It succeeds even when no session, or an
// unknown one, is presented.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Param        X-Session-ID  header    string  false  "Session id when no cookie is sent"
// @Success      200           {object}  apiResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.PerformLogout(c.Request().Context(), middleware.SessionID(c, h.cookie.Name))
	metrics.LogoutsTotal.Inc()

	c.SetCookie(h.expiredCookie())
	return c.JSON(http.StatusOK, success("logout completed", nil))
}

// Me describes the session making the request.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Param        X-Session-ID  header    string  false  "Session id when no cookie is sent"
// @Success      200           {object}  apiResponse{data=meResponse}
// @Failure      401           {object}  apiResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sess, err := middleware.SessionFrom(c)
	if err != nil {
		return err
	}

	resp := meResponse{Username: sess.Username, CreatedAt: sess.CreatedAt}
	if !sess.ExpiresAt.IsZero() {
		expires := sess.ExpiresAt
		resp.ExpiresAt = &expires
	}
	return c.JSON(http.StatusOK, success("authenticated", resp))
}

func bindCredentials(c echo.Context) (*credentialsRequest, error) {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return nil, fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	return &req, nil
}

func (h *AuthHandler) sessionCookie(id string) *http.Cookie {
	ck := &http.Cookie{
		Name:     h.cookie.Name,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if h.cookie.MaxAge > 0 {
		ck.MaxAge = int(h.cookie.MaxAge.Seconds())
	}
	return ck
}

func (h *AuthHandler) expiredCookie() *http.Cookie {
	ck := h.sessionCookie("")
	ck.MaxAge = -1
	ck.Expires = time.Unix(0, 0)
	return ck
}

// resultOf maps a service error to a metrics result label.
func resultOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return metrics.ResultInvalid
	case errors.Is(err, domain.ErrDuplicateUsername):
		return metrics.ResultDuplicate
	case errors.Is(err, domain.ErrUnknownUser), errors.Is(err, domain.ErrInvalidCredential):
		return metrics.ResultRejected
	case errors.Is(err, domain.ErrDirectoryUnavailable):
		return metrics.ResultUnavailable
	default:
		return metrics.ResultError
	}
}
