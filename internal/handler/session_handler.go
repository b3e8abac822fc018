package handler

import (
	"context"
	"net/http"

	"go-event-hub/internal/auth"
	"go-event-hub/internal/model"

	"github.com/gin-gonic/gin"
)

// SessionStore session.Store 提供的操作
type SessionStore interface {
	Login(ctx context.Context, email, password string) (*model.User, error)
	Signup(ctx context.Context, name, email, password string, role model.Role) (*model.User, error)
	Logout(ctx context.Context) error
	SwitchRole(ctx context.Context) (*model.User, error)
	Current() (*model.User, bool)
}

type SessionHandler struct {
	store  SessionStore
	issuer *auth.TokenIssuer
}

func NewSessionHandler(store SessionStore, issuer *auth.TokenIssuer) *SessionHandler {
	return &SessionHandler{store: store, issuer: issuer}
}

func (h *SessionHandler) RegisterRoutes(r *gin.Engine, authMW *AuthMiddleware) {
	router := r.Group("/api/v1")
	{
		router.GET("session", h.Current)
		router.POST("session/login", h.Login)
		router.POST("session/signup", h.Signup)
		router.DELETE("session", h.Logout)
		router.POST("session/switch-role", authMW.RequireSession(), h.SwitchRole)
	}
}

// LoginRequest 不驗證 email 格式，也不檢查密碼
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role" binding:"required,oneof=organizer user"`
}

type SessionResponse struct {
	Authenticated bool        `json:"authenticated"`
	User          *model.User `json:"user"`
	Token         string      `json:"token,omitempty"`
}

func (h *SessionHandler) Current(c *gin.Context) {
	user, ok := h.store.Current()
	c.JSON(http.StatusOK, SessionResponse{Authenticated: ok, User: user})
}

func (h *SessionHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	user, err := h.store.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err, "Login")
		return
	}
	h.respondWithToken(c, user, http.StatusOK, "Login")
}

func (h *SessionHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	user, err := h.store.Signup(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		handleError(c, err, "Signup")
		return
	}
	h.respondWithToken(c, user, http.StatusCreated, "Signup")
}

func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.store.Logout(c.Request.Context()); err != nil {
		handleError(c, err, "Logout")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) SwitchRole(c *gin.Context) {
	user, err := h.store.SwitchRole(c.Request.Context())
	if err != nil {
		handleError(c, err, "SwitchRole")
		return
	}
	if user == nil {
		// 驗證通過後才被登出的情況
		c.JSON(http.StatusOK, SessionResponse{Authenticated: false})
		return
	}
	h.respondWithToken(c, user, http.StatusOK, "SwitchRole")
}

func (h *SessionHandler) respondWithToken(c *gin.Context, user *model.User, status int, operation string) {
	token, err := h.issuer.Issue(user)
	if err != nil {
		handleError(c, err, operation)
		return
	}
	c.JSON(status, SessionResponse{Authenticated: true, User: user, Token: token})
}
