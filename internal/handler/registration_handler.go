package handler

import (
	"net/http"

	"go-event-hub/internal/model"
	"go-event-hub/internal/service"
	apperrors "go-event-hub/pkg/app_errors"

	"github.com/gin-gonic/gin"
)

type RegistrationHandler struct {
	events        service.EventService
	registrations service.RegistrationService
}

func NewRegistrationHandler(events service.EventService, registrations service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{events: events, registrations: registrations}
}

func (h *RegistrationHandler) RegisterRoutes(r *gin.Engine, authMW *AuthMiddleware) {
	router := r.Group("/api/v1")
	{
		router.POST("events/:id/registrations", authMW.RequireSession(), RequireRole(model.RoleUser), h.Register)
	}
}

func (h *RegistrationHandler) Register(c *gin.Context) {
	// 表單內容不做驗證；沒有 body 時視為空白表單
	var form model.RegistrationForm
	if c.Request.ContentLength != 0 {
		if err := BindJson(c, &form); err != nil {
			return
		}
	}

	event, err := h.events.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err, "Register")
		return
	}
	// 額滿檢查在呼叫報名流程之前
	if event.IsFullyBooked() {
		handleError(c, apperrors.ErrEventFullyBooked, "Register")
		return
	}

	result, err := h.registrations.Register(c.Request.Context(), event.ID, form)
	if err != nil {
		handleError(c, err, "Register")
		return
	}
	c.JSON(http.StatusCreated, result)
}
