package handler

import (
	"net/http"

	"go-event-hub/internal/model"
	"go-event-hub/internal/query"
	"go-event-hub/internal/service"
	apperrors "go-event-hub/pkg/app_errors"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine, authMW *AuthMiddleware) {
	router := r.Group("/api/v1")
	{
		router.GET("events", h.List)
		router.GET("events/:id", h.GetByID)

		organizer := router.Group("", authMW.RequireSession(), RequireRole(model.RoleOrganizer))
		organizer.POST("events", h.Create)
		organizer.PUT("events/:id", h.Update)
		organizer.GET("dashboard/stats", h.Stats)
	}
}

// EventRequest 建立與編輯共用，編輯時為整筆取代
type EventRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Date        string            `json:"date" binding:"required,datetime=2006-01-02"`
	Time        string            `json:"time"`
	Location    string            `json:"location"`
	Capacity    int               `json:"capacity" binding:"required,min=1"`
	Price       float64           `json:"price" binding:"min=0"`
	Category    string            `json:"category" binding:"required,oneof=Conference Workshop Seminar Networking Exhibition Concert Festival Sports"`
	Image       string            `json:"image"`
	Status      model.EventStatus `json:"status" binding:"omitempty,oneof=upcoming ongoing completed"`
}

func (r EventRequest) fields() model.EventFields {
	return model.EventFields{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Time:        r.Time,
		Location:    r.Location,
		Capacity:    r.Capacity,
		Price:       r.Price,
		Category:    r.Category,
		Image:       r.Image,
		Status:      r.Status,
	}
}

// ListEventsQuery 對應列表頁的搜尋、分類、排序與進階篩選
type ListEventsQuery struct {
	Q            string `form:"q"`
	Category     string `form:"category"`
	Sort         string `form:"sort"`
	Status       string `form:"status" binding:"omitempty,oneof=upcoming ongoing completed"`
	Price        string `form:"price" binding:"omitempty,oneof=free 1-50 51-100 100+"`
	Availability string `form:"availability" binding:"omitempty,oneof=available almost_full full"`
	Organizer    string `form:"organizer"`
}

func (q ListEventsQuery) params() query.Params {
	sortKey := query.SortKey(q.Sort)
	if q.Sort == "" {
		sortKey = query.SortByDate
	}
	return query.Params{
		Term:         q.Q,
		Category:     q.Category,
		Sort:         sortKey,
		OrganizerID:  q.Organizer,
		Status:       model.EventStatus(q.Status),
		PriceRange:   query.PriceRange(q.Price),
		Availability: model.Availability(q.Availability),
	}
}

type ListEventsResponse struct {
	Events []*model.Event `json:"events"`
	Total  int            `json:"total"`
}

func (h *EventHandler) List(c *gin.Context) {
	var q ListEventsQuery
	if err := BindQuery(c, &q); err != nil {
		return
	}
	events, err := h.service.List(c.Request.Context(), q.params())
	if err != nil {
		handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, ListEventsResponse{Events: events, Total: len(events)})
}

func (h *EventHandler) GetByID(c *gin.Context) {
	event, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err, "GetByID")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		handleError(c, apperrors.ErrNotAuthenticated, "currentUser")
		return
	}
	var req EventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	created, err := h.service.Create(c.Request.Context(), user, req.fields())
	if err != nil {
		handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *EventHandler) Update(c *gin.Context) {
	var req EventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), req.fields())
	if err != nil {
		handleError(c, err, "Update")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Stats 目前主辦方自己活動的統計
func (h *EventHandler) Stats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		handleError(c, apperrors.ErrNotAuthenticated, "currentUser")
		return
	}
	stats, err := h.service.Stats(c.Request.Context(), user.ID)
	if err != nil {
		handleError(c, err, "Stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
