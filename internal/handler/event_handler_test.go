package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-event-hub/internal/handler"
	"go-event-hub/internal/model"
	"go-event-hub/internal/query"
	apperrors "go-event-hub/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validEventRequest() handler.EventRequest {
	return handler.EventRequest{
		Title:       "Go Meetup",
		Description: "Monthly meetup",
		Date:        "2024-05-10",
		Time:        "18:30",
		Location:    "Taipei",
		Capacity:    80,
		Price:       0,
		Category:    "Networking",
	}
}

func TestEventHandler_List(t *testing.T) {
	t.Run("Success - query params forwarded", func(t *testing.T) {
		env := setupTestRouter(t)
		events := []*model.Event{{ID: "1", Title: "Tech Conference"}}
		env.events.On("List", mock.Anything, query.Params{
			Term:         "tech",
			Category:     "Conference",
			Sort:         query.SortByPrice,
			PriceRange:   query.PriceRange("100+"),
			Availability: model.AvailabilityAlmostFull,
		}).Return(events, nil).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/events?q=tech&category=Conference&sort=price&price=100%2B&availability=almost_full", nil)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp handler.ListEventsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, "Tech Conference", resp.Events[0].Title)
		env.events.AssertExpectations(t)
	})

	t.Run("Success - sort defaults to date", func(t *testing.T) {
		env := setupTestRouter(t)
		env.events.On("List", mock.Anything, query.Params{Sort: query.SortByDate}).Return([]*model.Event{}, nil).Once()

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, createJSONHTTPRequest("GET", "/api/v1/events", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"events":[],"total":0}`, w.Body.String())
		env.events.AssertExpectations(t)
	})

	t.Run("Failed - unknown price range", func(t *testing.T) {
		env := setupTestRouter(t)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, createJSONHTTPRequest("GET", "/api/v1/events?price=cheap", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env.events.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}

func TestEventHandler_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		env := setupTestRouter(t)
		env.events.On("GetByID", mock.Anything, "1").Return(&model.Event{ID: "1", Title: "Tech Conference"}, nil).Once()

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, createJSONHTTPRequest("GET", "/api/v1/events/1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"organizerId"`)
		env.events.AssertExpectations(t)
	})

	t.Run("Failed - ErrEventNotFound", func(t *testing.T) {
		env := setupTestRouter(t)
		env.events.On("GetByID", mock.Anything, "999").Return(nil, apperrors.ErrEventNotFound).Once()

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, createJSONHTTPRequest("GET", "/api/v1/events/999", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		env.events.AssertExpectations(t)
	})
}

func TestEventHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		env := setupTestRouter(t)
		organizer, token := env.signIn(t, "jane", model.RoleOrganizer)

		body := validEventRequest()
		env.events.On("Create", mock.Anything,
			mock.MatchedBy(func(u *model.User) bool { return u.ID == organizer.ID }),
			mock.MatchedBy(func(f model.EventFields) bool { return f.Title == "Go Meetup" && f.Capacity == 80 }),
		).Return(&model.Event{ID: "new", Title: "Go Meetup", OrganizerID: organizer.ID}, nil).Once()

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, withBearer(createJSONHTTPRequest("POST", "/api/v1/events", body), token))

		assert.Equal(t, http.StatusCreated, w.Code)
		env.events.AssertExpectations(t)
	})

	t.Run("Failed - anonymous", func(t *testing.T) {
		env := setupTestRouter(t)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, createJSONHTTPRequest("POST", "/api/v1/events", validEventRequest()))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Failed - attendee role", func(t *testing.T) {
		env := setupTestRouter(t)
		_, token := env.signIn(t, "bob", model.RoleUser)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, withBearer(createJSONHTTPRequest("POST", "/api/v1/events", validEventRequest()), token))

		assert.Equal(t, http.StatusForbidden, w.Code)
		env.events.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - validation", func(t *testing.T) {
		env := setupTestRouter(t)
		_, token := env.signIn(t, "jane", model.RoleOrganizer)

		cases := map[string]func(r *handler.EventRequest){
			"missing title":    func(r *handler.EventRequest) { r.Title = "" },
			"bad date":         func(r *handler.EventRequest) { r.Date = "10/05/2024" },
			"zero capacity":    func(r *handler.EventRequest) { r.Capacity = 0 },
			"negative price":   func(r *handler.EventRequest) { r.Price = -1 },
			"unknown category": func(r *handler.EventRequest) { r.Category = "Party" },
			"unknown status":   func(r *handler.EventRequest) { r.Status = "cancelled" },
		}
		for name, mutate := range cases {
			body := validEventRequest()
			mutate(&body)

			w := httptest.NewRecorder()
			env.router.ServeHTTP(w, withBearer(createJSONHTTPRequest("POST", "/api/v1/events", body), token))
			assert.Equal(t, http.StatusBadRequest, w.Code, name)
		}
		env.events.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - role switched after token issued", func(t *testing.T) {
		env := setupTestRouter(t)
		_, token := env.signIn(t, "jane", model.RoleOrganizer)
		_, err := env.store.SwitchRole(t.Context())
		require.NoError(t, err)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, withBearer(createJSONHTTPRequest("POST", "/api/v1/events", validEventRequest()), token))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestEventHandler_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		env := setupTestRouter(t)
		_, token := env.signIn(t, "jane", model.RoleOrganizer)

		body := validEventRequest()
		body.Status = model.EventStatusOngoing
		env.events.On("Update", mock.Anything, "1", mock.MatchedBy(func(f model.EventFields) bool {
			return f.Status == model.EventStatusOngoing
		})).Return(&model.Event{ID: "1", Status: model.EventStatusOngoing}, nil).Once()

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, withBearer(createJSONHTTPRequest("PUT", "/api/v1/events/1", body), token))

		assert.Equal(t, http.StatusOK, w.Code)
		env.events.AssertExpectations(t)
	})

	t.Run("Failed - ErrEventNotFound", func(t *testing.T) {
		env := setupTestRouter(t)
		_, token := env.signIn(t, "jane", model.RoleOrganizer)
		env.events.On("Update", mock.Anything, "missing", mock.Anything).Return(nil, apperrors.ErrEventNotFound).Once()

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, withBearer(createJSONHTTPRequest("PUT", "/api/v1/events/missing", validEventRequest()), token))

		assert.Equal(t, http.StatusNotFound, w.Code)
		env.events.AssertExpectations(t)
	})
}

func TestEventHandler_Stats(t *testing.T) {
	env := setupTestRouter(t)
	organizer, token := env.signIn(t, "jane", model.RoleOrganizer)
	stats := model.DashboardStats{TotalEvents: 2, TotalRegistrations: 437, Revenue: 116413, AvgRegistrations: 219}
	env.events.On("Stats", mock.Anything, organizer.ID).Return(stats, nil).Once()

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, withBearer(createJSONHTTPRequest("GET", "/api/v1/dashboard/stats", nil), token))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalEvents":2,"totalRegistrations":437,"revenue":116413,"avgRegistrations":219}`, w.Body.String())
	env.events.AssertExpectations(t)
}
