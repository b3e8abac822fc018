package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"go-event-hub/internal/auth"
	"go-event-hub/internal/cache"
	"go-event-hub/internal/handler"
	"go-event-hub/internal/model"
	"go-event-hub/internal/service/mocks"
	"go-event-hub/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var (
	InvalidJSON = `{"invalid": json}`
)

// create JSON request body
func createJSONRequest(data interface{}) *bytes.Buffer {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

// create HTTP request with JSON body
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	req, err := http.NewRequest(method, url, createJSONRequest(data))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func createRawHTTPRequest(method, url, body string) *http.Request {
	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// testEnv 真實的 session store 與 token，service 使用 mock
type testEnv struct {
	router        *gin.Engine
	store         *session.Store
	issuer        *auth.TokenIssuer
	events        *mocks.EventServiceMock
	registrations *mocks.RegistrationServiceMock
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewStore(cache.NewMemoryKeyValueStore(), session.Options{Delay: 0})
	issuer := auth.NewTokenIssuer("test-secret")
	events := mocks.NewEventServiceMock()
	registrations := mocks.NewRegistrationServiceMock()

	router := handler.NewRouter(handler.RouterDeps{
		Session:        handler.NewSessionHandler(store, issuer),
		Events:         handler.NewEventHandler(events),
		Registrations:  handler.NewRegistrationHandler(events, registrations),
		Auth:           handler.NewAuthMiddleware(store, issuer),
		AllowedOrigins: []string{"http://localhost:5173"},
	})

	return &testEnv{
		router:        router,
		store:         store,
		issuer:        issuer,
		events:        events,
		registrations: registrations,
	}
}

// signIn 直接在 store 建立身分並簽發 token
func (e *testEnv) signIn(t *testing.T, name string, role model.Role) (*model.User, string) {
	t.Helper()
	user, err := e.store.Signup(context.Background(), name, name+"@example.com", "pw", role)
	require.NoError(t, err)
	token, err := e.issuer.Issue(user)
	require.NoError(t, err)
	return user, token
}
