package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/tpforum/internal/common"
	"github.com/dmitrijs2005/tpforum/internal/logging"
	"github.com/dmitrijs2005/tpforum/internal/server/models"
	"github.com/dmitrijs2005/tpforum/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserService struct {
	registerRes *services.AuthResult
	registerErr error
	loginRes    *services.AuthResult
	loginErr    error
	sessionUser *models.User
	sessionErr  error

	calls    []string
	gotArgs  []string
	gotToken string
}

func (f *fakeUserService) Register(_ context.Context, username, email, password string) (*services.AuthResult, error) {
	f.calls = append(f.calls, "register")
	f.gotArgs = []string{username, email, password}
	return f.registerRes, f.registerErr
}

func (f *fakeUserService) Login(_ context.Context, login, password string) (*services.AuthResult, error) {
	f.calls = append(f.calls, "login")
	f.gotArgs = []string{login, password}
	return f.loginRes, f.loginErr
}

func (f *fakeUserService) Session(_ context.Context, token string) (*models.User, error) {
	f.calls = append(f.calls, "session")
	f.gotToken = token
	return f.sessionUser, f.sessionErr
}

var created = time.Date(2025, 11, 6, 10, 0, 0, 0, time.UTC)

func aliceResult(msg string) *services.AuthResult {
	return &services.AuthResult{
		User:         &models.User{ID: 1, Username: "alice", Email: "alice@example.com", CreatedAt: created},
		SessionToken: "T1",
		Message:      msg,
	}
}

func newTestRouter(us UserService) http.Handler {
	return NewRouter(NewHandler(us, logging.Nop{}), nil)
}

func do(t *testing.T, h http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestAuth_Register(t *testing.T) {
	us := &fakeUserService{registerRes: aliceResult(services.MsgRegistered)}
	h := newTestRouter(us)

	rec := do(t, h, http.MethodPost, "/", `{"action":"register","username":"alice","email":"alice@example.com","password":"secret1"}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, []string{"alice", "alice@example.com", "secret1"}, us.gotArgs)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "T1", body["session_token"])
	assert.Equal(t, services.MsgRegistered, body["message"])

	user := body["user"].(map[string]any)
	assert.Equal(t, float64(1), user["id"])
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Contains(t, user, "avatar_url")
	assert.Nil(t, user["avatar_url"])
	assert.Equal(t, "2025-11-06T10:00:00Z", user["created_at"])
}

func TestAuth_DefaultActionIsRegister(t *testing.T) {
	us := &fakeUserService{registerRes: aliceResult(services.MsgRegistered)}
	h := newTestRouter(us)

	rec := do(t, h, http.MethodPost, "/api/auth", `{"username":"alice","email":"a@b.c","password":"secret1"}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"register"}, us.calls)
}

func TestAuth_EmptyBodyIsRegisterWithMissingFields(t *testing.T) {
	us := &fakeUserService{registerErr: &services.ValidationError{Message: services.MsgAllFieldsRequired}}
	h := newTestRouter(us)

	rec := do(t, h, http.MethodPost, "/", "", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, services.MsgAllFieldsRequired, decodeError(t, rec))
	assert.Equal(t, []string{"", "", ""}, us.gotArgs)
}

func TestAuth_Login(t *testing.T) {
	us := &fakeUserService{loginRes: aliceResult(services.MsgLoggedIn)}
	h := newTestRouter(us)

	rec := do(t, h, http.MethodPost, "/", `{"action":"login","username":"alice@example.com","email":"ignored","password":"secret1"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"alice@example.com", "secret1"}, us.gotArgs)

	var body authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, services.MsgLoggedIn, body.Message)
	assert.Equal(t, "T1", body.SessionToken)
	assert.Equal(t, int64(1), body.User.ID)
}

func TestAuth_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", &services.ValidationError{Message: services.MsgPasswordLength}, http.StatusBadRequest, services.MsgPasswordLength},
		{"conflict", common.ErrorAlreadyExists, http.StatusConflict, services.MsgUserExists},
		{"unauthorized", services.ErrInvalidCredentials, http.StatusUnauthorized, services.MsgInvalidCredentials},
		{"internal", errors.New("db down"), http.StatusInternalServerError, services.MsgInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			us := &fakeUserService{registerErr: tc.err, loginErr: tc.err}
			h := newTestRouter(us)

			for _, action := range []string{"register", "login"} {
				rec := do(t, h, http.MethodPost, "/", `{"action":"`+action+`"}`, nil)
				require.Equal(t, tc.wantStatus, rec.Code, action)
				assert.Equal(t, tc.wantMsg, decodeError(t, rec), action)
			}
		})
	}
}

func TestAuth_UnknownAction(t *testing.T) {
	us := &fakeUserService{}
	h := newTestRouter(us)

	rec := do(t, h, http.MethodPost, "/", `{"action":"delete"}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, services.MsgUnknownAction, decodeError(t, rec))
	assert.Empty(t, us.calls)
}

func TestAuth_MalformedJSON(t *testing.T) {
	us := &fakeUserService{}
	h := newTestRouter(us)

	rec := do(t, h, http.MethodPost, "/", `{"action":`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, services.MsgInvalidRequest, decodeError(t, rec))
	assert.Empty(t, us.calls)
}

func TestAuth_MethodNotAllowed(t *testing.T) {
	h := newTestRouter(&fakeUserService{})

	for _, m := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := do(t, h, m, "/", "", nil)
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code, m)
		assert.Equal(t, services.MsgMethodNotAllowed, decodeError(t, rec), m)
	}
}

func TestNotFound(t *testing.T) {
	h := newTestRouter(&fakeUserService{})

	rec := do(t, h, http.MethodPost, "/nope", "{}", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORS_Preflight(t *testing.T) {
	h := newTestRouter(&fakeUserService{})

	rec := do(t, h, http.MethodOptions, "/", "", http.Header{
		"Origin":                         {"https://forum.example"},
		"Access-Control-Request-Method":  {"POST"},
		"Access-Control-Request-Headers": {"content-type,x-session-token"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestCORS_PreflightRejectsUnlistedHeader(t *testing.T) {
	h := newTestRouter(&fakeUserService{})

	rec := do(t, h, http.MethodOptions, "/", "", http.Header{
		"Origin":                         {"https://forum.example"},
		"Access-Control-Request-Method":  {"POST"},
		"Access-Control-Request-Headers": {"content-type,x-evil"},
	})

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORS_SimpleRequestHeaders(t *testing.T) {
	us := &fakeUserService{loginRes: aliceResult(services.MsgLoggedIn)}
	h := newTestRouter(us)

	rec := do(t, h, http.MethodPost, "/", `{"action":"login","username":"alice","password":"secret1"}`,
		http.Header{"Origin": {"https://forum.example"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSession(t *testing.T) {
	avatar := "https://cdn.example/a.png"
	us := &fakeUserService{sessionUser: &models.User{ID: 1, Username: "alice", AvatarURL: &avatar, CreatedAt: created}}
	h := newTestRouter(us)

	rec := do(t, h, http.MethodGet, "/api/auth/session", "", http.Header{common.SessionTokenHeaderName: {"T1"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "T1", us.gotToken)

	var body sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alice", body.User.Username)
	require.NotNil(t, body.User.AvatarURL)
	assert.Equal(t, avatar, *body.User.AvatarURL)
}

func TestSession_MissingToken(t *testing.T) {
	us := &fakeUserService{}
	h := newTestRouter(us)

	rec := do(t, h, http.MethodGet, "/api/auth/session", "", nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, services.MsgSessionRequired, decodeError(t, rec))
	assert.Empty(t, us.calls)
}

func TestSession_Errors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{common.ErrorUnauthorized, http.StatusUnauthorized},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		us := &fakeUserService{sessionErr: tc.err}
		h := newTestRouter(us)

		rec := do(t, h, http.MethodGet, "/api/auth/session", "", http.Header{common.SessionTokenHeaderName: {"T1"}})
		assert.Equal(t, tc.want, rec.Code)
	}
}

func TestToUserDTO_ZeroCreatedAtOmitted(t *testing.T) {
	dto := toUserDTO(&models.User{ID: 3, Username: "bob"})
	assert.Nil(t, dto.CreatedAt)

	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "created_at")
	assert.Contains(t, string(raw), `"avatar_url":null`)
}
