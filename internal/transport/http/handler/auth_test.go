package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ErlanBelekov/jobs-api/internal/domain"
	"github.com/ErlanBelekov/jobs-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/jobs-api/internal/transport/http/middleware"
	"github.com/ErlanBelekov/jobs-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var discard = slog.New(slog.DiscardHandler)

// fakeAuthUsecase implements the unexported authUsecaser interface via method matching.
type fakeAuthUsecase struct {
	register func(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthResult, error)
	login    func(ctx context.Context, email, password string) (*usecase.AuthResult, error)
}

func (f *fakeAuthUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthResult, error) {
	return f.register(ctx, input)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
	return f.login(ctx, email, password)
}

func newAuthEngine(uc *fakeAuthUsecase) *gin.Engine {
	h := handler.NewAuthHandler(uc, discard)

	r := gin.New()
	r.Use(middleware.ErrorHandler(discard))
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body
}

var ada = &domain.User{ID: "u-1", Name: "Ada", Email: "ada@example.com", PasswordHash: "$2a$secret"}

// ---- Register ----

func TestRegister_Returns201WithUserAndToken(t *testing.T) {
	var got usecase.RegisterInput
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error) {
			got = in
			return &usecase.AuthResult{User: ada, Token: "jwt-token"}, nil
		},
	}

	w := postJSON(newAuthEngine(uc), "/auth/register", `{"name":"Ada","email":"ada@example.com","password":"secret123"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if got.Name != "Ada" || got.Email != "ada@example.com" || got.Password != "secret123" {
		t.Errorf("usecase input = %+v", got)
	}
	body := decode(t, w)
	if body["token"] != "jwt-token" {
		t.Errorf("token = %v", body["token"])
	}
	user := body["user"].(map[string]any)
	if user["id"] != "u-1" || user["name"] != "Ada" || user["email"] != "ada@example.com" {
		t.Errorf("user = %v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Error("password hash must not be serialized")
	}
	if strings.Contains(w.Body.String(), "$2a$") {
		t.Error("response leaks the hash")
	}
}

func TestRegister_InvalidJSON_Returns400(t *testing.T) {
	w := postJSON(newAuthEngine(&fakeAuthUsecase{}), "/auth/register", `{bad json}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if msg := decode(t, w)["message"]; msg != "Invalid request body" {
		t.Errorf("message = %v", msg)
	}
}

func TestRegister_UsecaseValidationError_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(context.Context, usecase.RegisterInput) (*usecase.AuthResult, error) {
			return nil, domain.NewValidationError("name must be between 3 and 50 characters")
		},
	}

	w := postJSON(newAuthEngine(uc), "/auth/register", `{"name":"Al","email":"al@example.com","password":"secret123"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if msg := decode(t, w)["message"]; msg != "name must be between 3 and 50 characters" {
		t.Errorf("message = %v", msg)
	}
}

func TestRegister_BindingRejectsBeforeUsecase(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"all missing", `{}`, "Please provide name, email and password"},
		{"name and password missing", `{"email":"ada@example.com"}`, "Please provide name and password"},
		{"password missing", `{"name":"Ada","email":"ada@example.com"}`, "Please provide password"},
		{"not an email", `{"name":"Ada","email":"ada","password":"secret123"}`, "Please provide a valid email"},
		{"email with comment", `{"name":"Ada","email":"ada@example.com (two)","password":"secret123"}`, "Please provide a valid email"},
		{"email with display name", `{"name":"Ada","email":"Ada <ada@example.com>","password":"secret123"}`, "Please provide a valid email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			uc := &fakeAuthUsecase{
				register: func(context.Context, usecase.RegisterInput) (*usecase.AuthResult, error) {
					called = true
					return &usecase.AuthResult{User: ada, Token: "jwt-token"}, nil
				},
			}

			w := postJSON(newAuthEngine(uc), "/auth/register", tc.body)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if msg := decode(t, w)["message"]; msg != tc.want {
				t.Errorf("message = %v, want %q", msg, tc.want)
			}
			if called {
				t.Error("usecase called for a payload binding should reject")
			}
		})
	}
}

func TestRegister_DuplicateEmail_Returns409(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(context.Context, usecase.RegisterInput) (*usecase.AuthResult, error) {
			return nil, domain.ErrEmailTaken
		},
	}

	w := postJSON(newAuthEngine(uc), "/auth/register", `{"name":"Ada","email":"ada@example.com","password":"secret123"}`)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestRegister_UsecaseError_Returns500WithoutDetails(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(context.Context, usecase.RegisterInput) (*usecase.AuthResult, error) {
			return nil, errors.New("create user: dial tcp 10.0.0.5:5432: connection refused")
		},
	}

	w := postJSON(newAuthEngine(uc), "/auth/register", `{"name":"Ada","email":"ada@example.com","password":"secret123"}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "10.0.0.5") {
		t.Errorf("body leaks internals: %s", w.Body.String())
	}
}

// ---- Login ----

func TestLogin_Success_Returns200(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, email, password string) (*usecase.AuthResult, error) {
			if email != "ada@example.com" || password != "secret123" {
				t.Errorf("login(%q, %q)", email, password)
			}
			return &usecase.AuthResult{User: ada, Token: "jwt-token"}, nil
		},
	}

	w := postJSON(newAuthEngine(uc), "/auth/login", `{"email":"ada@example.com","password":"secret123"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if decode(t, w)["token"] != "jwt-token" {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestLogin_InvalidCredentials_Returns401(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(context.Context, string, string) (*usecase.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}

	w := postJSON(newAuthEngine(uc), "/auth/login", `{"email":"ada@example.com","password":"nope"}`)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if msg := decode(t, w)["message"]; msg != "Invalid credentials" {
		t.Errorf("message = %v", msg)
	}
}

func TestLogin_MissingFields_Returns400(t *testing.T) {
	w := postJSON(newAuthEngine(&fakeAuthUsecase{}), "/auth/login", `{"email":""}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if msg := decode(t, w)["message"]; msg != "Please provide email and password" {
		t.Errorf("message = %v", msg)
	}
}

func TestLogin_EmptyBody_Returns400(t *testing.T) {
	w := postJSON(newAuthEngine(&fakeAuthUsecase{}), "/auth/login", ``)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
