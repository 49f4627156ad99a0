package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"jona.app/api-server/internal/http/handler"
	"jona.app/api-server/internal/http/middleware"
	"jona.app/api-server/internal/identity"
	"jona.app/api-server/internal/model"
)

var _ = Describe("AuthHandler", func() {
	var (
		router   *gin.Engine
		provider *mockProvider
		stores   *mockStores
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		provider = &mockProvider{}
		stores = newMockStores()

		sessions := middleware.NewSessionManager(provider, testSecret, false)
		h := handler.NewAuthHandler(sessions, provider, stores)

		router = gin.New()
		router.POST("/api/auth/exchange", h.Exchange)
		router.GET("/api/auth/me", h.Me)
		router.POST("/api/auth/logout", h.Logout)
	})

	exchange := func(code string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{"code": code})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/exchange", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	sessionFor := func(role string) *model.Session {
		return &model.Session{
			AccessToken:  accessTokenFor("u1"),
			RefreshToken: "refresh-1",
			ExpiresAt:    time.Now().Add(time.Hour),
			Principal: model.Principal{
				ID:           "u1",
				Email:        "u1@example.com",
				UserMetadata: model.Metadata{Role: role},
			},
		}
	}

	Describe("Exchange", func() {
		It("sets both session cookies on success", func() {
			provider.exchangeCodeFn = func(_ context.Context, code string) (*model.Session, error) {
				Expect(code).To(Equal("good-code"))
				return sessionFor("user"), nil
			}

			w := exchange("good-code")

			Expect(w.Code).To(Equal(http.StatusOK))
			names := map[string]bool{}
			for _, c := range w.Result().Cookies() {
				names[c.Name] = true
			}
			Expect(names).To(HaveKey("sb-access-token"))
			Expect(names).To(HaveKey("sb-refresh-token"))
		})

		It("routes admins to the admin dashboard", func() {
			provider.exchangeCodeFn = func(_ context.Context, _ string) (*model.Session, error) {
				return sessionFor("admin"), nil
			}

			w := exchange("good-code")

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["redirect"]).To(Equal("/admin/dashboard"))
		})

		It("routes plain users to the personal dashboard", func() {
			provider.exchangeCodeFn = func(_ context.Context, _ string) (*model.Session, error) {
				return sessionFor("user"), nil
			}

			w := exchange("good-code")

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["redirect"]).To(Equal("/dashboard"))
		})

		It("routes org members to their slug-scoped dashboard", func() {
			orgID := int64(42)
			stores.users.getByIDFn = func(_ context.Context, _ string) (*model.User, error) {
				return &model.User{ID: "u1", CurrentOrganizationID: &orgID}, nil
			}
			stores.organizations.getByIDFn = func(_ context.Context, id int64) (*model.Organization, error) {
				Expect(id).To(Equal(orgID))
				return &model.Organization{ID: id, Slug: "acme"}, nil
			}
			provider.exchangeCodeFn = func(_ context.Context, _ string) (*model.Session, error) {
				return sessionFor("manager"), nil
			}

			w := exchange("good-code")

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["redirect"]).To(Equal("/org/manager/acme/dashboard"))
		})

		It("returns 400 for an invalid code", func() {
			provider.exchangeCodeFn = func(_ context.Context, _ string) (*model.Session, error) {
				return nil, identity.ErrInvalidCode
			}

			Expect(exchange("bad-code").Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 when the code is missing", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/exchange", bytes.NewBufferString(`{}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Me", func() {
		It("returns 401 without a session", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("returns the resolved role for the session", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			req.AddCookie(&http.Cookie{Name: "sb-access-token", Value: accessTokenFor("u1")})
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"role":"user"`))
		})
	})

	Describe("Logout", func() {
		It("clears both cookies", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
			req.AddCookie(&http.Cookie{Name: "sb-access-token", Value: accessTokenFor("u1")})
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			cleared := 0
			for _, c := range w.Result().Cookies() {
				if c.MaxAge < 0 && (c.Name == "sb-access-token" || c.Name == "sb-refresh-token") {
					cleared++
				}
			}
			Expect(cleared).To(Equal(2))
		})
	})
})
