package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"jona.app/api-server/internal/http/middleware"
)

var _ = Describe("Guards", func() {
	var (
		router   *gin.Engine
		sessions *middleware.SessionManager
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		sessions = middleware.NewSessionManager(&mockProvider{}, testSecret, false)
		router = gin.New()
	})

	get := func(path, accessToken string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if accessToken != "" {
			req.AddCookie(&http.Cookie{Name: "sb-access-token", Value: accessToken})
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	ok := func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) }

	Describe("RequireSession", func() {
		BeforeEach(func() {
			router.GET("/dashboard", middleware.RequireSession(sessions), ok)
		})

		It("redirects anonymous users to login without a return param", func() {
			w := get("/dashboard", "")
			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/login"))
		})

		It("passes authenticated users through", func() {
			Expect(get("/dashboard", accessTokenFor("u1", "user", "", time.Hour)).Code).To(Equal(http.StatusOK))
		})
	})

	Describe("RequireAdmin", func() {
		BeforeEach(func() {
			router.GET("/admin/dashboard", middleware.RequireAdmin(sessions), ok)
		})

		It("sends anonymous users to login with the admin return path", func() {
			w := get("/admin/dashboard", "")
			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/login?redirect=/admin/dashboard"))
		})

		It("sends non-admins to their own dashboard", func() {
			w := get("/admin/dashboard", accessTokenFor("u1", "user", "", time.Hour))
			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/dashboard"))
		})

		It("admits admins", func() {
			Expect(get("/admin/dashboard", accessTokenFor("u1", "admin", "", time.Hour)).Code).To(Equal(http.StatusOK))
		})
	})

	Describe("RequireOrganization", func() {
		BeforeEach(func() {
			org := router.Group("/org", middleware.RequireOrganization(sessions))
			org.GET("/login", ok)
			org.GET("/member/acme/dashboard", ok)
		})

		It("leaves the org login page reachable when signed out", func() {
			Expect(get("/org/login", "").Code).To(Equal(http.StatusOK))
		})

		It("redirects anonymous users to the org login", func() {
			w := get("/org/member/acme/dashboard", "")
			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/org/login"))
		})

		It("passes members with a session through", func() {
			Expect(get("/org/member/acme/dashboard", accessTokenFor("u1", "member", "", time.Hour)).Code).To(Equal(http.StatusOK))
		})
	})

	Describe("RequireSessionAPI", func() {
		BeforeEach(func() {
			router.GET("/api/org/stats", middleware.RequireSessionAPI(sessions), ok)
		})

		It("returns the 401 envelope instead of redirecting", func() {
			w := get("/api/org/stats", "")
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(w.Body.String()).To(MatchJSON(`{"success":false,"message":"Unauthorized"}`))
		})

		It("passes authenticated callers through", func() {
			Expect(get("/api/org/stats", accessTokenFor("u1", "user", "", time.Hour)).Code).To(Equal(http.StatusOK))
		})
	})
})
