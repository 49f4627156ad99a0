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

var _ = Describe("Gate", func() {
	var (
		router   *gin.Engine
		provider *mockProvider
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		provider = &mockProvider{}
		sessions := middleware.NewSessionManager(provider, testSecret, false)

		router = gin.New()
		router.Use(middleware.Gate(sessions))
		ok := func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) }
		router.GET("/login", ok)
		router.GET("/dashboard", ok)
		router.GET("/admin/dashboard", ok)
		router.GET("/api/org/verify-membership", ok)
		router.GET("/api/admin/stats", ok)
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

	It("never gates public paths, with or without a session", func() {
		Expect(get("/login", "").Code).To(Equal(http.StatusOK))
		Expect(get("/login", accessTokenFor("u1", "user", "", time.Hour)).Code).To(Equal(http.StatusOK))
	})

	It("redirects anonymous page requests to login with a return path", func() {
		w := get("/dashboard", "")
		Expect(w.Code).To(Equal(http.StatusFound))
		Expect(w.Header().Get("Location")).To(Equal("/login?redirect=/dashboard"))
	})

	It("treats unknown paths as protected", func() {
		w := get("/totally/unlisted", "")
		Expect(w.Code).To(Equal(http.StatusFound))
		Expect(w.Header().Get("Location")).To(Equal("/login?redirect=/totally/unlisted"))
	})

	It("lets authenticated users through to protected pages", func() {
		w := get("/dashboard", accessTokenFor("u1", "user", "", time.Hour))
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("redirects non-admins away from admin pages", func() {
		w := get("/admin/dashboard", accessTokenFor("u1", "user", "", time.Hour))
		Expect(w.Code).To(Equal(http.StatusFound))
		Expect(w.Header().Get("Location")).To(Equal("/dashboard"))
	})

	It("redirects users whose app metadata says admin but user metadata says user", func() {
		// user_metadata wins the precedence, so this caller is not admin.
		w := get("/admin/dashboard", accessTokenFor("u1", "user", "admin", time.Hour))
		Expect(w.Code).To(Equal(http.StatusFound))
		Expect(w.Header().Get("Location")).To(Equal("/dashboard"))
	})

	It("admits admins to admin pages", func() {
		w := get("/admin/dashboard", accessTokenFor("u1", "admin", "", time.Hour))
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("returns the exact 401 envelope for anonymous API calls", func() {
		w := get("/api/org/verify-membership", "")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Body.String()).To(MatchJSON(`{"success":false,"message":"Unauthorized"}`))
	})

	It("returns 403 for non-admin calls to the admin API", func() {
		w := get("/api/admin/stats", accessTokenFor("u1", "user", "", time.Hour))
		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("lets admins call the admin API", func() {
		w := get("/api/admin/stats", accessTokenFor("u1", "admin", "", time.Hour))
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("treats a forged token as no session", func() {
		forged := accessTokenFor("u1", "admin", "", time.Hour) + "x"
		w := get("/dashboard", forged)
		Expect(w.Code).To(Equal(http.StatusFound))
	})
})
