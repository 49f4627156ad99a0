package auth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"jona.app/api-server/internal/auth"
	"jona.app/api-server/internal/model"
)

var _ = Describe("Resolve", func() {
	It("returns the override when one is given", func() {
		p := &model.Principal{
			UserMetadata: model.Metadata{Role: "user"},
			AppMetadata:  model.Metadata{Role: "admin"},
		}
		Expect(auth.Resolve(p, "Manager")).To(Equal("manager"))
	})

	It("prefers user metadata over app metadata", func() {
		// The user-editable bag wins even when the app-controlled bag says
		// admin. This matches the upstream contract exactly; changing the
		// order here would diverge from it.
		p := &model.Principal{
			UserMetadata: model.Metadata{Role: "user"},
			AppMetadata:  model.Metadata{Role: "admin"},
		}
		Expect(auth.Resolve(p, "")).To(Equal("user"))
	})

	It("falls back to app metadata when user metadata has no role", func() {
		p := &model.Principal{
			AppMetadata: model.Metadata{Role: "admin"},
		}
		Expect(auth.Resolve(p, "")).To(Equal("admin"))
	})

	It("defaults to user when neither bag carries a role", func() {
		Expect(auth.Resolve(&model.Principal{}, "")).To(Equal("user"))
	})

	It("defaults to user for a nil principal", func() {
		Expect(auth.Resolve(nil, "")).To(Equal("user"))
	})

	It("lowercases whatever it resolves", func() {
		p := &model.Principal{UserMetadata: model.Metadata{Role: "ADMIN"}}
		Expect(auth.Resolve(p, "")).To(Equal("admin"))
	})

	It("is idempotent on unchanged input", func() {
		p := &model.Principal{
			UserMetadata: model.Metadata{Role: "recruiter"},
			AppMetadata:  model.Metadata{Role: "admin"},
		}
		first := auth.Resolve(p, "")
		second := auth.Resolve(p, "")
		Expect(first).To(Equal(second))
	})
})

var _ = Describe("IsAdmin", func() {
	It("matches only the exact admin string", func() {
		Expect(auth.IsAdmin("admin")).To(BeTrue())
		Expect(auth.IsAdmin("Admin")).To(BeFalse())
		Expect(auth.IsAdmin("administrator")).To(BeFalse())
		Expect(auth.IsAdmin("")).To(BeFalse())
	})
})

var _ = Describe("DashboardPath", func() {
	It("sends platform admins to the admin dashboard", func() {
		Expect(auth.DashboardPath("admin", "")).To(Equal("/admin/dashboard"))
	})

	It("sends users without an org to the personal dashboard", func() {
		Expect(auth.DashboardPath("user", "")).To(Equal("/dashboard"))
	})

	It("routes org roles to their slug-scoped dashboards", func() {
		Expect(auth.DashboardPath("owner", "acme")).To(Equal("/org/admin/acme/dashboard"))
		Expect(auth.DashboardPath("admin", "acme")).To(Equal("/org/admin/acme/dashboard"))
		Expect(auth.DashboardPath("manager", "acme")).To(Equal("/org/manager/acme/dashboard"))
		Expect(auth.DashboardPath("recruiter", "acme")).To(Equal("/org/recruiter/acme/dashboard"))
		Expect(auth.DashboardPath("member", "acme")).To(Equal("/org/member/acme/dashboard"))
		Expect(auth.DashboardPath("user", "acme")).To(Equal("/org/member/acme/dashboard"))
	})

	It("falls back to the generic org dashboard for unknown roles", func() {
		Expect(auth.DashboardPath("wizard", "acme")).To(Equal("/org/acme/dashboard"))
	})
})
