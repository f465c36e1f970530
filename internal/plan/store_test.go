//go:build !integration

package plan_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alex-galey/cloudpilot/internal/plan"
)

var _ = Describe("Store", func() {
	var store *plan.Store

	BeforeEach(func() {
		store = plan.NewStore()
	})

	Context("sessions without a plan", func() {
		It("should report no plan", func() {
			pending := store.Get("session-1")
			Expect(pending.State).To(Equal(plan.StateNoPlan))
		})

		It("should refuse confirmation", func() {
			_, ok := store.Confirm("session-1")
			Expect(ok).To(BeFalse())
		})

		It("should refuse cancellation", func() {
			Expect(store.Cancel("session-1")).To(BeFalse())
		})
	})

	Context("proposing a plan", func() {
		It("should move the session to the proposed state", func() {
			store.Propose("session-1", []plan.ServiceKind{plan.ServiceCompute, plan.ServiceDatabase}, "web app with a database")

			pending := store.Get("session-1")
			Expect(pending.State).To(Equal(plan.StateProposed))
			Expect(pending.Services).To(Equal([]plan.ServiceKind{plan.ServiceCompute, plan.ServiceDatabase}))
		})

		It("should ignore an empty service list", func() {
			store.Propose("session-1", nil, "nothing to do")
			Expect(store.Get("session-1").State).To(Equal(plan.StateNoPlan))
		})

		It("should dedupe repeated services while keeping order", func() {
			store.Propose("session-1", []plan.ServiceKind{
				plan.ServiceDatabase, plan.ServiceCompute, plan.ServiceDatabase,
			}, "")

			Expect(store.Get("session-1").Services).To(Equal([]plan.ServiceKind{
				plan.ServiceDatabase, plan.ServiceCompute,
			}))
		})

		It("should replace an earlier proposal", func() {
			store.Propose("session-1", []plan.ServiceKind{plan.ServiceCompute}, "v1")
			store.Propose("session-1", []plan.ServiceKind{plan.ServiceStorage}, "v2")

			pending := store.Get("session-1")
			Expect(pending.Services).To(Equal([]plan.ServiceKind{plan.ServiceStorage}))
			Expect(pending.RawText).To(Equal("v2"))
		})

		It("should isolate sessions from each other", func() {
			store.Propose("session-1", []plan.ServiceKind{plan.ServiceCompute}, "")
			Expect(store.Get("session-2").State).To(Equal(plan.StateNoPlan))
		})
	})

	Context("confirming a plan", func() {
		It("should return the planned services exactly once", func() {
			store.Propose("session-1", []plan.ServiceKind{plan.ServiceCompute}, "")

			services, ok := store.Confirm("session-1")
			Expect(ok).To(BeTrue())
			Expect(services).To(Equal([]plan.ServiceKind{plan.ServiceCompute}))

			_, ok = store.Confirm("session-1")
			Expect(ok).To(BeFalse())
		})
	})

	Context("cancelling a plan", func() {
		It("should drop the proposal and return to no plan", func() {
			store.Propose("session-1", []plan.ServiceKind{plan.ServiceCompute}, "")

			Expect(store.Cancel("session-1")).To(BeTrue())
			Expect(store.Get("session-1").State).To(Equal(plan.StateNoPlan))
		})
	})

	Context("session defaults", func() {
		It("should merge non-empty fields across calls", func() {
			store.RememberDefaults("session-1", plan.Defaults{InstanceType: "t3.small"})
			store.RememberDefaults("session-1", plan.Defaults{Region: "eu-west-1"})

			defaults := store.GetDefaults("session-1")
			Expect(defaults.InstanceType).To(Equal("t3.small"))
			Expect(defaults.Region).To(Equal("eu-west-1"))
		})

		It("should not overwrite with empty values", func() {
			store.RememberDefaults("session-1", plan.Defaults{DBEngine: "postgres"})
			store.RememberDefaults("session-1", plan.Defaults{InstanceType: "t2.micro"})

			Expect(store.GetDefaults("session-1").DBEngine).To(Equal("postgres"))
		})
	})
})
