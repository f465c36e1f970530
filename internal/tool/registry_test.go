//go:build !integration

package tool_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alex-galey/cloudpilot/internal/tool"
)

func noopExecutor(ctx context.Context, params map[string]interface{}) tool.Result {
	return tool.Result{Success: true}
}

var _ = Describe("Registry", func() {
	var registry *tool.Registry

	BeforeEach(func() {
		registry = tool.NewRegistry()
	})

	Context("registration", func() {
		It("should register and retrieve a tool", func() {
			err := registry.Register(tool.Definition{
				Name:     "deploy-compute-instance",
				Executor: noopExecutor,
			})
			Expect(err).NotTo(HaveOccurred())

			def, ok := registry.Get("deploy-compute-instance")
			Expect(ok).To(BeTrue())
			Expect(def.Name).To(Equal("deploy-compute-instance"))
		})

		It("should reject duplicate names", func() {
			def := tool.Definition{Name: "estimate-cost", Executor: noopExecutor}
			Expect(registry.Register(def)).To(Succeed())

			err := registry.Register(def)
			Expect(err).To(MatchError(tool.ErrToolAlreadyRegistered))
		})

		It("should reject definitions without a name", func() {
			err := registry.Register(tool.Definition{Executor: noopExecutor})
			Expect(err).To(MatchError(tool.ErrInvalidTool))
		})

		It("should reject definitions without an executor", func() {
			err := registry.Register(tool.Definition{Name: "broken"})
			Expect(err).To(MatchError(tool.ErrInvalidTool))
		})

		It("should panic when a static table entry is registered twice", func() {
			def := tool.Definition{Name: "estimate-cost", Executor: noopExecutor}
			registry.MustRegister(def)

			Expect(func() { registry.MustRegister(def) }).To(Panic())
		})
	})

	Context("enumeration", func() {
		It("should list names in sorted order", func() {
			Expect(registry.Register(tool.Definition{Name: "b-tool", Executor: noopExecutor})).To(Succeed())
			Expect(registry.Register(tool.Definition{Name: "a-tool", Executor: noopExecutor})).To(Succeed())

			Expect(registry.Names()).To(Equal([]string{"a-tool", "b-tool"}))
			Expect(registry.Count()).To(Equal(2))
		})
	})
})
