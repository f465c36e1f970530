//go:build !integration

package directive_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alex-galey/cloudpilot/internal/directive"
)

var _ = Describe("Parse", func() {
	Context("with a single action directive", func() {
		It("should extract the function and parameters", func() {
			text := `Let me launch that for you.
{"type": "action", "function": "deploy-compute-instance", "name": "web-1", "instanceType": "t2.micro"}`

			dirs := directive.Parse(text)

			Expect(dirs).To(HaveLen(1))
			Expect(dirs[0].Kind).To(Equal(directive.KindAction))
			Expect(dirs[0].Function).To(Equal("deploy-compute-instance"))
			Expect(dirs[0].Params).To(HaveKeyWithValue("name", "web-1"))
			Expect(dirs[0].Params).To(HaveKeyWithValue("instanceType", "t2.micro"))
			Expect(dirs[0].Params).NotTo(HaveKey("type"))
			Expect(dirs[0].Params).NotTo(HaveKey("function"))
		})
	})

	Context("with multiple directives", func() {
		It("should preserve their order of appearance", func() {
			text := `{"type": "plan", "text": "Deploy a web stack", "services": ["compute", "database"]}
Some narration in between.
{"type": "action", "function": "estimate-cost", "resourceType": "compute"}
{"type": "action", "function": "deploy-object-bucket"}
{"type": "output", "text": "All done."}`

			dirs := directive.Parse(text)

			Expect(dirs).To(HaveLen(4))
			Expect(dirs[0].Kind).To(Equal(directive.KindPlan))
			Expect(dirs[1].Kind).To(Equal(directive.KindAction))
			Expect(dirs[1].Function).To(Equal("estimate-cost"))
			Expect(dirs[2].Function).To(Equal("deploy-object-bucket"))
			Expect(dirs[3].Kind).To(Equal(directive.KindOutput))
			Expect(dirs[3].Text).To(Equal("All done."))
		})
	})

	Context("with plan directives", func() {
		It("should carry text, services and resources", func() {
			text := `{"type": "plan", "text": "One instance and a bucket", "services": ["compute", "storage"], "resources": [{"type": "compute", "sizeClass": "t2.micro"}]}`

			dirs := directive.Parse(text)

			Expect(dirs).To(HaveLen(1))
			Expect(dirs[0].Text).To(Equal("One instance and a bucket"))
			Expect(dirs[0].Services).To(Equal([]string{"compute", "storage"}))
			Expect(dirs[0].Resources).To(HaveLen(1))
			Expect(dirs[0].Resources[0]).To(HaveKeyWithValue("sizeClass", "t2.micro"))
		})
	})

	Context("with malformed fragments", func() {
		It("should skip unbalanced braces and keep valid directives", func() {
			text := `{"type": "action", "function": "deploy-function"
{"type": "action", "function": "estimate-cost"}`

			dirs := directive.Parse(text)

			Expect(dirs).To(HaveLen(1))
			Expect(dirs[0].Function).To(Equal("estimate-cost"))
		})

		It("should skip invalid JSON without failing", func() {
			text := `{not json at all} and then {"type": "output", "text": "hi"}`

			dirs := directive.Parse(text)

			Expect(dirs).To(HaveLen(1))
			Expect(dirs[0].Kind).To(Equal(directive.KindOutput))
		})

		It("should skip actions with no function name", func() {
			text := `{"type": "action", "name": "orphan"}`

			Expect(directive.Parse(text)).To(BeEmpty())
		})

		It("should ignore JSON objects without a known type", func() {
			text := `Here is some data: {"region": "us-east-1", "count": 3}`

			Expect(directive.Parse(text)).To(BeEmpty())
		})
	})

	Context("with tricky JSON content", func() {
		It("should handle braces and escapes inside strings", func() {
			text := `{"type": "output", "text": "a \"quoted\" value with } inside"}`

			dirs := directive.Parse(text)

			Expect(dirs).To(HaveLen(1))
			Expect(dirs[0].Text).To(Equal(`a "quoted" value with } inside`))
		})

		It("should handle nested objects in parameters", func() {
			text := `{"type": "action", "function": "attach-policy", "policy": {"effect": "allow", "actions": ["s3:GetObject"]}}`

			dirs := directive.Parse(text)

			Expect(dirs).To(HaveLen(1))
			Expect(dirs[0].Params).To(HaveKey("policy"))
		})
	})

	Context("with plain text", func() {
		It("should return no directives", func() {
			Expect(directive.Parse("Just a friendly explanation, no JSON here.")).To(BeEmpty())
		})

		It("should return no directives for empty input", func() {
			Expect(directive.Parse("")).To(BeEmpty())
		})
	})
})
