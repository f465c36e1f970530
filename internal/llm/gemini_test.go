//go:build !integration

package llm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"google.golang.org/genai"
)

var _ = Describe("geminiRole", func() {
	It("should map assistant messages to the model role", func() {
		Expect(geminiRole(RoleAssistant)).To(Equal(genai.Role(genai.RoleModel)))
	})

	It("should map user messages to the user role", func() {
		Expect(geminiRole(RoleUser)).To(Equal(genai.Role(genai.RoleUser)))
	})

	It("should treat unknown roles as user input", func() {
		Expect(geminiRole(Role("system"))).To(Equal(genai.Role(genai.RoleUser)))
	})
})
