//go:build !integration

package server_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/alex-galey/cloudpilot/internal/server"
)

func envelopeText(result *mcp.CallToolResult) string {
	Expect(result.Content).To(HaveLen(1))
	content, ok := result.Content[0].(mcp.TextContent)
	Expect(ok).To(BeTrue())
	return content.Text
}

var _ = Describe("ToolResponse envelope", func() {
	It("should mark success responses ok", func() {
		result := server.OK("deployed", map[string]any{"session_id": "s1"})

		Expect(result.IsError).To(BeFalse())

		var resp server.ToolResponse
		Expect(json.Unmarshal([]byte(envelopeText(result)), &resp)).To(Succeed())
		Expect(resp.Status).To(Equal(server.ToolStatusOK))
		Expect(resp.Message).To(Equal("deployed"))
	})

	It("should mark error responses and carry the code and hint", func() {
		result := server.Error("invalid_arguments", "message is required", "Provide a message")

		Expect(result.IsError).To(BeTrue())

		var resp server.ToolResponse
		Expect(json.Unmarshal([]byte(envelopeText(result)), &resp)).To(Succeed())
		Expect(resp.Status).To(Equal(server.ToolStatusError))
		Expect(resp.Code).To(Equal("invalid_arguments"))
		Expect(resp.Hint).To(Equal("Provide a message"))
	})
})
