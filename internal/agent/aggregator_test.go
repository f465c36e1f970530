//go:build !integration

package agent_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alex-galey/cloudpilot/internal/agent"
	"github.com/alex-galey/cloudpilot/internal/directive"
	"github.com/alex-galey/cloudpilot/internal/tool"
)

var _ = Describe("Aggregator", func() {
	var aggregator *agent.Aggregator

	BeforeEach(func() {
		aggregator = agent.NewAggregator()
	})

	It("should let an output directive win over results", func() {
		reply := aggregator.Aggregate("raw text",
			[]directive.Directive{
				{Kind: directive.KindAction, Function: "estimate-cost"},
				{Kind: directive.KindOutput, Text: "Here is your answer."},
			},
			[]tool.Result{
				{FunctionName: "estimate-cost", Success: true, Message: "$8.47/mo"},
			})

		Expect(reply).To(Equal("Here is your answer."))
	})

	It("should number results in dispatch order", func() {
		reply := aggregator.Aggregate("ignored", nil, []tool.Result{
			{FunctionName: "deploy-compute-instance", Success: true, Message: "instance up"},
			{FunctionName: "deploy-managed-database", Success: false, Message: "quota exceeded"},
		})

		Expect(reply).To(ContainSubstring("1. deploy-compute-instance (ok): instance up"))
		Expect(reply).To(ContainSubstring("2. deploy-managed-database (failed): quota exceeded"))
	})

	It("should fall back to the raw text with no results", func() {
		reply := aggregator.Aggregate("  just prose  ", nil, nil)
		Expect(reply).To(Equal("just prose"))
	})
})

var _ = Describe("FallbackReply", func() {
	It("should match deployment intents", func() {
		Expect(agent.FallbackReply("please deploy my app")).To(ContainSubstring("no resources were created"))
	})

	It("should match cost intents", func() {
		Expect(agent.FallbackReply("how much does this cost?")).To(ContainSubstring("cost estimate"))
	})

	It("should have a generic default", func() {
		Expect(agent.FallbackReply("hello there")).To(ContainSubstring("temporarily unable"))
	})
})
