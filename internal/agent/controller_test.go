//go:build !integration

package agent_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alex-galey/cloudpilot/internal/agent"
	"github.com/alex-galey/cloudpilot/internal/llm"
	"github.com/alex-galey/cloudpilot/internal/plan"
	"github.com/alex-galey/cloudpilot/internal/provision"
	"github.com/alex-galey/cloudpilot/internal/tool"
	llmtesting "github.com/alex-galey/cloudpilot/testing/llm"
)

// createTestLogger creates a quiet logger for testing that discards output
func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// hangingClient blocks until the call context expires, simulating an
// unresponsive text-generation service.
type hangingClient struct{}

func (hangingClient) Generate(ctx context.Context, system string, history []llm.Message) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

var _ = Describe("Controller", func() {
	var (
		client     *llmtesting.MockClient
		simulator  *provision.Simulator
		plans      *plan.Store
		controller *agent.Controller
		ctx        context.Context
	)

	const sessionID = "session-1"

	newControllerWith := func(c llm.Client, llmTimeout time.Duration) *agent.Controller {
		logger := createTestLogger()
		simulator = provision.NewSimulator(logger)
		registry := provision.BuildRegistry(provision.RegistryDeps{
			Provider:    simulator,
			Credentials: provision.NewCredentialStore(provision.Credentials{}),
			Calculator:  nil,
			Formatter:   nil,
			Region:      "us-east-1",
			Logger:      logger,
		})

		dispatcher := tool.NewDispatcher(registry, nil, 0, logger)
		plans = plan.NewStore()
		return agent.NewController(c, dispatcher, plans, 12, llmTimeout, logger)
	}

	newController := func() *agent.Controller {
		return newControllerWith(client, 0)
	}

	BeforeEach(func() {
		ctx = context.Background()
		client = llmtesting.NewMockClient()
		controller = newController()
	})

	Context("proposing and confirming a plan", func() {
		It("should gate resource creation behind confirmation", func() {
			client.Enqueue(`{"type": "plan", "text": "I will deploy a compute instance and a postgres database.", "services": ["compute", "database"]}`)

			reply, err := controller.Turn(ctx, sessionID, "I need a web app with a database")
			Expect(err).NotTo(HaveOccurred())
			Expect(reply).To(ContainSubstring("compute"))
			Expect(reply).To(ContainSubstring("database"))
			Expect(reply).To(ContainSubstring("Reply 'yes' to deploy"))
			Expect(simulator.Resources()).To(BeEmpty())
			Expect(plans.Get(sessionID).State).To(Equal(plan.StateProposed))

			reply, err = controller.Turn(ctx, sessionID, "yes")
			Expect(err).NotTo(HaveOccurred())
			Expect(reply).To(ContainSubstring("1. deploy-compute-instance"))
			Expect(reply).To(ContainSubstring("2. deploy-managed-database"))

			resources := simulator.Resources()
			Expect(resources).To(HaveLen(2))
			Expect(resources[0].Kind).To(Equal("compute"))
			Expect(resources[1].Kind).To(Equal("database"))
			Expect(plans.Get(sessionID).State).To(Equal(plan.StateNoPlan))
		})

		It("should not call the model to execute a confirmation", func() {
			client.Enqueue(`{"type": "plan", "text": "One bucket.", "services": ["storage"]}`)

			_, err := controller.Turn(ctx, sessionID, "I need object storage")
			Expect(err).NotTo(HaveOccurred())
			Expect(client.CallCount()).To(Equal(1))

			_, err = controller.Turn(ctx, sessionID, "go ahead")
			Expect(err).NotTo(HaveOccurred())
			Expect(client.CallCount()).To(Equal(1))
			Expect(simulator.Resources()).To(HaveLen(1))
		})
	})

	Context("declining a plan", func() {
		It("should cancel without creating anything", func() {
			client.Enqueue(`{"type": "plan", "text": "One instance.", "services": ["compute"]}`)

			_, err := controller.Turn(ctx, sessionID, "deploy a web server")
			Expect(err).NotTo(HaveOccurred())

			reply, err := controller.Turn(ctx, sessionID, "no")
			Expect(err).NotTo(HaveOccurred())
			Expect(reply).To(ContainSubstring("cancelled"))
			Expect(simulator.Resources()).To(BeEmpty())
			Expect(plans.Get(sessionID).State).To(Equal(plan.StateNoPlan))
		})
	})

	Context("confirmation without a plan", func() {
		It("should explain there is nothing to confirm, without a model call", func() {
			reply, err := controller.Turn(ctx, sessionID, "yes")
			Expect(err).NotTo(HaveOccurred())
			Expect(reply).To(ContainSubstring("no pending plan"))
			Expect(client.CallCount()).To(BeZero())
		})
	})

	Context("withheld actions", func() {
		It("should fold unconfirmed resource-creating actions into a proposed plan", func() {
			client.Enqueue(`Launching it now.
{"type": "action", "function": "deploy-compute-instance", "name": "web-1", "instanceType": "t3.small"}`)

			reply, err := controller.Turn(ctx, sessionID, "deploy a web server")
			Expect(err).NotTo(HaveOccurred())
			Expect(reply).To(ContainSubstring("Reply 'yes' to deploy"))
			Expect(simulator.Resources()).To(BeEmpty())

			_, err = controller.Turn(ctx, sessionID, "yes")
			Expect(err).NotTo(HaveOccurred())

			resources := simulator.Resources()
			Expect(resources).To(HaveLen(1))
			Expect(resources[0].Kind).To(Equal("compute"))
		})

		It("should remember parameters from withheld actions as session defaults", func() {
			client.Enqueue(`{"type": "action", "function": "deploy-compute-instance", "instanceType": "t3.large", "region": "eu-west-1"}`)

			_, err := controller.Turn(ctx, sessionID, "deploy a big server in europe")
			Expect(err).NotTo(HaveOccurred())

			defaults := plans.GetDefaults(sessionID)
			Expect(defaults.InstanceType).To(Equal("t3.large"))
			Expect(defaults.Region).To(Equal("eu-west-1"))
		})
	})

	Context("prose proposals", func() {
		It("should propose a plan when the reply mentions services without directives", func() {
			client.Enqueue("I suggest deploying an EC2 instance for the app and an S3 bucket for assets.")

			reply, err := controller.Turn(ctx, sessionID, "what would I need for a small web app?")
			Expect(err).NotTo(HaveOccurred())
			Expect(reply).To(ContainSubstring("Proposed deployment plan"))
			Expect(reply).To(ContainSubstring("Reply 'yes' to deploy"))
			Expect(simulator.Resources()).To(BeEmpty())

			pending := plans.Get(sessionID)
			Expect(pending.State).To(Equal(plan.StateProposed))
			Expect(pending.Services).To(Equal([]plan.ServiceKind{plan.ServiceCompute, plan.ServiceStorage}))

			_, err = controller.Turn(ctx, sessionID, "yes")
			Expect(err).NotTo(HaveOccurred())

			resources := simulator.Resources()
			Expect(resources).To(HaveLen(2))
			Expect(resources[0].Kind).To(Equal("compute"))
			Expect(resources[1].Kind).To(Equal("storage"))
		})

		It("should ignore services the reply rules out", func() {
			client.Enqueue("You do not need a database for this. A single EC2 instance is enough.")

			_, err := controller.Turn(ctx, sessionID, "do I need RDS for a static site?")
			Expect(err).NotTo(HaveOccurred())

			pending := plans.Get(sessionID)
			Expect(pending.State).To(Equal(plan.StateProposed))
			Expect(pending.Services).To(Equal([]plan.ServiceKind{plan.ServiceCompute}))
		})
	})

	Context("read-only actions", func() {
		It("should dispatch cost estimation without confirmation", func() {
			client.Enqueue(`{"type": "action", "function": "estimate-cost", "resourceType": "compute", "sizeClass": "t2.micro"}`)

			reply, err := controller.Turn(ctx, sessionID, "how much would a t2.micro cost?")
			Expect(err).NotTo(HaveOccurred())
			Expect(reply).To(ContainSubstring("estimate-cost"))
			Expect(reply).To(ContainSubstring("Estimated monthly cost"))
			Expect(simulator.Resources()).To(BeEmpty())
		})
	})

	Context("output directives", func() {
		It("should return the output text verbatim, suppressing narration", func() {
			client.Enqueue(`Some internal narration the user should not see.
{"type": "output", "text": "You currently have no resources deployed."}`)

			reply, err := controller.Turn(ctx, sessionID, "what do I have running?")
			Expect(err).NotTo(HaveOccurred())
			Expect(reply).To(Equal("You currently have no resources deployed."))
		})

		It("should append the pending proposal after a deliberate final answer", func() {
			client.Enqueue(`{"type": "output", "text": "I can set that up for you."}
{"type": "action", "function": "deploy-object-bucket", "name": "assets"}`)

			reply, err := controller.Turn(ctx, sessionID, "set up a bucket for my assets")
			Expect(err).NotTo(HaveOccurred())
			Expect(reply).To(HavePrefix("I can set that up for you."))
			Expect(reply).To(ContainSubstring("Proposed deployment plan"))
			Expect(simulator.Resources()).To(BeEmpty())
			Expect(plans.Get(sessionID).State).To(Equal(plan.StateProposed))
		})
	})

	Context("plan revisions", func() {
		It("should send non-confirmation replies back to the model", func() {
			client.Enqueue(
				`{"type": "plan", "text": "One instance.", "services": ["compute"]}`,
				`{"type": "plan", "text": "One instance and a bucket.", "services": ["compute", "storage"]}`,
			)

			_, err := controller.Turn(ctx, sessionID, "deploy a web server")
			Expect(err).NotTo(HaveOccurred())

			_, err = controller.Turn(ctx, sessionID, "actually add object storage too")
			Expect(err).NotTo(HaveOccurred())
			Expect(client.CallCount()).To(Equal(2))

			pending := plans.Get(sessionID)
			Expect(pending.State).To(Equal(plan.StateProposed))
			Expect(pending.Services).To(Equal([]plan.ServiceKind{plan.ServiceCompute, plan.ServiceStorage}))
		})
	})

	Context("model failures", func() {
		It("should degrade to a canned reply instead of erroring", func() {
			client = llmtesting.NewFailingClient(errors.New("connection refused"))
			controller = newController()

			reply, err := controller.Turn(ctx, sessionID, "deploy a web server")
			Expect(err).NotTo(HaveOccurred())
			Expect(reply).To(ContainSubstring("no resources were created"))
			Expect(simulator.Resources()).To(BeEmpty())
		})

		It("should bound a hung generation call with the configured timeout", func() {
			controller = newControllerWith(hangingClient{}, 20*time.Millisecond)

			done := make(chan string, 1)
			go func() {
				defer GinkgoRecover()
				reply, err := controller.Turn(ctx, sessionID, "deploy a web server")
				Expect(err).NotTo(HaveOccurred())
				done <- reply
			}()

			Eventually(done, "2s").Should(Receive(ContainSubstring("no resources were created")))
			Expect(simulator.Resources()).To(BeEmpty())
		})
	})

	Context("session lifecycle", func() {
		It("should drop history and pending plans when a session ends", func() {
			client.Enqueue(`{"type": "plan", "text": "One instance.", "services": ["compute"]}`)

			_, err := controller.Turn(ctx, sessionID, "deploy a web server")
			Expect(err).NotTo(HaveOccurred())

			controller.EndSession(sessionID)
			Expect(plans.Get(sessionID).State).To(Equal(plan.StateNoPlan))
		})
	})
})
