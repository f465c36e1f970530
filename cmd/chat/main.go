package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/alex-galey/cloudpilot/internal/agent"
	"github.com/alex-galey/cloudpilot/internal/llm"
	"github.com/alex-galey/cloudpilot/internal/plan"
	"github.com/alex-galey/cloudpilot/internal/provision"
	"github.com/alex-galey/cloudpilot/internal/shared"
	"github.com/alex-galey/cloudpilot/internal/shared/audit"
	"github.com/alex-galey/cloudpilot/internal/tool"
	"github.com/alex-galey/cloudpilot/pkg/config"
	"github.com/alex-galey/cloudpilot/pkg/logger"
)

// chat is a local REPL against the provisioning agent, bypassing the MCP
// transport. Type "exit" to end the session.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	slogger := logger.NewSlogLogger(cfg, logger.NewRingBuffer(1000))

	client, err := llm.NewClientFromConfig(cfg.LLM, slogger)
	if err != nil {
		log.Fatalf("failed to create text-generation client: %v", err)
	}

	store := provision.NewCredentialStoreFromConfig(cfg)
	provider, err := provision.NewProvider(cfg, store, slogger)
	if err != nil {
		log.Fatalf("failed to create provisioning provider: %v", err)
	}

	registry := provision.NewRegistry(cfg, provider, store, slogger)

	dispatcher := tool.NewDispatcher(registry, audit.NewSlogSink(slogger), cfg.Provisioning.Timeout, slogger)
	controller := agent.NewControllerFromConfig(cfg, client, dispatcher, plan.NewStore(), slogger)

	session := shared.NewSessionContext()
	ctx := shared.WithSessionContext(context.Background(), session)

	fmt.Println("CloudPilot provisioning assistant. Type 'exit' to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			break
		}

		turnCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		reply, err := controller.Turn(turnCtx, session.SessionID, input)
		cancel()
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Println(reply)
	}

	controller.EndSession(session.SessionID)
	fmt.Println("Session ended.")
}
