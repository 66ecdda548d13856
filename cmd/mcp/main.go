package main

import (
	"context"
	"log"
	"os"

	"github.com/redcow77/module-5-test/internal/bootstrap"
	"github.com/redcow77/module-5-test/internal/config"
	"github.com/redcow77/module-5-test/internal/pkg/logger"

	"github.com/mark3labs/mcp-go/server"
)

// Serves the workspace tools over stdio for desktop MCP clients. Logs go to
// the log file only since stdout carries the protocol.
func main() {
	log.SetOutput(os.Stderr)

	cfg := config.Load()

	storage, err := bootstrap.NewStorage(cfg)
	if err != nil {
		log.Fatalf("Unable to initialize storage: %v", err)
	}

	container, err := bootstrap.NewContainerWithLogger(storage, cfg, logger.NewIsolatedLogger(cfg.App.LogFilePath))
	if err != nil {
		log.Fatalf("Unable to bootstrap: %v", err)
	}
	defer container.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go container.WebSocketHub.Run(ctx)
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Fatalf("Unable to start consumer: %v", err)
	}

	if err := server.ServeStdio(container.MCPServer); err != nil {
		log.Printf("Server error: %v", err)
	}
}
