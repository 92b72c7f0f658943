// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/farmflight/farmflight/pkg/bootstrap"
	"github.com/farmflight/farmflight/pkg/logger/log"
)

func main() {
	server, err := bootstrap.NewServer()
	if err != nil {
		log.Errorf("Failed to create server: %v", err)
		os.Exit(1)
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("Received shutdown signal, stopping farmflight...")
		if err := server.Stop(); err != nil {
			log.Errorf("Failed to stop server: %v", err)
		}
	}()

	if err := server.Start(); err != nil {
		log.Errorf("Server failed: %v", err)
		os.Exit(1)
	}
	log.Info("FarmFlight stopped")
}
