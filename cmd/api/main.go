package main

import (
	"os"

	"github.com/nonso/acadport/internal/pkg/logger"
	"github.com/nonso/acadport/internal/server"
)

// @title AcadPort API
// @version 1.0
// @description Student registration and course enrollment backend

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed")
		os.Exit(1)
	}
}
