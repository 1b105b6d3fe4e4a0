package main

import (
	"log"

	_ "fantasy-gateway/docs"
	"fantasy-gateway/internal/app"
)

// @title Fantasy Gateway API
// @version 1.0
// @description Caching, rate-limited gateway over a fantasy sports provider API.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token from /api/auth/token, sent as: Bearer <token>

// @BasePath /
func main() {
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
