package main

import (
	"log"
	"os"

	"github.com/rkant062/fitback/config"
	"github.com/rkant062/fitback/routes"
)

func main() {
	config.InitDB()
	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
