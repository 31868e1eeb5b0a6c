package main

import (
	"OpsBoard/FiberConfig"
	"OpsBoard/Models"
	"io"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
)

func main() {
	setupLogging()

	Models.Connect()

	if os.Getenv("SEED") == "1" {
		if err := Models.Seed(Models.DB); err != nil {
			log.Println("Seeding failed:", err)
		}
	}

	FiberConfig.FiberConfig()
}

func setupLogging() {
	// Create logs directory if it doesn't exist
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Error creating logs directory: %v\n", err)
		return
	}

	logFile, err := os.OpenFile("logs/application.log",
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Error opening log file: %v\n", err)
		return
	}

	log.SetOutput(io.MultiWriter(os.Stdout, logFile))
	log.SetFlags(log.Ldate | log.Ltime)
}
