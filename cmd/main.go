package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"opalclean-api/api"
	"opalclean-api/res/store"
	"opalclean-api/res/store/postgresql"

	"github.com/joho/godotenv"
	"github.com/rs/xid"
)

var logger = log.New(os.Stdout, "(cmd/main.go)", log.LstdFlags|log.LUTC|log.Llongfile)

func main() {
	// Load .env file in development, falling back to the repo subdirectory
	err := godotenv.Load()
	if err != nil {
		err = godotenv.Load("opalclean-api/.env")
	}
	if err != nil {
		logger.Printf("Note: .env file not found, using system environment variables")
	}

	port := readRequiredEnvVar("PORT")
	environment := readRequiredEnvVar("ENVIRONMENT")

	// Seed the first cleaner if BOOTSTRAP_CLEANER_EMAIL is set, so a fresh
	// deployment has someone to assign bookings to
	if email := os.Getenv("BOOTSTRAP_CLEANER_EMAIL"); email != "" {
		if err := bootstrapCleaner(email); err != nil {
			logger.Printf("Warning: Failed to bootstrap cleaner: %v", err)
		}
	}

	// The whole JSON API hangs off /api/; routing happens inside the handler
	http.HandleFunc("/api/", api.Handler)

	logger.Printf("Starting server on :%s (environment: %s)\n", port, environment)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", port), nil); err != nil {
		logger.Fatalf("Server failed to start: %v", err)
	}
}

func readRequiredEnvVar(name string) string {
	val, ok := os.LookupEnv(name)
	if !ok {
		logger.Fatalf("Env variable not set: %s", name)
	}
	return val
}

func bootstrapCleaner(email string) error {
	dbURL := readRequiredEnvVar("DATABASE_POSTGRES_URL")
	storeInstance, err := postgresql.Connect(dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	firstName := os.Getenv("BOOTSTRAP_CLEANER_FIRST_NAME")
	lastName := os.Getenv("BOOTSTRAP_CLEANER_LAST_NAME")
	if firstName == "" {
		firstName = "Office"
	}
	if lastName == "" {
		lastName = "Team"
	}

	err = storeInstance.Cleaners().Create(context.Background(), &store.Cleaner{
		ID:        fmt.Sprintf("clr_%s", xid.New().String()),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		IsActive:  true,
	})
	if errors.Is(err, store.ErrUniqueViolation) {
		logger.Printf("Cleaner %s already exists, nothing to do", email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create cleaner: %w", err)
	}

	logger.Printf("Successfully created cleaner %s", email)
	return nil
}
