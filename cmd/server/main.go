// Package main is the entry point for the employee GraphQL API server.
//
// Its job is only to read configuration, build the logger, and hand off to
// internal/server — all actual logic lives in imported packages.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sakif/employee-graphql/internal/auth"
	"github.com/sakif/employee-graphql/internal/server"
)

func main() {
	// .env is a development convenience; in production the variables come
	// from the real environment and the file is simply absent.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	port := 3000
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// The signing secret has no sane default — a guessable secret means
	// anyone can mint valid session tokens. Missing secret is fatal.
	secret := os.Getenv("SECRET")
	if secret == "" {
		logger.Error("SECRET not set — refusing to start without a token signing secret")
		os.Exit(1)
	}

	bcryptCost := auth.DefaultCost
	if costStr := os.Getenv("BCRYPT_COST"); costStr != "" {
		var err error
		bcryptCost, err = strconv.Atoi(costStr)
		if err != nil {
			logger.Error("invalid BCRYPT_COST value", slog.String("value", costStr))
			os.Exit(1)
		}
	}

	mongoURI, dbName := mongoConfig()

	cfg := server.Config{
		Port:       port,
		MongoURI:   mongoURI,
		DBName:     dbName,
		Secret:     secret,
		BcryptCost: bcryptCost,
	}

	srv, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		// Includes an unreachable database; the process does not start
		// without its store.
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// mongoConfig resolves the connection string and database name.
//
// MONGO_URI wins if set. Otherwise the URI is assembled from the split
// variables (MONGO_USERNAME, MONGO_PASSWORD, MONGO_CLUSTER, MONGO_DBNAME,
// MONGO_OPTIONS) the way hosted-cluster dashboards hand them out. With
// nothing set, it falls back to a local unauthenticated instance.
func mongoConfig() (uri, dbName string) {
	dbName = os.Getenv("MONGO_DBNAME")
	if dbName == "" {
		dbName = "employee_api"
	}

	if uri = os.Getenv("MONGO_URI"); uri != "" {
		return uri, dbName
	}

	username := os.Getenv("MONGO_USERNAME")
	password := os.Getenv("MONGO_PASSWORD")
	cluster := os.Getenv("MONGO_CLUSTER")
	if username != "" && cluster != "" {
		uri = fmt.Sprintf("mongodb+srv://%s:%s@%s/%s", username, password, cluster, dbName)
		if options := os.Getenv("MONGO_OPTIONS"); options != "" {
			uri += "?" + options
		}
		return uri, dbName
	}

	return "mongodb://localhost:27017", dbName
}
