/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the tuition calculation engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load reference tables (presets, or JSON config file)
  3. Initialize SQLite history store
  4. Create API handler with dependencies
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite history database path (default: tuition.db)
           Use ":memory:" for an in-memory database
  -keep    History retention: most recent N calculations (default: 200)
  -config  Optional JSON file overriding the reference tables

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the history store
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/tuition.db"

  # Run with custom fee tables
  ./server -config="./config/tables.json"

SEE ALSO:
  - api/server.go: Router configuration
  - factory/config.go: Table config format
  - store/sqlite/sqlite.go: History store implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/tuition-engine/api"
	"github.com/warp/tuition-engine/factory"
	"github.com/warp/tuition-engine/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "tuition.db", "SQLite history database path")
	keep := flag.Int("keep", sqlite.DefaultKeep, "history retention (most recent N calculations)")
	configPath := flag.String("config", "", "optional JSON file overriding the reference tables")
	flag.Parse()

	// Reference tables
	tables := factory.DefaultTables()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatalf("Failed to read config file: %v", err)
		}
		tables, err = factory.ParseConfig(data)
		if err != nil {
			log.Fatalf("Failed to parse config file: %v", err)
		}
	}

	// History store
	store, err := sqlite.New(*dbPath, *keep)
	if err != nil {
		log.Fatalf("Failed to initialize history database: %v", err)
	}
	defer store.Close()

	// Router
	handler := api.NewHandler(tables, store)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Tuition engine listening on http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
