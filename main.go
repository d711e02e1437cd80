package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"taskman/config"
	"taskman/db"
	"taskman/handlers"
	"taskman/services"
)

func main() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Fatalf("Error loading .env file: %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	dbConn := initDB(cfg)
	defer func() {
		if err := dbConn.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}()

	initHandlers(dbConn, cfg)

	server := &http.Server{Addr: ":" + cfg.ServerPort}
	startServer(server, cfg.ServerPort)
}

func initDB(cfg *config.Config) *sql.DB {
	dbConn, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(dbConn, cfg.DatabaseDriver); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	return dbConn
}

func initHandlers(dbConn *sql.DB, cfg *config.Config) *handlers.Handler {
	userRepo := db.NewUserRepository(dbConn)
	taskRepo := db.NewTaskRepository(dbConn)

	handler := &handlers.Handler{
		Users: userRepo,
		Auth:  services.NewAuthService(userRepo, []byte(cfg.JWTSecret), cfg.TokenLifetime),
		Tasks: services.NewTaskService(taskRepo),
		// allow max 10 auth attempts per 15 minutes from the same IP
		RateLimiter: handlers.NewRateLimiter(10, 15*time.Minute),
		Hub:         handlers.NewWSHub(),
		JWTSecret:   []byte(cfg.JWTSecret),
	}

	http.HandleFunc("/signup", handler.SignUp)
	http.HandleFunc("/signin", handler.SignIn)
	http.HandleFunc("/tasks", handler.AuthMiddleware(handler.HandleTasks))
	http.HandleFunc("/tasks/", handler.AuthMiddleware(handler.HandleTaskByID))
	http.HandleFunc("/ws", handler.AuthMiddleware(handler.HandleWebSocket))
	return handler
}

func startServer(server *http.Server, port string) {
	log.Printf("Starting server on :%s", port)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
