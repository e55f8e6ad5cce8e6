package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"taskflow/internal/api/auth_api"
	"taskflow/internal/api/board_api"
	"taskflow/internal/api/middlewares"
	"taskflow/internal/config"
	"taskflow/internal/database"
	"taskflow/internal/repository/auth_repository"
	"taskflow/internal/repository/board_repository"
	"taskflow/internal/services/auth_services"
	"taskflow/internal/services/board_services"
	"taskflow/internal/services/task_services"
)

func setupCORS(cfg *config.Config, router http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return c.Handler(router)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: no .env file found, reading configuration from environment")
	}
	cfg := config.Load()

	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: database connection failed: %v", err)
	}
	defer db.Close()
	log.Println("INFO: Database connection successful")

	// AUTH
	userRepo := auth_repository.NewUserRepo(db)
	authSvc := auth_services.NewAuthService(userRepo, cfg.JWTSecret)
	authLimiter := middlewares.NewRateLimiter(10, time.Minute)
	authHandler := auth_api.NewAuthHandler(authSvc, authLimiter)

	// BOARDS
	boardRepo := board_repository.NewBoardRepo(db)
	boardService := board_services.NewBoardService(boardRepo)
	boardHandler := board_api.NewBoardHandler(boardService, authSvc)

	// TASKS
	taskRepo := board_repository.NewTaskRepo(db)
	taskService := task_services.NewTaskService(taskRepo, boardRepo)
	taskHandler := board_api.NewTaskHandler(taskService, authSvc)

	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("TaskFlow API is running 🚀"))
	}).Methods("GET")

	authHandler.RegisterRoutes(r)
	boardHandler.BoardRoutes(r)
	taskHandler.TaskRoutes(r)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: setupCORS(cfg, r),
	}

	go func() {
		log.Printf("INFO: Starting HTTP server on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("FATAL: failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("INFO: Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("FATAL: server shutdown failed: %v", err)
	}
	log.Println("INFO: Server stopped")
}
