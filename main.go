package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogapi/config"
	"blogapi/database"
	"blogapi/routes"
	"blogapi/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title Blog API
// @version 1.0
// @description Blog posts and users with author and staff write permissions

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		if _, err := services.NewUserService(db).EnsureStaff(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
			log.Fatal("Failed to bootstrap staff user: ", err)
		}
	}

	hubService := services.NewHubService()
	defer hubService.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      routes.NewRouter(db, cfg, hubService),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		log.Printf("Swagger docs available at: http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
