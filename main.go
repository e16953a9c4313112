package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	authService "casepanel/internal/application/auth"
	"casepanel/internal/delivery/http/handler"
	"casepanel/internal/delivery/http/router"
	"casepanel/internal/delivery/http/session"
	"casepanel/internal/infrastructure/config"
	"casepanel/internal/infrastructure/database"
	"casepanel/internal/infrastructure/repository"
)

func main() {
	// Load configuration (fails fast without a signing secret)
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	codec := authService.NewTokenCodec([]byte(cfg.SessionSecret))
	authSvc := authService.NewService(userRepo, codec, time.Duration(cfg.TokenExpiry)*time.Hour, cfg.BcryptCost)
	cookies := session.NewGateway(cfg.IsProduction())

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authSvc, cookies)
	userHandler := handler.NewUserHandler(userRepo)
	pageHandler := handler.NewPageHandler(authSvc, cookies)

	// Setup routes
	handlers := router.Handlers{
		Auth:  authHandler,
		User:  userHandler,
		Pages: pageHandler,
	}
	srv := router.Setup(handlers, authSvc, codec, cookies, router.Config{
		AllowedOrigins: []string{cfg.FrontendURL},
	})

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	fmt.Println("=================================")
	fmt.Println("      Case Panel Server")
	fmt.Println("=================================")
	fmt.Printf("Server:    http://localhost%s\n", addr)
	fmt.Printf("Database:  %s\n", cfg.DatabasePath)
	fmt.Printf("Mode:      %s\n", cfg.Env)
	fmt.Println("=================================")
	log.Fatal(http.ListenAndServe(addr, srv))
}
