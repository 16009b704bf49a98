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

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/adapters/handler"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/adapters/middleware"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/adapters/realtime"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/adapters/repository"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/adapters/storage"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/config"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/services"
)

const (
	roleStudent      = "student"
	roleAdmin        = "admin"
	rolePrimaryAdmin = "primary_admin"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Authenticated with Redis successfully")

	blobStore, err := storage.NewOSSStore(cfg.OSSEndpoint, cfg.OSSAccessKeyID, cfg.OSSAccessKeySecret)
	if err != nil {
		log.Fatalf("failed to create blob store: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)
	sosRepo := repository.NewSOSRepository(db)

	authService := services.NewAuthService(userRepo, redisClient, cfg.JWTPrivateKey, cfg.SessionTTL)
	studentService := services.NewStudentService(studentRepo)
	complaintService := services.NewComplaintService(complaintRepo, studentRepo, blobStore, cfg.ComplaintBucket, cfg.ResolutionBucket)
	approvalService := services.NewApprovalService(userRepo)
	sosService := services.NewSOSService(sosRepo)

	// Realtime SOS feed: database notify -> listener -> in-process hub -> SSE.
	hub := realtime.NewHub()
	defer hub.Close()
	listener := realtime.NewListener(cfg.DatabaseURL, sosRepo, hub)
	go func() {
		if err := listener.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("sos listener stopped: %v", err)
		}
	}()

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTPublicKey, redisClient)

	authHandler := handler.NewAuthHandler(authService)
	studentHandler := handler.NewStudentHandler(studentService)
	complaintHandler := handler.NewComplaintHandler(complaintService)
	adminHandler := handler.NewAdminHandler(approvalService)
	sosHandler := handler.NewSOSHandler(sosService, authService, hub)
	dashboardHandler := handler.NewDashboardHandler(studentRepo, complaintRepo, sosRepo)
	healthHandler := handler.NewHealthHandler(db, redisClient)
	healthHandler.AddProbe("sos_listener", listener)

	anyRole := []string{roleStudent, roleAdmin, rolePrimaryAdmin}
	adminRoles := []string{roleAdmin, rolePrimaryAdmin}

	mux := http.NewServeMux()

	// Health and metrics endpoints stay outside the auth middleware.
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)
	mux.HandleFunc("GET /health/live", healthHandler.Live)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Identity
	mux.HandleFunc("POST /auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.Handle("POST /auth/logout", authMiddleware.RequireRole(anyRole, authHandler.Logout))
	mux.Handle("GET /auth/session", authMiddleware.RequireRole(anyRole, authHandler.Session))
	mux.Handle("POST /auth/password", authMiddleware.RequireRole(anyRole, authHandler.UpdatePassword))

	// Students
	mux.Handle("POST /students/room", authMiddleware.RequireRole([]string{roleStudent}, studentHandler.RegisterRoom))
	mux.Handle("GET /students/room", authMiddleware.RequireRole([]string{roleStudent}, studentHandler.MyRoom))
	mux.Handle("GET /students", authMiddleware.RequireRole(adminRoles, studentHandler.List))

	// Complaints
	mux.Handle("POST /complaints", authMiddleware.RequireRole([]string{roleStudent}, complaintHandler.File))
	mux.Handle("GET /complaints/mine", authMiddleware.RequireRole([]string{roleStudent}, complaintHandler.ListMine))
	mux.Handle("GET /complaints", authMiddleware.RequireRole(adminRoles, complaintHandler.ListAll))
	mux.Handle("POST /complaints/{id}/resolve", authMiddleware.RequireRole(adminRoles, complaintHandler.Resolve))
	mux.Handle("POST /complaints/{id}/decline", authMiddleware.RequireRole(adminRoles, complaintHandler.Decline))

	// SOS: triggering is never login-gated, the feed is admin-only.
	mux.HandleFunc("POST /sos", sosHandler.Trigger)
	mux.Handle("GET /sos", authMiddleware.RequireRole(adminRoles, sosHandler.List))
	mux.Handle("GET /sos/stream", authMiddleware.RequireRole(adminRoles, sosHandler.Stream))

	// Admin approval workflow
	mux.Handle("GET /admins", authMiddleware.RequireRole(adminRoles, adminHandler.List))
	mux.Handle("POST /admins/{id}/approve", authMiddleware.RequireRole([]string{rolePrimaryAdmin}, adminHandler.Approve))
	mux.Handle("POST /admins/{id}/reject", authMiddleware.RequireRole([]string{rolePrimaryAdmin}, adminHandler.Reject))

	mux.Handle("GET /dashboard/stats", authMiddleware.RequireRole(adminRoles, dashboardHandler.Stats))

	chain := middleware.CORSMiddleware(cfg.AllowedOrigins)(middleware.Metrics(mux))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: chain,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %s\n", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("received signal %v, shutting down...", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
}
