package main

import (
	"context"
	"net/http"
	"time"

	"fixtrack/backend/internal/api/handler"
	"fixtrack/backend/internal/assignment"
	"fixtrack/backend/internal/config"
	"fixtrack/backend/internal/gateway"
	"fixtrack/backend/internal/models"
	"fixtrack/backend/internal/notify"
	"fixtrack/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Configuration) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Complaint{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Info("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Info("Starting FixTrack Backend...")

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	emitter := notify.NewEmitter(s)
	engine := assignment.NewEngine(s, emitter, cfg.AssignmentCap)

	hub := gateway.NewHub(s)
	go hub.Run()

	if cfg.TelegramBotToken != "" {
		relay, err := notify.NewTelegramRelay(cfg.TelegramBotToken, s)
		if err != nil {
			log.Fatalf("Failed to start Telegram relay: %v", err)
		}
		go relay.Run(s.SubscribeAssignments())
		go relay.ListenForLinks()
	}

	r := gin.Default()
	h := handler.NewHandler(engine, s, hub, []byte(cfg.JWTSecret))

	users := r.Group("/api/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.GET("", h.Protect(), h.AuthorizeRoles(models.RoleAdmin), h.ListUsers)
		users.POST("", h.Protect(), h.AuthorizeRoles(models.RoleAdmin), h.CreateUser)
		users.PUT("/availability", h.Protect(), h.AuthorizeRoles(models.RoleWorker), h.UpdateAvailability)
	}

	complaints := r.Group("/api/complaints", h.Protect())
	{
		complaints.POST("", h.AuthorizeRoles(models.RoleResident), h.SubmitComplaint)
		complaints.GET("", h.AuthorizeRoles(models.RoleAdmin, models.RoleWorker), h.ListComplaints)
		complaints.GET("/mycomplaints", h.MyComplaints)
		complaints.PUT("/:id/status", h.AuthorizeRoles(models.RoleAdmin, models.RoleWorker), h.UpdateStatus)
		complaints.PUT("/:id/assign", h.AuthorizeRoles(models.RoleAdmin), h.AssignComplaint)
		complaints.DELETE("/:id", h.DeleteComplaint)
	}

	r.GET("/ws", h.Protect(), h.ServeWebSocket)

	server := &http.Server{
		Addr:           cfg.Address,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.WithField("address", cfg.Address).Info("HTTP server listening")
	log.Fatal(server.ListenAndServe())
}
