package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/jiayiepang-code/lumiere-salon-backend/internal/config"
	appHTTP "github.com/jiayiepang-code/lumiere-salon-backend/internal/handler/http"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/pkg/database"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/pkg/email"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/pkg/jwt"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/pkg/sse"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/repository/postgresql"
	authService "github.com/jiayiepang-code/lumiere-salon-backend/internal/service/auth"
	leaveService "github.com/jiayiepang-code/lumiere-salon-backend/internal/service/leave"
	notificationService "github.com/jiayiepang-code/lumiere-salon-backend/internal/service/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	staffRepo := postgresql.NewStaffRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	staffScheduleRepo := postgresql.NewStaffScheduleRepository(db)
	bookingRepo := postgresql.NewBookingRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	emailSvc, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	hub := sse.NewHub()
	notifSvc := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})
	defer notifSvc.Stop()

	dispatcher := notificationService.NewEmailDispatcher(emailSvc)
	authSvc := authService.NewAuthService(db, staffRepo, jwtSvc, refreshTokenRepo)
	approvalSvc := leaveService.NewApprovalService(
		txManager,
		leaveRequestRepo,
		staffScheduleRepo,
		bookingRepo,
		staffRepo,
		dispatcher,
		notifSvc,
	)

	authHandler := appHTTP.NewAuthHandler(jwtSvc, authSvc)
	leaveHandler := appHTTP.NewLeaveHandler(approvalSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notifSvc, jwtSvc)

	router := appHTTP.NewRouter(jwtSvc, authHandler, leaveHandler, notificationHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
