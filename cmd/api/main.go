package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"resume-services-backend/internal/client"
	"resume-services-backend/internal/config"
	"resume-services-backend/internal/handler"
	"resume-services-backend/internal/logger"
	"resume-services-backend/internal/mailer"
	"resume-services-backend/internal/repository"
	"resume-services-backend/internal/server"
	"resume-services-backend/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)

	db, err := client.InitMysqlClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	paypalClient := client.NewPaypalClient(&cfg.Paypal)
	smtp := mailer.New(cfg.SMTP)

	orderRepo := repository.NewOrderRepository(db)
	intakeRepo := repository.NewIntakeRepository(db)
	draftRepo := repository.NewDraftRepository(db)
	promoRepo := repository.NewPromoCodeRepository(db)
	emailLogRepo := repository.NewEmailLogRepository(db)
	contactRepo := repository.NewContactRepository(db)

	alerter := service.NewFailureAlerter(smtp, cfg.SMTP.AdminEmail, time.Now, log)
	emailService := service.NewEmailService(
		smtp, emailLogRepo, alerter,
		cfg.SiteURL, cfg.SMTP.AdminEmail, cfg.SMTP.ContactEmail,
		log,
	)

	aggregator := service.NewFullScanAggregator(orderRepo, time.Now)
	paymentService := service.NewPaymentService(paypalClient, orderRepo, emailService, aggregator, cfg.BaseURL, log)
	intakeService := service.NewIntakeService(intakeRepo, draftRepo, emailService, log)
	promoService := service.NewPromoService(promoRepo, time.Now)
	reviewService := service.NewReviewService(intakeRepo, emailService, cfg.Review, time.Now, log)
	contactService := service.NewContactService(contactRepo, emailService, log)
	backupService := service.NewBackupService(db, cfg.Backup.Dir, time.Now, log)

	paymentHandler := handler.NewPaymentHandler(paymentService, log)
	intakeHandler := handler.NewIntakeHandler(intakeService)
	contactHandler := handler.NewContactHandler(contactService, promoService)
	adminHandler := handler.NewAdminHandler(paymentService, intakeService, promoService, emailService, contactService, reviewService)
	cronHandler := handler.NewCronHandler(reviewService, backupService, cfg.CronSecret, log)

	srv := server.NewServer(paymentHandler, intakeHandler, contactHandler, adminHandler, cronHandler, cfg.JWTSecret, log)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info().Str("addr", serverAddr).Str("env", cfg.Environment.Name).Msg("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info().Msg("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("HTTP server shutdown error")
	}
}
