package server

import (
	"context"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"resume-services-backend/internal/handler"
	"resume-services-backend/internal/middleware"
)

type Server struct {
	echo           *echo.Echo
	paymentHandler *handler.PaymentHandler
	intakeHandler  *handler.IntakeHandler
	contactHandler *handler.ContactHandler
	adminHandler   *handler.AdminHandler
	cronHandler    *handler.CronHandler
	jwtSecret      string
}

func NewServer(
	paymentHandler *handler.PaymentHandler,
	intakeHandler *handler.IntakeHandler,
	contactHandler *handler.ContactHandler,
	adminHandler *handler.AdminHandler,
	cronHandler *handler.CronHandler,
	jwtSecret string,
	log zerolog.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(requestLogger(log))

	s := &Server{
		echo:           e,
		paymentHandler: paymentHandler,
		intakeHandler:  intakeHandler,
		contactHandler: contactHandler,
		adminHandler:   adminHandler,
		cronHandler:    cronHandler,
		jwtSecret:      jwtSecret,
	}

	s.setupRoutes()
	return s
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRequestID: true,
		LogLatency:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Str("request_id", v.RequestID).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api", middleware.GeneralRateLimit())

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- payment --------
	payment := api.Group("/payment", middleware.PaymentRateLimit())
	payment.POST("/orders", s.paymentHandler.CreateOrder)
	payment.POST("/orders/:id/capture", s.paymentHandler.CaptureOrder)
	payment.GET("/orders/:id", s.paymentHandler.GetOrder)

	// Webhook signature is the auth; no rate limit so PayPal is never throttled.
	api.POST("/paypal/webhook", s.paymentHandler.PaypalWebhook)

	// -------- intake --------
	intake := api.Group("/intake")
	intake.POST("", s.intakeHandler.SubmitIntake)
	intake.POST("/drafts", s.intakeHandler.SaveDraft)
	intake.GET("/drafts/:token", s.intakeHandler.GetDraft)
	intake.POST("/drafts/complete", s.intakeHandler.CompleteDraft)
	intake.POST("/resume-later", s.intakeHandler.ResumeLater, middleware.FormRateLimit())

	// -------- public forms --------
	api.POST("/promo-codes/validate", s.contactHandler.ValidatePromoCode)
	api.POST("/contact", s.contactHandler.SubmitContactForm, middleware.FormRateLimit())
	api.POST("/lead-magnet", s.contactHandler.CaptureLeadMagnet, middleware.FormRateLimit())

	// -------- admin --------
	admin := api.Group("/admin", middleware.AdminAuth(s.jwtSecret))
	admin.GET("/orders", s.adminHandler.ListOrders)
	admin.GET("/orders/recent", s.adminHandler.RecentOrders)
	admin.GET("/orders/statistics", s.adminHandler.OrderStatistics)
	admin.PATCH("/orders/:id/status", s.adminHandler.UpdateOrderStatus)
	admin.PATCH("/orders/:id/customer", s.adminHandler.UpdateOrderCustomer)
	admin.DELETE("/orders/:id", s.adminHandler.DeleteOrder)

	admin.GET("/intakes", s.adminHandler.ListIntakes)
	admin.GET("/intakes/:id", s.adminHandler.GetIntake)
	admin.PATCH("/intakes/:id/status", s.adminHandler.UpdateIntakeStatus)
	admin.POST("/intakes/:id/review-request", s.adminHandler.SendReviewRequest)
	admin.GET("/drafts/incomplete", s.adminHandler.ListIncompleteDrafts)

	admin.POST("/promo-codes", s.adminHandler.CreatePromoCode)
	admin.GET("/promo-codes", s.adminHandler.ListPromoCodes)
	admin.GET("/promo-codes/statistics", s.adminHandler.PromoStatistics)
	admin.PATCH("/promo-codes/:id", s.adminHandler.UpdatePromoCode)
	admin.DELETE("/promo-codes/:id", s.adminHandler.DeletePromoCode)

	admin.GET("/contact-submissions", s.adminHandler.ListContactSubmissions)
	admin.PATCH("/contact-submissions/:id/status", s.adminHandler.UpdateContactStatus)
	admin.GET("/lead-magnet/subscribers", s.adminHandler.ListSubscribers)

	admin.GET("/email-logs", s.adminHandler.ListEmailLogs)
	admin.GET("/email-logs/statistics", s.adminHandler.EmailStatistics)
	admin.POST("/email-logs/test", s.adminHandler.SendTestEmail)

	// -------- cron --------
	cron := api.Group("/cron", s.cronHandler.Authorize)
	cron.GET("/review-requests", s.cronHandler.RunReviewRequests)
	cron.GET("/backup", s.cronHandler.RunBackup)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
