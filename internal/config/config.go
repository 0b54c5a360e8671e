package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	SiteURL     string `env:"SITE_URL" envDefault:"https://allresumeservices.com.au"`
	DatabaseURL string `env:"DATABASE_URL"`
	CronSecret  string `env:"CRON_SECRET"`
	JWTSecret   string `env:"JWT_SECRET"`

	Paypal Paypal `envPrefix:"PAYPAL_"`
	SMTP   SMTP
	Review Review
	Backup Backup
}

type Paypal struct {
	BaseApiURL   string `env:"BASE_API_URL" envDefault:"https://api-m.sandbox.paypal.com"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	WebhookID    string `env:"WEBHOOK_ID"`
}

type SMTP struct {
	User       string `env:"EMAIL_USER"`
	Password   string `env:"SMTP_PASSWORD"`
	Host       string `env:"EMAIL_HOST" envDefault:"smtp.protonmail.ch"`
	Port       int    `env:"EMAIL_PORT" envDefault:"587"`
	FromName   string `env:"EMAIL_FROM_NAME" envDefault:"All Resume Services"`
	AdminEmail string `env:"ADMIN_NOTIFICATION_EMAIL" envDefault:"enquiries@allresumeservices.com"`
	// Contact-form notices can go to a different inbox than failure alerts.
	ContactEmail string `env:"CONTACT_NOTIFICATION_EMAIL" envDefault:"info@allresumeservices.com"`
}

// Configured reports whether the SMTP transport can actually send. When it
// returns false every mail path degrades to a logged no-op.
func (s SMTP) Configured() bool {
	return s.User != "" && s.Password != ""
}

type Review struct {
	GoogleReviewLink string `env:"GOOGLE_REVIEW_LINK" envDefault:"https://g.page/r/CYourGoogleBusinessIDHere/review"`
	DelayDays        int    `env:"REVIEW_DELAY_DAYS" envDefault:"21"`
	Enabled          bool   `env:"REVIEW_REQUESTS_ENABLED" envDefault:"true"`
}

type Backup struct {
	Dir string `env:"BACKUP_DIR" envDefault:"backups"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
