package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

func limiter(limit rate.Limit, burst int) echo.MiddlewareFunc {
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:  limit,
			Burst: burst,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
	})
}

// GeneralRateLimit covers the public API as a whole.
func GeneralRateLimit() echo.MiddlewareFunc {
	return limiter(rate.Limit(20), 40)
}

// FormRateLimit is tighter for spam magnets like the contact form.
func FormRateLimit() echo.MiddlewareFunc {
	return limiter(rate.Limit(1), 5)
}

// PaymentRateLimit sits between the two; checkout retries are legitimate.
func PaymentRateLimit() echo.MiddlewareFunc {
	return limiter(rate.Limit(2), 10)
}
