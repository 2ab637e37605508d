package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fossilario/internal/auth"
	"fossilario/internal/config"
	"fossilario/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	fossilHandler *handler.FossilHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Uploaded images are served directly from the uploads area.
	e.Static("/uploads", cfg.UploadDir)

	requireAuth := auth.Middleware(cfg.JWTSecret)

	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	fossils := e.Group("/fosseis")
	fossils.GET("", fossilHandler.List)
	fossils.GET("/:id", fossilHandler.Get)
	fossils.POST("", fossilHandler.Create, requireAuth)
	fossils.PUT("/:id", fossilHandler.Update, requireAuth)
	fossils.DELETE("/:id", fossilHandler.Delete, requireAuth)

	users := e.Group("/users")
	users.GET("/me", userHandler.Me, requireAuth)
	users.PUT("/me", userHandler.UpdateMe, requireAuth)
	users.GET("/:id/public", userHandler.PublicProfile)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
