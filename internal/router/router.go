package router

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"staffdesk/internal/auth"
	"staffdesk/internal/config"
	apperrors "staffdesk/internal/errors"
	"staffdesk/internal/handler"
	"staffdesk/internal/model"
	"staffdesk/internal/repository"
)

var startedAt = time.Now()

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	employeeHandler *handler.EmployeeHandler,
) {
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Validator = NewCustomValidator()

	e.Use(middleware.RequestID())
	e.Use(RequestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.BodyLimit("10K"))
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.ClientURL, "http://localhost:5173"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"ok":     true,
			"uptime": time.Since(startedAt).Seconds(),
		})
	})
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "Employee Management API",
			"status":  "running",
			"endpoints": echo.Map{
				"health":    "/health",
				"auth":      "/api/auth",
				"employees": "/api/employees",
			},
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authenticated := Authenticate(jwtService, userRepo)

	api := e.Group("/api")

	// Public session routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/refresh", authHandler.Refresh)

	api.GET("/auth/me", authHandler.Me, authenticated...)

	// Employee routes: authenticated and role gated
	employees := api.Group("/employees", append(authenticated, Authorize(model.RoleAdmin, model.RoleHR))...)
	employees.POST("", employeeHandler.Create)
	employees.GET("", employeeHandler.List)
	employees.PATCH("/:id/archive", employeeHandler.Archive)
	employees.PATCH("/:id/restore", employeeHandler.Restore)
	employees.GET("/:id", employeeHandler.GetByID)
	employees.PUT("/:id", employeeHandler.Update)
}

// HTTPErrorHandler renders every error as JSON with a message field. Domain
// sentinels map through the error taxonomy; anything unrecognized becomes a
// generic 500 so persistence details never reach the client.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var resp apperrors.ErrorResponse
	var status int

	switch e := err.(type) {
	case *apperrors.HTTPError:
		status = e.StatusCode
		resp = e.ToErrorResponse()
	case *echo.HTTPError:
		status = e.Code
		if msg, ok := e.Message.(string); ok {
			resp = apperrors.ErrorResponse{Message: msg}
		} else {
			resp = apperrors.ErrorResponse{Message: http.StatusText(status)}
		}
	default:
		mapped := apperrors.MapErrorToHTTP(err)
		status = mapped.StatusCode
		resp = mapped.ToErrorResponse()
	}

	if err := c.JSON(status, resp); err != nil {
		c.Logger().Error(err)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator builds the request validator used by every route.
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
