package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fossilario/internal/errors"
	"fossilario/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Nome  string `json:"nome" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required,min=6"`

	Role        *string `json:"role"`
	Affiliation *string `json:"affiliation"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Country     *string `json:"country"`
	Lattes      *string `json:"lattes"`

	ShowName        *bool   `json:"showName"`
	ShowAffiliation *bool   `json:"showAffiliation"`
	ShowContact     *bool   `json:"showContact"`
	ContactPublic   *string `json:"contactPublic"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

// AuthResponse carries the issued token and the redacted user.
type AuthResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// Register creates a user and issues a token.
// POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	token, user, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Nome:            req.Nome,
		Email:           req.Email,
		Senha:           req.Senha,
		Role:            req.Role,
		Affiliation:     req.Affiliation,
		City:            req.City,
		State:           req.State,
		Country:         req.Country,
		Lattes:          req.Lattes,
		ShowName:        req.ShowName,
		ShowAffiliation: req.ShowAffiliation,
		ShowContact:     req.ShowContact,
		ContactPublic:   req.ContactPublic,
	})
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		if he.Code == "INTERNAL_ERROR" {
			c.Logger().Errorf("register: %v", err)
		}
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

// Login authenticates a user and issues a token.
// POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Senha)
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		if he.Code == "INTERNAL_ERROR" {
			c.Logger().Errorf("login: %v", err)
		}
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}
