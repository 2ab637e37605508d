package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"fossilario/internal/auth"
	"fossilario/internal/errors"
	"fossilario/internal/service"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest represents a self-service profile update. Absent
// fields are left untouched.
type UpdateProfileRequest struct {
	Nome  *string `json:"nome"`
	Email *string `json:"email" validate:"omitempty,email"`

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

	SenhaAtual *string `json:"senhaAtual"`
	NovaSenha  *string `json:"novaSenha" validate:"omitempty,min=6"`
}

// Me returns the caller's full profile.
// GET /users/me
func (h *UserHandler) Me(c echo.Context) error {
	callerID, err := auth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "missing or invalid token",
			Code:  "UNAUTHENTICATED",
		})
	}

	user, err := h.userService.Me(c.Request().Context(), callerID)
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		if he.Code == "INTERNAL_ERROR" {
			c.Logger().Errorf("get profile %d: %v", callerID, err)
		}
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe updates the caller's profile, optionally rotating the password.
// PUT /users/me
func (h *UserHandler) UpdateMe(c echo.Context) error {
	callerID, err := auth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "missing or invalid token",
			Code:  "UNAUTHENTICATED",
		})
	}

	var req UpdateProfileRequest
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

	user, err := h.userService.UpdateMe(c.Request().Context(), callerID, service.ProfileUpdate{
		Nome:            req.Nome,
		Email:           req.Email,
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
		SenhaAtual:      req.SenhaAtual,
		NovaSenha:       req.NovaSenha,
	})
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		if he.Code == "INTERNAL_ERROR" {
			c.Logger().Errorf("update profile %d: %v", callerID, err)
		}
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// PublicProfile returns the privacy-gated contributor projection.
// GET /users/:id/public
func (h *UserHandler) PublicProfile(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: "user not found",
			Code:  "NOT_FOUND",
		})
	}

	contributor, err := h.userService.PublicProfile(c.Request().Context(), uint(id))
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		if he.Code == "INTERNAL_ERROR" {
			c.Logger().Errorf("public profile %d: %v", id, err)
		}
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, contributor)
}
