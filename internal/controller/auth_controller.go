package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizbit/server/internal/dto"
	"github.com/quizbit/server/internal/service"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authSvc service.AuthService
}

func NewAuthController(authSvc service.AuthService) *AuthController {
	return &AuthController{authSvc: authSvc}
}

// Register godoc
// @Summary Create an account
// @Description Registers a new user and returns a signed bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Account details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.AuthResponse
// @Failure 409 {object} dto.AuthResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.AuthResponse{Success: false, Message: "Missing or invalid fields"})
		return
	}

	token, user, err := ctrl.authSvc.Register(req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, dto.AuthResponse{Success: false, Message: err.Error()})
			return
		}
		log.Error().Err(err).Msg("Register failed")
		c.JSON(http.StatusInternalServerError, dto.AuthResponse{Success: false, Message: "Server Error"})
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{Success: true, Token: token, User: user})
}

// Login godoc
// @Summary Sign in
// @Description Verifies credentials and returns a signed bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.AuthResponse
// @Failure 401 {object} dto.AuthResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.AuthResponse{Success: false, Message: "Missing or invalid fields"})
		return
	}

	token, user, err := ctrl.authSvc.Login(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.AuthResponse{Success: false, Message: "Invalid email or password"})
			return
		}
		log.Error().Err(err).Msg("Login failed")
		c.JSON(http.StatusInternalServerError, dto.AuthResponse{Success: false, Message: "Server Error"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Token: token, User: user})
}
