package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizbit/server/internal/dto"
	"github.com/quizbit/server/internal/metrics"
	"github.com/quizbit/server/internal/middleware"
	"github.com/quizbit/server/internal/service"
	"github.com/rs/zerolog/log"
)

type ResultController struct {
	resultSvc service.ResultService
}

func NewResultController(resultSvc service.ResultService) *ResultController {
	return &ResultController{resultSvc: resultSvc}
}

// Create godoc
// @Summary Submit a quiz result
// @Description Persists a completed quiz score for the authenticated user.
// @Tags results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateResultRequest true "Completed quiz score"
// @Success 201 {object} dto.ResultResponse
// @Failure 400 {object} dto.ResultResponse
// @Failure 401 {object} dto.ResultResponse
// @Router /results [post]
func (ctrl *ResultController) Create(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ResultResponse{Success: false, Message: "Not authorized"})
		return
	}

	var req dto.CreateResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ResultResponse{Success: false, Message: "Invalid numeric values"})
		return
	}

	created, err := ctrl.resultSvc.Create(user.ID, req)
	if err != nil {
		if service.IsValidation(err) {
			c.JSON(http.StatusBadRequest, dto.ResultResponse{Success: false, Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("userID", user.ID).Msg("CreateResult failed")
		c.JSON(http.StatusInternalServerError, dto.ResultResponse{Success: false, Message: "Server Error"})
		return
	}

	metrics.RecordResultCreated()
	c.JSON(http.StatusCreated, dto.ResultResponse{Success: true, Message: "Result Created", Results: created})
}

// List godoc
// @Summary List my quiz results
// @Description Returns the caller's results, newest first, optionally filtered by technology.
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param technology query string false "Technology filter, or 'all'"
// @Success 200 {object} dto.ResultResponse
// @Failure 401 {object} dto.ResultResponse
// @Router /results [get]
func (ctrl *ResultController) List(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ResultResponse{Success: false, Message: "Not authorized"})
		return
	}

	results, err := ctrl.resultSvc.List(user.ID, c.Query("technology"))
	if err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("ListResults failed")
		c.JSON(http.StatusInternalServerError, dto.ResultResponse{Success: false, Message: "Server Error"})
		return
	}

	c.JSON(http.StatusOK, dto.ResultResponse{Success: true, Results: results})
}
