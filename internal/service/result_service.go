package service

import (
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/quizbit/server/internal/dto"
	"github.com/quizbit/server/internal/model"
	"github.com/quizbit/server/internal/repository"
	"github.com/rs/zerolog/log"
)

type ResultService interface {
	// Create validates and normalizes a submitted score and persists it
	// owned by userID. The stored record is immutable afterwards.
	Create(userID uint, req dto.CreateResultRequest) (*dto.ResultDTO, error)
	// List returns the user's results newest first, optionally filtered by
	// technology. "all" (any case) and "" mean unfiltered.
	List(userID uint, technology string) ([]dto.ResultDTO, error)
}

type resultService struct {
	resultRepo repository.ResultRepository
}

func NewResultService(resultRepo repository.ResultRepository) ResultService {
	return &resultService{resultRepo: resultRepo}
}

func (s *resultService) Create(userID uint, req dto.CreateResultRequest) (*dto.ResultDTO, error) {
	if userID == 0 {
		return nil, validationErr("not authorized")
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Technology) == "" ||
		strings.TrimSpace(req.Level) == "" || req.TotalQuestions == nil || req.Correct == nil {
		return nil, validationErr("Missing fields")
	}

	total := req.TotalQuestions.Int()
	correct := req.Correct.Int()
	if total < 0 || correct < 0 || correct > total {
		return nil, validationErr("Invalid numeric values")
	}

	// A supplied non-zero wrong count wins; otherwise derive it. Either way
	// the stored record must satisfy correct + wrong == totalQuestions.
	wrong := max(0, total-correct)
	if req.Wrong != nil && req.Wrong.Int() != 0 {
		wrong = req.Wrong.Int()
	}
	if correct+wrong != total {
		return nil, validationErr("Invalid numeric values")
	}

	result := model.Result{
		UserID:         userID,
		Title:          strings.TrimSpace(req.Title),
		Technology:     string(model.NormalizeTechnology(req.Technology)),
		Level:          model.NormalizeLevel(req.Level),
		TotalQuestions: total,
		Correct:        correct,
		Wrong:          wrong,
	}

	if err := s.resultRepo.Create(&result); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("CreateResult: persistence failed")
		return nil, fmt.Errorf("persisting result: %w", err)
	}

	var out dto.ResultDTO
	if err := copier.Copy(&out, &result); err != nil {
		return nil, fmt.Errorf("preparing result response: %w", err)
	}
	return &out, nil
}

func (s *resultService) List(userID uint, technology string) ([]dto.ResultDTO, error) {
	if userID == 0 {
		return nil, validationErr("not authorized")
	}

	filter := strings.ToLower(strings.TrimSpace(technology))
	if filter == repository.TechnologyFilterAll {
		filter = ""
	}

	results, err := s.resultRepo.FindByUser(userID, filter)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("ListResults: query failed")
		return nil, fmt.Errorf("fetching results: %w", err)
	}

	out := make([]dto.ResultDTO, 0, len(results))
	if err := copier.Copy(&out, &results); err != nil {
		return nil, fmt.Errorf("preparing results response: %w", err)
	}
	return out, nil
}
