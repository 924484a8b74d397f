package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Numeric accepts a JSON number or a numeric string ("5"). Anything else
// fails to unmarshal. A nil *Numeric means the field was absent.
type Numeric float64

func (n *Numeric) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return fmt.Errorf("numeric field is null")
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		trimmed = strings.TrimSpace(s)
	}
	val, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q", trimmed)
	}
	*n = Numeric(val)
	return nil
}

func (n Numeric) Int() int { return int(n) }

// CreateResultRequest is the body of POST /api/results. Numeric fields are
// pointers so a missing field is distinguishable from zero.
type CreateResultRequest struct {
	Title          string   `json:"title"`
	Technology     string   `json:"technology"`
	Level          string   `json:"level"`
	TotalQuestions *Numeric `json:"totalQuestions"`
	Correct        *Numeric `json:"correct"`
	Wrong          *Numeric `json:"wrong"`
}

// ResultDTO mirrors model.Result on the wire.
type ResultDTO struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	Title          string    `json:"title"`
	Technology     string    `json:"technology"`
	Level          string    `json:"level"`
	TotalQuestions int       `json:"totalQuestions"`
	Correct        int       `json:"correct"`
	Wrong          int       `json:"wrong"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ResultResponse is the envelope for both result endpoints. Results holds a
// single record on create and a list on query.
type ResultResponse struct {
	Success bool   `json:"success"`
	Results any    `json:"results,omitempty"`
	Message string `json:"message,omitempty"`
}
