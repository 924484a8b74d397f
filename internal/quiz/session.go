// Package quiz holds the client-side session state machine: technology and
// level selection, question progression, scoring, and the one-shot result
// submission that fires when a quiz completes.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/quizbit/server/internal/questionbank"
)

// State is the session's position in its lifecycle.
type State int

const (
	// Idle: nothing selected yet, or the subject was deselected.
	Idle State = iota
	// SubjectChosen: technology picked, waiting on a level.
	SubjectChosen
	// Answering: questions loaded, quiz in progress.
	Answering
	// Completed: every question answered; the result has been handed to the
	// submitter (at most once per session instance).
	Completed
)

// Score is a pure summary of the recorded answers.
type Score struct {
	Correct    int
	Total      int
	Percentage int
}

// ResultPayload is what a completed session submits.
type ResultPayload struct {
	Title          string `json:"title"`
	Technology     string `json:"technology"`
	Level          string `json:"level"`
	TotalQuestions int    `json:"totalQuestions"`
	Correct        int    `json:"correct"`
	Wrong          int    `json:"wrong"`
}

// Submitter delivers a completed session's result to the server.
type Submitter interface {
	SubmitResult(ctx context.Context, payload ResultPayload) error
}

var (
	ErrNoSubject     = errors.New("no technology selected")
	ErrNotAnswering  = errors.New("no quiz in progress")
	ErrNoQuestions   = errors.New("no questions for this technology and level")
	ErrOptionOutside = errors.New("option index out of range")
)

const defaultAdvanceDelay = 500 * time.Millisecond

// Session drives one user's quiz. All methods are safe for the timer
// goroutine that fires the post-answer advance; user-facing calls are
// expected to arrive one at a time.
type Session struct {
	mu sync.Mutex

	bank          questionbank.Bank
	submitter     Submitter
	advanceDelay  time.Duration
	submitTimeout time.Duration
	onSubmitted   func(error)

	state          State
	subject        string
	level          string
	questions      []questionbank.Question
	currentIndex   int
	answers        map[int]int
	advancePending bool
	// epoch invalidates scheduled advances from a quiz that was abandoned
	// via reselect or reset before the timer fired.
	epoch uint64

	// submitted is the submission guard: set before the async call starts,
	// cleared only on definite failure.
	submitted atomic.Bool
}

// Option configures a Session.
type Option func(*Session)

// WithAdvanceDelay sets the pause between answering and moving on. Zero or
// negative advances synchronously.
func WithAdvanceDelay(d time.Duration) Option {
	return func(s *Session) { s.advanceDelay = d }
}

// WithSubmitTimeout bounds how long a submission call may take.
func WithSubmitTimeout(d time.Duration) Option {
	return func(s *Session) { s.submitTimeout = d }
}

// WithOnSubmitted registers a callback invoked after each submission attempt
// with its outcome.
func WithOnSubmitted(fn func(error)) Option {
	return func(s *Session) { s.onSubmitted = fn }
}

func NewSession(bank questionbank.Bank, submitter Submitter, opts ...Option) *Session {
	s := &Session{
		bank:          bank,
		submitter:     submitter,
		advanceDelay:  defaultAdvanceDelay,
		submitTimeout: 10 * time.Second,
		state:         Idle,
		answers:       make(map[int]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectSubject picks a technology. Reselecting the current one deselects it
// and returns the session to Idle. Either way all progress is discarded.
func (s *Session) SelectSubject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Idle && s.subject == id {
		s.subject = ""
		s.state = Idle
	} else {
		s.subject = id
		s.state = SubjectChosen
	}
	s.level = ""
	s.questions = nil
	s.clearProgressLocked()
}

// SelectLevel loads the question sequence for the chosen technology and the
// given level and starts the quiz at question zero.
func (s *Session) SelectLevel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subject == "" {
		return ErrNoSubject
	}
	questions, ok := s.bank.Questions(s.subject, id)
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrNoQuestions, s.subject, id)
	}
	s.level = id
	s.questions = questions
	s.state = Answering
	s.clearProgressLocked()
	return nil
}

// Answer records the chosen option for the current question and schedules
// the advance. Answering again before the advance fires overwrites the
// recorded choice without scheduling a second advance.
func (s *Session) Answer(optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Answering || s.currentIndex >= len(s.questions) {
		return ErrNotAnswering
	}
	if optionIndex < 0 || optionIndex >= len(s.questions[s.currentIndex].Options) {
		return ErrOptionOutside
	}

	s.answers[s.currentIndex] = optionIndex

	if s.advancePending {
		return nil
	}
	if s.advanceDelay <= 0 {
		s.advanceLocked()
		return nil
	}
	s.advancePending = true
	epoch := s.epoch
	time.AfterFunc(s.advanceDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.epoch != epoch {
			return
		}
		s.advancePending = false
		s.advanceLocked()
	})
	return nil
}

func (s *Session) advanceLocked() {
	if s.state != Answering {
		return
	}
	if s.currentIndex < len(s.questions)-1 {
		s.currentIndex++
		return
	}
	s.state = Completed
	s.submitLocked()
}

// submitLocked fires the exactly-once result submission. The guard is taken
// synchronously, before the call goes async, so a re-entered completion can
// never start a second call. It is released only on definite failure.
func (s *Session) submitLocked() {
	if s.submitter == nil {
		return
	}
	if !s.submitted.CompareAndSwap(false, true) {
		return
	}

	score := s.scoreLocked()
	payload := ResultPayload{
		Title:          fmt.Sprintf("%s - %s Quiz", strings.ToUpper(s.subject), titleCase(s.level)),
		Technology:     s.subject,
		Level:          s.level,
		TotalQuestions: score.Total,
		Correct:        score.Correct,
		Wrong:          score.Total - score.Correct,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.submitTimeout)
		defer cancel()
		err := s.submitter.SubmitResult(ctx, payload)
		if err != nil {
			s.submitted.Store(false)
		}
		if s.onSubmitted != nil {
			s.onSubmitted(err)
		}
	}()
}

// Score counts answers matching each question's correct option. Percentage
// is rounded; an empty quiz scores zero.
func (s *Session) Score() Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scoreLocked()
}

func (s *Session) scoreLocked() Score {
	correct := 0
	for i, q := range s.questions {
		if chosen, ok := s.answers[i]; ok && chosen == q.Correct {
			correct++
		}
	}
	total := len(s.questions)
	percentage := 0
	if total > 0 {
		percentage = int(float64(correct)/float64(total)*100 + 0.5)
	}
	return Score{Correct: correct, Total: total, Percentage: percentage}
}

// Reset restarts the same technology and level with cleared answers.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subject == "" || s.level == "" || len(s.questions) == 0 {
		return ErrNotAnswering
	}
	s.state = Answering
	s.clearProgressLocked()
	return nil
}

func (s *Session) clearProgressLocked() {
	s.currentIndex = 0
	s.answers = make(map[int]int)
	s.advancePending = false
	s.epoch++
	s.submitted.Store(false)
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Subject() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subject
}

func (s *Session) Level() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// CurrentQuestion returns the active question and its index, or ok=false when
// no quiz is in progress.
func (s *Session) CurrentQuestion() (q questionbank.Question, index int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Answering || s.currentIndex >= len(s.questions) {
		return questionbank.Question{}, 0, false
	}
	return s.questions[s.currentIndex], s.currentIndex, true
}

// QuestionCount reports the length of the loaded sequence.
func (s *Session) QuestionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
