package quiz_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/quizbit/server/internal/questionbank"
	"github.com/quizbit/server/internal/quiz"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeSubmitter struct {
	calls    atomic.Int32
	failures atomic.Int32
	last     atomic.Pointer[quiz.ResultPayload]
}

func (f *fakeSubmitter) SubmitResult(ctx context.Context, payload quiz.ResultPayload) error {
	f.calls.Add(1)
	f.last.Store(&payload)
	if f.failures.Load() > 0 {
		f.failures.Add(-1)
		return errors.New("network down")
	}
	return nil
}

func testBank(t *testing.T) questionbank.Bank {
	t.Helper()
	bank, err := questionbank.FromJSON([]byte(`{
		"js": {
			"basic": [
				{"text": "q0", "options": ["a", "b"], "correct": 0},
				{"text": "q1", "options": ["a", "b"], "correct": 1},
				{"text": "q2", "options": ["a", "b"], "correct": 0},
				{"text": "q3", "options": ["a", "b"], "correct": 1},
				{"text": "q4", "options": ["a", "b"], "correct": 0}
			]
		}
	}`))
	if err != nil {
		t.Fatalf("building bank: %v", err)
	}
	return bank
}

func completedSession(t *testing.T, submitter quiz.Submitter, done chan error, opts ...quiz.Option) *quiz.Session {
	t.Helper()
	opts = append([]quiz.Option{
		quiz.WithAdvanceDelay(0),
		quiz.WithOnSubmitted(func(err error) { done <- err }),
	}, opts...)
	session := quiz.NewSession(testBank(t), submitter, opts...)
	session.SelectSubject("js")
	if err := session.SelectLevel("basic"); err != nil {
		t.Fatalf("selecting level: %v", err)
	}
	// Option 0 everywhere: correct on indices 0, 2 and 4.
	for i := 0; i < 5; i++ {
		if err := session.Answer(0); err != nil {
			t.Fatalf("answering: %v", err)
		}
	}
	return session
}

func waitSubmission(t *testing.T, done chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("submission never completed")
		return nil
	}
}

func TestSessionSelection(t *testing.T) {
	Convey("Given a fresh session", t, func() {
		session := quiz.NewSession(testBank(t), nil, quiz.WithAdvanceDelay(0))

		Convey("It starts idle with no subject", func() {
			So(session.State(), ShouldEqual, quiz.Idle)
			So(session.Subject(), ShouldBeEmpty)
		})

		Convey("When a subject is selected", func() {
			session.SelectSubject("js")
			So(session.State(), ShouldEqual, quiz.SubjectChosen)

			Convey("Reselecting the same subject deselects it", func() {
				session.SelectSubject("js")
				So(session.State(), ShouldEqual, quiz.Idle)
				So(session.Subject(), ShouldBeEmpty)
			})

			Convey("Selecting a level starts the quiz at question zero", func() {
				So(session.SelectLevel("basic"), ShouldBeNil)
				So(session.State(), ShouldEqual, quiz.Answering)
				_, index, ok := session.CurrentQuestion()
				So(ok, ShouldBeTrue)
				So(index, ShouldEqual, 0)
			})

			Convey("An unknown level is rejected", func() {
				So(session.SelectLevel("expert"), ShouldNotBeNil)
			})
		})

		Convey("Selecting a level without a subject fails", func() {
			So(session.SelectLevel("basic"), ShouldEqual, quiz.ErrNoSubject)
		})

		Convey("Answering without a quiz in progress fails", func() {
			So(session.Answer(0), ShouldEqual, quiz.ErrNotAnswering)
		})
	})
}

func TestSessionScoring(t *testing.T) {
	Convey("Given a js/basic quiz answered correct on indices 0, 2 and 4", t, func() {
		done := make(chan error, 1)
		submitter := &fakeSubmitter{}
		session := completedSession(t, submitter, done)
		So(waitSubmission(t, done), ShouldBeNil)

		Convey("The score is 3/5 at 60 percent", func() {
			score := session.Score()
			So(score.Correct, ShouldEqual, 3)
			So(score.Total, ShouldEqual, 5)
			So(score.Percentage, ShouldEqual, 60)
		})

		Convey("Correct plus wrong equals total in the submitted payload", func() {
			payload := submitter.last.Load()
			So(payload, ShouldNotBeNil)
			So(payload.Correct+payload.Wrong, ShouldEqual, payload.TotalQuestions)
		})

		Convey("The payload carries the normalized selection", func() {
			payload := submitter.last.Load()
			So(payload.Technology, ShouldEqual, "js")
			So(payload.Level, ShouldEqual, "basic")
			So(payload.Title, ShouldEqual, "JS - Basic Quiz")
			So(payload.TotalQuestions, ShouldEqual, 5)
			So(payload.Correct, ShouldEqual, 3)
			So(payload.Wrong, ShouldEqual, 2)
		})

		Convey("The session is completed and refuses further answers", func() {
			So(session.State(), ShouldEqual, quiz.Completed)
			So(session.Answer(0), ShouldEqual, quiz.ErrNotAnswering)
		})
	})

	Convey("An empty session scores zero percent", t, func() {
		session := quiz.NewSession(testBank(t), nil, quiz.WithAdvanceDelay(0))
		score := session.Score()
		So(score.Total, ShouldEqual, 0)
		So(score.Percentage, ShouldEqual, 0)
	})
}

func TestSessionSubmissionGuard(t *testing.T) {
	Convey("Given a quiz finished with rapid duplicate answers on the last question", t, func() {
		done := make(chan error, 1)
		submitter := &fakeSubmitter{}
		session := quiz.NewSession(testBank(t), submitter,
			quiz.WithAdvanceDelay(5*time.Millisecond),
			quiz.WithOnSubmitted(func(err error) { done <- err }),
		)
		session.SelectSubject("js")
		So(session.SelectLevel("basic"), ShouldBeNil)

		for i := 0; i < 4; i++ {
			So(session.Answer(0), ShouldBeNil)
			time.Sleep(20 * time.Millisecond)
		}
		// Two answers inside the advance delay: the second overwrites the
		// choice but must not schedule a second advance or submission.
		So(session.Answer(0), ShouldBeNil)
		So(session.Answer(1), ShouldBeNil)

		So(waitSubmission(t, done), ShouldBeNil)
		time.Sleep(50 * time.Millisecond)

		Convey("Exactly one submission went out", func() {
			So(submitter.calls.Load(), ShouldEqual, 1)
		})

		Convey("The overwritten answer is the one scored", func() {
			payload := submitter.last.Load()
			So(payload.Correct, ShouldEqual, 2)
		})
	})

	Convey("Given a submitter that fails once", t, func() {
		done := make(chan error, 1)
		submitter := &fakeSubmitter{}
		submitter.failures.Store(1)
		session := completedSession(t, submitter, done)

		Convey("The failure is reported and the guard released", func() {
			So(waitSubmission(t, done), ShouldNotBeNil)

			Convey("After a reset the quiz submits again", func() {
				So(session.Reset(), ShouldBeNil)
				So(session.State(), ShouldEqual, quiz.Answering)
				for i := 0; i < 5; i++ {
					So(session.Answer(0), ShouldBeNil)
				}
				So(waitSubmission(t, done), ShouldBeNil)
				So(submitter.calls.Load(), ShouldEqual, 2)
			})
		})
	})
}

func TestSessionReset(t *testing.T) {
	Convey("Given a completed session", t, func() {
		done := make(chan error, 1)
		submitter := &fakeSubmitter{}
		session := completedSession(t, submitter, done)
		So(waitSubmission(t, done), ShouldBeNil)

		Convey("Reset returns to the same quiz with cleared answers", func() {
			So(session.Reset(), ShouldBeNil)
			So(session.State(), ShouldEqual, quiz.Answering)
			So(session.Subject(), ShouldEqual, "js")
			So(session.Level(), ShouldEqual, "basic")
			score := session.Score()
			So(score.Correct, ShouldEqual, 0)
			So(score.Total, ShouldEqual, 5)
		})
	})

	Convey("Reset without a loaded quiz fails", t, func() {
		session := quiz.NewSession(testBank(t), nil)
		So(session.Reset(), ShouldEqual, quiz.ErrNotAnswering)
	})

	Convey("A pending advance from an abandoned quiz never touches the new one", t, func() {
		session := quiz.NewSession(testBank(t), nil, quiz.WithAdvanceDelay(10*time.Millisecond))
		session.SelectSubject("js")
		So(session.SelectLevel("basic"), ShouldBeNil)
		So(session.Answer(0), ShouldBeNil)

		// Restart before the delay elapses.
		So(session.Reset(), ShouldBeNil)
		time.Sleep(50 * time.Millisecond)

		_, index, ok := session.CurrentQuestion()
		So(ok, ShouldBeTrue)
		So(index, ShouldEqual, 0)
	})
}
