package analysis_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"futbol-tracker/internal/adapters/storage/memory"
	"futbol-tracker/internal/domain/analysis"
	"futbol-tracker/internal/domain/matchlog"
	"futbol-tracker/internal/ports/completion"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeCompleter registra los prompts recibidos y responde lo configurado.
type fakeCompleter struct {
	mu      sync.Mutex
	prompts []string
	reply   string
	err     error

	// si no es nil, Complete espera hasta que se cierre.
	block chan struct{}
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (completion.Result, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.err != nil {
		return completion.Result{}, f.err
	}
	return completion.Result{Text: f.reply}, nil
}

func (f *fakeCompleter) Verify(context.Context) error { return nil }
func (f *fakeCompleter) Model() string                { return "fake-model" }

func (f *fakeCompleter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *outcomeRecorder) AnalysisFinished(outcome string, _ time.Duration) {
	o.mu.Lock()
	o.outcomes = append(o.outcomes, outcome)
	o.mu.Unlock()
}

func TestGenerateReport(t *testing.T) {
	Convey("Given a match session and an analysis service", t, func() {
		ctx := context.Background()
		logSvc := matchlog.NewService(memory.NewEventRepo())
		sess, err := logSvc.StartSession(ctx)
		So(err, ShouldBeNil)

		fc := &fakeCompleter{reply: "  **Informe**\n1. Presionar la zona 3 \n"}
		obs := &outcomeRecorder{}
		svc := analysis.NewService(logSvc, fc, analysis.WithObserver(obs))

		Convey("When the log is empty", func() {
			_, err := svc.Generate(ctx, sess.ID)

			Convey("Then it is gated and no request is sent", func() {
				So(errors.Is(err, analysis.ErrNotEnoughEvents), ShouldBeTrue)
				So(fc.calls(), ShouldEqual, 0)
				So(obs.outcomes, ShouldResemble, []string{analysis.OutcomeGated})
				So(analysis.NotEnoughEventsMessage(svc.MinEvents()), ShouldEqual, "Registra al menos una jugada antes de analizar.")
			})
		})

		Convey("When events are recorded", func() {
			_, _ = logSvc.Record(ctx, sess.ID, matchlog.Zone3, matchlog.ActionLoss, "10")
			_, _ = logSvc.Record(ctx, sess.ID, matchlog.Zone9, matchlog.ActionShotOnTarget, "9")
			_, _ = logSvc.Record(ctx, sess.ID, matchlog.Zone9, matchlog.ActionGoal, "9")

			rep, err := svc.Generate(ctx, sess.ID)

			Convey("Then exactly one request carries every event", func() {
				So(err, ShouldBeNil)
				So(fc.calls(), ShouldEqual, 1)

				p := fc.prompts[0]
				for _, want := range []string{"Zona 3", "Pérdida", "'10'", "Zona 9", "Tiro a Puerta", "Gol", "'9'"} {
					So(p, ShouldContainSubstring, want)
				}
			})

			Convey("And the response is returned unmodified", func() {
				So(rep.Text, ShouldEqual, "  **Informe**\n1. Presionar la zona 3 \n")
				So(rep.Model, ShouldEqual, "fake-model")
				So(rep.EventCount, ShouldEqual, 3)
				So(rep.Prompt, ShouldBeEmpty)
				So(svc.InProgress(sess.ID), ShouldBeFalse)
			})

			Convey("And a second call sends a new request (no cache)", func() {
				_, err := svc.Generate(ctx, sess.ID)
				So(err, ShouldBeNil)
				So(fc.calls(), ShouldEqual, 2)
				So(fc.prompts[0], ShouldEqual, fc.prompts[1])
			})
		})

		Convey("When the completion service fails", func() {
			_, _ = logSvc.Record(ctx, sess.ID, matchlog.Zone5, matchlog.ActionPassFailed, "")
			upstream := errors.New("connection refused")
			fc.err = upstream

			_, err := svc.Generate(ctx, sess.ID)

			Convey("Then the failure is reported and the session stays usable", func() {
				So(errors.Is(err, analysis.ErrCompletionFailed), ShouldBeTrue)
				So(errors.Is(err, upstream), ShouldBeTrue)
				So(obs.outcomes, ShouldResemble, []string{analysis.OutcomeFailed})

				_, recErr := logSvc.Record(ctx, sess.ID, matchlog.Zone6, matchlog.ActionRecovery, "5")
				So(recErr, ShouldBeNil)
				So(svc.InProgress(sess.ID), ShouldBeFalse)
			})
		})

		Convey("When the session does not exist", func() {
			_, err := svc.Generate(ctx, "missing")

			Convey("Then it reports session not found without calling out", func() {
				So(errors.Is(err, matchlog.ErrSessionNotFound), ShouldBeTrue)
				So(fc.calls(), ShouldEqual, 0)
			})
		})

		Convey("When a request is already pending for the session", func() {
			_, _ = logSvc.Record(ctx, sess.ID, matchlog.Zone10, matchlog.ActionGoal, "11")
			fc.block = make(chan struct{})

			done := make(chan error, 1)
			go func() {
				_, err := svc.Generate(ctx, sess.ID)
				done <- err
			}()

			for !svc.InProgress(sess.ID) {
				time.Sleep(time.Millisecond)
			}
			_, err := svc.Generate(ctx, sess.ID)
			close(fc.block)

			Convey("Then the second call is rejected", func() {
				So(errors.Is(err, analysis.ErrAnalysisInProgress), ShouldBeTrue)
				So(<-done, ShouldBeNil)
				So(fc.calls(), ShouldEqual, 1)
			})
		})
	})
}

func TestGenerateReport_MinEventsAndPrompt(t *testing.T) {
	Convey("Given a service that requires three events and returns the prompt", t, func() {
		ctx := context.Background()
		logSvc := matchlog.NewService(memory.NewEventRepo())
		sess, _ := logSvc.StartSession(ctx)
		fc := &fakeCompleter{reply: "ok"}
		svc := analysis.NewService(logSvc, fc, analysis.WithMinEvents(3), analysis.WithPromptInReport(true))

		_, _ = logSvc.Record(ctx, sess.ID, matchlog.Zone1, matchlog.ActionRecovery, "2")
		_, _ = logSvc.Record(ctx, sess.ID, matchlog.Zone2, matchlog.ActionPassCompleted, "2")

		Convey("Two events are not enough", func() {
			_, err := svc.Generate(ctx, sess.ID)
			So(errors.Is(err, analysis.ErrNotEnoughEvents), ShouldBeTrue)
			So(analysis.NotEnoughEventsMessage(3), ShouldEqual, "Registra al menos 3 jugadas antes de analizar.")
			So(fc.calls(), ShouldEqual, 0)
		})

		Convey("The third event unlocks the request", func() {
			_, _ = logSvc.Record(ctx, sess.ID, matchlog.Zone7, matchlog.ActionPassFailed, "6")
			rep, err := svc.Generate(ctx, sess.ID)
			So(err, ShouldBeNil)
			So(strings.Contains(rep.Prompt, "Zona 7"), ShouldBeTrue)
			So(rep.Prompt, ShouldEqual, fc.prompts[0])
		})
	})
}
