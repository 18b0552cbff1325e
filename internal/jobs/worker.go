package jobs

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"ceerion/internal/mail"

	"go.uber.org/zap"
)

type Worker struct {
	ID     string
	Repo   *Repo
	Mailer mail.Sender
	Log    *zap.Logger
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(800 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job, err := w.Repo.Claim(w.ID)
			if err != nil {
				w.Log.Error("worker claim error", zap.Error(err))
				continue
			}
			if job == nil {
				continue
			}
			w.handle(ctx, job)
		}
	}
}

func (w *Worker) handle(ctx context.Context, job *Job) {
	switch job.Type {
	case "EMAIL_DISPATCH":
		w.handleEmail(ctx, job)
	default:
		_ = w.Repo.MarkFailed(job.ID, "unknown job type")
	}
}

func (w *Worker) handleEmail(ctx context.Context, job *Job) {
	var p EmailPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		_ = w.Repo.MarkFailed(job.ID, "bad payload")
		return
	}

	if err := w.Mailer.Send(ctx, mail.Message{To: p.To, Template: p.Template, Data: p.Data}); err != nil {
		w.Log.Warn("email dispatch failed",
			zap.Uint64("job", job.ID),
			zap.String("template", p.Template),
			zap.Error(err),
		)
		w.retry(job, err.Error())
		return
	}

	_ = w.Repo.MarkDone(job.ID)
}

func (w *Worker) retry(job *Job, errMsg string) {
	attempts := job.Attempts + 1
	if attempts >= job.MaxAttempts {
		_ = w.Repo.MarkFailed(job.ID, errMsg)
		return
	}

	next := time.Now().Add(retryDelay(attempts))
	_ = w.Repo.RetryLater(job.ID, attempts, next, errMsg)
}

// retryDelay backs off exponentially, capped at ten minutes.
func retryDelay(attempts int) time.Duration {
	sec := math.Min(math.Pow(2, float64(attempts)), 600)
	return time.Duration(sec) * time.Second
}
