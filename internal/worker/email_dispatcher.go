// Package worker hosts long-running background loops.
package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/userhub/userhub/pkg/mailer"
)

// JobSource supplies raw, JSON-encoded email jobs. The AMQP consumer in
// pkg/helpers is the production implementation.
type JobSource interface {
	FetchBodies(ctx context.Context, max int) ([][]byte, error)
}

// EmailDispatcher polls the job source on a fixed interval and hands each job
// to the mailer. It runs until the context is cancelled; a failing fetch,
// decode, or send is logged and never ends the loop.
type EmailDispatcher struct {
	Source   JobSource
	Mailer   mailer.Mailer
	Logger   *logrus.Logger
	Interval time.Duration
	Batch    int
}

func NewEmailDispatcher(src JobSource, m mailer.Mailer, logger *logrus.Logger, interval time.Duration, batch int) *EmailDispatcher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if batch <= 0 {
		batch = 16
	}
	return &EmailDispatcher{Source: src, Mailer: m, Logger: logger, Interval: interval, Batch: batch}
}

// Run blocks until ctx is cancelled.
func (d *EmailDispatcher) Run(ctx context.Context) {
	d.Logger.Info("email dispatcher started")
	ticker := time.NewTicker(d.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.Logger.Info("email dispatcher stopped")
			return
		case <-ticker.C:
			d.dispatchPending(ctx)
		}
	}
}

func (d *EmailDispatcher) dispatchPending(ctx context.Context) {
	bodies, err := d.Source.FetchBodies(ctx, d.Batch)
	if err != nil {
		if ctx.Err() == nil {
			d.Logger.WithError(err).Warn("fetching email jobs failed")
		}
		return
	}
	for _, body := range bodies {
		var job mailer.EmailJob
		if err := json.Unmarshal(body, &job); err != nil {
			d.Logger.WithError(err).Warn("dropping undecodable email job")
			continue
		}
		sendCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		err := d.Mailer.Send(sendCtx, job.To, job.Subject, job.Text, job.HTML)
		cancel()
		if err != nil {
			d.Logger.WithError(err).WithField("to", job.To).Warn("email send failed")
			continue
		}
		d.Logger.WithField("to", job.To).Debug("email sent")
	}
}
