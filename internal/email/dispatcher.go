package email

import (
	"sync"

	"go.uber.org/zap"
)

type verificationJob struct {
	to    string
	token string
}

// VerificationSender is the delivery half of the dispatcher, separated so
// tests can swap in a fake.
type VerificationSender interface {
	SendVerificationEmail(to, token string) error
}

// Dispatcher decouples email delivery from the request path. Enqueue never
// blocks the caller and delivery failures are logged, never surfaced.
type Dispatcher struct {
	jobs chan verificationJob
	log  *zap.Logger
	wg   sync.WaitGroup

	closeOnce sync.Once
}

func NewDispatcher(sender VerificationSender, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		jobs: make(chan verificationJob, 256),
		log:  log,
	}
	d.wg.Add(1)
	go d.run(sender)
	return d
}

func (d *Dispatcher) run(sender VerificationSender) {
	defer d.wg.Done()
	for job := range d.jobs {
		if err := sender.SendVerificationEmail(job.to, job.token); err != nil {
			d.log.Error("failed to send verification email",
				zap.String("to", job.to),
				zap.Error(err),
			)
		}
	}
}

// EnqueueVerification schedules a verification email. If the queue is full
// the job is dropped and logged; the triggering request is never held up.
func (d *Dispatcher) EnqueueVerification(to, token string) {
	select {
	case d.jobs <- verificationJob{to: to, token: token}:
	default:
		d.log.Warn("email queue full, dropping verification email",
			zap.String("to", to),
		)
	}
}

// Close drains the queue and stops the worker.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.jobs)
	})
	d.wg.Wait()
}
