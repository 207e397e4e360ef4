package email

import (
	"time"

	"github.com/google/uuid"
)

// ReasonNoEmail is recorded when a recipient is skipped for having no
// address on file.
const ReasonNoEmail = "no email on file"

// Recipient is one selected property in a batch send, already resolved to an
// address and a render context by the caller.
type Recipient struct {
	Label   string
	Email   string
	Context RenderContext
}

// Delivery is the outcome for one recipient.
type Delivery struct {
	Label   string
	Email   string
	Subject string
	Status  string // "sent" or "failed"
	Reason  string
	SentAt  time.Time
}

// DispatchResult is the aggregate report for one batch.
type DispatchResult struct {
	BatchID    string
	Sent       int
	Failed     int
	Deliveries []Delivery
}

// Dispatcher runs batch sends through a Sender, one recipient at a time.
type Dispatcher struct {
	sender Sender
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// Dispatch renders and sends one message per recipient, in the order the
// recipients were selected. A recipient without an email address, or a failed
// send, is counted as a failure and never stops the rest of the batch.
func (d *Dispatcher) Dispatch(subjectTemplate, bodyTemplate string, recipients []Recipient) DispatchResult {
	result := DispatchResult{
		BatchID:    uuid.NewString(),
		Deliveries: make([]Delivery, 0, len(recipients)),
	}

	for _, r := range recipients {
		delivery := Delivery{
			Label:  r.Label,
			Email:  r.Email,
			SentAt: time.Now(),
		}

		if r.Email == "" {
			delivery.Status = "failed"
			delivery.Reason = ReasonNoEmail
			result.Failed++
			result.Deliveries = append(result.Deliveries, delivery)
			continue
		}

		subject := Render(subjectTemplate, r.Context)
		body := Render(bodyTemplate, r.Context)
		delivery.Subject = subject

		if err := d.sender.Send(r.Email, subject, body); err != nil {
			delivery.Status = "failed"
			delivery.Reason = err.Error()
			result.Failed++
		} else {
			delivery.Status = "sent"
			result.Sent++
		}
		result.Deliveries = append(result.Deliveries, delivery)
	}

	return result
}
