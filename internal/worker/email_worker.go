package worker

// email_worker.go
// Processes email jobs from QueueEmail: welcome mail for newly created
// accounts and kwitansi delivery for paid transaksi.

import (
	"context"
	"encoding/json"
	"fmt"

	"santripay/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailPayload is the job envelope sent to QueueEmail.
// Attachment is optional — when set it points at a generated kwitansi PDF.
type EmailPayload struct {
	To         string `json:"to"`
	Name       string `json:"name"`
	Subject    string `json:"subject,omitempty"`
	Body       string `json:"body,omitempty"`
	Attachment string `json:"attachment,omitempty"`
}

// EmailWorker delivers queued mail via SMTP.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends one email job. A non-nil return requeues the job.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil // malformed payloads are unrecoverable — do not retry
	}
	if payload.To == "" {
		log.Warn().Msg("email_worker: empty recipient — skipping")
		return nil
	}

	subject := payload.Subject
	body := payload.Body
	if subject == "" {
		subject = "Selamat datang di SantriPay"
	}
	if body == "" {
		body = fmt.Sprintf(
			"Halo %s,\n\nAkun Anda telah dibuat. Silakan login menggunakan email ini.\n\nSantriPay",
			payload.Name,
		)
	}

	if err := w.mailer.Send(payload.To, subject, body, payload.Attachment); err != nil {
		log.Error().Err(err).Str("to", payload.To).Msg("email_worker: send failed")
		return err
	}
	log.Info().Str("to", payload.To).Msg("email_worker: sent")
	return nil
}
