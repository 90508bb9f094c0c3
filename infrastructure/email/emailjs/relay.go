// ABOUTME: EmailJS implementation of the contact email relay
// ABOUTME: Posts the form values with the service, template and public key identifiers

package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"

	coreerrors "github.com/mishurahman616/portfolio/core/errors"
	"github.com/mishurahman616/portfolio/core/interfaces"
)

// DefaultEndpoint is the EmailJS REST send endpoint
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// Config holds the three opaque identifiers plus an optional private token
type Config struct {
	Endpoint    string
	ServiceID   string
	TemplateID  string
	PublicKey   string
	AccessToken string
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// Relay sends contact messages through EmailJS
type Relay struct {
	client interfaces.HTTPClient
	cfg    Config
}

// NewRelay creates a relay. Missing identifiers are reported on Send.
func NewRelay(client interfaces.HTTPClient, cfg Config) *Relay {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &Relay{client: client, cfg: cfg}
}

// Send posts one message. Any non-2xx answer is a failure.
func (r *Relay) Send(ctx context.Context, msg interfaces.EmailMessage) error {
	if r.cfg.ServiceID == "" || r.cfg.TemplateID == "" || r.cfg.PublicKey == "" {
		return errors.New("emailjs relay is not configured")
	}

	payload, err := json.Marshal(sendRequest{
		ServiceID:   r.cfg.ServiceID,
		TemplateID:  r.cfg.TemplateID,
		UserID:      r.cfg.PublicKey,
		AccessToken: r.cfg.AccessToken,
		TemplateParams: map[string]string{
			"from_name":  msg.Name,
			"from_email": msg.Email,
			"reply_to":   msg.Email,
			"message":    msg.Message,
		},
	})
	if err != nil {
		return err
	}

	resp, err := r.client.Post(ctx, r.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return &coreerrors.SourceError{Source: "emailjs", Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body(), 512))
		return &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    string(detail),
			API:        "emailjs",
		}
	}
	return nil
}
