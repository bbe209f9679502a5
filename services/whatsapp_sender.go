// services/whatsapp_sender.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

const (
	wabaTemplateName = "primer_recordatorio_cobranza"
	wabaGraphBaseURL = "https://graph.facebook.com/v19.0"
)

// WabaSender sends pre-approved template messages through the WhatsApp
// Business (Graph) API, keyed by the tenant phone number ID.
type WabaSender struct {
	httpClient    *http.Client
	baseURL       string
	phoneNumberID string
	token         string
}

func NewWabaSender() (*WabaSender, error) {
	phoneNumberID := os.Getenv("WABA_PHONE_NUMBER_ID")
	if phoneNumberID == "" {
		return nil, errors.New("WABA_PHONE_NUMBER_ID not set")
	}
	token := os.Getenv("WABA_TOKEN")
	if token == "" {
		return nil, errors.New("WABA_TOKEN not set")
	}

	return &WabaSender{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		baseURL:       wabaGraphBaseURL,
		phoneNumberID: phoneNumberID,
		token:         token,
	}, nil
}

type wabaTemplateParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type wabaTemplateComponent struct {
	Type       string                  `json:"type"`
	Parameters []wabaTemplateParameter `json:"parameters"`
}

type wabaTemplatePayload struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Template         struct {
		Name     string `json:"name"`
		Language struct {
			Code string `json:"code"`
		} `json:"language"`
		Components []wabaTemplateComponent `json:"components"`
	} `json:"template"`
}

// SendTemplate renders and sends the approved reminder template. On success it
// returns the exact text the template expands to for the given parameters,
// which is what gets persisted as the message content.
func (s *WabaSender) SendTemplate(ctx context.Context, phone, clientName, companyName, currency string, total float64, dueDate string) (string, error) {
	url := fmt.Sprintf("%s/%s/messages", s.baseURL, s.phoneNumberID)
	totalText := strconv.FormatFloat(total, 'f', -1, 64)

	sentText := fmt.Sprintf(
		"Hola %s. 👋 Te contactamos de %s en relación a tu factura pendiente por un total de %s %s, con vencimiento el día %s. "+
			"Le recordamos que mantener sus pagos al día le permite seguir disfrutando de nuestros servicios sin interrupciones. "+
			"Puedes gestionar tu pago o subir tu comprobante directamente en nuestro portal. Si tienes alguna duda, estamos para ayudarte. 😊",
		clientName, companyName, currency, totalText, dueDate,
	)

	payload := wabaTemplatePayload{
		MessagingProduct: "whatsapp",
		To:               phone,
		Type:             "template",
	}
	payload.Template.Name = wabaTemplateName
	payload.Template.Language.Code = "es"
	payload.Template.Components = []wabaTemplateComponent{
		{
			Type: "body",
			Parameters: []wabaTemplateParameter{
				{Type: "text", Text: clientName},
				{Type: "text", Text: companyName},
				{Type: "text", Text: currency},
				{Type: "text", Text: totalText},
				{Type: "text", Text: dueDate},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("whatsapp provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("whatsapp provider rejected send: status %d: %s", resp.StatusCode, detail)
	}

	return sentText, nil
}
