// services/ai_generator.go
package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"cobranzas-backend/config"
	"cobranzas-backend/models"

	openai "github.com/sashabaranov/go-openai"
)

// AIGenerator writes reminder copy with the OpenAI chat API. It never fails
// outward: any provider error degrades to FallbackContent.
type AIGenerator struct {
	client *openai.Client
}

func NewAIGenerator() (*AIGenerator, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY not set")
	}
	return &AIGenerator{client: openai.NewClient(apiKey)}, nil
}

func (g *AIGenerator) Generate(ctx context.Context, ticket models.Ticket, companyName string, reminder models.Reminder) string {
	systemPrompt := fmt.Sprintf(
		`Actúa como un agente de cobranza profesional para la empresa "%s". Tu tarea es redactar recordatorios de pago efectivos y cordiales.`,
		companyName,
	)

	userPrompt := fmt.Sprintf(`Redacta un mensaje para el cliente "%s".

Datos de la deuda:
- Monto: %s %v
- Vencimiento: %s
- Canal de envío: %s
- Instrucción base: %s

Reglas de formato:
1. Si es WhatsApp: Usa emojis, sé breve y directo.
2. Si es Email: Usa un asunto claro y cuerpo formal.
3. No inventes enlaces. Solo menciona que puede subir su comprobante en el portal de pagos.
4. Devuelve SOLO el texto del mensaje, sin comillas ni introducciones.`,
		ticket.Client.Name, ticket.Currency, ticket.Total, dueDateString(ticket.DueDate), reminder.Channel, reminder.Template,
	)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		MaxTokens:   300,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		config.Log.Warnf("openai completion failed, using fallback content: %v", err)
		return FallbackContent(ticket)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		config.Log.Warn("openai returned an empty completion, using fallback content")
		return FallbackContent(ticket)
	}

	return resp.Choices[0].Message.Content
}

// FallbackContent is the deterministic reminder text used whenever generation
// fails. It interpolates the client name, amount, currency and due date.
func FallbackContent(ticket models.Ticket) string {
	return fmt.Sprintf(
		"Hola %s, le recordamos que su factura de %s %v con vencimiento el %s se encuentra pendiente.",
		ticket.Client.Name, ticket.Currency, ticket.Total, dueDateString(ticket.DueDate),
	)
}
