package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/parrillafit-api/internal/application/ports"
	"github.com/jhoicas/parrillafit-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que AnthropicService implementa ChatAssistant.
var _ ports.ChatAssistant = (*AnthropicService)(nil)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
	defaultModel     = "claude-3-5-haiku-20241022"

	anthropicSystemPrompt = `Eres el asistente del restaurante Parrilla Fit.
Recomienda platillos ÚNICAMENTE del menú disponible que se te entrega.
Nunca recomiendes un platillo que contenga un ingrediente listado en las alergias del cliente.
Evita lo que el cliente indica que no le gusta y prioriza lo que le gusta.
Responde en español, en un máximo de 3 oraciones, sin markdown.`
)

// ErrNotConfigured no hay ANTHROPIC_API_KEY; el caso de uso responde con textos fijos.
var ErrNotConfigured = errors.New("AI: ANTHROPIC_API_KEY no configurado")

// AnthropicService adaptador que implementa ChatAssistant usando la API REST de Anthropic (Messages).
type AnthropicService struct {
	apiKey string
	model  string
	http   *resty.Client
}

// NewAnthropicService construye el adaptador. baseURL vacío usa la API pública.
// Si apiKey está vacío las llamadas devuelven ErrNotConfigured en lugar de panic.
func NewAnthropicService(apiKey, model, baseURL string) *AnthropicService {
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}
	hc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		// Timeout de red de 25 s; el use case impone además un context.WithTimeout de 10 s.
		SetTimeout(25*time.Second).
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetHeader("content-type", "application/json")
	return &AnthropicService{apiKey: apiKey, model: model, http: hc}
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Reply envía el mensaje del cliente junto con el menú y sus preferencias.
func (s *AnthropicService) Reply(ctx context.Context, prompt ports.ChatPrompt) (string, error) {
	if s.apiKey == "" {
		return "", ErrNotConfigured
	}

	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 400,
		System:    anthropicSystemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: buildUserContent(prompt)},
		},
	}

	var out, errResp anthropicResponse
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		SetError(&errResp).
		Post("/v1/messages")
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}

	// Manejar errores HTTP de la API de Anthropic
	if resp.IsError() {
		if errResp.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d", resp.StatusCode())
	}

	var b strings.Builder
	for _, c := range out.Content {
		if c.Type == "text" {
			b.WriteString(c.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("AI: el modelo devolvió respuesta vacía")
	}
	return text, nil
}

// buildUserContent arma el mensaje con el menú y las preferencias como contexto.
func buildUserContent(p ports.ChatPrompt) string {
	var b strings.Builder
	b.WriteString("Menú disponible:\n")
	if len(p.Menu) == 0 {
		b.WriteString("- (sin información del menú)\n")
	}
	for _, d := range p.Menu {
		fmt.Fprintf(&b, "- %s (%s, $%s)", d.Name, nonEmpty(string(d.Category), "sin categoría"), d.Price.StringFixed(2))
		if len(d.Tags) > 0 {
			b.WriteString(" [" + joinTags(d.Tags) + "]")
		}
		if desc := strings.TrimSpace(d.Description); desc != "" {
			b.WriteString(": " + desc)
		}
		b.WriteString("\n")
	}

	if p.Preferences != nil {
		b.WriteString("\nCliente")
		if p.UserName != "" {
			b.WriteString(" " + p.UserName)
		}
		b.WriteString(":\n")
		fmt.Fprintf(&b, "- Le gusta: %s\n", listOrNone(p.Preferences.Likes))
		fmt.Fprintf(&b, "- No le gusta: %s\n", listOrNone(p.Preferences.Dislikes))
		fmt.Fprintf(&b, "- Alergias: %s\n", listOrNone(p.Preferences.Allergies))
	}

	b.WriteString("\nMensaje del cliente: ")
	b.WriteString(p.Message)
	return b.String()
}

func joinTags(tags []entity.Tag) string {
	s := make([]string, 0, len(tags))
	for _, t := range tags {
		s = append(s, string(t))
	}
	return strings.Join(s, ", ")
}

func listOrNone(l []string) string {
	if len(l) == 0 {
		return "ninguno"
	}
	return strings.Join(l, ", ")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

