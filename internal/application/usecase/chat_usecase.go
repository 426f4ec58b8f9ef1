package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/parrillafit-api/internal/application/dto"
	"github.com/jhoicas/parrillafit-api/internal/application/ports"
	"github.com/jhoicas/parrillafit-api/internal/domain/entity"
	"github.com/jhoicas/parrillafit-api/internal/domain/repository"
	"github.com/jhoicas/parrillafit-api/pkg/logger"
)

const (
	chatSourceLLM      = "llm"
	chatSourceFallback = "fallback"

	chatGreeting = "Cuéntame qué te gusta: carnes, pescados, vegetariano o sin gluten."
	chatDefault  = "Gracias. Puedo recomendarte entradas sin lácteos o platos principales sin gluten. ¿Prefieres carnes o marinos?"
)

// ChatUseCase asistente de recomendaciones del menú.
// Sin asistente configurado, o si la llamada falla, responde con textos fijos.
type ChatUseCase struct {
	assistant ports.ChatAssistant
	users     repository.UserRepository
	dishes    repository.DishRepository
	log       *logger.Logger
	timeout   time.Duration
}

// NewChatUseCase construye el caso de uso. assistant puede ser nil.
func NewChatUseCase(assistant ports.ChatAssistant, users repository.UserRepository, dishes repository.DishRepository, log *logger.Logger) *ChatUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ChatUseCase{assistant: assistant, users: users, dishes: dishes, log: log.Component("chat"), timeout: 10 * time.Second}
}

// Reply responde el mensaje. userID vacío = visitante anónimo.
// Este endpoint nunca falla por el store ni por el modelo: degrada a la respuesta fija.
func (uc *ChatUseCase) Reply(ctx context.Context, userID string, in dto.ChatRequest) *dto.ChatResponse {
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return &dto.ChatResponse{Reply: chatGreeting, Source: chatSourceFallback}
	}
	if uc.assistant == nil {
		return &dto.ChatResponse{Reply: chatDefault, Source: chatSourceFallback}
	}

	// Timeout de 10 s: las llamadas a LLMs pueden demorar varios segundos.
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	prompt := ports.ChatPrompt{Message: msg}
	if userID != "" {
		if u, err := uc.users.FindByID(ctx, userID); err != nil {
			uc.log.Warn().Err(err).Msg("chat: sin preferencias del usuario")
		} else if u != nil {
			prefs := u.Preferences.Normalize()
			prompt.UserName = u.Name
			prompt.Preferences = &prefs
		}
	}
	available := true
	if menu, err := uc.dishes.List(ctx, entity.DishFilter{Available: &available, Limit: 100}); err != nil {
		uc.log.Warn().Err(err).Msg("chat: sin menú")
	} else {
		prompt.Menu = menu
	}

	reply, err := uc.assistant.Reply(ctx, prompt)
	if err != nil || strings.TrimSpace(reply) == "" {
		uc.log.Warn().Err(err).Msg("chat: asistente no respondió; respuesta fija")
		return &dto.ChatResponse{Reply: chatDefault, Source: chatSourceFallback}
	}
	return &dto.ChatResponse{Reply: strings.TrimSpace(reply), Source: chatSourceLLM}
}
