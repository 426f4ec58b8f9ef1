package ports

import (
	"context"

	"github.com/jhoicas/parrillafit-api/internal/domain/entity"
)

// ChatPrompt contexto que recibe el asistente del menú.
// Preferences es nil para visitantes anónimos; Menu contiene solo platillos disponibles.
type ChatPrompt struct {
	Message     string
	UserName    string
	Preferences *entity.Preferences
	Menu        []*entity.Dish
}

// ChatAssistant define el puerto de salida hacia el modelo de lenguaje.
// Cualquier adaptador (Anthropic, mock) debe implementar esta interfaz.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type ChatAssistant interface {
	Reply(ctx context.Context, prompt ChatPrompt) (string, error)
}
