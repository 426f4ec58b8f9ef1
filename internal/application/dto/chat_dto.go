package dto

// ChatRequest mensaje del cliente al asistente. Vacío recibe la pregunta inicial.
type ChatRequest struct {
	Message string `json:"message" validate:"max=1000"`
}

// ChatResponse respuesta del asistente. Source indica "llm" o "fallback".
type ChatResponse struct {
	Reply  string `json:"reply"`
	Source string `json:"source"`
}
