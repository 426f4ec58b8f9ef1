package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parrillafit-api/internal/application/auth"
	"github.com/jhoicas/parrillafit-api/internal/application/usecase"
	"github.com/jhoicas/parrillafit-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	DishUC        *usecase.DishUseCase
	PreferencesUC *usecase.PreferencesUseCase
	UserUC        *usecase.UserUseCase
	MenuUC        *usecase.MenuUseCase
	ChatUC        *usecase.ChatUseCase
	Tokens        TokenVerifier
	Cookie        CookieSettings
	Store         StoreProbe
	ServiceName   string
	// AuthLimiter se aplica a /api/auth (nil = sin límite).
	AuthLimiter fiber.Handler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	health := NewHealthHandler(deps.ServiceName, deps.Store)
	app.Get("/health", health.Live)
	app.Get("/health/store", health.Store)

	api := app.Group("/api")
	authRequired := AuthMiddleware(deps.Tokens, deps.Cookie.Name)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	authGroup := api.Group("/auth")
	if deps.AuthLimiter != nil {
		authGroup.Use(deps.AuthLimiter)
	}
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", authRequired, authHandler.Me)
	authGroup.Delete("/me", authRequired, authHandler.DeleteMe)
	authGroup.Put("/password", authRequired, authHandler.ChangePassword)

	// Dishes (lectura pública, escritura admin)
	dishHandler := NewDishHandler(deps.DishUC)
	dishes := api.Group("/dishes")
	dishes.Get("/", dishHandler.List)
	dishes.Get("/:id", dishHandler.GetByID)
	dishes.Post("/", authRequired, adminOnly, dishHandler.Create)
	dishes.Patch("/:id", authRequired, adminOnly, dishHandler.Update)
	dishes.Delete("/:id", authRequired, adminOnly, dishHandler.Delete)

	// Preferences (solo las propias)
	prefHandler := NewPreferenceHandler(deps.PreferencesUC)
	prefs := api.Group("/preferences", authRequired)
	prefs.Get("/me", prefHandler.Get)
	prefs.Put("/me", prefHandler.Update)
	prefs.Get("/:recordId", prefHandler.Get)
	prefs.Put("/:recordId", prefHandler.Update)

	// Users (admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := api.Group("/users", authRequired, adminOnly)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Delete("/:id", userHandler.Delete)
	users.Patch("/:id/role", userHandler.UpdateRole)

	// Menu y chat (públicos)
	api.Get("/menu.pdf", NewMenuHandler(deps.MenuUC).PDF)
	api.Post("/chat", OptionalAuth(deps.Tokens, deps.Cookie.Name), NewChatHandler(deps.ChatUC).Reply)
}
