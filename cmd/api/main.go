package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/parrillafit-api/internal/application/auth"
	"github.com/jhoicas/parrillafit-api/internal/application/dto"
	"github.com/jhoicas/parrillafit-api/internal/application/ports"
	"github.com/jhoicas/parrillafit-api/internal/application/usecase"
	infraai "github.com/jhoicas/parrillafit-api/internal/infrastructure/ai"
	"github.com/jhoicas/parrillafit-api/internal/infrastructure/airtable"
	infrapdf "github.com/jhoicas/parrillafit-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/parrillafit-api/internal/interfaces/http"
	"github.com/jhoicas/parrillafit-api/pkg/config"
	"github.com/jhoicas/parrillafit-api/pkg/jwt"
	"github.com/jhoicas/parrillafit-api/pkg/logger"
	"github.com/jhoicas/parrillafit-api/pkg/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// El store se conecta en el primer uso; sin credenciales la API responde 503.
	conn := airtable.NewConn(airtable.SettingsFromConfig(cfg.Airtable), log)
	userRepo := airtable.NewUserRepository(conn)
	dishRepo := airtable.NewDishRepository(conn)

	tokens, err := jwt.NewService(jwt.Config{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.JWT.TTL(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("servicio de tokens")
	}
	passwords := password.NewCodec(cfg.Auth.BcryptCost)

	var assistant ports.ChatAssistant
	if cfg.AI.AnthropicAPIKey != "" {
		assistant = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel, "")
	} else {
		log.Info().Msg("ANTHROPIC_API_KEY vacío, el chat usará respuestas por defecto")
	}

	authUC := auth.NewAuthUseCase(userRepo, passwords, tokens)
	dishUC := usecase.NewDishUseCase(dishRepo)
	preferencesUC := usecase.NewPreferencesUseCase(userRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	menuUC := usecase.NewMenuUseCase(dishRepo, infrapdf.NewMenuPDFGenerator(cfg.Menu.QRURL), cfg.Menu.Title)
	chatUC := usecase.NewChatUseCase(assistant, userRepo, dishRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 20,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))

	// Con credenciales no se admite "*": sin CORS_ORIGIN no se monta.
	if len(cfg.HTTP.CORSOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(cfg.HTTP.CORSOrigins, ","),
			AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
			AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowCredentials: true,
		}))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsPath,
			Path:     "docs",
			Title:    "Parrilla Fit API",
		}))
	}

	var authLimiter fiber.Handler
	if cfg.RateLimit.AuthPerMinute > 0 {
		authLimiter = limiter.New(limiter.Config{
			Max:        cfg.RateLimit.AuthPerMinute,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiados intentos, espere un minuto"})
			},
		})
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		DishUC:        dishUC,
		PreferencesUC: preferencesUC,
		UserUC:        userUC,
		MenuUC:        menuUC,
		ChatUC:        chatUC,
		Tokens:        tokens,
		Cookie: httpRouter.CookieSettings{
			Name:      cfg.Cookie.Name,
			CrossSite: cfg.Cookie.CrossSite,
			Secure:    cfg.App.IsProduction(),
		},
		Store:       conn,
		ServiceName: cfg.App.Name,
		AuthLimiter: authLimiter,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
