package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	JWT       JWTConfig
	Auth      AuthConfig
	Cookie    CookieConfig
	Airtable  AirtableConfig
	AI        AIConfig
	Menu      MenuConfig
	RateLimit RateLimitConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// IsProduction indica si la app corre en producción.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins []string // orígenes permitidos con credenciales; vacío = ninguno
	DocsPath    string   // ruta al swagger.json servido en /docs
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// TTL devuelve la vigencia del token como time.Duration.
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.Expiration) * time.Minute
}

// AuthConfig parámetros del codec de contraseñas.
type AuthConfig struct {
	BcryptCost int
}

// CookieConfig cookie de sesión.
type CookieConfig struct {
	Name      string
	CrossSite bool // SameSite=None + Secure (frontend en otro dominio)
}

// AirtableConfig conexión al record store. APIKey y BaseID vacíos dejan el store en modo "no disponible".
type AirtableConfig struct {
	APIKey      string
	BaseID      string
	BaseURL     string
	UsersTable  string
	DishesTable string
	Timeout     time.Duration
}

// AIConfig asistente de chat (opcional).
type AIConfig struct {
	AnthropicAPIKey string
	AnthropicModel  string
}

// MenuConfig carta en PDF. QRURL vacío omite el código QR.
type MenuConfig struct {
	Title string
	QRURL string
}

// RateLimitConfig límite de intentos en /auth (login/registro).
type RateLimitConfig struct {
	AuthPerMinute int // 0 = deshabilitado
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, AIRTABLE_API_KEY, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env o config.env; se ignora si no existe
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	env := getString(v, "APP_ENV", getString(v, "NODE_ENV", "development"))

	cfg := &Config{
		App: AppConfig{
			Env:      env,
			Name:     getString(v, "APP_NAME", "parrillafit-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", getInt(v, "PORT", 3000)),
			CORSOrigins: splitList(getString(v, "CORS_ORIGIN", "")),
			DocsPath:    getString(v, "DOCS_PATH", "./docs/swagger.json"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 7*24*60),
			Issuer:     getString(v, "JWT_ISSUER", "parrillafit-api"),
		},
		Auth: AuthConfig{
			BcryptCost: getInt(v, "BCRYPT_COST", 10),
		},
		Cookie: CookieConfig{
			Name:      getString(v, "COOKIE_NAME", "pf_auth"),
			CrossSite: getBool(v, "COOKIE_CROSS_SITE", false),
		},
		Airtable: AirtableConfig{
			APIKey:      getString(v, "AIRTABLE_API_KEY", getString(v, "AIRTABLE_TOKEN", "")),
			BaseID:      getString(v, "AIRTABLE_BASE_ID", ""),
			BaseURL:     getString(v, "AIRTABLE_BASE_URL", "https://api.airtable.com/v0"),
			UsersTable:  getString(v, "AIRTABLE_TABLE_USERS", "Users"),
			DishesTable: getString(v, "AIRTABLE_TABLE_DISHES", "Platillos"),
			Timeout:     time.Duration(getInt(v, "AIRTABLE_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		AI: AIConfig{
			AnthropicAPIKey: getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getString(v, "ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
		},
		Menu: MenuConfig{
			Title: getString(v, "MENU_TITLE", "Parrilla Fit"),
			QRURL: getString(v, "MENU_QR_URL", ""),
		},
		RateLimit: RateLimitConfig{
			AuthPerMinute: getInt(v, "RATE_LIMIT_AUTH_PER_MINUTE", 20),
		},
	}

	if cfg.JWT.Secret == "" {
		if cfg.App.IsProduction() {
			return nil, fmt.Errorf("config: JWT_SECRET es obligatorio en producción")
		}
		cfg.JWT.Secret = "dev-secret"
	}
	if cfg.JWT.Expiration <= 0 {
		return nil, fmt.Errorf("config: JWT_EXPIRATION_MINUTES debe ser positivo")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		if s := strings.TrimSpace(v.GetString(key)); s != "" {
			return s
		}
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	switch v.Get(key).(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return n
	default:
		return v.GetInt(key)
	}
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
