package airtable

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/parrillafit-api/internal/domain"
	"github.com/jhoicas/parrillafit-api/pkg/config"
	"github.com/jhoicas/parrillafit-api/pkg/logger"
)

// ErrNotConfigured el store no tiene API key o base id: todas las operaciones fallan rápido con 503.
var ErrNotConfigured = fmt.Errorf("%w: faltan AIRTABLE_API_KEY/AIRTABLE_TOKEN o AIRTABLE_BASE_ID", domain.ErrStoreUnavailable)

// Entity nombre lógico de una tabla.
type Entity string

const (
	EntityUsers  Entity = "Users"
	EntityDishes Entity = "Dishes"
)

// Tables resuelve entidades lógicas a nombres físicos configurables.
type Tables struct {
	Users  string
	Dishes string
}

// Resolve devuelve el nombre físico; vacío cae al nombre por defecto.
func (t Tables) Resolve(e Entity) string {
	switch e {
	case EntityUsers:
		if t.Users != "" {
			return t.Users
		}
		return "Users"
	case EntityDishes:
		if t.Dishes != "" {
			return t.Dishes
		}
		return "Platillos"
	}
	return string(e)
}

// Settings parámetros de conexión.
type Settings struct {
	APIKey  string
	BaseID  string
	BaseURL string
	Tables  Tables
	Timeout time.Duration
}

// SettingsFromConfig adapta la configuración de la app.
func SettingsFromConfig(cfg config.AirtableConfig) Settings {
	return Settings{
		APIKey:  cfg.APIKey,
		BaseID:  cfg.BaseID,
		BaseURL: cfg.BaseURL,
		Tables:  Tables{Users: cfg.UsersTable, Dishes: cfg.DishesTable},
		Timeout: cfg.Timeout,
	}
}

// Conn conexión perezosa y compartida por todo el proceso.
// La primera inicialización exitosa gana; las siguientes llamadas reutilizan el mismo Client.
// Sin configuración devuelve ErrNotConfigured en lugar de fallar al arrancar.
type Conn struct {
	settings Settings
	log      *logger.Logger

	client atomic.Pointer[Client]
	mu     sync.Mutex
	warned bool
}

// NewConn no abre nada todavía: la conexión se crea en el primer uso.
func NewConn(s Settings, log *logger.Logger) *Conn {
	if log == nil {
		log = logger.Nop()
	}
	return &Conn{settings: s, log: log.Component("airtable")}
}

// Client devuelve el cliente listo o ErrNotConfigured. Seguro para uso concurrente.
func (c *Conn) Client() (*Client, error) {
	if cl := c.client.Load(); cl != nil {
		return cl, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cl := c.client.Load(); cl != nil {
		return cl, nil
	}
	if c.settings.APIKey == "" || c.settings.BaseID == "" {
		if !c.warned {
			c.warned = true
			c.log.Warn().Msg("faltan AIRTABLE_API_KEY/AIRTABLE_TOKEN o AIRTABLE_BASE_ID; store no disponible")
		}
		return nil, ErrNotConfigured
	}

	cl := newClient(c.settings, c.log)
	c.client.Store(cl)
	c.log.Info().Str("base", c.settings.BaseID).Msg("conexión a Airtable inicializada")
	return cl, nil
}

// Ready indica si el store está configurado (inicializa si hace falta).
func (c *Conn) Ready() bool {
	_, err := c.Client()
	return err == nil
}

// Table nombre físico de la entidad.
func (c *Conn) Table(e Entity) string {
	return c.settings.Tables.Resolve(e)
}
