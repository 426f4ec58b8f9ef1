package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/parrillafit-api/internal/application/auth"
	"github.com/jhoicas/parrillafit-api/internal/application/usecase"
	"github.com/jhoicas/parrillafit-api/internal/domain"
	"github.com/jhoicas/parrillafit-api/internal/domain/entity"
	"github.com/jhoicas/parrillafit-api/internal/domain/repository"
	"github.com/jhoicas/parrillafit-api/internal/infrastructure/airtable"
	"github.com/jhoicas/parrillafit-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/parrillafit-api/internal/interfaces/http"
	"github.com/jhoicas/parrillafit-api/pkg/logger"
	"github.com/jhoicas/parrillafit-api/pkg/password"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memUsers struct {
	mu   sync.Mutex
	seq  int
	rows map[string]entity.User
}

func newMemUsers() *memUsers { return &memUsers{rows: map[string]entity.User{}} }

func (m *memUsers) FindByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUsers) FindByPhone(_ context.Context, phone string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Phone == phone {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) List(_ context.Context, f entity.UserFilter) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.User
	for _, u := range m.rows {
		if f.Role != nil && u.Role != *f.Role {
			continue
		}
		u := u
		out = append(out, &u)
	}
	return out, nil
}

func (m *memUsers) Create(_ context.Context, u *entity.User) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	row := *u
	row.ID = fmt.Sprintf("recU%04d", m.seq)
	m.rows[row.ID] = row
	return &row, nil
}

func (m *memUsers) Update(_ context.Context, id string, p entity.UserPatch) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Preferences != nil {
		u.Preferences = *p.Preferences
	}
	m.rows[id] = u
	return &u, nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.rows, id)
	return nil
}

type memDishes struct {
	mu   sync.Mutex
	seq  int
	rows []entity.Dish
}

func (m *memDishes) find(id string) int {
	for i := range m.rows {
		if m.rows[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *memDishes) FindByID(_ context.Context, id string) (*entity.Dish, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.find(id); i >= 0 {
		d := m.rows[i]
		return &d, nil
	}
	return nil, nil
}

func (m *memDishes) List(_ context.Context, f entity.DishFilter) ([]*entity.Dish, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Dish
	q := strings.ToLower(f.Query)
	for _, d := range m.rows {
		if f.Available != nil && d.Available != *f.Available {
			continue
		}
		if f.Category != nil && d.Category != *f.Category {
			continue
		}
		if f.Tag != nil && !d.HasTag(*f.Tag) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(d.Name+" "+d.Description), q) {
			continue
		}
		d := d
		out = append(out, &d)
	}
	return out, nil
}

func (m *memDishes) Create(_ context.Context, d *entity.Dish) (*entity.Dish, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	row := *d
	row.ID = fmt.Sprintf("recD%04d", m.seq)
	m.rows = append(m.rows, row)
	return &row, nil
}

func (m *memDishes) Update(_ context.Context, id string, p entity.DishPatch) (*entity.Dish, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(id)
	if i < 0 {
		return nil, domain.ErrDishNotFound
	}
	if p.Name != nil {
		m.rows[i].Name = *p.Name
	}
	if p.Available != nil {
		m.rows[i].Available = *p.Available
	}
	if p.Price != nil {
		m.rows[i].Price = *p.Price
	}
	d := m.rows[i]
	return &d, nil
}

func (m *memDishes) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(id)
	if i < 0 {
		return domain.ErrDishNotFound
	}
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// App de prueba
// ──────────────────────────────────────────────────────────────────────────────

type readyProbe bool

func (r readyProbe) Ready() bool { return bool(r) }

type testEnv struct {
	app    *fiber.App
	users  repository.UserRepository
	dishes repository.DishRepository
	codec  *password.Codec
}

func newEnv(t *testing.T, users repository.UserRepository, dishes repository.DishRepository, store apphttp.StoreProbe) *testEnv {
	t.Helper()
	codec := password.NewCodec(bcrypt.MinCost)
	tokens := newTokens(t)
	log := logger.Nop()

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(users, codec, tokens),
		DishUC:        usecase.NewDishUseCase(dishes),
		PreferencesUC: usecase.NewPreferencesUseCase(users),
		UserUC:        usecase.NewUserUseCase(users),
		MenuUC:        usecase.NewMenuUseCase(dishes, pdf.NewMenuPDFGenerator(""), "Parrilla Fit"),
		ChatUC:        usecase.NewChatUseCase(nil, users, dishes, log),
		Tokens:        tokens,
		Cookie:        apphttp.CookieSettings{Name: testCookie},
		Store:         store,
		ServiceName:   "parrillafit-api",
	})
	return &testEnv{app: app, users: users, dishes: dishes, codec: codec}
}

func newMemEnv(t *testing.T) *testEnv {
	return newEnv(t, newMemUsers(), &memDishes{}, readyProbe(true))
}

// seedUser crea un usuario y devuelve un token de sesión para él.
func (e *testEnv) seedUser(t *testing.T, name, phone string, role entity.Role) (string, string) {
	t.Helper()
	hash, err := e.codec.Hash("secreto1")
	require.NoError(t, err)
	u, err := e.users.Create(context.Background(), &entity.User{
		Name: name, Phone: phone, PasswordHash: hash, Role: role, Preferences: entity.Preferences{}.Normalize(),
	})
	require.NoError(t, err)
	return u.ID, tokenFor(t, u.ID, string(role))
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_RegistroLoginYMe(t *testing.T) {
	env := newMemEnv(t)

	resp := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ana", "phone": "(555) 123-4567", "password": "secreto1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]any
	decodeInto(t, resp, &created)
	assert.Equal(t, "5551234567", created["phone"])
	assert.Equal(t, "user", created["role"])
	assert.NotContains(t, created, "passwordHash")

	resp = env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Otra", "phone": "555-123-4567", "password": "secreto1",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var conflict map[string]any
	decodeInto(t, resp, &conflict)
	assert.Equal(t, "PHONE_EXISTS", conflict["code"])

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"phone": "5551234567", "password": "secreto1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == testCookie {
			cookie = ck
		}
	}
	require.NotNil(t, cookie, "login debe emitir la cookie de sesión")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)

	var login struct {
		Token string `json:"token"`
	}
	decodeInto(t, resp, &login)
	assert.Equal(t, cookie.Value, login.Token)

	// La cookie sola basta para autenticar.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: cookie.Value})
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me map[string]any
	decodeInto(t, resp, &me)
	assert.Equal(t, "Ana", me["name"])
	assert.Equal(t, []any{}, me["likes"])
}

func TestAuth_LoginInvalido_Retorna401(t *testing.T) {
	env := newMemEnv(t)
	env.seedUser(t, "Ana", "5551234567", entity.RoleUser)

	for _, body := range []map[string]string{
		{"phone": "5551234567", "password": "incorrecta"},
		{"phone": "5550000000", "password": "secreto1"},
	} {
		resp := env.do(t, http.MethodPost, "/api/auth/login", "", body)
		var out map[string]any
		decodeInto(t, resp, &out)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "INVALID_CREDENTIALS", out["code"])
	}
}

func TestAuth_CuerpoInvalido_Retorna400(t *testing.T) {
	env := newMemEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{no-json"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	var out map[string]any
	decodeInto(t, resp, &out)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", out["code"])

	resp = env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"name": "Ana", "phone": "555", "password": "123"})
	decodeInto(t, resp, &out)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", out["code"])
	assert.Contains(t, out["message"], "password")
}

func TestAuth_CuentaBorradaConTokenVigente_Retorna401(t *testing.T) {
	env := newMemEnv(t)
	id, token := env.seedUser(t, "Ana", "5551234567", entity.RoleUser)
	require.NoError(t, env.users.Delete(context.Background(), id))

	resp := env.do(t, http.MethodGet, "/api/auth/me", token, nil)
	var out map[string]any
	decodeInto(t, resp, &out)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "ACCOUNT_GONE", out["code"])
}

func TestAuth_LogoutBorraCookie(t *testing.T) {
	env := newMemEnv(t)
	resp := env.do(t, http.MethodPost, "/api/auth/logout", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderSetCookie), testCookie+"=;")
}

func TestAuth_CambioDeContrasena(t *testing.T) {
	env := newMemEnv(t)
	_, token := env.seedUser(t, "Ana", "5551234567", entity.RoleUser)

	resp := env.do(t, http.MethodPut, "/api/auth/password", token, map[string]string{"currentPassword": "mala", "newPassword": "nueva123"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPut, "/api/auth/password", token, map[string]string{"currentPassword": "secreto1", "newPassword": "nueva123"})
	var ok map[string]any
	decodeInto(t, resp, &ok)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, ok["ok"])

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"phone": "5551234567", "password": "nueva123"})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuth_EliminarCuenta(t *testing.T) {
	env := newMemEnv(t)
	_, token := env.seedUser(t, "Ana", "5551234567", entity.RoleUser)

	resp := env.do(t, http.MethodDelete, "/api/auth/me", token, map[string]string{"currentPassword": "mala"})
	var wrong map[string]any
	decodeInto(t, resp, &wrong)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", wrong["code"])

	resp = env.do(t, http.MethodDelete, "/api/auth/me", token, map[string]string{"currentPassword": "secreto1"})
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderSetCookie), testCookie+"=;", "la cookie de sesión se borra")

	// El token sigue firmado pero la cuenta ya no existe.
	resp = env.do(t, http.MethodGet, "/api/auth/me", token, nil)
	var gone map[string]any
	decodeInto(t, resp, &gone)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "ACCOUNT_GONE", gone["code"])

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"phone": "5551234567", "password": "secreto1"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Preferences
// ──────────────────────────────────────────────────────────────────────────────

func TestPreferences_ActualizarDeduplica(t *testing.T) {
	env := newMemEnv(t)
	id, token := env.seedUser(t, "Ana", "5551234567", entity.RoleUser)

	resp := env.do(t, http.MethodPut, "/api/preferences/me", token, map[string][]string{"likes": {"a", "a", " b "}})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/preferences/me", token, nil)
	var prefs map[string][]string
	decodeInto(t, resp, &prefs)
	assert.Equal(t, []string{"a", "b"}, prefs["likes"])
	assert.Equal(t, []string{}, prefs["allergies"])

	// Ruta heredada con el propio id.
	resp = env.do(t, http.MethodGet, "/api/preferences/"+id, token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPreferences_AjenasProhibidas(t *testing.T) {
	env := newMemEnv(t)
	other, _ := env.seedUser(t, "Beto", "5550000001", entity.RoleUser)
	_, token := env.seedUser(t, "Ana", "5550000002", entity.RoleUser)

	resp := env.do(t, http.MethodPut, "/api/preferences/"+other, token, map[string][]string{"likes": {"x"}})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/preferences/me", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dishes
// ──────────────────────────────────────────────────────────────────────────────

func TestDishes_ListadoPublicoFiltrado(t *testing.T) {
	env := newMemEnv(t)
	ctx := context.Background()
	for _, d := range []entity.Dish{
		{Name: "Salmón a la parrilla", Category: entity.CategoryMain, Price: decimal.NewFromInt(180), Available: true},
		{Name: "Salmón ahumado", Category: entity.CategoryStarter, Price: decimal.NewFromInt(95), Available: false},
		{Name: "Flan", Category: entity.CategoryDessert, Price: decimal.NewFromInt(60), Available: true},
	} {
		_, err := env.dishes.Create(ctx, &d)
		require.NoError(t, err)
	}

	resp := env.do(t, http.MethodGet, "/api/dishes?available=false&q=salm", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	decodeInto(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Salmón ahumado", list[0]["name"])
	assert.Equal(t, float64(95), list[0]["price"])
	assert.Equal(t, []any{}, list[0]["tags"])

	resp = env.do(t, http.MethodGet, "/api/dishes?category=Postre", "", nil)
	decodeInto(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Dessert", list[0]["category"])

	resp = env.do(t, http.MethodGet, "/api/dishes?category=Sopas", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDishes_EscrituraSoloAdmin(t *testing.T) {
	env := newMemEnv(t)
	_, userToken := env.seedUser(t, "Ana", "5550000001", entity.RoleUser)
	_, adminToken := env.seedUser(t, "Admin", "5550000002", entity.RoleAdmin)
	body := map[string]any{"name": "Ceviche", "category": "Starter", "price": 120, "tags": []string{"Light"}}

	resp := env.do(t, http.MethodPost, "/api/dishes", "", body)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/dishes", userToken, body)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/dishes", adminToken, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]any
	decodeInto(t, resp, &created)
	assert.Equal(t, false, created["available"])
	id, _ := created["id"].(string)

	resp = env.do(t, http.MethodPatch, "/api/dishes/"+id, adminToken, map[string]any{"available": true})
	var updated map[string]any
	decodeInto(t, resp, &updated)
	assert.Equal(t, true, updated["available"])

	resp = env.do(t, http.MethodDelete, "/api/dishes/"+id, adminToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/dishes/"+id, adminToken, nil)
	var gone map[string]any
	decodeInto(t, resp, &gone)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "DISH_NOT_FOUND", gone["code"])

	resp = env.do(t, http.MethodGet, "/api/dishes/recNOPE", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Users (admin)
// ──────────────────────────────────────────────────────────────────────────────

func TestUsers_Administracion(t *testing.T) {
	env := newMemEnv(t)
	userID, userToken := env.seedUser(t, "Ana", "5550000001", entity.RoleUser)
	adminID, adminToken := env.seedUser(t, "Admin", "5550000002", entity.RoleAdmin)

	resp := env.do(t, http.MethodGet, "/api/users", userToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/users?role=admin", adminToken, nil)
	var list []map[string]any
	decodeInto(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, adminID, list[0]["id"])

	resp = env.do(t, http.MethodGet, "/api/users?role=root", adminToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/users/"+userID+"/role", adminToken, map[string]string{"role": "gerente"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/users/"+userID+"/role", adminToken, map[string]string{"role": "admin"})
	var promoted map[string]any
	decodeInto(t, resp, &promoted)
	assert.Equal(t, "admin", promoted["role"])

	resp = env.do(t, http.MethodDelete, "/api/users/"+adminID, adminToken, nil)
	var self map[string]any
	decodeInto(t, resp, &self)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "SELF_DELETE", self["code"])

	resp = env.do(t, http.MethodDelete, "/api/users/"+userID, adminToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/users/"+userID, adminToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Menú, chat y health
// ──────────────────────────────────────────────────────────────────────────────

func TestMenuPDF(t *testing.T) {
	env := newMemEnv(t)
	_, err := env.dishes.Create(context.Background(), &entity.Dish{
		Name: "Ceviche", Category: entity.CategoryStarter, Price: decimal.NewFromInt(120), Available: true,
	})
	require.NoError(t, err)

	resp := env.do(t, http.MethodGet, "/api/menu.pdf", "", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestChat_SinProveedorRespondeFallback(t *testing.T) {
	env := newMemEnv(t)

	resp := env.do(t, http.MethodPost, "/api/chat", "", map[string]string{"message": "algo sin gluten"})
	var out map[string]string
	decodeInto(t, resp, &out)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "fallback", out["source"])
	assert.NotEmpty(t, out["reply"])
}

func TestHealth(t *testing.T) {
	env := newMemEnv(t)
	resp := env.do(t, http.MethodGet, "/health", "", nil)
	var live map[string]string
	decodeInto(t, resp, &live)
	assert.Equal(t, "ok", live["status"])
	assert.Equal(t, "parrillafit-api", live["service"])

	resp = env.do(t, http.MethodGet, "/health/store", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Sin credenciales del record store la API arranca y responde 503 en lugar de caer.
func TestStoreNoConfigurado_Retorna503(t *testing.T) {
	conn := airtable.NewConn(airtable.Settings{}, logger.Nop())
	env := newEnv(t, airtable.NewUserRepository(conn), airtable.NewDishRepository(conn), conn)

	for _, path := range []string{"/api/dishes", "/health/store"} {
		resp := env.do(t, http.MethodGet, path, "", nil)
		var out map[string]any
		decodeInto(t, resp, &out)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, path)
		assert.Equal(t, "STORE_UNAVAILABLE", out["code"], path)
	}

	resp := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"name": "Ana", "phone": "555", "password": "secreto1"})
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	// El chat nunca falla: degrada al texto por defecto.
	resp = env.do(t, http.MethodPost, "/api/chat", "", map[string]string{"message": "hola"})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
