package airtable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/parrillafit-api/internal/domain"
	"github.com/jhoicas/parrillafit-api/internal/infrastructure/airtable/formula"
	"github.com/jhoicas/parrillafit-api/pkg/logger"
)

// ErrRecordNotFound el record no existe (HTTP 404 o id con formato imposible).
var ErrRecordNotFound = errors.New("airtable: record no encontrado")

const (
	// DefaultLimit tamaño de página cuando el llamador no indica límite.
	DefaultLimit = 50
	// MaxLimit tope de la API de Airtable por página.
	MaxLimit = 100
)

// recordIDRe los ids de Airtable son alfanuméricos; cualquier otra cosa no llega a la URL.
var recordIDRe = regexp.MustCompile(`^rec[A-Za-z0-9]+$`)

// ClampLimit 0 -> DefaultLimit; el resto se acota a [1, MaxLimit].
func ClampLimit(limit int) int {
	switch {
	case limit == 0:
		return DefaultLimit
	case limit < 1:
		return 1
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// Record fila tal como la devuelve la API; Fields se decodifica en el repositorio.
type Record struct {
	ID          string          `json:"id"`
	CreatedTime string          `json:"createdTime,omitempty"`
	Fields      json.RawMessage `json:"fields"`
}

// Sort orden de un listado.
type Sort struct {
	Field string
	Desc  bool
}

// ListParams parámetros de select.
type ListParams struct {
	Formula formula.Formula
	Limit   int
	Sort    []Sort
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

// Typecast deja que Airtable cree la opción de un single/multi select si la base aún no la tiene
// (bases con solo los nombres en español).
type writeRequest struct {
	Fields   any  `json:"fields"`
	Typecast bool `json:"typecast,omitempty"`
}

// apiError cuerpo de error: {"error":"NOT_FOUND"} o {"error":{"type":"...","message":"..."}}.
type apiError struct {
	Type    string
	Message string
}

func parseAPIError(body []byte) apiError {
	var raw struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &raw); err != nil || len(raw.Error) == 0 {
		return apiError{}
	}
	var s string
	if err := json.Unmarshal(raw.Error, &s); err == nil {
		return apiError{Type: s}
	}
	var obj struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw.Error, &obj)
	return apiError{Type: obj.Type, Message: obj.Message}
}

// Client cliente REST de una base de Airtable.
type Client struct {
	http *resty.Client
	log  *logger.Logger
}

func newClient(s Settings, log *logger.Logger) *Client {
	base := strings.TrimRight(s.BaseURL, "/")
	if base == "" {
		base = "https://api.airtable.com/v0"
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	hc := resty.New().
		SetBaseURL(base+"/"+url.PathEscape(s.BaseID)).
		SetAuthToken(s.APIKey).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(250 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(retryCondition)
	return &Client{http: hc, log: log}
}

// retryCondition reintenta ante rate limit (429) y errores 5xx del store.
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code == http.StatusTooManyRequests || code >= 500
}

// Find obtiene un record por id.
func (c *Client) Find(ctx context.Context, table, id string) (*Record, error) {
	if !recordIDRe.MatchString(id) {
		return nil, ErrRecordNotFound
	}
	var rec Record
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"table": table, "id": id}).
		SetResult(&rec).
		Get("/{table}/{id}")
	if err := c.check("find", table, resp, err); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List ejecuta un select. El límite se acota con ClampLimit y se usa como maxRecords.
func (c *Client) List(ctx context.Context, table string, p ListParams) ([]Record, error) {
	limit := ClampLimit(p.Limit)
	q := url.Values{}
	q.Set("pageSize", strconv.Itoa(limit))
	q.Set("maxRecords", strconv.Itoa(limit))
	if !p.Formula.Empty() {
		q.Set("filterByFormula", p.Formula.String())
	}
	for i, s := range p.Sort {
		q.Set(fmt.Sprintf("sort[%d][field]", i), s.Field)
		dir := "asc"
		if s.Desc {
			dir = "desc"
		}
		q.Set(fmt.Sprintf("sort[%d][direction]", i), dir)
	}

	out := make([]Record, 0, limit)
	for {
		var page listResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetPathParam("table", table).
			SetQueryParamsFromValues(q).
			SetResult(&page).
			Get("/{table}")
		if err := c.check("list", table, resp, err); err != nil {
			return nil, err
		}
		out = append(out, page.Records...)
		if page.Offset == "" || len(out) >= limit {
			break
		}
		q.Set("offset", page.Offset)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Create inserta un record con los campos dados.
func (c *Client) Create(ctx context.Context, table string, fields any) (*Record, error) {
	var rec Record
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("table", table).
		SetBody(writeRequest{Fields: fields, Typecast: true}).
		SetResult(&rec).
		Post("/{table}")
	if err := c.check("create", table, resp, err); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update escribe solo los campos presentes (PATCH); el resto queda intacto.
func (c *Client) Update(ctx context.Context, table, id string, fields any) (*Record, error) {
	if !recordIDRe.MatchString(id) {
		return nil, ErrRecordNotFound
	}
	var rec Record
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"table": table, "id": id}).
		SetBody(writeRequest{Fields: fields, Typecast: true}).
		SetResult(&rec).
		Patch("/{table}/{id}")
	if err := c.check("update", table, resp, err); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete borra un record (hard delete).
func (c *Client) Delete(ctx context.Context, table, id string) error {
	if !recordIDRe.MatchString(id) {
		return ErrRecordNotFound
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"table": table, "id": id}).
		Delete("/{table}/{id}")
	return c.check("delete", table, resp, err)
}

// check traduce transporte y status HTTP a errores del dominio.
func (c *Client) check(op, table string, resp *resty.Response, err error) error {
	if err != nil {
		c.log.Error().Err(err).Str("op", op).Str("table", table).Msg("airtable: fallo de transporte")
		return fmt.Errorf("%w: airtable %s %s: %v", domain.ErrStoreUnavailable, op, table, err)
	}
	code := resp.StatusCode()
	c.log.Debug().Str("op", op).Str("table", table).Int("status", code).Dur("took", resp.Time()).Msg("airtable")
	if !resp.IsError() {
		return nil
	}

	apiErr := parseAPIError(resp.Body())
	switch {
	case code == http.StatusNotFound:
		return ErrRecordNotFound
	case code == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, nonEmpty(apiErr.Message, apiErr.Type))
	case code == http.StatusUnauthorized || code == http.StatusForbidden ||
		code == http.StatusTooManyRequests || code >= 500:
		c.log.Error().Str("op", op).Str("table", table).Int("status", code).Str("type", apiErr.Type).Msg("airtable: store rechazó la petición")
		return fmt.Errorf("%w: airtable %s %s: HTTP %d %s", domain.ErrStoreUnavailable, op, table, code, apiErr.Type)
	}
	return fmt.Errorf("airtable %s %s: HTTP %d %s %s", op, table, code, apiErr.Type, apiErr.Message)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
