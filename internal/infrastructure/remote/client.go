// Package remote implementa repository.InventoryGateway sobre la API REST del estoque
// (base /api, header X-Session-Token). Usa net/http de la stdlib, como los demás
// adaptadores de salida del proyecto.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Estoque-sync/internal/domain"
	"github.com/jhoicas/Estoque-sync/internal/domain/entity"
	"github.com/jhoicas/Estoque-sync/internal/domain/repository"
	"github.com/jhoicas/Estoque-sync/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa InventoryGateway.
var _ repository.InventoryGateway = (*Client)(nil)

const (
	headerSessionToken = "X-Session-Token"
	headerRequestID    = "X-Request-ID"

	// MovementModeUnified POST /estoque/{id}/movimentar con {tipo, quantidade}.
	MovementModeUnified = "unificado"
	// MovementModeSplit POST /estoque/{id}/entrada | /saida con {quantidade}.
	MovementModeSplit = "separado"

	maxBody = 4 << 20
)

// Config parámetros del cliente.
type Config struct {
	BaseURL        string        // ej: http://localhost:3002/api
	ProbeTimeout   time.Duration // HEAD /estoque; 10 s
	RequestTimeout time.Duration // resto de llamadas
	MovementMode   string
}

// Client adaptador HTTP del backend de estoque.
type Client struct {
	cfg        Config
	base       string
	tokens     repository.TokenSource
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente. El timeout lo impone cada llamada vía context,
// así un probe vencido no queda pendiente.
func NewClient(cfg Config, tokens repository.TokenSource, log *logger.Logger) *Client {
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 10 * time.Second
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	if cfg.MovementMode == "" {
		cfg.MovementMode = MovementModeUnified
	}
	return &Client{
		cfg:        cfg,
		base:       strings.TrimRight(cfg.BaseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{},
		log:        log.Named("remote"),
	}
}

// ── Estructuras del protocolo ─────────────────────────────────────────────────

type productPayload struct {
	CodigoFornecedor string      `json:"codigo_fornecedor"`
	NCM              string      `json:"ncm"`
	Marca            string      `json:"marca"`
	Descricao        string      `json:"descricao"`
	Unidade          string      `json:"unidade"`
	Quantidade       int         `json:"quantidade"`
	ValorUnitario    json.Number `json:"valor_unitario"`
}

type movementPayload struct {
	Tipo       entity.MovementType `json:"tipo,omitempty"`
	Quantidade int                 `json:"quantidade"`
}

func toPayload(f entity.ProductFields) productPayload {
	return productPayload{
		CodigoFornecedor: f.CodigoFornecedor,
		NCM:              f.NCM,
		Marca:            f.Marca,
		Descricao:        f.Descricao,
		Unidade:          f.Unidade,
		Quantidade:       f.Quantidade,
		ValorUnitario:    json.Number(f.ValorUnitario.String()),
	}
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Probe HEAD /estoque: alcance + validez de la sesión, sin transferir el catálogo.
func (c *Client) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.ProbeTimeout)
	defer cancel()
	_, err := c.do(ctx, http.MethodHead, "/estoque", nil, "falha na verificação")
	return err
}

// ListProducts GET /estoque.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()
	body, err := c.do(ctx, http.MethodGet, "/estoque", nil, "Erro ao carregar")
	if err != nil {
		return nil, err
	}
	var out []entity.Product
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decodificar produtos: %v", domain.ErrRequestFailed, err)
	}
	return out, nil
}

// ListMovements GET /estoque/movimentos.
func (c *Client) ListMovements(ctx context.Context) (*entity.MovementHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()
	body, err := c.do(ctx, http.MethodGet, "/estoque/movimentos", nil, "Erro ao carregar movimentos")
	if err != nil {
		return nil, err
	}
	var out entity.MovementHistory
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decodificar movimentos: %v", domain.ErrRequestFailed, err)
	}
	out.Entradas = c.datedOnly(out.Entradas, entity.MovementEntrada)
	out.Saidas = c.datedOnly(out.Saidas, entity.MovementSaida)
	return &out, nil
}

// datedOnly marca el tipo y descarta los registros sin fecha legible: no se
// pueden ubicar en ningún mes del relatório.
func (c *Client) datedOnly(list []entity.Movement, tipo entity.MovementType) []entity.Movement {
	out := list[:0]
	for _, m := range list {
		if m.Data.IsZero() {
			c.log.Warn().Str("produto_id", m.ProdutoID).Str("tipo", string(tipo)).Msg("movimento sem data válida ignorado")
			continue
		}
		m.Tipo = tipo
		out = append(out, m)
	}
	return out
}

// CreateProduct POST /estoque. El servidor asigna id y codigo.
func (c *Client) CreateProduct(ctx context.Context, fields entity.ProductFields) (*entity.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()
	body, err := c.do(ctx, http.MethodPost, "/estoque", toPayload(fields), "Erro ao salvar")
	if err != nil {
		return nil, err
	}
	return decodeProduct(body)
}

// UpdateProduct PUT /estoque/{id}.
func (c *Client) UpdateProduct(ctx context.Context, id string, fields entity.ProductFields) (*entity.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()
	body, err := c.do(ctx, http.MethodPut, "/estoque/"+url.PathEscape(id), toPayload(fields), "Erro ao salvar")
	if err != nil {
		return nil, err
	}
	return decodeProduct(body)
}

// DeleteProduct DELETE /estoque/{id}.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()
	_, err := c.do(ctx, http.MethodDelete, "/estoque/"+url.PathEscape(id), nil, "Erro ao excluir")
	return err
}

// RecordMovement registra entrada/saída. En modo unificado usa /movimentar con tipo;
// en modo separado /entrada o /saida. Si el body de respuesta no es un produto
// devuelve (nil, nil) y el caller depende del reload.
func (c *Client) RecordMovement(ctx context.Context, id string, tipo entity.MovementType, quantidade int) (*entity.Product, error) {
	if !tipo.Valid() {
		return nil, fmt.Errorf("%w: tipo de movimento %q", domain.ErrInvalidInput, tipo)
	}
	if quantidade <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, quantidade)
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	path := "/estoque/" + url.PathEscape(id)
	payload := movementPayload{Quantidade: quantidade}
	if c.cfg.MovementMode == MovementModeSplit {
		path += "/" + string(tipo)
	} else {
		path += "/movimentar"
		payload.Tipo = tipo
	}

	fallback := "Erro ao registrar entrada"
	if tipo == entity.MovementSaida {
		fallback = "Erro ao registrar saída"
	}
	body, err := c.do(ctx, http.MethodPost, path, payload, fallback)
	if err != nil {
		return nil, err
	}
	p, err := decodeProduct(body)
	if err != nil {
		c.log.Debug().Str("produto_id", id).Msg("resposta de movimento sem produto")
		return nil, nil
	}
	return p, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// do ejecuta la llamada autenticada y clasifica la respuesta. Sin token no sale a la red.
func (c *Client) do(ctx context.Context, method, path string, payload any, fallback string) ([]byte, error) {
	token, ok := c.tokens.Token()
	if !ok {
		return nil, domain.ErrNoSession
	}

	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("serializar request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, fmt.Errorf("criar request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set(headerSessionToken, token)
	req.Header.Set(headerRequestID, reqID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Str("request_id", reqID).Msg("chamada sem resposta")
		return nil, unreachable(method+" "+path, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, unreachable("ler resposta", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Str("request_id", reqID).
		Msg("chamada ao estoque")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classify(resp.StatusCode, rawBody, fallback)
	}
	return rawBody, nil
}

func decodeProduct(body []byte) (*entity.Product, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("resposta vazia")
	}
	var p entity.Product
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: decodificar produto: %v", domain.ErrRequestFailed, err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("%w: produto sem id", domain.ErrRequestFailed)
	}
	return &p, nil
}
