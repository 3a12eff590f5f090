package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/selimb1/conta100/internal/apierror"
	"github.com/selimb1/conta100/internal/model"
)

// ErrUnreachable wraps transport-level failures (DNS, refused, timeout).
var ErrUnreachable = errors.New("conta api unreachable")

// maxErrorBody caps how much of an error response is read for its detail.
const maxErrorBody = 64 << 10

// ContaClient is the HTTP client of the Conta API. Every call goes through
// the circuit breaker; download endpoints are only turned into URLs because
// the browser fetches them directly.
type ContaClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *CircuitBreaker
}

func NewContaClient(baseURL string, timeout time.Duration, breaker *CircuitBreaker) *ContaClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if breaker == nil {
		breaker = NewCircuitBreaker(DefaultCBConfig())
	}
	return &ContaClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		breaker:    breaker,
	}
}

func (c *ContaClient) BaseURL() string { return c.baseURL }

func (c *ContaClient) BreakerState() CBState { return c.breaker.State() }

// ── Clientes ─────────────────────────────────────────────────────────────────

// ListarClientes calls GET /clientes.
func (c *ContaClient) ListarClientes(ctx context.Context) ([]model.Cliente, error) {
	var out []model.Cliente
	if err := c.doJSON(ctx, http.MethodGet, "/clientes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CrearCliente calls POST /clientes.
func (c *ContaClient) CrearCliente(ctx context.Context, in model.NuevoCliente) (*model.Cliente, error) {
	var out model.Cliente
	if err := c.doJSON(ctx, http.MethodPost, "/clientes", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EliminarCliente calls DELETE /clientes/{id}. The response body is ignored.
func (c *ContaClient) EliminarCliente(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, "/clientes/"+strconv.Itoa(id), nil, nil)
}

// ── Documentos ───────────────────────────────────────────────────────────────

// SubirDocumento streams file as multipart to POST /documentos/upload.
// The body is produced through a pipe while it is sent, so the file is never
// held in memory. It returns only after the writer goroutine is done with
// file.
func (c *ContaClient) SubirDocumento(ctx context.Context, clienteID int, tipo, filename string, file io.Reader) (*model.Documento, error) {
	var out model.Documento
	err := c.breaker.Execute(func() error {
		pr, pw := io.Pipe()
		mw := multipart.NewWriter(pw)
		req, err := c.newRequest(ctx, http.MethodPost, "/documentos/upload", pr, mw.FormDataContentType())
		if err != nil {
			pr.Close()
			return err
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			err := writeDocumento(mw, clienteID, tipo, filename, file)
			if err == nil {
				err = mw.Close()
			}
			pw.CloseWithError(err)
		}()
		err = c.send(req, "/documentos/upload", &out)
		// The transport may stop reading early on an error response.
		pr.CloseWithError(io.ErrClosedPipe)
		<-done
		return err
	}, countsAsFailure)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func writeDocumento(mw *multipart.Writer, clienteID int, tipo, filename string, file io.Reader) error {
	if err := mw.WriteField("cliente_id", strconv.Itoa(clienteID)); err != nil {
		return err
	}
	if err := mw.WriteField("tipo", tipo); err != nil {
		return err
	}
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, file)
	return err
}

// ── Procesamiento ────────────────────────────────────────────────────────────

type procesarRequest struct {
	ClienteID int `json:"cliente_id"`
}

// Procesar calls POST /procesar and returns the generated package.
func (c *ContaClient) Procesar(ctx context.Context, clienteID int) (*model.Resultado, error) {
	var out model.Resultado
	if err := c.doJSON(ctx, http.MethodPost, "/procesar", procesarRequest{ClienteID: clienteID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListarResultados calls GET /resultados/{cliente_id}, oldest first.
func (c *ContaClient) ListarResultados(ctx context.Context, clienteID int) ([]model.Resultado, error) {
	var out []model.Resultado
	if err := c.doJSON(ctx, http.MethodGet, "/resultados/"+strconv.Itoa(clienteID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ── Exportaciones ────────────────────────────────────────────────────────────

// ExportarURL is the download URL of a spreadsheet report.
func (c *ContaClient) ExportarURL(tipo string, clienteID int) string {
	return c.baseURL + "/exportar/" + url.PathEscape(tipo) + clienteQuery(clienteID)
}

// ExportarZipURL is the download URL of the bundle with every report.
func (c *ContaClient) ExportarZipURL(clienteID int) string {
	return c.baseURL + "/exportar_zip" + clienteQuery(clienteID)
}

// ExportarAFIPURL is the download URL of an AFIP text file.
func (c *ContaClient) ExportarAFIPURL(tipo string, clienteID int) string {
	return c.baseURL + "/exportar_afip/" + url.PathEscape(tipo) + clienteQuery(clienteID)
}

func clienteQuery(clienteID int) string {
	return "?" + url.Values{"cliente_id": {strconv.Itoa(clienteID)}}.Encode()
}

// ── Health ───────────────────────────────────────────────────────────────────

// Ping checks that the API answers. It bypasses the breaker so /health
// reports the real upstream status even while the circuit is open.
func (c *ContaClient) Ping(ctx context.Context) error {
	return c.roundTrip(ctx, http.MethodGet, "/openapi.json", nil, "", nil)
}

// ── Transport ────────────────────────────────────────────────────────────────

func (c *ContaClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("conta api: marshal %s: %w", path, err)
		}
		body = b
	}
	return c.breaker.Execute(func() error {
		var r io.Reader
		contentType := ""
		if body != nil {
			r = bytes.NewReader(body)
			contentType = "application/json"
		}
		return c.roundTrip(ctx, method, path, r, contentType, out)
	}, countsAsFailure)
}

func (c *ContaClient) roundTrip(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := c.newRequest(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	return c.send(req, path, out)
}

func (c *ContaClient) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("conta api: create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *ContaClient) send(req *http.Request, path string, out any) error {
	method := req.Method
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("method", method).Str("path", path).Msg("conta api unreachable")
		return fmt.Errorf("conta api: %s %s: %w: %w", method, path, ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		upErr := &apierror.UpstreamError{Status: resp.StatusCode, Path: path, Detail: decodeDetail(raw)}
		log.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("detail", upErr.Detail).
			Msg("conta api error")
		return upErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("conta api: decode %s: %w", path, err)
	}
	return nil
}

// decodeDetail extracts the message of a {"detail": ...} envelope. FastAPI
// sends a plain string for handled errors and a list of {loc, msg} objects
// for request validation errors.
func decodeDetail(raw []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(env.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(env.Detail, &items); err != nil {
		return ""
	}
	msgs := make([]string, 0, len(items))
	for _, it := range items {
		if len(it.Loc) > 0 {
			msgs = append(msgs, fmt.Sprintf("%v: %s", it.Loc[len(it.Loc)-1], it.Msg))
			continue
		}
		msgs = append(msgs, it.Msg)
	}
	return strings.Join(msgs, "; ")
}

// countsAsFailure decides which errors feed the breaker: transport errors
// and 5xx do, 4xx answers from a healthy API do not.
func countsAsFailure(err error) bool {
	var upErr *apierror.UpstreamError
	if errors.As(err, &upErr) {
		return upErr.Status >= http.StatusInternalServerError
	}
	return errors.Is(err, ErrUnreachable)
}
