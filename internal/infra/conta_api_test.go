package infra_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/selimb1/conta100/internal/apierror"
	"github.com/selimb1/conta100/internal/contatest"
	"github.com/selimb1/conta100/internal/infra"
	"github.com/selimb1/conta100/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*infra.ContaClient, *contatest.API) {
	t.Helper()
	api := contatest.New(t)
	return infra.NewContaClient(api.URL(), 5*time.Second, nil), api
}

func TestContaClient_CrearYListarClientes(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()

	creado, err := client.CrearCliente(ctx, model.NuevoCliente{
		Nombre:          "Panadería Sur",
		CUIT:            "20-12345678-6",
		CondicionFiscal: model.CondicionMonotributista,
	})
	require.NoError(t, err)
	assert.NotZero(t, creado.ID)

	lista, err := client.ListarClientes(ctx)
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, *creado, lista[0])
}

func TestContaClient_CrearCliente_DetalleDelServidor(t *testing.T) {
	client, _ := newClient(t)

	_, err := client.CrearCliente(context.Background(), model.NuevoCliente{
		Nombre: "X", CUIT: "20-12345678-7", CondicionFiscal: model.CondicionMonotributista,
	})
	require.Error(t, err)

	var upErr *apierror.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusBadRequest, upErr.Status)
	assert.Equal(t, "CUIT inválido (dígito verificador).", upErr.Message())
}

func TestContaClient_EliminarCliente(t *testing.T) {
	client, api := newClient(t)
	a := api.Seed("A", "20-12345678-6", model.CondicionMonotributista)
	b := api.Seed("B", "30-71234567-1", model.CondicionResponsableInscripto)

	require.NoError(t, client.EliminarCliente(context.Background(), a.ID))
	assert.Equal(t, []model.Cliente{b}, api.Clientes())

	err := client.EliminarCliente(context.Background(), 999)
	var upErr *apierror.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.True(t, upErr.NotFound())
	assert.Equal(t, []model.Cliente{b}, api.Clientes())
}

func TestContaClient_SubirDocumento(t *testing.T) {
	client, api := newClient(t)
	c := api.Seed("A", "20-12345678-6", model.CondicionMonotributista)

	ack, err := client.SubirDocumento(context.Background(), c.ID, "Factura", "/tmp/factura-001.pdf", strings.NewReader("%PDF-1.4 contenido"))
	require.NoError(t, err)
	assert.Equal(t, c.ID, ack.ClienteID)
	assert.Equal(t, "Factura", ack.Tipo)

	uploads := api.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "factura-001.pdf", uploads[0].Filename)
	assert.Equal(t, "%PDF-1.4 contenido", string(uploads[0].Content))
}

func TestContaClient_SubirDocumento_URLInvalidaNoDejaGoroutines(t *testing.T) {
	client := infra.NewContaClient("http://[::1", time.Second, nil)
	ctx := context.Background()

	before := runtime.NumGoroutine()
	for i := 0; i < 20; i++ {
		_, err := client.SubirDocumento(ctx, 1, "Factura", "f.pdf", strings.NewReader("contenido"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create request")
	}
	assert.LessOrEqual(t, runtime.NumGoroutine(), before)
}

func TestContaClient_SubirDocumento_RespuestaTemprana(t *testing.T) {
	client, api := newClient(t)
	api.FailWith(http.StatusBadRequest)

	// Larger than any pipe or socket buffer, so the writer is still blocked
	// when the error response arrives.
	big := bytes.Repeat([]byte("x"), 4<<20)
	done := make(chan error, 1)
	go func() {
		_, err := client.SubirDocumento(context.Background(), 1, "Factura", "f.pdf", bytes.NewReader(big))
		done <- err
	}()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("SubirDocumento did not return after the error response")
	}
}

func TestContaClient_ProcesarYResultados(t *testing.T) {
	client, api := newClient(t)
	c := api.Seed("A", "20-12345678-6", model.CondicionMonotributista)
	api.SetPaquete(model.Paquete{
		Asientos: []model.Asiento{
			{Fecha: "2024-01-01", Cuenta: "Caja", Debe: decimal.NewFromInt(100), Haber: decimal.Zero},
		},
		Validaciones: model.Validaciones{CuadreSumas: false},
	})
	ctx := context.Background()

	_, err := client.Procesar(ctx, c.ID)
	var upErr *apierror.UpstreamError
	require.True(t, errors.As(err, &upErr), "processing without documents is rejected")
	assert.Equal(t, "Sin documentos para procesar.", upErr.Detail)

	_, err = client.SubirDocumento(ctx, c.ID, "Factura", "f.pdf", bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	res, err := client.Procesar(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, res.ContenidoJSON.Asientos, 1)
	assert.True(t, res.ContenidoJSON.Asientos[0].Debe.Equal(decimal.NewFromInt(100)))
	assert.False(t, res.ContenidoJSON.Validaciones.CuadreSumas)

	lista, err := client.ListarResultados(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, res.ID, lista[0].ID)
}

func TestContaClient_ExportURLs(t *testing.T) {
	client := infra.NewContaClient("http://api.local:8000/", time.Second, nil)

	assert.Equal(t, "http://api.local:8000", client.BaseURL())
	assert.Equal(t, "http://api.local:8000/exportar/libro_iva?cliente_id=4", client.ExportarURL("libro_iva", 4))
	assert.Equal(t, "http://api.local:8000/exportar_zip?cliente_id=4", client.ExportarZipURL(4))
	assert.Equal(t, "http://api.local:8000/exportar_afip/iibb?cliente_id=4", client.ExportarAFIPURL("iibb", 4))
}

func TestContaClient_ValidationDetailList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"loc":["body","cuit"],"msg":"field required","type":"missing"}]}`))
	}))
	t.Cleanup(srv.Close)

	client := infra.NewContaClient(srv.URL, time.Second, nil)
	_, err := client.ListarClientes(context.Background())

	var upErr *apierror.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, "cuit: field required", upErr.Message())
}

func TestContaClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := infra.NewContaClient(url, time.Second, nil)
	_, err := client.ListarClientes(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, infra.ErrUnreachable)
	assert.Error(t, client.Ping(context.Background()))
}

func TestContaClient_BreakerOpensOnServerErrors(t *testing.T) {
	api := contatest.New(t)
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: time.Hour})
	client := infra.NewContaClient(api.URL(), time.Second, cb)
	ctx := context.Background()

	api.FailWith(http.StatusInternalServerError)
	for i := 0; i < 2; i++ {
		_, err := client.ListarClientes(ctx)
		require.Error(t, err)
	}
	assert.Equal(t, infra.CBOpen, client.BreakerState())

	api.FailWith(0)
	_, err := client.ListarClientes(ctx)
	assert.ErrorIs(t, err, infra.ErrCircuitOpen)
	assert.Equal(t, 2, api.Calls("GET /clientes"), "open breaker must not reach the API")
}

func TestContaClient_ClientErrorsDoNotTripBreaker(t *testing.T) {
	api := contatest.New(t)
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{FailureThreshold: 1})
	client := infra.NewContaClient(api.URL(), time.Second, cb)

	err := client.EliminarCliente(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, infra.CBClosed, client.BreakerState())
}
