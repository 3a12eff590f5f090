package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/selimb1/conta100/internal/apierror"
	"github.com/selimb1/conta100/internal/contatest"
	"github.com/selimb1/conta100/internal/dto"
	"github.com/selimb1/conta100/internal/infra"
	"github.com/selimb1/conta100/internal/model"
	"github.com/selimb1/conta100/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*contatest.API, service.ContaAPI) {
	t.Helper()
	api := contatest.New(t)
	return api, infra.NewContaClient(api.URL(), 5*time.Second, nil)
}

// ── Clientes ─────────────────────────────────────────────────────────────────

func TestClienteService_CrearLuegoListar(t *testing.T) {
	_, client := setup(t)
	svc := service.NewClienteService(client)
	ctx := context.Background()

	creado, err := svc.Crear(ctx, dto.CrearClienteRequest{
		Nombre:          "  Estudio Gómez ",
		CUIT:            "20-12345678-6",
		CondicionFiscal: model.CondicionResponsableInscripto,
	})
	require.NoError(t, err)

	rows, err := svc.Listar(ctx)
	require.NoError(t, err)

	count := 0
	for _, r := range rows {
		if r.ID == creado.ID {
			count++
			assert.Equal(t, "Estudio Gómez", r.Nombre)
			assert.Equal(t, "20-12345678-6", r.CUIT)
			assert.Equal(t, model.CondicionResponsableInscripto, r.CondicionFiscal)
			assert.True(t, r.CUITValido)
		}
	}
	assert.Equal(t, 1, count)
}

func TestClienteService_Eliminar(t *testing.T) {
	api, client := setup(t)
	svc := service.NewClienteService(client)
	ctx := context.Background()
	a := api.Seed("A", "20-12345678-6", model.CondicionMonotributista)
	b := api.Seed("B", "30-71234567-1", model.CondicionResponsableInscripto)
	c := api.Seed("C", "23-00000000-0", model.CondicionMonotributista)

	require.NoError(t, svc.Eliminar(ctx, b.ID))
	rows, err := svc.Listar(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, a.ID, rows[0].ID)
	assert.Equal(t, c.ID, rows[1].ID)

	err = svc.Eliminar(ctx, 999)
	var upErr *apierror.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.True(t, upErr.NotFound())

	rows, err = svc.Listar(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2, "deleting an unknown id leaves the others in place")
}

func TestClienteService_CUITHint(t *testing.T) {
	api, client := setup(t)
	api.Seed("Sin validar", "20-11111111-1", model.CondicionMonotributista)
	svc := service.NewClienteService(client)

	rows, err := svc.Listar(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].CUITValido)
}

func TestClienteService_Opciones(t *testing.T) {
	api, client := setup(t)
	a := api.Seed("A", "20-12345678-6", model.CondicionMonotributista)
	b := api.Seed("B", "30-71234567-1", model.CondicionResponsableInscripto)
	svc := service.NewClienteService(client)

	opts, err := svc.Opciones(context.Background(), b.ID, true)
	require.NoError(t, err)
	assert.Equal(t, []dto.ClienteOption{
		{ID: a.ID, Etiqueta: "A (20-12345678-6)"},
		{ID: b.ID, Etiqueta: "B (30-71234567-1)", Selected: true},
	}, opts)

	opts, err = svc.Opciones(context.Background(), 0, false)
	require.NoError(t, err)
	assert.Equal(t, "A", opts[0].Etiqueta)
	assert.False(t, opts[0].Selected)
	assert.Zero(t, dto.Seleccionado(opts))

	opts, err = svc.Opciones(context.Background(), b.ID, false)
	require.NoError(t, err)
	assert.Equal(t, b.ID, dto.Seleccionado(opts))

	opts, err = svc.Opciones(context.Background(), 999, false)
	require.NoError(t, err)
	assert.Zero(t, dto.Seleccionado(opts))
}

// ── Documentos ───────────────────────────────────────────────────────────────

func TestDocumentoService_Subir(t *testing.T) {
	api, client := setup(t)
	c := api.Seed("A", "20-12345678-6", model.CondicionMonotributista)
	svc := service.NewDocumentoService(client)

	ack, err := svc.Subir(context.Background(), dto.SubirDocumentoRequest{ClienteID: c.ID, Tipo: " "}, "nc.pdf", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, model.TipoDocumentoPorDefecto, ack.Tipo)
	require.Len(t, api.Uploads(), 1)
}

func TestDocumentoService_SubirIncompleto(t *testing.T) {
	api, client := setup(t)
	svc := service.NewDocumentoService(client)

	_, err := svc.Subir(context.Background(), dto.SubirDocumentoRequest{ClienteID: 0, Tipo: "Factura"}, "f.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, service.ErrUploadIncompleto)

	_, err = svc.Subir(context.Background(), dto.SubirDocumentoRequest{ClienteID: 1, Tipo: "Factura"}, "", nil)
	assert.ErrorIs(t, err, service.ErrUploadIncompleto)

	assert.Zero(t, api.Calls("POST /documentos/upload"))
}

func TestUploadHabilitado(t *testing.T) {
	assert.False(t, dto.UploadHabilitado(0, false))
	assert.False(t, dto.UploadHabilitado(0, true))
	assert.False(t, dto.UploadHabilitado(3, false))
	assert.True(t, dto.UploadHabilitado(3, true))
}

// ── Preview ──────────────────────────────────────────────────────────────────

func seedProcesable(t *testing.T, api *contatest.API) model.Cliente {
	t.Helper()
	c := api.Seed("A", "20-12345678-6", model.CondicionMonotributista)
	api.SetPaquete(model.Paquete{
		Asientos: []model.Asiento{
			{Fecha: "2024-01-01", Cuenta: "Caja", Debe: decimal.NewFromInt(100), Haber: decimal.Zero},
		},
		Validaciones: model.Validaciones{CuadreSumas: false},
	})
	client := infra.NewContaClient(api.URL(), time.Second, nil)
	_, err := client.SubirDocumento(context.Background(), c.ID, "Factura", "f.pdf", strings.NewReader("x"))
	require.NoError(t, err)
	return c
}

func TestPreviewService_Procesar(t *testing.T) {
	api, client := setup(t)
	c := seedProcesable(t, api)
	svc := service.NewPreviewService(client)

	p, err := svc.Procesar(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, p.Asientos, 1)
	row := p.Asientos[0]
	assert.Equal(t, "2024-01-01", row.Fecha)
	assert.Equal(t, "Caja", row.Cuenta)
	assert.True(t, row.Debe.Equal(decimal.NewFromInt(100)), row.Debe.String())
	assert.True(t, row.Haber.IsZero(), row.Haber.String())
	assert.Empty(t, row.Detalle)
	assert.Equal(t, c.ID, p.ClienteID)
	assert.False(t, p.CuadreSumas)
	assert.Equal(t, "100", p.TotalDebe.String())
	assert.Equal(t, "0", p.TotalHaber.String())
}

func TestPreviewService_EscribirPDF(t *testing.T) {
	api, client := setup(t)
	c := seedProcesable(t, api)
	svc := service.NewPreviewService(client)
	ctx := context.Background()

	var buf bytes.Buffer
	assert.ErrorIs(t, svc.EscribirPDF(ctx, c.ID, &buf), service.ErrSinResultados)
	assert.ErrorIs(t, svc.EscribirPDF(ctx, 999, &buf), service.ErrClienteNoEncontrado)

	_, err := svc.Procesar(ctx, c.ID)
	require.NoError(t, err)

	require.NoError(t, svc.EscribirPDF(ctx, c.ID, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

// ── Exportaciones ────────────────────────────────────────────────────────────

func TestExportService_SinCliente(t *testing.T) {
	svc := service.NewExportService(infra.NewContaClient("http://api", time.Second, nil))

	panel := svc.Panel(0)
	require.Len(t, panel.Reportes, 13)
	require.Len(t, panel.AFIP, 4)
	for _, b := range append(append(panel.Reportes, panel.AFIP...), panel.Zip) {
		assert.True(t, b.Disabled, b.Tipo)
		assert.Empty(t, b.Href, b.Tipo)
	}
}

func TestExportService_ConCliente(t *testing.T) {
	svc := service.NewExportService(infra.NewContaClient("http://api", time.Second, nil))

	panel := svc.Panel(5)
	for _, b := range append(append(panel.Reportes, panel.AFIP...), panel.Zip) {
		assert.False(t, b.Disabled, b.Tipo)
	}
	assert.Equal(t, "asientos", panel.Reportes[0].Tipo)
	assert.Equal(t, "Descargar asientos", panel.Reportes[0].Etiqueta)
	assert.Equal(t, "http://api/exportar/asientos?cliente_id=5", panel.Reportes[0].Href)
	assert.Equal(t, "http://api/exportar/sueldos?cliente_id=5", panel.Reportes[12].Href)
	assert.Equal(t, "IVA", panel.AFIP[0].Etiqueta)
	assert.Equal(t, "http://api/exportar_afip/bbpp?cliente_id=5", panel.AFIP[3].Href)
	assert.Equal(t, "http://api/exportar_zip?cliente_id=5", panel.Zip.Href)
}
