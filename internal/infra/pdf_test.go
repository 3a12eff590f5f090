package infra

import (
	"bytes"
	"testing"

	"github.com/selimb1/conta100/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePreviewPDF(t *testing.T) {
	cliente := model.Cliente{ID: 3, Nombre: "Ferretería Núñez", CUIT: "20-12345678-6", CondicionFiscal: model.CondicionResponsableInscripto}
	res := model.Resultado{
		ID:        1,
		ClienteID: 3,
		ContenidoJSON: model.Paquete{
			Asientos: []model.Asiento{
				{Fecha: "01/03/2024", Cuenta: "Compras", Debe: decimal.RequireFromString("1000.50"), Detalle: "CUIT 30712345671"},
				{Fecha: "01/03/2024", Cuenta: "IVA Crédito Fiscal", Debe: decimal.RequireFromString("210.11")},
				{Fecha: "01/03/2024", Cuenta: "Proveedores", Haber: decimal.RequireFromString("1210.61")},
			},
			Validaciones: model.Validaciones{CuadreSumas: true},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePreviewPDF(&buf, cliente, res))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 500)
}

func TestPreviewPDFName(t *testing.T) {
	assert.Equal(t, "previsualizacion_cliente_12.pdf", PreviewPDFName(12))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "corto", truncate("corto", 10))
	assert.Equal(t, "Crédi…", truncate("Crédito Fiscal", 6))
}
