package dto

import "github.com/shopspring/decimal"

// ProcesarRequest is the "Procesar" form of the preview panel.
type ProcesarRequest struct {
	ClienteID int `form:"cliente_id" validate:"required,min=1"`
}

// AsientoRow is one rendered journal entry.
type AsientoRow struct {
	Fecha   string
	Cuenta  string
	Debe    decimal.Decimal
	Haber   decimal.Decimal
	Detalle string
}

// PreviewResponse is the read-only result of the latest processing call.
type PreviewResponse struct {
	ResultadoID int
	ClienteID   int
	Asientos    []AsientoRow
	TotalDebe   decimal.Decimal
	TotalHaber  decimal.Decimal
	CuadreSumas bool
}
