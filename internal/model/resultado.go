package model

import "github.com/shopspring/decimal"

// Asiento is one journal entry line as produced by the accounting engine.
// The API keeps the capitalised keys of its spreadsheet exports.
type Asiento struct {
	Fecha   string          `json:"Fecha"`
	Cuenta  string          `json:"Cuenta"`
	Debe    decimal.Decimal `json:"Debe"`
	Haber   decimal.Decimal `json:"Haber"`
	Detalle string          `json:"Detalle,omitempty"`
}

// Validaciones holds the engine's consistency checks.
type Validaciones struct {
	CuadreSumas bool `json:"cuadre_sumas"`
}

// Paquete is the content of a processing result. Only the sections the
// console renders are decoded; the rest stay on the server.
type Paquete struct {
	Asientos     []Asiento    `json:"asientos"`
	Validaciones Validaciones `json:"_validaciones"`
}

// TotalDebe sums the debit column.
func (p Paquete) TotalDebe() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Asientos {
		total = total.Add(a.Debe)
	}
	return total
}

// TotalHaber sums the credit column.
func (p Paquete) TotalHaber() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Asientos {
		total = total.Add(a.Haber)
	}
	return total
}

// Resultado is a stored processing result.
type Resultado struct {
	ID            int     `json:"id"`
	ClienteID     int     `json:"cliente_id"`
	Tipo          string  `json:"tipo"`
	ContenidoJSON Paquete `json:"contenido_json"`
}
