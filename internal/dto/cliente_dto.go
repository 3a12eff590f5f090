package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

// CrearClienteRequest is the create form of the Clientes panel. Nombre and
// CUIT are forwarded as typed; the Conta API is the authority on them.
type CrearClienteRequest struct {
	Nombre          string `form:"nombre"`
	CUIT            string `form:"cuit"`
	CondicionFiscal string `form:"condicion_fiscal" validate:"required,oneof='Monotributista' 'Responsable Inscripto'"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

// ClienteRow is one row of the clients table.
type ClienteRow struct {
	ID              int
	Nombre          string
	CUIT            string
	CondicionFiscal string
	CUITValido      bool // check digit hint only
}
