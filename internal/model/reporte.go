package model

import "strings"

// TiposReporte is the catalog of spreadsheet exports served by
// GET /exportar/{tipo}, in display order.
var TiposReporte = []string{
	"asientos",
	"mayor",
	"balance_ss",
	"ee_pp",
	"ee_rr",
	"ee_pn",
	"flujo",
	"iva",
	"ganancias",
	"iibb",
	"bbpp",
	"libro_iva",
	"sueldos",
}

// TiposAFIP is the catalog of AFIP text exports served by
// GET /exportar_afip/{tipo}.
var TiposAFIP = []string{"iva", "ganancias", "iibb", "bbpp"}

func EsTipoReporte(tipo string) bool { return contains(TiposReporte, tipo) }

func EsTipoAFIP(tipo string) bool { return contains(TiposAFIP, tipo) }

// EtiquetaAFIP is the button label of an AFIP export.
func EtiquetaAFIP(tipo string) string { return strings.ToUpper(tipo) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
