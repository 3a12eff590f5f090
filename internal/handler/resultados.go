package handler

import (
	"net/http"

	"github.com/selimb1/conta100/internal/dto"
	"github.com/selimb1/conta100/internal/service"
	"github.com/selimb1/conta100/internal/web"

	"github.com/gin-gonic/gin"
)

const pathResultados = "/resultados"

type ResultadosHandler struct {
	clientes service.ClienteService
	svc      service.ExportService
}

func NewResultadosHandler(clientes service.ClienteService, svc service.ExportService) *ResultadosHandler {
	return &ResultadosHandler{clientes: clientes, svc: svc}
}

// Panel GET /resultados?cliente_id=
// The downloads follow the dropdown: an id missing from the fetched list
// leaves every button disabled.
func (h *ResultadosHandler) Panel(c *gin.Context) {
	page := dto.ResultadosPage{Shell: shell(pathResultados)}

	status := http.StatusOK
	opts, err := h.clientes.Opciones(c.Request.Context(), clienteIDQuery(c), false)
	if err != nil {
		page.Error = errorMessage(c, err)
		status = errorStatus(err)
	}
	page.Clientes = opts
	page.ClienteID = dto.Seleccionado(opts)
	page.Export = h.svc.Panel(page.ClienteID)
	c.HTML(status, web.PageResultados, page)
}
