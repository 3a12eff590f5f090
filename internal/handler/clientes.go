package handler

import (
	"net/http"
	"strconv"

	"github.com/selimb1/conta100/internal/dto"
	"github.com/selimb1/conta100/internal/model"
	"github.com/selimb1/conta100/internal/service"
	"github.com/selimb1/conta100/internal/web"

	"github.com/gin-gonic/gin"
)

const pathClientes = "/clientes"

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

func formClienteVacio() dto.CrearClienteRequest {
	return dto.CrearClienteRequest{CondicionFiscal: model.CondicionFiscalPorDefecto}
}

// render re-fetches the list and renders the panel. A failed fetch leaves the
// table empty and shows why, unless an earlier error is already displayed.
func (h *ClientesHandler) render(c *gin.Context, status int, form dto.CrearClienteRequest, errMsg string) {
	page := dto.ClientesPage{
		Shell:       shell(pathClientes),
		Form:        form,
		Condiciones: model.CondicionesFiscales,
	}
	page.Error = errMsg

	rows, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		if page.Error == "" {
			page.Error = errorMessage(c, err)
			status = errorStatus(err)
		}
		rows = nil
	}
	page.Clientes = rows
	c.HTML(status, web.PageClientes, page)
}

// Listar GET /clientes
func (h *ClientesHandler) Listar(c *gin.Context) {
	h.render(c, http.StatusOK, formClienteVacio(), "")
}

// Crear POST /clientes
func (h *ClientesHandler) Crear(c *gin.Context) {
	var req dto.CrearClienteRequest
	if verr := bindAndValidate(c, &req); verr != nil {
		h.render(c, http.StatusUnprocessableEntity, req, validationMessage(verr))
		return
	}
	if _, err := h.svc.Crear(c.Request.Context(), req); err != nil {
		h.render(c, errorStatus(err), req, errorMessage(c, err))
		return
	}
	// Mutate then refetch: the list always comes from the API.
	c.Redirect(http.StatusSeeOther, pathClientes)
}

// Eliminar POST /clientes/:id/eliminar
func (h *ClientesHandler) Eliminar(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.render(c, http.StatusBadRequest, formClienteVacio(), "ID inválido")
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		h.render(c, errorStatus(err), formClienteVacio(), errorMessage(c, err))
		return
	}
	c.Redirect(http.StatusSeeOther, pathClientes)
}
