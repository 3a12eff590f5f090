package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/selimb1/conta100/internal/apierror"
	"github.com/selimb1/conta100/internal/dto"
	"github.com/selimb1/conta100/internal/infra"
	"github.com/selimb1/conta100/internal/service"
	"github.com/selimb1/conta100/internal/web"

	"github.com/gin-gonic/gin"
)

const pathPreview = "/previsualizacion"

type PreviewHandler struct {
	clientes service.ClienteService
	svc      service.PreviewService
}

func NewPreviewHandler(clientes service.ClienteService, svc service.PreviewService) *PreviewHandler {
	return &PreviewHandler{clientes: clientes, svc: svc}
}

func (h *PreviewHandler) render(c *gin.Context, status int, clienteID int, preview *dto.PreviewResponse, errMsg string) {
	page := dto.PreviewPage{
		Shell:   shell(pathPreview),
		Preview: preview,
	}
	page.Error = errMsg

	opts, err := h.clientes.Opciones(c.Request.Context(), clienteID, false)
	if err != nil && page.Error == "" {
		page.Error = errorMessage(c, err)
		status = errorStatus(err)
	}
	page.Clientes = opts
	page.ClienteID = dto.Seleccionado(opts)
	page.ProcesarHabilitado = page.ClienteID > 0
	c.HTML(status, web.PagePreview, page)
}

// Formulario GET /previsualizacion
func (h *PreviewHandler) Formulario(c *gin.Context) {
	h.render(c, http.StatusOK, clienteIDQuery(c), nil, "")
}

// Procesar POST /previsualizacion
func (h *PreviewHandler) Procesar(c *gin.Context) {
	var req dto.ProcesarRequest
	if verr := bindAndValidate(c, &req); verr != nil {
		h.render(c, http.StatusUnprocessableEntity, 0, nil, "Seleccione un cliente.")
		return
	}
	preview, err := h.svc.Procesar(c.Request.Context(), req.ClienteID)
	if err != nil {
		h.render(c, errorStatus(err), req.ClienteID, nil, errorMessage(c, err))
		return
	}
	h.render(c, http.StatusOK, req.ClienteID, &preview, "")
}

// PDF GET /previsualizacion/pdf?cliente_id=
func (h *PreviewHandler) PDF(c *gin.Context) {
	clienteID := clienteIDQuery(c)
	if clienteID == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("cliente_id requerido"))
		return
	}

	// Buffer first so a failure can still answer with a proper status.
	var buf bytes.Buffer
	if err := h.svc.EscribirPDF(c.Request.Context(), clienteID, &buf); err != nil {
		switch {
		case errors.Is(err, service.ErrClienteNoEncontrado), errors.Is(err, service.ErrSinResultados):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		default:
			c.JSON(errorStatus(err), apierror.New(errorMessage(c, err)))
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+infra.PreviewPDFName(clienteID)+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
