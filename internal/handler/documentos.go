package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/selimb1/conta100/internal/dto"
	"github.com/selimb1/conta100/internal/model"
	"github.com/selimb1/conta100/internal/service"
	"github.com/selimb1/conta100/internal/web"

	"github.com/gin-gonic/gin"
)

const pathDocumentos = "/documentos"

const msgUploadIncompleto = "Seleccione un cliente y un archivo."

type DocumentosHandler struct {
	clientes service.ClienteService
	svc      service.DocumentoService
}

func NewDocumentosHandler(clientes service.ClienteService, svc service.DocumentoService) *DocumentosHandler {
	return &DocumentosHandler{clientes: clientes, svc: svc}
}

// render shows the upload form. No file survives a round trip, so the submit
// button always starts disabled and the inline script enables it.
func (h *DocumentosHandler) render(c *gin.Context, status int, req dto.SubirDocumentoRequest, errMsg, msg string) {
	if req.Tipo == "" {
		req.Tipo = model.TipoDocumentoPorDefecto
	}
	page := dto.DocumentosPage{
		Shell:           shell(pathDocumentos),
		Tipo:            req.Tipo,
		SubirHabilitado: dto.UploadHabilitado(req.ClienteID, false),
	}
	page.Error = errMsg
	page.Mensaje = msg

	opts, err := h.clientes.Opciones(c.Request.Context(), req.ClienteID, true)
	if err != nil && page.Error == "" {
		page.Error = errorMessage(c, err)
		status = errorStatus(err)
	}
	page.Clientes = opts
	c.HTML(status, web.PageDocumentos, page)
}

// Formulario GET /documentos
func (h *DocumentosHandler) Formulario(c *gin.Context) {
	msg := ""
	if c.Query("subido") == "1" {
		msg = "Subido"
	}
	h.render(c, http.StatusOK, dto.SubirDocumentoRequest{Tipo: model.TipoDocumentoPorDefecto}, "", msg)
}

// Subir POST /documentos
//
// The body is read part by part and the file part is handed to the service
// as it arrives. Browsers send fields in form order, so cliente_id and tipo
// are known before the file starts; a file part without a client before it
// is rejected like a missing one.
func (h *DocumentosHandler) Subir(c *gin.Context) {
	req := dto.SubirDocumentoRequest{Tipo: model.TipoDocumentoPorDefecto}
	mr, err := c.Request.MultipartReader()
	if err != nil {
		h.render(c, http.StatusUnprocessableEntity, req, msgUploadIncompleto, "")
		return
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			h.render(c, http.StatusBadRequest, req, "No se pudo leer el archivo.", "")
			return
		}

		switch part.FormName() {
		case "cliente_id":
			v, err := readField(part)
			if err != nil {
				h.render(c, http.StatusBadRequest, req, "No se pudo leer el archivo.", "")
				return
			}
			req.ClienteID, _ = strconv.Atoi(v)
		case "tipo":
			v, err := readField(part)
			if err != nil {
				h.render(c, http.StatusBadRequest, req, "No se pudo leer el archivo.", "")
				return
			}
			req.Tipo = v
		case "file":
			// An empty file input still sends a part, without a filename.
			if part.FileName() == "" {
				continue
			}
			if !dto.UploadHabilitado(req.ClienteID, true) {
				h.render(c, http.StatusUnprocessableEntity, req, msgUploadIncompleto, "")
				return
			}
			if _, err := h.svc.Subir(c.Request.Context(), req, part.FileName(), part); err != nil {
				h.render(c, errorStatus(err), req, errorMessage(c, err), "")
				return
			}
			c.Redirect(http.StatusSeeOther, pathDocumentos+"?subido=1")
			return
		}
	}

	h.render(c, http.StatusUnprocessableEntity, req, msgUploadIncompleto, "")
}

// maxFieldSize bounds the text fields read before the file part.
const maxFieldSize = 1 << 10

func readField(part *multipart.Part) (string, error) {
	b, err := io.ReadAll(io.LimitReader(part, maxFieldSize))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
