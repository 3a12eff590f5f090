// Package contatest provides an in-memory Conta API for tests. It speaks the
// same REST contract as the real server, including its {"detail"} errors.
package contatest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/selimb1/conta100/internal/apierror"
	"github.com/selimb1/conta100/internal/model"
)

// Upload is a document received by the fake API.
type Upload struct {
	ClienteID int
	Tipo      string
	Filename  string
	Content   []byte
}

// API is the fake server state.
type API struct {
	Server *httptest.Server

	mu         sync.Mutex
	nextID     int
	clientes   map[int]model.Cliente
	uploads    []Upload
	resultados []model.Resultado
	paquete    model.Paquete
	failStatus int
	calls      map[string]int
}

// New starts a fake API and registers its shutdown with t.Cleanup.
func New(t testing.TB) *API {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := &API{
		nextID:   1,
		clientes: make(map[int]model.Cliente),
		calls:    make(map[string]int),
	}
	api.Server = httptest.NewServer(api.routes())
	t.Cleanup(api.Server.Close)
	return api
}

// URL is the base URL of the fake API.
func (a *API) URL() string { return a.Server.URL }

// SetPaquete sets the package returned by POST /procesar.
func (a *API) SetPaquete(p model.Paquete) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.paquete = p
}

// FailWith makes every endpoint answer status with a detail message.
// Zero restores normal behavior.
func (a *API) FailWith(status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failStatus = status
}

// Seed adds a client directly and returns it.
func (a *API) Seed(nombre, cuit, condicion string) model.Cliente {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.insert(model.NuevoCliente{Nombre: nombre, CUIT: cuit, CondicionFiscal: condicion})
}

// Clientes returns the stored clients ordered by id.
func (a *API) Clientes() []model.Cliente {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sortedClientes()
}

// Uploads returns the received documents.
func (a *API) Uploads() []Upload {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Upload(nil), a.uploads...)
}

// Calls returns how many times "METHOD /route" was hit.
func (a *API) Calls(route string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls[route]
}

func (a *API) insert(in model.NuevoCliente) model.Cliente {
	c := model.Cliente{ID: a.nextID, Nombre: in.Nombre, CUIT: in.CUIT, CondicionFiscal: in.CondicionFiscal}
	a.clientes[c.ID] = c
	a.nextID++
	return c
}

func (a *API) sortedClientes() []model.Cliente {
	out := make([]model.Cliente, 0, len(a.clientes))
	for _, c := range a.clientes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (a *API) routes() http.Handler {
	r := gin.New()
	r.Use(a.count, a.failure)

	r.GET("/openapi.json", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"openapi": "3.1.0"}) })
	r.GET("/clientes", a.listarClientes)
	r.POST("/clientes", a.crearCliente)
	r.DELETE("/clientes/:id", a.eliminarCliente)
	r.POST("/documentos/upload", a.subirDocumento)
	r.POST("/procesar", a.procesar)
	r.GET("/resultados/:cliente_id", a.listarResultados)
	return r
}

func (a *API) count(c *gin.Context) {
	a.mu.Lock()
	a.calls[c.Request.Method+" "+c.FullPath()]++
	a.mu.Unlock()
	c.Next()
}

func (a *API) failure(c *gin.Context) {
	a.mu.Lock()
	status := a.failStatus
	a.mu.Unlock()
	if status != 0 {
		c.AbortWithStatusJSON(status, apierror.New("falla simulada"))
		return
	}
	c.Next()
}

func (a *API) listarClientes(c *gin.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	c.JSON(http.StatusOK, a.sortedClientes())
}

func (a *API) crearCliente(c *gin.Context) {
	var in model.NuevoCliente
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"loc": []string{"body"}, "msg": err.Error()}}})
		return
	}
	if !model.ValidarCUIT(in.CUIT) {
		c.JSON(http.StatusBadRequest, apierror.New("CUIT inválido (dígito verificador)."))
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	c.JSON(http.StatusOK, a.insert(in))
}

func (a *API) eliminarCliente(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("id inválido"))
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.clientes[id]; !ok {
		c.JSON(http.StatusNotFound, apierror.New("Cliente no encontrado"))
		return
	}
	delete(a.clientes, id)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *API) subirDocumento(c *gin.Context) {
	clienteID, err := strconv.Atoi(c.PostForm("cliente_id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("cliente_id inválido"))
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("file requerido"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.clientes[clienteID]; !ok {
		c.JSON(http.StatusNotFound, apierror.New("Cliente no encontrado"))
		return
	}
	a.uploads = append(a.uploads, Upload{
		ClienteID: clienteID,
		Tipo:      c.PostForm("tipo"),
		Filename:  fh.Filename,
		Content:   content,
	})
	c.JSON(http.StatusOK, model.Documento{
		ID:          len(a.uploads),
		ClienteID:   clienteID,
		Tipo:        c.PostForm("tipo"),
		RutaArchivo: "/data/storage/" + fh.Filename,
	})
}

func (a *API) procesar(c *gin.Context) {
	var in struct {
		ClienteID int `json:"cliente_id"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.clientes[in.ClienteID]; !ok {
		c.JSON(http.StatusNotFound, apierror.New("Cliente no encontrado"))
		return
	}
	hasDocs := false
	for _, u := range a.uploads {
		if u.ClienteID == in.ClienteID {
			hasDocs = true
			break
		}
	}
	if !hasDocs {
		c.JSON(http.StatusBadRequest, apierror.New("Sin documentos para procesar."))
		return
	}

	res := model.Resultado{
		ID:            len(a.resultados) + 1,
		ClienteID:     in.ClienteID,
		Tipo:          "paquete",
		ContenidoJSON: a.paquete,
	}
	a.resultados = append(a.resultados, res)
	c.JSON(http.StatusOK, res)
}

func (a *API) listarResultados(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("cliente_id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("cliente_id inválido"))
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.Resultado, 0)
	for _, r := range a.resultados {
		if r.ClienteID == id {
			out = append(out, r)
		}
	}
	c.JSON(http.StatusOK, out)
}
