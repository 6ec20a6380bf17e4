package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/chat-endpoints/internal/endpoints"
	"github.com/maxviazov/chat-endpoints/pkg/response"
)

// CatalogPrefix is where the route table is published.
const CatalogPrefix = "/routes"

type CatalogHandler struct {
	table *endpoints.Table
}

func NewCatalogHandler(table *endpoints.Table) *CatalogHandler {
	return &CatalogHandler{table: table}
}

func (h *CatalogHandler) Register(g *gin.RouterGroup) {
	g.GET("", h.list)
	g.GET("/:name", h.resolve)
}

type routeView struct {
	Name     endpoints.Name `json:"name"`
	Template string         `json:"template"`
	Params   []string       `json:"params,omitempty"`
	Static   bool           `json:"static"`
	URL      string         `json:"url,omitempty"`
}

type catalogView struct {
	BaseURL string      `json:"base_url"`
	Routes  []routeView `json:"routes"`
}

type resolvedView struct {
	Name endpoints.Name `json:"name"`
	URL  string         `json:"url"`
}

func (h *CatalogHandler) list(c *gin.Context) {
	routes := h.table.Routes()
	out := catalogView{BaseURL: h.table.BaseURL(), Routes: make([]routeView, 0, len(routes))}
	for _, r := range routes {
		v := routeView{Name: r.Name, Template: r.Template, Params: r.Params, Static: r.Static()}
		if r.Static() {
			// static expansion cannot fail
			v.URL, _ = r.Expand(h.table.BaseURL())
		}
		out.Routes = append(out.Routes, v)
	}
	response.WriteData(c, http.StatusOK, out)
}

// resolve takes identifiers from repeated ?id= params, in argument order.
func (h *CatalogHandler) resolve(c *gin.Context) {
	name, err := endpoints.ParseName(c.Param("name"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	url, err := h.table.Resolve(name, c.QueryArray("id")...)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, resolvedView{Name: name, URL: url})
}
