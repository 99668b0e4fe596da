package rest

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/beldeveloper/aoi-keeper/controller"
	"github.com/beldeveloper/aoi-keeper/model"
	"github.com/beldeveloper/aoi-keeper/pkg/logger"
	"github.com/julienschmidt/httprouter"
)

//go:embed index.html
var indexHTML string

var indexTpl = template.Must(template.New("index").Parse(indexHTML))

// NewHandler creates a new instance of the REST API handler.
func NewHandler(c controller.Service, accessKey model.APIAccessKey) Handler {
	return Handler{c: c, accessKey: string(accessKey)}
}

// Handler handles the REST API requests.
type Handler struct {
	c         controller.Service
	accessKey string
}

// Index renders the map page.
func (h Handler) Index(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cfg := h.c.MapConfig(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTpl.Execute(w, cfg)
	if err != nil {
		logger.Errorf("rest.Index: render: %v", err)
	}
}

// AOIs returns the list of stored AOIs.
func (h Handler) AOIs(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := h.c.AOIs(r.Context())
	if err != nil {
		apiError(w, err)
		return
	}
	apiSuccess(w, res)
}

// SaveAOI validates and stores a new AOI.
func (h Handler) SaveAOI(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	err := h.validateKey(r)
	if err != nil {
		apiError(w, err)
		return
	}
	var f model.FormSaveAOI
	err = json.NewDecoder(r.Body).Decode(&f)
	if err != nil {
		apiError(w, fmt.Errorf("%w: malformed body: %v", model.ErrBadInput, err))
		return
	}
	res, err := h.c.SaveAOI(r.Context(), f)
	if err != nil {
		apiError(w, err)
		return
	}
	apiSuccess(w, res)
}

// DeleteAOI removes an AOI by its ID.
func (h Handler) DeleteAOI(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	err := h.validateKey(r)
	if err != nil {
		apiError(w, err)
		return
	}
	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		apiError(w, fmt.Errorf("%w: invalid AOI id: %v", model.ErrBadInput, err))
		return
	}
	err = h.c.DeleteAOI(r.Context(), uint64(id))
	if err != nil {
		apiError(w, err)
		return
	}
	apiSuccess(w, struct{}{})
}

// Export streams the stored AOIs as a file in the requested format.
func (h Handler) Export(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := h.c.Export(r.Context(), ps.ByName("format"))
	if err != nil {
		apiError(w, err)
		return
	}
	w.Header().Set("Content-Type", res.MIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(res.Data)
	if err != nil {
		logger.Errorf("rest.Export: write: %v; format = %s", err, res.Format)
	}
}

// Healthz reports whether the service and its storage are up.
func (h Handler) Healthz(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	err := h.c.Healthz(r.Context())
	if err != nil {
		apiError(w, err)
		return
	}
	apiSuccess(w, map[string]string{"status": "ok"})
}

func (h Handler) validateKey(r *http.Request) error {
	if h.accessKey == "" {
		return nil
	}
	if r.URL.Query().Get("accessKey") != h.accessKey {
		return model.ErrUnauthorized
	}
	return nil
}
