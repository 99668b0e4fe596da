package rest

import (
	"net/http"

	"github.com/beldeveloper/aoi-keeper/controller"
	"github.com/beldeveloper/aoi-keeper/model"
	"github.com/julienschmidt/httprouter"
)

// CreateRouter creates and configures a new instance of the router.
func CreateRouter(c controller.Service, accessKey model.APIAccessKey) *httprouter.Router {
	h := NewHandler(c, accessKey)
	r := httprouter.New()

	r.GET("/", h.Index)
	r.GET("/healthz", h.Healthz)
	r.GET("/aois", h.AOIs)
	r.POST("/aois", h.SaveAOI)
	r.DELETE("/aois/:id", h.DeleteAOI)
	r.GET("/aois/export/:format", h.Export)

	r.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetDefaultHeaders(w)
		h := w.Header()
		h.Set("Access-Control-Allow-Methods", h.Get("Allow"))
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}
