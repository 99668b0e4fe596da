package model

import (
	"encoding/json"
	"time"

	"github.com/paulmach/orb"
)

// AOI is a model that represents a single area of interest.
type AOI struct {
	ID        uint64       `json:"id"`
	Name      string       `json:"name"`
	CreatedAt time.Time    `json:"createdAt"`
	Geometry  orb.Geometry `json:"-"`
}

// FormSaveAOI is a new AOI form. The geometry is a GeoJSON document that holds
// either a bare geometry or a feature wrapping one.
type FormSaveAOI struct {
	Name     string          `json:"name"`
	Geometry json.RawMessage `json:"geometry"`
}
