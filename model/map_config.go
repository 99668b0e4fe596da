package model

// MapConfig is a model that represents the map defaults rendered into the UI page.
type MapConfig struct {
	CenterLat       float64 `yaml:"center_lat" json:"centerLat"`
	CenterLng       float64 `yaml:"center_lng" json:"centerLng"`
	Zoom            int     `yaml:"zoom" json:"zoom"`
	TileURL         string  `yaml:"tile_url" json:"tileUrl"`
	TileAttribution string  `yaml:"tile_attribution" json:"tileAttribution"`
}

// DefaultMapConfig returns the map defaults: the dark basemap centered on Berlin.
func DefaultMapConfig() MapConfig {
	return MapConfig{
		CenterLat:       52.52,
		CenterLng:       13.405,
		Zoom:            5,
		TileURL:         "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png",
		TileAttribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors &copy; <a href="https://carto.com/attributions">CARTO</a>`,
	}
}
