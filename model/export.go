package model

const (
	// FormatGeoJSON defines the export format for the GeoJSON feature collection.
	FormatGeoJSON = "geojson"
	// FormatGpkg defines the export format for the GeoPackage database.
	FormatGpkg = "gpkg"
	// FormatParquet defines the export format for the GeoParquet document.
	FormatParquet = "parquet"

	// MIMEGeoJSON defines the media type of the GeoJSON export.
	MIMEGeoJSON = "application/geo+json"
	// MIMEGpkg defines the media type of the GeoPackage export.
	MIMEGpkg = "application/geopackage+sqlite3"
	// MIMEParquet defines the media type of the GeoParquet export.
	MIMEParquet = "application/octet-stream"
)

// Export is a model that represents a rendered export document.
type Export struct {
	Format   string `json:"format"`
	Filename string `json:"filename"`
	MIME     string `json:"mime"`
	Data     []byte `json:"-"`
}
