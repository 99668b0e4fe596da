package model

// FilePath wraps the string for defining the paths to files and directories.
type FilePath string

const (
	// GpkgFile defines the name of the GeoPackage file that is the authoritative store.
	GpkgFile FilePath = "aois.gpkg"
	// GeoJSONFile defines the name of the GeoJSON snapshot file.
	GeoJSONFile FilePath = "aois.geojson"
	// ParquetFile defines the name of the GeoParquet snapshot file.
	ParquetFile FilePath = "aois.parquet"
)

// PgSchema wraps the string for defining the Postgres schema name.
type PgSchema string

// HookURL wraps the string for defining the webhook endpoint address.
type HookURL string

// APIAccessKey wraps the string for defining the key that guards the mutating API routes.
type APIAccessKey string
