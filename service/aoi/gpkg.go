package aoi

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/beldeveloper/aoi-keeper/geo"
	"github.com/beldeveloper/aoi-keeper/model"
	"github.com/beldeveloper/aoi-keeper/pkg/fs"
	"github.com/beldeveloper/aoi-keeper/pkg/logger"
	"github.com/beldeveloper/go-errors-context"
	_ "github.com/mattn/go-sqlite3"
)

const wgs84Definition = `GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563,AUTHORITY["EPSG","7030"]],AUTHORITY["EPSG","6326"]],PRIMEM["Greenwich",0,AUTHORITY["EPSG","8901"]],UNIT["degree",0.0174532925199433,AUTHORITY["EPSG","9122"]],AUTHORITY["EPSG","4326"]]`

// NewGpkg creates a new instance of the AOI service with the GeoPackage storage.
// It bootstraps the GeoPackage schema and, for a fresh file, imports the AOIs
// from a legacy GeoJSON or GeoParquet snapshot found next to it.
func NewGpkg(dataDir model.FilePath) (Gpkg, error) {
	err := fs.EnsureDir(string(dataDir))
	if err != nil {
		return Gpkg{}, errors.WrapContext(err, errors.Context{Path: "service.aoi.gpkg.NewGpkg: ensure dir"})
	}
	path := filepath.Join(string(dataDir), string(model.GpkgFile))
	exists, err := fs.Exists(path)
	if err != nil {
		return Gpkg{}, errors.WrapContext(err, errors.Context{Path: "service.aoi.gpkg.NewGpkg: stat"})
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return Gpkg{}, errors.WrapContext(err, errors.Context{Path: "service.aoi.gpkg.NewGpkg: open"})
	}
	g := Gpkg{db: db, path: path}
	err = g.bootstrap(context.Background())
	if err != nil {
		db.Close()
		return Gpkg{}, err
	}
	if !exists {
		err = g.importLegacy(context.Background(), string(dataDir))
		if err != nil {
			db.Close()
			return Gpkg{}, err
		}
	}
	return g, nil
}

// Gpkg implements the AOI service with the GeoPackage storage.
type Gpkg struct {
	db   *sql.DB
	path string
}

// FindAll returns all AOIs ordered by their IDs.
func (g Gpkg) FindAll(ctx context.Context) ([]model.AOI, error) {
	rows, err := g.db.QueryContext(ctx, `SELECT "fid", "geom", "name", "created_at" FROM "aois" ORDER BY "fid"`)
	if err != nil {
		return nil, errors.WrapContext(err, errors.Context{Path: "service.aoi.gpkg.FindAll: query"})
	}
	defer rows.Close()
	res := make([]model.AOI, 0)
	for rows.Next() {
		a, err := scanAOI(rows)
		if err != nil {
			return nil, errors.WrapContext(err, errors.Context{Path: "service.aoi.gpkg.FindAll: scan"})
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

// FindByID returns an AOI by its ID.
func (g Gpkg) FindByID(ctx context.Context, id uint64) (model.AOI, error) {
	row := g.db.QueryRowContext(ctx, `SELECT "fid", "geom", "name", "created_at" FROM "aois" WHERE "fid" = ?`, id)
	a, err := scanAOI(row)
	if err == sql.ErrNoRows {
		return a, model.ErrNotFound
	}
	return a, errors.WrapContext(err, errors.Context{
		Path:   "service.aoi.gpkg.FindByID: scan",
		Params: errors.Params{"aoi": id},
	})
}

// Count returns the number of stored AOIs.
func (g Gpkg) Count(ctx context.Context) (int, error) {
	var n int
	err := g.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "aois"`).Scan(&n)
	return n, errors.WrapContext(err, errors.Context{Path: "service.aoi.gpkg.Count: scan"})
}

// Add saves a new AOI.
func (g Gpkg) Add(ctx context.Context, a model.AOI) (model.AOI, error) {
	geom, err := geo.EncodeGpkg(a.Geometry)
	if err != nil {
		return a, errors.WrapContext(err, errors.Context{Path: "service.aoi.gpkg.Add: encode"})
	}
	res, err := g.db.ExecContext(
		ctx,
		`INSERT INTO "aois" ("geom", "name", "created_at") VALUES (?, ?, ?)`,
		geom, a.Name, a.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return a, errors.WrapContext(err, errors.Context{Path: "service.aoi.gpkg.Add: exec"})
	}
	id, err := res.LastInsertId()
	if err != nil {
		return a, errors.WrapContext(err, errors.Context{Path: "service.aoi.gpkg.Add: last insert id"})
	}
	a.ID = uint64(id)
	return a, g.touch(ctx)
}

// Delete removes an AOI by its ID.
func (g Gpkg) Delete(ctx context.Context, id uint64) error {
	res, err := g.db.ExecContext(ctx, `DELETE FROM "aois" WHERE "fid" = ?`, id)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.aoi.gpkg.Delete: exec",
			Params: errors.Params{"aoi": id},
		})
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.WrapContext(err, errors.Context{Path: "service.aoi.gpkg.Delete: rows affected"})
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return g.touch(ctx)
}

// ExportGpkg returns the GeoPackage file as is.
func (g Gpkg) ExportGpkg(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(g.path)
	return data, errors.WrapContext(err, errors.Context{Path: "service.aoi.gpkg.ExportGpkg: read file"})
}

// Ping checks the connection to the database.
func (g Gpkg) Ping(ctx context.Context) error {
	return g.db.PingContext(ctx)
}

// Close closes the underlying database.
func (g Gpkg) Close() error {
	return g.db.Close()
}

// bootstrap creates the GeoPackage metadata tables and the features table.
// All statements are idempotent, so it is safe to run on every start.
func (g Gpkg) bootstrap(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`PRAGMA application_id = %d`, 0x47504B47),
		`PRAGMA user_version = 10200`,
		`CREATE TABLE IF NOT EXISTS "gpkg_spatial_ref_sys" (
			"srs_name" TEXT NOT NULL,
			"srs_id" INTEGER PRIMARY KEY,
			"organization" TEXT NOT NULL,
			"organization_coordsys_id" INTEGER NOT NULL,
			"definition" TEXT NOT NULL,
			"description" TEXT
		)`,
		`INSERT OR IGNORE INTO "gpkg_spatial_ref_sys" VALUES
			('Undefined cartesian SRS', -1, 'NONE', -1, 'undefined', 'undefined cartesian coordinate reference system')`,
		`INSERT OR IGNORE INTO "gpkg_spatial_ref_sys" VALUES
			('Undefined geographic SRS', 0, 'NONE', 0, 'undefined', 'undefined geographic coordinate reference system')`,
		fmt.Sprintf(
			`INSERT OR IGNORE INTO "gpkg_spatial_ref_sys" VALUES ('WGS 84 geodetic', %d, 'EPSG', %d, '%s', 'longitude/latitude coordinates in decimal degrees on the WGS 84 spheroid')`,
			geo.SRIDWGS84, geo.SRIDWGS84, wgs84Definition,
		),
		`CREATE TABLE IF NOT EXISTS "gpkg_contents" (
			"table_name" TEXT NOT NULL PRIMARY KEY,
			"data_type" TEXT NOT NULL,
			"identifier" TEXT UNIQUE,
			"description" TEXT DEFAULT '',
			"last_change" DATETIME NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
			"min_x" DOUBLE,
			"min_y" DOUBLE,
			"max_x" DOUBLE,
			"max_y" DOUBLE,
			"srs_id" INTEGER
		)`,
		fmt.Sprintf(
			`INSERT OR IGNORE INTO "gpkg_contents" ("table_name", "data_type", "identifier", "srs_id") VALUES ('aois', 'features', 'aois', %d)`,
			geo.SRIDWGS84,
		),
		`CREATE TABLE IF NOT EXISTS "gpkg_geometry_columns" (
			"table_name" TEXT NOT NULL,
			"column_name" TEXT NOT NULL,
			"geometry_type_name" TEXT NOT NULL,
			"srs_id" INTEGER NOT NULL,
			"z" TINYINT NOT NULL,
			"m" TINYINT NOT NULL,
			CONSTRAINT "pk_geom_cols" PRIMARY KEY ("table_name", "column_name")
		)`,
		fmt.Sprintf(
			`INSERT OR IGNORE INTO "gpkg_geometry_columns" VALUES ('aois', 'geom', 'GEOMETRY', %d, 0, 0)`,
			geo.SRIDWGS84,
		),
		`CREATE TABLE IF NOT EXISTS "aois" (
			"fid" INTEGER PRIMARY KEY AUTOINCREMENT,
			"geom" BLOB NOT NULL,
			"name" TEXT NOT NULL,
			"created_at" TEXT NOT NULL
		)`,
	}
	for _, q := range stmts {
		_, err := g.db.ExecContext(ctx, q)
		if err != nil {
			return errors.WrapContext(err, errors.Context{
				Path:   "service.aoi.gpkg.bootstrap: exec",
				Params: errors.Params{"query": q},
			})
		}
	}
	return nil
}

// importLegacy fills a fresh GeoPackage from the snapshot files of the previous runs.
// The GeoJSON snapshot wins over the GeoParquet one since it keeps the AOI IDs.
func (g Gpkg) importLegacy(ctx context.Context, dir string) error {
	aois, src, err := loadLegacy(dir)
	if err != nil {
		return errors.WrapContext(err, errors.Context{Path: "service.aoi.gpkg.importLegacy: load"})
	}
	if len(aois) == 0 {
		return nil
	}
	err = g.putAll(ctx, aois)
	if err != nil {
		return errors.WrapContext(err, errors.Context{Path: "service.aoi.gpkg.importLegacy: put"})
	}
	logger.Infof("imported %d AOIs from %s", len(aois), src)
	return nil
}

func loadLegacy(dir string) ([]model.AOI, string, error) {
	gj := filepath.Join(dir, string(model.GeoJSONFile))
	ok, err := fs.Exists(gj)
	if err != nil {
		return nil, "", err
	}
	if ok {
		data, err := os.ReadFile(gj)
		if err != nil {
			return nil, "", err
		}
		aois, err := geo.ParseCollection(data)
		return aois, string(model.GeoJSONFile), err
	}
	pq := filepath.Join(dir, string(model.ParquetFile))
	ok, err = fs.Exists(pq)
	if err != nil || !ok {
		return nil, "", err
	}
	aois, err := geo.ReadParquetFile(pq)
	return aois, string(model.ParquetFile), err
}

// putAll inserts the given AOIs keeping their IDs when they are set.
func (g Gpkg) putAll(ctx context.Context, aois []model.AOI) error {
	for _, a := range aois {
		geom, err := geo.EncodeGpkg(a.Geometry)
		if err != nil {
			return err
		}
		created := a.CreatedAt.UTC().Format(time.RFC3339Nano)
		if a.ID > 0 {
			_, err = g.db.ExecContext(
				ctx,
				`INSERT INTO "aois" ("fid", "geom", "name", "created_at") VALUES (?, ?, ?, ?)`,
				a.ID, geom, a.Name, created,
			)
		} else {
			_, err = g.db.ExecContext(
				ctx,
				`INSERT INTO "aois" ("geom", "name", "created_at") VALUES (?, ?, ?)`,
				geom, a.Name, created,
			)
		}
		if err != nil {
			return err
		}
	}
	return g.touch(ctx)
}

// touch updates the change timestamp of the features table in the GeoPackage metadata.
func (g Gpkg) touch(ctx context.Context) error {
	_, err := g.db.ExecContext(
		ctx,
		`UPDATE "gpkg_contents" SET "last_change" = strftime('%Y-%m-%dT%H:%M:%fZ','now') WHERE "table_name" = 'aois'`,
	)
	return errors.WrapContext(err, errors.Context{Path: "service.aoi.gpkg.touch: exec"})
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAOI(row scanner) (model.AOI, error) {
	var a model.AOI
	var geom []byte
	var created string
	err := row.Scan(&a.ID, &geom, &a.Name, &created)
	if err != nil {
		return a, err
	}
	a.Geometry, err = geo.DecodeGpkg(geom)
	if err != nil {
		return a, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return a, fmt.Errorf("aoi.scanAOI: parse timestamp: %w", err)
	}
	a.CreatedAt = t.UTC()
	return a, nil
}
