package aoi

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beldeveloper/aoi-keeper/model"
	"github.com/beldeveloper/go-errors-context"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/paulmach/orb/encoding/wkb"
)

// NewPostgres creates a new instance of the AOI service with the Postgres storage.
func NewPostgres(conn *pgxpool.Pool, schema model.PgSchema) Postgres {
	return Postgres{conn: conn, schema: string(schema)}
}

// Postgres implements the AOI service with the Postgres storage.
// The geometries are kept as WKB blobs next to the attributes.
type Postgres struct {
	conn   *pgxpool.Pool
	schema string
}

// EnsureSchema creates the schema and the AOIs table if they don't exist yet.
func (p Postgres) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, p.schema),
		fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS "%s"."aois" (
				"id" BIGSERIAL PRIMARY KEY,
				"name" TEXT NOT NULL,
				"created_at" TIMESTAMPTZ NOT NULL,
				"geom" BYTEA NOT NULL
			)`,
			p.schema,
		),
	}
	for _, q := range stmts {
		_, err := p.conn.Exec(ctx, q)
		if err != nil {
			return errors.WrapContext(err, errors.Context{
				Path:   "service.aoi.postgres.EnsureSchema: exec",
				Params: errors.Params{"query": q},
			})
		}
	}
	return nil
}

// FindAll returns all AOIs ordered by their IDs.
func (p Postgres) FindAll(ctx context.Context) ([]model.AOI, error) {
	q := fmt.Sprintf(`SELECT "id", "name", "created_at", "geom" FROM "%s"."aois" ORDER BY "id"`, p.schema)
	rows, err := p.conn.Query(ctx, q)
	if err != nil {
		return nil, errors.WrapContext(err, errors.Context{Path: "service.aoi.postgres.FindAll: query"})
	}
	defer rows.Close()
	res := make([]model.AOI, 0)
	for rows.Next() {
		var a model.AOI
		var geom []byte
		err = rows.Scan(&a.ID, &a.Name, &a.CreatedAt, &geom)
		if err != nil {
			return nil, errors.WrapContext(err, errors.Context{Path: "service.aoi.postgres.FindAll: scan"})
		}
		a.Geometry, err = wkb.Unmarshal(geom)
		if err != nil {
			return nil, errors.WrapContext(err, errors.Context{Path: "service.aoi.postgres.FindAll: decode"})
		}
		a.CreatedAt = a.CreatedAt.UTC()
		res = append(res, a)
	}
	return res, nil
}

// FindByID returns an AOI by its ID.
func (p Postgres) FindByID(ctx context.Context, id uint64) (model.AOI, error) {
	var a model.AOI
	var geom []byte
	q := fmt.Sprintf(`SELECT "id", "name", "created_at", "geom" FROM "%s"."aois" WHERE "id" = $1`, p.schema)
	err := p.conn.QueryRow(ctx, q, id).Scan(&a.ID, &a.Name, &a.CreatedAt, &geom)
	if err == pgx.ErrNoRows {
		return a, model.ErrNotFound
	}
	if err != nil {
		return a, errors.WrapContext(err, errors.Context{
			Path:   "service.aoi.postgres.FindByID: scan",
			Params: errors.Params{"aoi": id},
		})
	}
	a.Geometry, err = wkb.Unmarshal(geom)
	if err != nil {
		return a, errors.WrapContext(err, errors.Context{
			Path:   "service.aoi.postgres.FindByID: decode",
			Params: errors.Params{"aoi": id},
		})
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}

// Count returns the number of stored AOIs.
func (p Postgres) Count(ctx context.Context) (int, error) {
	var n int
	q := fmt.Sprintf(`SELECT COUNT(*) FROM "%s"."aois"`, p.schema)
	err := p.conn.QueryRow(ctx, q).Scan(&n)
	return n, errors.WrapContext(err, errors.Context{Path: "service.aoi.postgres.Count: scan"})
}

// Add saves a new AOI.
func (p Postgres) Add(ctx context.Context, a model.AOI) (model.AOI, error) {
	geom, err := wkb.Marshal(a.Geometry)
	if err != nil {
		return a, errors.WrapContext(err, errors.Context{Path: "service.aoi.postgres.Add: encode"})
	}
	q := fmt.Sprintf(
		`INSERT INTO "%s"."aois" ("name", "created_at", "geom") VALUES ($1, $2, $3) RETURNING "id"`,
		p.schema,
	)
	err = p.conn.QueryRow(ctx, q, a.Name, a.CreatedAt.UTC(), geom).Scan(&a.ID)
	return a, errors.WrapContext(err, errors.Context{Path: "service.aoi.postgres.Add: scan"})
}

// Delete removes an AOI by its ID.
func (p Postgres) Delete(ctx context.Context, id uint64) error {
	q := fmt.Sprintf(`DELETE FROM "%s"."aois" WHERE "id" = $1`, p.schema)
	ct, err := p.conn.Exec(ctx, q, id)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.aoi.postgres.Delete: exec",
			Params: errors.Params{"aoi": id},
		})
	}
	if ct.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ExportGpkg materializes the AOIs as a temporary GeoPackage file and returns its content.
func (p Postgres) ExportGpkg(ctx context.Context) ([]byte, error) {
	aois, err := p.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	tmp, err := os.MkdirTemp("", "aoi-keeper-export-")
	if err != nil {
		return nil, errors.WrapContext(err, errors.Context{Path: "service.aoi.postgres.ExportGpkg: temp dir"})
	}
	defer os.RemoveAll(tmp)
	g, err := NewGpkg(model.FilePath(tmp))
	if err != nil {
		return nil, errors.WrapContext(err, errors.Context{Path: "service.aoi.postgres.ExportGpkg: materialize"})
	}
	err = g.putAll(ctx, aois)
	if err != nil {
		g.Close()
		return nil, errors.WrapContext(err, errors.Context{Path: "service.aoi.postgres.ExportGpkg: put"})
	}
	err = g.Close()
	if err != nil {
		return nil, errors.WrapContext(err, errors.Context{Path: "service.aoi.postgres.ExportGpkg: close"})
	}
	data, err := os.ReadFile(filepath.Join(tmp, string(model.GpkgFile)))
	return data, errors.WrapContext(err, errors.Context{Path: "service.aoi.postgres.ExportGpkg: read file"})
}

// Ping checks the connection to the database.
func (p Postgres) Ping(ctx context.Context) error {
	return p.conn.Ping(ctx)
}
