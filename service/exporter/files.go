package exporter

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/beldeveloper/aoi-keeper/geo"
	"github.com/beldeveloper/aoi-keeper/model"
	"github.com/beldeveloper/aoi-keeper/pkg/fs"
	"github.com/beldeveloper/aoi-keeper/service/aoi"
	"github.com/beldeveloper/go-errors-context"
)

// NewFiles creates a new instance of the export service that keeps the snapshots in the data directory.
func NewFiles(storage aoi.Service, dataDir model.FilePath) *Files {
	return &Files{storage: storage, dataDir: string(dataDir)}
}

// Files implements the export service with the snapshot files next to the authoritative store.
type Files struct {
	storage aoi.Service
	dataDir string
	mux     sync.Mutex
}

// Refresh rewrites the GeoJSON and GeoParquet snapshots from the current state of the storage.
func (e *Files) Refresh(ctx context.Context) error {
	e.mux.Lock()
	defer e.mux.Unlock()
	aois, err := e.storage.FindAll(ctx)
	if err != nil {
		return errors.WrapContext(err, errors.Context{Path: "service.exporter.files.Refresh: find all"})
	}
	gj, err := geo.MarshalCollection(aois)
	if err != nil {
		return errors.WrapContext(err, errors.Context{Path: "service.exporter.files.Refresh: marshal geojson"})
	}
	pq, err := geo.MarshalParquet(aois)
	if err != nil {
		return errors.WrapContext(err, errors.Context{Path: "service.exporter.files.Refresh: marshal parquet"})
	}
	err = fs.WriteAtomic(filepath.Join(e.dataDir, string(model.GeoJSONFile)), gj)
	if err != nil {
		return errors.WrapContext(err, errors.Context{Path: "service.exporter.files.Refresh: write geojson"})
	}
	err = fs.WriteAtomic(filepath.Join(e.dataDir, string(model.ParquetFile)), pq)
	if err != nil {
		return errors.WrapContext(err, errors.Context{Path: "service.exporter.files.Refresh: write parquet"})
	}
	return nil
}

// Export renders the current AOIs in the requested format.
// The data always comes from the storage, not from the snapshot files, so the download is never stale.
func (e *Files) Export(ctx context.Context, format string) (model.Export, error) {
	res := model.Export{Format: format}
	switch format {
	case model.FormatGeoJSON:
		aois, err := e.storage.FindAll(ctx)
		if err != nil {
			return res, errors.WrapContext(err, errors.Context{Path: "service.exporter.files.Export: find all"})
		}
		res.Data, err = geo.MarshalCollection(aois)
		if err != nil {
			return res, errors.WrapContext(err, errors.Context{Path: "service.exporter.files.Export: marshal geojson"})
		}
		res.Filename = string(model.GeoJSONFile)
		res.MIME = model.MIMEGeoJSON
	case model.FormatGpkg:
		data, err := e.storage.ExportGpkg(ctx)
		if err != nil {
			return res, errors.WrapContext(err, errors.Context{Path: "service.exporter.files.Export: export gpkg"})
		}
		res.Data = data
		res.Filename = string(model.GpkgFile)
		res.MIME = model.MIMEGpkg
	case model.FormatParquet:
		aois, err := e.storage.FindAll(ctx)
		if err != nil {
			return res, errors.WrapContext(err, errors.Context{Path: "service.exporter.files.Export: find all"})
		}
		res.Data, err = geo.MarshalParquet(aois)
		if err != nil {
			return res, errors.WrapContext(err, errors.Context{Path: "service.exporter.files.Export: marshal parquet"})
		}
		res.Filename = string(model.ParquetFile)
		res.MIME = model.MIMEParquet
	default:
		return res, fmt.Errorf("%w: %s", model.ErrUnknownFormat, format)
	}
	return res, nil
}

// Repair recreates the snapshot files if any of them is missing.
// It reports whether a refresh was triggered.
func (e *Files) Repair(ctx context.Context) (bool, error) {
	for _, name := range []model.FilePath{model.GeoJSONFile, model.ParquetFile} {
		ok, err := fs.Exists(filepath.Join(e.dataDir, string(name)))
		if err != nil {
			return false, errors.WrapContext(err, errors.Context{
				Path:   "service.exporter.files.Repair: stat",
				Params: errors.Params{"file": name},
			})
		}
		if !ok {
			return true, e.Refresh(ctx)
		}
	}
	return false, nil
}
