package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/beldeveloper/aoi-keeper/controller"
	"github.com/beldeveloper/aoi-keeper/model"
	"github.com/beldeveloper/aoi-keeper/pkg/logger"
	"github.com/beldeveloper/aoi-keeper/provider/rest"
	"github.com/beldeveloper/aoi-keeper/service/aoi"
	"github.com/beldeveloper/aoi-keeper/service/marshaller"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		logger.Warnf("main: load .env: %v", err)
	}
	logger.SetDebug(os.Getenv("AOI_KEEPER_DEBUG") == "1")
	c, cleanup, err := InitializeController()
	if err != nil {
		logger.Fatalf("main: %v", err)
	}
	defer cleanup()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.SnapshotJob(ctx)
	runHttpServer(c)
}

// newAOIStorage picks the storage backend. The GeoPackage file is the default;
// Postgres serves the setups where the data directory can't be persisted.
func newAOIStorage(dir model.FilePath) (aoi.Service, func(), error) {
	switch os.Getenv("AOI_KEEPER_STORAGE") {
	case "postgres":
		conn, err := postgresConn()
		if err != nil {
			return nil, nil, fmt.Errorf("main.newAOIStorage: connect to postgres: %w", err)
		}
		p := aoi.NewPostgres(conn, postgresSchema())
		err = p.EnsureSchema(context.Background())
		if err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("main.newAOIStorage: ensure schema: %w", err)
		}
		return p, conn.Close, nil
	default:
		g, err := aoi.NewGpkg(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("main.newAOIStorage: open geopackage: %w", err)
		}
		cleanup := func() {
			if err := g.Close(); err != nil {
				logger.Errorf("main: close geopackage: %v", err)
			}
		}
		return g, cleanup, nil
	}
}

func postgresConn() (*pgxpool.Pool, error) {
	pgs := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("AOI_KEEPER_DB_HOST"),
		os.Getenv("AOI_KEEPER_DB_PORT"),
		os.Getenv("AOI_KEEPER_DB_USER"),
		os.Getenv("AOI_KEEPER_DB_PASSWORD"),
		os.Getenv("AOI_KEEPER_DB_NAME"),
	)
	return pgxpool.Connect(context.Background(), pgs)
}

func postgresSchema() model.PgSchema {
	s := os.Getenv("AOI_KEEPER_DB_SCHEMA")
	if s == "" {
		s = "public"
	}
	return model.PgSchema(s)
}

func dataDir() model.FilePath {
	d := strings.TrimRight(os.Getenv("AOI_KEEPER_DATA_DIR"), "/")
	if d == "" {
		d = "./data"
	}
	return model.FilePath(d)
}

func hookURL() model.HookURL {
	return model.HookURL(os.Getenv("AOI_KEEPER_HOOK_URL"))
}

func apiAccessKey() model.APIAccessKey {
	return model.APIAccessKey(os.Getenv("AOI_KEEPER_ACCESS_KEY"))
}

// mapConfig loads the map view configuration, falling back to the defaults
// when no configuration file is set.
func mapConfig(m marshaller.Service) (model.MapConfig, error) {
	cfg := model.DefaultMapConfig()
	path := os.Getenv("AOI_KEEPER_MAP_CFG")
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("main.mapConfig: read file: %w", err)
	}
	err = m.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("main.mapConfig: unmarshal: %w", err)
	}
	return cfg, nil
}

func runHttpServer(c controller.Service) {
	httpPort := os.Getenv("AOI_KEEPER_HTTP_PORT")
	if httpPort == "" {
		httpPort = "8501"
	}
	addr := "0.0.0.0:" + httpPort
	crtFile := os.Getenv("AOI_KEEPER_HTTPS_CRT")
	keyFile := os.Getenv("AOI_KEEPER_HTTPS_KEY")
	srv := &http.Server{
		Addr:    addr,
		Handler: rest.CreateRouter(c, apiAccessKey()),
	}
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		var err error
		if len(crtFile) > 0 {
			err = srv.ListenAndServeTLS(crtFile, keyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Fatalf("main: serve http: %v; addr = %s", err, addr)
		}
	}()
	logger.Infof("Listening %s for HTTP connections...", addr)
	<-done
	logger.Infof("Stopping the application...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("main: server shutdown: %v", err)
	}
}
