package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"krishi-backend/internal/disease"
	"krishi-backend/internal/extract"
	"krishi-backend/internal/shared/config"
	"krishi-backend/internal/shared/server"
	"krishi-backend/internal/shared/storage/db"
	"krishi-backend/internal/shared/storage/object"
	localstore "krishi-backend/internal/shared/storage/object/local"
	s3store "krishi-backend/internal/shared/storage/object/s3"
	"krishi-backend/internal/shared/storage/staging"
	"krishi-backend/internal/soiltest"
	"krishi-backend/internal/translate"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.Store

	SoilTestRepo    soiltest.Repo
	SoilTestService *soiltest.Service
	DiseaseRepo     disease.Repo
	DiseaseService  *disease.Service

	SoilTestHandler  *soiltest.Handler
	DiseaseHandler   *disease.Handler
	TranslateHandler *translate.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		SoilTestHandler:  app.SoilTestHandler,
		DiseaseHandler:   app.DiseaseHandler,
		TranslateHandler: app.TranslateHandler,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var soilRepo soiltest.Repo
	var diseaseRepo disease.Repo
	if app.DB != nil {
		soilRepo = &soiltest.PGRepo{DB: app.DB}
		diseaseRepo = &disease.PGRepo{DB: app.DB}
	} else {
		soilRepo = soiltest.NewMemoryRepo()
		diseaseRepo = disease.NewMemoryRepo()
	}

	stagingStore := staging.New(app.Config.StagingDir)
	extractor := extract.New(app.Config.OCRLanguage)

	soilSvc := soiltest.NewService(stagingStore, extractor, soilRepo)

	var classifier disease.Classifier
	if strings.TrimSpace(app.Config.DiseaseModelURL) != "" {
		clf, err := disease.NewHTTPClassifier(app.Config.DiseaseModelURL)
		if err != nil {
			return err
		}
		classifier = clf
	}

	translator, err := translate.NewClient(app.Config.TranslateAPIURL)
	if err != nil {
		return err
	}

	app.SoilTestRepo = soilRepo
	app.SoilTestService = soilSvc
	app.SoilTestHandler = soiltest.NewHandler(soilSvc)
	app.TranslateHandler = translate.NewHandler(translator)

	// Disease detection only mounts when a model server is configured; the
	// rest of the API stays up without one.
	if classifier != nil {
		diseaseSvc := disease.NewService(stagingStore, app.Store, classifier, diseaseRepo)
		app.DiseaseRepo = diseaseRepo
		app.DiseaseService = diseaseSvc
		app.DiseaseHandler = disease.NewHandler(diseaseSvc)
	}

	return nil
}
