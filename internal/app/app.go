package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/pos-backend/internal/cfg"
	v1Http "github.com/DRSN-tech/pos-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/pos-backend/internal/infrastructure/excel"
	"github.com/DRSN-tech/pos-backend/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/pos-backend/internal/infrastructure/minio"
	s3Repo "github.com/DRSN-tech/pos-backend/internal/repository/minio"
	"github.com/DRSN-tech/pos-backend/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/pos-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/pos-backend/internal/repository/redis"
	redisConv "github.com/DRSN-tech/pos-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/pos-backend/internal/usecase"
	"github.com/DRSN-tech/pos-backend/pkg/clients"
	"github.com/DRSN-tech/pos-backend/pkg/closer"
	"github.com/DRSN-tech/pos-backend/pkg/e"
	"github.com/DRSN-tech/pos-backend/pkg/logger"
	"github.com/DRSN-tech/pos-backend/pkg/metrics"
	"github.com/DRSN-tech/pos-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	clientInitTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// App держит собранный граф зависимостей и жизненный цикл сервиса.
type App struct {
	cfg    *config.Config
	logger logger.Logger

	httpSrv *v1Http.Server
	worker  *kafka.OutboxWorker
	closer  *closer.Closer
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(0)

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, err
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	prConv := pgdbConv.NewProductConverterImpl()
	saleConv := pgdbConv.NewSaleConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	receiptConv := redisConv.NewSaleConverterImpl()

	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	saleRepo := pgdb.NewSaleRepo(db.Pool, saleConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})
	receiptCache := redis.NewCacheRepo(redisClient, receiptConv, cfg.Redis, log)

	minioClient, err := clients.NewMinIOClient(cfg)
	if err != nil {
		log.Errorf(err, "failed to initialize minio client")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), clientInitTimeout)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		log.Errorf(err, "failed to initialize MinIO bucket")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	minioCancel()

	exportRepo := s3Repo.NewExportRepo(minioClient, cfg.Minio)

	archiverCtx, archiverCancel := context.WithCancel(context.Background())
	archiver := minioInfra.NewExportArchiver(exportRepo, cfg.Minio, log, archiverCtx)
	cl.Add(func(ctx context.Context) error {
		defer archiverCancel()
		return archiver.WaitForUploads(ctx)
	})

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		log.Errorf(err, "failed to initialize kafka producer")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(clientInitTimeout); err != nil {
		log.Errorf(err, "failed to ensure kafka topic")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	worker := kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)
	cl.Add(func(ctx context.Context) error {
		worker.Stop()
		return nil
	})

	checkoutUC := usecase.NewCheckoutUC(productRepo, saleRepo, outboxRepo, db.Pool, receiptCache, log)
	catalogUC := usecase.NewCatalogUC(productRepo)
	reportUC := usecase.NewReportUC(saleRepo, excel.NewBuilder(), archiver, log)

	serverMetrics := metrics.NewServerMetrics("pos_backend")

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, serverMetrics, log)
	router.Init(checkoutUC, catalogUC, reportUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)
	cl.Add(func(ctx context.Context) error {
		return httpSrv.Stop(ctx)
	})

	return &App{
		cfg:     cfg,
		logger:  log,
		httpSrv: httpSrv,
		worker:  worker,
		closer:  cl,
	}, nil
}

// Run запускает outbox-воркер и HTTP-сервер и блокируется до сигнала
// остановки либо фатальной ошибки сервера.
func (a *App) Run() error {
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	a.worker.Start(workerCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
	} else {
		a.logger.Infof("Application shutdown complete")
	}

	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
