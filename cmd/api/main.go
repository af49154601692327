package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creator-finance-api/infrastructure/database/postgres"
	"github.com/vfg2006/creator-finance-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/creator-finance-api/infrastructure/repository"
	"github.com/vfg2006/creator-finance-api/internal/api"
	"github.com/vfg2006/creator-finance-api/internal/config"
	"github.com/vfg2006/creator-finance-api/internal/scheduler"
	"github.com/vfg2006/creator-finance-api/internal/usecases/authenticating"
	"github.com/vfg2006/creator-finance-api/internal/usecases/dashboarding"
	"github.com/vfg2006/creator-finance-api/internal/usecases/reporting"
	"github.com/vfg2006/creator-finance-api/internal/usecases/tracking"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	transactionRepo := repository.NewTransactionRepository(pgConn)
	affiliateRepo := repository.NewAffiliateProgramRepository(pgConn)
	productRepo := repository.NewDigitalProductRepository(pgConn)
	goalRepo := repository.NewGoalRepository(pgConn)
	monthlyReportRepo := repository.NewMonthlyReportRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	dashboardService := dashboarding.NewService(transactionRepo, affiliateRepo, productRepo, goalRepo)
	trackingService := tracking.NewService(transactionRepo, affiliateRepo, productRepo, goalRepo)
	reportingService := reporting.NewService(transactionRepo, monthlyReportRepo)

	geminiIntegrator, err := gemini.NewClient(ctx, cfg.Gemini)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar integrador Gemini")
	}
	defer geminiIntegrator.Close()

	// Agendadores de materialização em background
	goalSyncService := scheduler.NewGoalSyncService(goalRepo, transactionRepo, cfg)
	monthlyReportSyncService := scheduler.NewMonthlyReportSyncService(userRepo, transactionRepo, monthlyReportRepo, cfg)

	if err := goalSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de metas")
	} else {
		logrus.Info("Agendador de sincronização de metas iniciado com sucesso")
	}

	if err := monthlyReportSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de relatórios mensais")
	} else {
		logrus.Info("Agendador de relatórios mensais iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		dashboardService,
		trackingService,
		reportingService,
		authenticator,
		geminiIntegrator,
		goalSyncService,
		monthlyReportSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
