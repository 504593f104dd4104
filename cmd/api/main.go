package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-planner-api/infrastructure/repository"
	"github.com/vfg2006/budget-planner-api/internal/api"
	"github.com/vfg2006/budget-planner-api/internal/config"
	"github.com/vfg2006/budget-planner-api/internal/scheduler"
	"github.com/vfg2006/budget-planner-api/internal/usecases/authenticating"
	"github.com/vfg2006/budget-planner-api/internal/usecases/budgeting"
	"github.com/vfg2006/budget-planner-api/internal/usecases/managing"
	"github.com/vfg2006/budget-planner-api/internal/usecases/pacing"
	"github.com/vfg2006/budget-planner-api/internal/usecases/spending"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	// Fuso horário das fronteiras de dia e mês dos orçamentos
	location, err := cfg.Location()
	if err != nil {
		logrus.WithError(err).Fatalf("Fuso horário inválido: %s", cfg.App.Timezone)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	brandRepo := repository.NewBrandRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	spendEventRepo := repository.NewSpendEventRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	pacer := pacing.NewService(campaignRepo, location)
	ledger := budgeting.NewService(brandRepo, campaignRepo, spendEventRepo, location)
	recorder := spending.NewService(campaignRepo, spendEventRepo, ledger, pacer)
	manager := managing.NewService(brandRepo, campaignRepo, spendEventRepo, pacer)

	// Inicializa os agendadores dos jobs periódicos
	statusSweepService := scheduler.NewStatusSweepService(campaignRepo, pacer, cfg, location)
	totalsRecomputeService := scheduler.NewTotalsRecomputeService(brandRepo, campaignRepo, ledger, cfg, location)
	budgetResetService := scheduler.NewBudgetResetService(brandRepo, campaignRepo, pacer, cfg, location)
	budgetAlertsService := scheduler.NewBudgetAlertsService(brandRepo, cfg, location)

	// Inicia os agendadores em background
	if err := statusSweepService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de varredura de status")
	} else {
		logrus.Info("Agendador de varredura de status iniciado com sucesso")
	}

	if err := totalsRecomputeService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recálculo de totais")
	} else {
		logrus.Info("Agendador de recálculo de totais iniciado com sucesso")
	}

	if err := budgetResetService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de resets de orçamento")
	} else {
		logrus.Info("Agendador de resets de orçamento iniciado com sucesso")
	}

	if err := budgetAlertsService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de alertas de orçamento")
	} else {
		logrus.Info("Agendador de alertas de orçamento iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		manager,
		ledger,
		recorder,
		authenticator,
		statusSweepService,
		totalsRecomputeService,
		budgetResetService,
		budgetAlertsService,
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
