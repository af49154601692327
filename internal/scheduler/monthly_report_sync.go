package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creator-finance-api/infrastructure/repository"
	"github.com/vfg2006/creator-finance-api/internal/config"
	"github.com/vfg2006/creator-finance-api/internal/domain"
	"github.com/vfg2006/creator-finance-api/internal/usecases/aggregating"
)

// MonthlyReportSyncConfig representa a configuração do agendador de relatórios mensais
type MonthlyReportSyncConfig struct {
	CronSchedule  string
	MonthLookBack int
	SyncEnabled   bool
}

// MonthlyReportSyncService materializa a trilha histórica mensal de cada
// conta na tabela monthly_reports. O relatório anual continua sendo
// recalculado ao vivo; a tabela serve de histórico auditável.
type MonthlyReportSyncService struct {
	scheduler           *gocron.Scheduler
	config              MonthlyReportSyncConfig
	userRepo            repository.UserRepository
	transactionRepo     repository.TransactionRepository
	monthlyReportRepo   repository.MonthlyReportRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewMonthlyReportSyncService cria uma nova instância do serviço
func NewMonthlyReportSyncService(
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	monthlyReportRepo repository.MonthlyReportRepository,
	appConfig *config.Config,
) *MonthlyReportSyncService {
	reportConfig := MonthlyReportSyncConfig{
		CronSchedule:  appConfig.MonthlyReportSync.CronSchedule,
		MonthLookBack: appConfig.MonthlyReportSync.MonthLookBack,
		SyncEnabled:   appConfig.MonthlyReportSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  reportConfig.CronSchedule,
		"month_lookback": reportConfig.MonthLookBack,
		"sync_enabled":   reportConfig.SyncEnabled,
	}).Info("Configuração do agendador de relatórios mensais carregada")

	return &MonthlyReportSyncService{
		scheduler:         scheduler,
		config:            reportConfig,
		userRepo:          userRepo,
		transactionRepo:   transactionRepo,
		monthlyReportRepo: monthlyReportRepo,
		syncRunning:       false,
	}
}

// Start inicia o agendador
func (s *MonthlyReportSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Materialização de relatórios mensais desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de relatórios mensais")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncMonthlyReports()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar materialização de relatórios mensais: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de relatórios mensais")
		s.scheduler.Stop()
	}()

	return nil
}

// syncMonthlyReports materializa os meses do lookback para todas as contas ativas
func (s *MonthlyReportSyncService) syncMonthlyReports() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Materialização de relatórios mensais já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando materialização de relatórios mensais")

	users, err := s.userRepo.ListUser()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar contas para materialização de relatórios")
		return
	}

	var saved int
	for _, user := range users {
		if !user.Active {
			continue
		}

		transactions, err := s.transactionRepo.ListByAccountID(user.ID)
		if err != nil {
			logrus.WithError(err).WithField("account_id", user.ID).
				Error("Erro ao buscar lançamentos da conta para materialização")
			continue
		}

		for i := 1; i <= s.config.MonthLookBack; i++ {
			month := time.Now().AddDate(0, -i, 0).Format("2006-01")

			income, expense := aggregating.MonthTotals(transactions, month)

			entry := &domain.MonthlyReportEntry{
				AccountID: user.ID,
				Month:     month,
				Income:    income,
				Expense:   expense,
				Profit:    income - expense,
			}

			if err := s.monthlyReportRepo.SaveOrUpdate(entry); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"account_id": user.ID,
					"month":      month,
				}).Error("Erro ao gravar linha do relatório mensal")
				continue
			}
			saved++
		}
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"accounts": len(users),
		"rows":     saved,
	}).Info("Materialização de relatórios mensais concluída")

	s.lastSyncCompletedAt = time.Now()
}

// TriggerManualSync inicia manualmente a materialização
func (s *MonthlyReportSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Materialização de relatórios mensais já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando materialização manual de relatórios mensais")
	go s.syncMonthlyReports()
}

// GetStatus retorna o status atual da materialização
func (s *MonthlyReportSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"month_lookback":         s.config.MonthLookBack,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
