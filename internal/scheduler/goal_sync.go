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

// GoalSyncConfig representa a configuração do agendador de progresso de metas
type GoalSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// GoalSyncService recalcula periodicamente o progresso de todas as metas e
// grava o valor na coluna current_amount. O valor gravado é apenas um cache
// de exibição: o motor de agregação continua recalculando ao vivo e nunca lê
// a coluna, então um cache defasado não afeta os números do dashboard.
type GoalSyncService struct {
	scheduler           *gocron.Scheduler
	config              GoalSyncConfig
	goalRepo            repository.GoalRepository
	transactionRepo     repository.TransactionRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewGoalSyncService cria uma nova instância do serviço de sincronização de metas
func NewGoalSyncService(
	goalRepo repository.GoalRepository,
	transactionRepo repository.TransactionRepository,
	appConfig *config.Config,
) *GoalSyncService {
	goalConfig := GoalSyncConfig{
		CronSchedule: appConfig.GoalSync.CronSchedule,
		SyncEnabled:  appConfig.GoalSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": goalConfig.CronSchedule,
		"sync_enabled":  goalConfig.SyncEnabled,
	}).Info("Configuração do agendador de progresso de metas carregada")

	return &GoalSyncService{
		scheduler:       scheduler,
		config:          goalConfig,
		goalRepo:        goalRepo,
		transactionRepo: transactionRepo,
		syncRunning:     false,
	}
}

// Start inicia o agendador
func (s *GoalSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de progresso de metas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de progresso de metas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncGoals()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de metas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de progresso de metas")
		s.scheduler.Stop()
	}()

	return nil
}

// syncGoals recalcula o progresso de todas as metas de todas as contas
func (s *GoalSyncService) syncGoals() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de metas já em andamento, ignorando")
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

	logrus.Info("Iniciando sincronização de progresso de metas")

	goals, err := s.goalRepo.ListAll()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar metas para sincronização")
		return
	}

	if len(goals) == 0 {
		logrus.Info("Nenhuma meta encontrada para sincronização")
		return
	}

	// Agrupar por conta para ler os lançamentos de cada conta uma única vez
	goalsByAccount := make(map[int][]*domain.Goal)
	for _, goal := range goals {
		goalsByAccount[goal.AccountID] = append(goalsByAccount[goal.AccountID], goal)
	}

	var updated int
	for accountID, accountGoals := range goalsByAccount {
		transactions, err := s.transactionRepo.ListByAccountID(accountID)
		if err != nil {
			logrus.WithError(err).WithField("account_id", accountID).
				Error("Erro ao buscar lançamentos da conta para sincronização de metas")
			continue
		}

		for _, goal := range accountGoals {
			progress := aggregating.GoalProgress(goal, transactions)

			if err := s.goalRepo.UpdateCurrentAmount(goal.ID, progress.CurrentAmount); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"account_id": accountID,
					"goal_id":    goal.ID,
				}).Error("Erro ao gravar progresso da meta")
				continue
			}
			updated++
		}
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"goals":    len(goals),
		"updated":  updated,
	}).Info("Sincronização de progresso de metas concluída")

	s.lastSyncCompletedAt = time.Now()
}

// TriggerManualSync inicia manualmente uma sincronização de metas
func (s *GoalSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de metas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de metas")
	go s.syncGoals()
}

// GetStatus retorna o status atual da sincronização
func (s *GoalSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
