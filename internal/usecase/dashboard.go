package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cezarfreitas/completa-hub/internal/entity"
)

var weekdaysPtBR = [...]string{"dom", "seg", "ter", "qua", "qui", "sex", "sáb"}

type DashboardUseCase struct {
	Integrations IntegrationRepositoryInterface
	Logs         VerificationLogRepositoryInterface
}

func NewDashboardUseCase(integrations IntegrationRepositoryInterface, logs VerificationLogRepositoryInterface) *DashboardUseCase {
	return &DashboardUseCase{
		Integrations: integrations,
		Logs:         logs,
	}
}

// Execute monta as estatísticas do dashboard: contagem de clientes, números
// do dia, gráfico dos últimos 7 dias (dias sem log entram zerados) e os 10
// logs mais recentes.
func (uc *DashboardUseCase) Execute(ctx context.Context) (*entity.DashboardStats, error) {
	totalClients, err := uc.Integrations.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao contar clientes: %w", err)
	}

	activeClients, err := uc.Integrations.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao contar clientes ativos: %w", err)
	}

	todayTotal, todaySuccess, todayErrors, err := uc.Logs.TodayStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao agregar logs do dia: %w", err)
	}

	successRate := 100
	if todayTotal > 0 {
		successRate = int(math.Round(float64(todaySuccess) / float64(todayTotal) * 100))
	}

	now := time.Now()
	since := now.AddDate(0, 0, -6)
	byDay, err := uc.Logs.StatsByDay(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("erro ao agregar gráfico: %w", err)
	}

	indexed := make(map[string]entity.DayStats, len(byDay))
	for _, d := range byDay {
		indexed[d.Date] = d
	}

	chart := make([]entity.DayStats, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		key := day.Format("2006-01-02")
		point := entity.DayStats{
			Date:  key,
			Label: fmt.Sprintf("%s., %s", weekdaysPtBR[day.Weekday()], day.Format("02")),
		}
		if found, ok := indexed[key]; ok {
			point.Total = found.Total
			point.Success = found.Success
			point.Errors = found.Errors
		}
		chart = append(chart, point)
	}

	recent, err := uc.Logs.List(ctx, "", 10)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar logs recentes: %w", err)
	}

	return &entity.DashboardStats{
		TotalClients:  totalClients,
		ActiveClients: activeClients,
		TodayTotal:    todayTotal,
		TodaySuccess:  todaySuccess,
		TodayErrors:   todayErrors,
		SuccessRate:   successRate,
		Chart:         chart,
		RecentLogs:    recent,
	}, nil
}
