package entity

import (
	"encoding/json"
	"time"
)

const (
	LogTypeViabilidade  = "viabilidade"
	LogTypeDocumentacao = "documentacao"
)

// VerificationLog guarda o par request/response de cada chamada de webhook,
// indexado pelo slug do cliente. Gravação é best-effort: falha ao salvar
// nunca derruba a resposta já calculada.
type VerificationLog struct {
	ID              string          `json:"id"`
	IntegrationSlug string          `json:"integrationSlug"`
	Type            string          `json:"type"`
	Request         json.RawMessage `json:"request"`
	Response        json.RawMessage `json:"response"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// DayStats agrega os logs de um dia no gráfico do dashboard.
type DayStats struct {
	Date    string `json:"date"`
	Label   string `json:"label"`
	Total   int    `json:"total"`
	Success int    `json:"success"`
	Errors  int    `json:"errors"`
}

type DashboardStats struct {
	TotalClients  int                `json:"totalClients"`
	ActiveClients int                `json:"activeClients"`
	TodayTotal    int                `json:"todayTotal"`
	TodaySuccess  int                `json:"todaySuccess"`
	TodayErrors   int                `json:"todayErrors"`
	SuccessRate   int                `json:"successRate"`
	Chart         []DayStats         `json:"chart"`
	RecentLogs    []*VerificationLog `json:"recentLogs"`
}
