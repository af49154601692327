package domain

import "time"

// GoalType identifica o alvo da meta: receita bruta ou lucro líquido do mês.
type GoalType string

const (
	GoalTypeIncome GoalType = "income"
	GoalTypeProfit GoalType = "profit"
)

// IsValid verifica se o tipo de meta é conhecido
func (t GoalType) IsValid() bool {
	return t == GoalTypeIncome || t == GoalTypeProfit
}

// Goal representa uma meta mensal de receita ou lucro.
//
// CurrentAmount é apenas um cache de exibição escrito pelo agendador de
// sincronização; o motor de agregação sempre recalcula o valor ao vivo a
// partir dos lançamentos do mês e nunca lê este campo.
type Goal struct {
	ID            int64     `json:"id"`
	ExternalID    string    `json:"external_id"`
	AccountID     int       `json:"account_id"`
	Type          GoalType  `json:"type"`
	TargetAmount  float64   `json:"target_amount"`
	Month         string    `json:"month"` // formato YYYY-MM
	CurrentAmount float64   `json:"current_amount"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateGoalRequest struct {
	Type         GoalType `json:"type"`
	TargetAmount float64  `json:"target_amount"`
	Month        string   `json:"month"`
}

// GoalProgress é a projeção calculada de uma meta, nunca persistida
type GoalProgress struct {
	Goal          *Goal   `json:"goal"`
	CurrentAmount float64 `json:"current_amount"`
	Progress      float64 `json:"progress"`
	Completed     bool    `json:"completed"`
}
