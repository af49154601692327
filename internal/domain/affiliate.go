package domain

import "time"

// AffiliateProgram representa uma parceria de afiliado acompanhada pela conta.
// Conversions deve ser menor ou igual a Clicks, mas isso não é imposto aqui —
// a validação pertence à camada de escrita.
type AffiliateProgram struct {
	ID          int64     `json:"id"`
	ExternalID  string    `json:"external_id"`
	AccountID   int       `json:"account_id"`
	Name        string    `json:"name"`
	Clicks      int       `json:"clicks"`
	Conversions int       `json:"conversions"`
	Commissions float64   `json:"commissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateAffiliateProgramRequest struct {
	Name        string  `json:"name"`
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
	Commissions float64 `json:"commissions"`
}

// AffiliateRollup agrega as métricas de todos os programas de afiliado da conta
type AffiliateRollup struct {
	TotalClicks       int                   `json:"total_clicks"`
	TotalConversions  int                   `json:"total_conversions"`
	TotalCommissions  float64               `json:"total_commissions"`
	AvgConversionRate float64               `json:"avg_conversion_rate"`
	EPC               float64               `json:"epc"`
	Programs          []*ProgramPerformance `json:"programs"`
}

// ProgramPerformance é a visão por programa com a taxa de conversão calculada
type ProgramPerformance struct {
	Program        *AffiliateProgram `json:"program"`
	ConversionRate float64           `json:"conversion_rate"`
}
