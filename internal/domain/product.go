package domain

import "time"

// DigitalProduct representa um produto digital vendido pela conta.
// PlatformFee deve ser menor ou igual a GrossRevenue (esperado, não imposto).
type DigitalProduct struct {
	ID           int64     `json:"id"`
	ExternalID   string    `json:"external_id"`
	AccountID    int       `json:"account_id"`
	Name         string    `json:"name"`
	Sales        int       `json:"sales"`
	GrossRevenue float64   `json:"gross_revenue"`
	PlatformFee  float64   `json:"platform_fee"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateDigitalProductRequest struct {
	Name         string  `json:"name"`
	Sales        int     `json:"sales"`
	GrossRevenue float64 `json:"gross_revenue"`
	PlatformFee  float64 `json:"platform_fee"`
}

// ProductRollup agrega as métricas de todos os produtos digitais da conta.
// Ranking é ordenado por vendas decrescentes com ordem relativa estável.
type ProductRollup struct {
	TotalSales int               `json:"total_sales"`
	TotalGross float64           `json:"total_gross"`
	TotalFees  float64           `json:"total_fees"`
	TotalNet   float64           `json:"total_net"`
	Ranking    []*DigitalProduct `json:"ranking"`
}
