package domain

// Forecast é a extrapolação linear da receita do próximo mês, calculada a
// partir dos três últimos meses com receita. Só existe quando o histórico
// tem pelo menos três meses distintos — caso contrário o motor devolve
// ErrInsufficientHistory e o chamador deve exibir o estado "sem dados".
type Forecast struct {
	// Meses (YYYY-MM) usados no cálculo, do mais antigo para o mais novo
	BasisMonths []string `json:"basis_months"`
	// Variação média mês a mês no intervalo de três meses
	Trend float64 `json:"trend"`
	// Receita projetada para o próximo mês, nunca negativa
	NextMonthRevenue float64 `json:"next_month_revenue"`
	// Crescimento percentual projetado sobre o último mês (0 quando o último mês é 0)
	GrowthPercent float64 `json:"growth_percent"`
}
