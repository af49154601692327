package utils

import "time"

// ValidDate verifica se a string está no formato ISO de dia (YYYY-MM-DD)
func ValidDate(dateStr string) bool {
	_, err := time.Parse("2006-01-02", dateStr)
	return err == nil
}

// ValidMonth verifica se a string está no formato ano-mês (YYYY-MM)
func ValidMonth(monthStr string) bool {
	_, err := time.Parse("2006-01", monthStr)
	return err == nil
}

// ValidYear verifica se a string está no formato de ano com 4 dígitos (YYYY)
func ValidYear(yearStr string) bool {
	if len(yearStr) != 4 {
		return false
	}
	_, err := time.Parse("2006", yearStr)
	return err == nil
}
