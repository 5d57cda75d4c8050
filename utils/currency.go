package utils

import "fmt"

// FormatPrice formats an amount as a yuan price string, e.g. 88.0 -> "¥88.00".
func FormatPrice(amount float64) string {
	return fmt.Sprintf("¥%.2f", amount)
}
