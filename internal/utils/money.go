// internal/utils/money.go
package utils

import "math"

// Round2 arredonda x para 2 casas decimais.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
