package batch

import "math"

// MortalityRate calcula el porcentaje de mortalidad redondeado (servicio de
// dominio). Tasa = round(perdidas / iniciales * 100); 0 si no hubo iniciales.
func MortalityRate(lost, initial int) int {
	if initial <= 0 {
		return 0
	}
	return int(math.Round(float64(lost) / float64(initial) * 100))
}
