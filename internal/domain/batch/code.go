package batch

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CodeDayFormat es el componente de fecha del código de lote (YYMMDD).
const CodeDayFormat = "060102"

// DefaultCodePrefix se usa cuando el lote no tiene cultivar asignado.
const DefaultCodePrefix = "GEN"

// Code construye el código legible de un lote: {CULTIVAR3}-{YYMMDD}-{SEQ3}.
// El prefijo son las tres primeras letras del cultivar en mayúsculas, sin
// tildes ("Café Castillo" -> CAF). Un nombre de menos de tres letras produce
// un prefijo más corto; se acepta tal cual. seq viene del contador atómico
// por empresa y día.
func Code(cultivarName string, day time.Time, seq int) string {
	prefix := codePrefix(cultivarName)
	return fmt.Sprintf("%s-%s-%03d", prefix, day.Format(CodeDayFormat), seq)
}

// PlantCode deriva el código de una planta individual: {batch_code}-P{seq}.
func PlantCode(batchCode string, seq int) string {
	return fmt.Sprintf("%s-P%d", batchCode, seq)
}

func codePrefix(cultivarName string) string {
	name := stripDiacritics(strings.TrimSpace(cultivarName))
	var letters []rune
	for _, r := range name {
		if unicode.IsLetter(r) && r < 128 {
			letters = append(letters, unicode.ToUpper(r))
			if len(letters) == 3 {
				break
			}
		}
	}
	if len(letters) == 0 {
		return DefaultCodePrefix
	}
	return string(letters)
}

// stripDiacritics descompone (NFD), elimina marcas diacríticas y recompone.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
