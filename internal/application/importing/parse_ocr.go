package importing

import (
	"strconv"
	"strings"
)

// ParseOCRText aplica la heurística posicional a texto OCR: la línea N es
// candidata a número de parte y la N+1 a cantidad si y solo si es un entero
// estricto. Pares que no cumplen se saltan sin error; las listas que la
// gente fotografía vienen en ese formato de a pares.
func ParseOCRText(text string) []Row {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	var rows []Row
	for i := 0; i+1 < len(lines); i++ {
		qty, err := strconv.Atoi(lines[i+1])
		if err != nil {
			continue
		}
		rows = append(rows, Row{PartNumber: lines[i], Quantity: qty})
	}
	return rows
}
