package utils

import (
	"regexp"
	"strings"

	"github.com/cvergara/balance-rli/dto"
)

const monthNames = `(?:ENERO|FEBRERO|MARZO|ABRIL|MAYO|JUNIO|JULIO|AGOSTO|SEPTIEMBRE|OCTUBRE|NOVIEMBRE|DICIEMBRE)`

var (
	rutPattern     = regexp.MustCompile(`\d{1,2}[.\d]*\d-[\dkK]`)
	periodoPattern = regexp.MustCompile(`BALANCE\s+DESDE\s+(` + monthNames + `\s+DEL\s+\d{4})\s+HASTA\s+(` + monthNames + `\s+DEL\s+\d{4})`)
)

// ParseCompanyInfo reads the header block of the first balance page. The
// expected layout puts razón social, RUT, giro, dirección and comuna on
// consecutive lines; the RUT line anchors the rest because it is the only
// one with a fixed shape.
func ParseCompanyInfo(pageText string) dto.CompanyInfo {
	var info dto.CompanyInfo

	if m := periodoPattern.FindStringSubmatch(strings.ToUpper(pageText)); m != nil {
		info.Periodo = "DESDE " + m[1] + " HASTA " + m[2]
	}

	var lines []string
	for _, l := range strings.Split(pageText, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return info
	}

	rutIdx := -1
	limit := len(lines)
	if limit > 15 {
		limit = 15
	}
	for i := 0; i < limit; i++ {
		if rut := rutPattern.FindString(lines[i]); rut != "" {
			info.RUT = rut
			rutIdx = i
			break
		}
	}

	if rutIdx < 0 {
		info.RazonSocial = lines[0]
		return info
	}

	if rutIdx > 0 {
		info.RazonSocial = lines[rutIdx-1]
	}

	// Some layouts concatenate razón social and RUT on one line.
	if pos := strings.Index(lines[rutIdx], info.RUT); pos > 0 {
		info.RazonSocial = strings.TrimSpace(lines[rutIdx][:pos])
	}

	rest := lines[rutIdx+1:]
	giroIdx := -1
	for j, line := range rest {
		upper := strings.ToUpper(line)
		if strings.Contains(upper, "BALANCE") || strings.Contains(upper, "DESDE") {
			break
		}
		switch {
		case giroIdx < 0:
			info.Giro = line
			giroIdx = j
		case j == giroIdx+1:
			info.Direccion = line
		case j == giroIdx+2:
			info.Comuna = line
		}
		if info.Comuna != "" {
			break
		}
	}

	return info
}
