package service

import (
	"strings"

	"github.com/cvergara/balance-rli/dto"
	"github.com/cvergara/balance-rli/utils"
)

// BuildRecord turns a row's column cells into a typed account record. Rows
// whose code cell holds no six-digit account code are not data rows and are
// rejected. Numeric cells that parse as noise contribute 0 to their field;
// the row is still emitted.
func BuildRecord(cells map[dto.ColumnLabel][]dto.PositionedToken) (dto.AccountRecord, bool) {
	var code string
	for _, tok := range cells[dto.ColCode] {
		if accountCodePattern.MatchString(tok.Text) {
			code = tok.Text
			break
		}
	}
	if code == "" {
		return dto.AccountRecord{}, false
	}

	var nameParts []string
	for _, tok := range cells[dto.ColName] {
		nameParts = append(nameParts, tok.Text)
	}

	values := make(map[dto.ColumnLabel]int64, len(dto.NumericColumns))
	for _, col := range dto.NumericColumns {
		var cell int64
		for _, tok := range cells[col] {
			if v, ok := utils.ParseAmount(tok.Text); ok {
				cell += v
			}
		}
		values[col] = cell
	}

	return dto.AccountRecord{
		Code:   code,
		Name:   strings.Join(nameParts, " "),
		Values: values,
	}, true
}

// recordSet keeps extraction order and guarantees code uniqueness within a
// run: a code reappearing on a later page accumulates into its record.
type recordSet struct {
	order  []string
	byCode map[string]*dto.AccountRecord
}

func newRecordSet() *recordSet {
	return &recordSet{byCode: make(map[string]*dto.AccountRecord)}
}

func (s *recordSet) add(rec dto.AccountRecord) {
	existing, ok := s.byCode[rec.Code]
	if !ok {
		copied := rec
		s.byCode[rec.Code] = &copied
		s.order = append(s.order, rec.Code)
		return
	}

	for col, v := range rec.Values {
		existing.Values[col] += v
	}
	if existing.Name == "" {
		existing.Name = rec.Name
	}
}

func (s *recordSet) records() []dto.AccountRecord {
	out := make([]dto.AccountRecord, 0, len(s.order))
	for _, code := range s.order {
		out = append(out, *s.byCode[code])
	}
	return out
}
