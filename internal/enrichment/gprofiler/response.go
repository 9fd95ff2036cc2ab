package gprofiler

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/takatori/gprofiler/internal/enrichment"
)

const (
	minRowLength = 14
	// intersection is the only column allowed to be missing
	minColumns = 13
)

// parseResult converts a g:Profiler "mini" response into records, keeping
// the service's row order. Comment rows, short rows and rows whose numeric
// columns do not parse are skipped.
func parseResult(data string) []enrichment.Record {
	records := make([]enrichment.Record, 0)

	for _, row := range strings.Split(data, "\n") {
		if strings.HasPrefix(row, "#") || utf8.RuneCountInString(row) < minRowLength {
			continue
		}

		rec, ok := parseRow(row)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	return records
}

func parseRow(row string) (enrichment.Record, bool) {
	fields := lo.Map(strings.Split(row, "\t"), func(f string, _ int) string {
		return strings.TrimSpace(f)
	})
	if len(fields) < minColumns {
		return enrichment.Record{}, false
	}

	p := rowParser{fields: fields}
	rec := enrichment.Record{
		Significant:  fields[1] != "",
		PValue:       p.parseFloat(2),
		TermSize:     p.parseInt(3),
		QuerySize:    p.parseInt(4),
		OverlapSize:  p.parseInt(5),
		Precision:    p.parseFloat(6),
		Recall:       p.parseFloat(7),
		TermID:       fields[8],
		Domain:       fields[9],
		Subgraph:     fields[10],
		TermName:     fields[11],
		Depth:        fields[12],
		Intersection: []string{},
	}
	if p.err != nil {
		return enrichment.Record{}, false
	}
	if len(fields) > 13 && fields[13] != "" {
		rec.Intersection = strings.Split(fields[13], ",")
	}

	return rec, true
}

// rowParser keeps the first conversion error so a row can be rejected as a whole.
type rowParser struct {
	fields []string
	err    error
}

func (p *rowParser) parseFloat(i int) float64 {
	v, err := strconv.ParseFloat(p.fields[i], 64)
	if err != nil && p.err == nil {
		p.err = err
	}
	return v
}

func (p *rowParser) parseInt(i int) int {
	v, err := strconv.Atoi(p.fields[i])
	if err != nil && p.err == nil {
		p.err = err
	}
	return v
}
