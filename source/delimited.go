package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/labsearch/core"
)

type column int

const (
	colCode column = iota
	colPrice
	colSector
	colDelay
	colDescription
	colName
	numColumns
)

// columnPatterns are matched against folded header cells, in column order.
// Earlier columns claim a header first, so "Description de l'examen" is a
// description and "Code analyse" is a code.
var columnPatterns = [numColumns][]string{
	colCode:        {"code"},
	colPrice:       {"price", "prix", "cost", "cout", "amount", "montant", "fee", "tarif"},
	colSector:      {"sector", "secteur"},
	colDelay:       {"delay", "delai", "duree", "turnaround"},
	colDescription: {"description", "desc", "detail"},
	colName:        {"name", "nom", "analys", "test", "exam", "libelle", "designation"},
}

// Layout maps record fields to header positions; -1 means absent.
type Layout [numColumns]int

// DetectLayout locates record columns in a header row.
// Returns ErrColumnsNotFound unless both a name-like and a price-like column exist.
func DetectLayout(header []string) (Layout, error) {
	var layout Layout
	for i := range layout {
		layout[i] = -1
	}
	claimed := make([]bool, len(header))
	for col := column(0); col < numColumns; col++ {
		for i, cell := range header {
			if claimed[i] {
				continue
			}
			if matchesAny(core.Fold(strings.TrimSpace(cell)), columnPatterns[col]) {
				layout[col] = i
				claimed[i] = true
				break
			}
		}
	}
	if layout[colName] < 0 || layout[colPrice] < 0 {
		return layout, fmt.Errorf("%w: header %q", ErrColumnsNotFound, header)
	}
	return layout, nil
}

func matchesAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// ParseDelimited reads analyses from delimited text with a header row.
// The delimiter is sniffed from the header among ',', ';' and tab. Quoted
// fields and ragged rows are tolerated; blank rows are skipped. Prices are
// returned as written and coerced when the index is built.
func ParseDelimited(r io.Reader) ([]core.RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	headerLine, _, _ := bytes.Cut(data, []byte("\n"))
	if len(bytes.TrimSpace(headerLine)) == 0 {
		return nil, ErrEmptyInput
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(string(headerLine))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	// Leading tabs would be eaten as space in tab-separated input.
	reader.TrimLeadingSpace = reader.Comma != '\t'

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	layout, err := DetectLayout(header)
	if err != nil {
		return nil, err
	}

	records := make([]core.RawRecord, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if blankRow(row) {
			continue
		}
		records = append(records, core.RawRecord{
			Code:        layout.field(row, colCode),
			Name:        layout.field(row, colName),
			Sector:      layout.field(row, colSector),
			Delay:       layout.field(row, colDelay),
			Description: layout.field(row, colDescription),
			Price:       layout.field(row, colPrice),
		})
	}
	return records, nil
}

func (l Layout) field(row []string, col column) string {
	i := l[col]
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// sniffDelimiter picks the most frequent candidate outside quotes.
func sniffDelimiter(line string) rune {
	counts := map[rune]int{}
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case !inQuotes && (r == ',' || r == ';' || r == '\t'):
			counts[r]++
		}
	}
	best := ','
	for _, candidate := range []rune{';', '\t'} {
		if counts[candidate] > counts[best] {
			best = candidate
		}
	}
	return best
}
