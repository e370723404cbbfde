package source

import (
	"strings"
	"testing"

	"github.com/poiesic/labsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLayout(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   map[column]int
	}{
		{
			name:   "french full header",
			header: []string{"Code", "Analyse", "Secteur", "Délai", "Description", "Prix (DH)"},
			want:   map[column]int{colCode: 0, colName: 1, colSector: 2, colDelay: 3, colDescription: 4, colPrice: 5},
		},
		{
			name:   "english minimal header",
			header: []string{"Test", "Amount"},
			want:   map[column]int{colName: 0, colPrice: 1, colCode: -1, colSector: -1, colDelay: -1, colDescription: -1},
		},
		{
			name:   "accented price header",
			header: []string{" Examen ", "Coût"},
			want:   map[column]int{colName: 0, colPrice: 1},
		},
		{
			name:   "description claims before name",
			header: []string{"Description de l'examen", "Nom", "Tarif"},
			want:   map[column]int{colDescription: 0, colName: 1, colPrice: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := DetectLayout(tt.header)
			require.NoError(t, err)
			for col, idx := range tt.want {
				assert.Equal(t, idx, layout[col], "column %d", col)
			}
		})
	}
}

func TestDetectLayout_MissingColumns(t *testing.T) {
	_, err := DetectLayout([]string{"Name", "Code"})
	assert.ErrorIs(t, err, ErrColumnsNotFound)

	_, err = DetectLayout([]string{"Prix", "Secteur"})
	assert.ErrorIs(t, err, ErrColumnsNotFound)
}

func TestParseDelimited_Semicolon(t *testing.T) {
	input := "Code;Nom;Secteur;Délai;Prix\n" +
		"HB;Hémoglobine;HEMA;24h;40,50\n" +
		"TSH;TSH ultrasensible;HORM;48h;120\n"

	records, err := ParseDelimited(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, core.RawRecord{Code: "HB", Name: "Hémoglobine", Sector: "HEMA", Delay: "24h", Price: "40,50"}, records[0])
	assert.Equal(t, "TSH ultrasensible", records[1].Name)
}

func TestParseDelimited_QuotedComma(t *testing.T) {
	input := "Name,Price\n\"Fer, sérique\",50\n"

	records, err := ParseDelimited(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Fer, sérique", records[0].Name)
	assert.Equal(t, "50", records[0].Price)
}

func TestParseDelimited_Tab(t *testing.T) {
	input := "Analyse\tTarif\nUrée\t30\n"

	records, err := ParseDelimited(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Urée", records[0].Name)
	assert.Equal(t, "30", records[0].Price)
}

func TestParseDelimited_RaggedAndBlankRows(t *testing.T) {
	input := "Code,Name,Price\n" +
		"CRP,Protéine C réactive,60\n" +
		",,\n" +
		"\n" +
		"UREE,Urée\n"

	records, err := ParseDelimited(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "60", records[0].Price)
	assert.Equal(t, "Urée", records[1].Name)
	assert.Empty(t, records[1].Price, "missing trailing field stays empty")
}

func TestParseDelimited_ByteOrderMark(t *testing.T) {
	input := "\xef\xbb\xbfName,Price\nCréatinine,30\n"

	records, err := ParseDelimited(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Créatinine", records[0].Name)
}

func TestParseDelimited_Errors(t *testing.T) {
	_, err := ParseDelimited(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = ParseDelimited(strings.NewReader("Code,Sector\nA,B\n"))
	assert.ErrorIs(t, err, ErrColumnsNotFound)
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ',', sniffDelimiter("Name,Price"))
	assert.Equal(t, ';', sniffDelimiter("Nom;Prix;Code"))
	assert.Equal(t, '\t', sniffDelimiter("Nom\tPrix"))
	assert.Equal(t, ';', sniffDelimiter("\"Nom, complet\";Prix"), "commas inside quotes are ignored")
	assert.Equal(t, ',', sniffDelimiter("Nom"))
}
