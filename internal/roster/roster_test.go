package roster

import (
	"bytes"
	"strings"
	"testing"

	"github.com/AdamBeresnev/cue-bracket/internal/bracket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	in := "name,nickname\n  Ana , Tacada\nBia,\n\nana,Duplicada\n,Sem nome\nCaio\n"

	players, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []bracket.Player{
		{Name: "Ana", Nickname: "Tacada"},
		{Name: "Bia"},
		{Name: "Caio"},
	}, players)
}

func TestReadCSVHeaderOrder(t *testing.T) {
	players, err := ReadCSV(strings.NewReader("apelido,nome\nMestre,Duda\n"))
	require.NoError(t, err)
	assert.Equal(t, []bracket.Player{{Name: "Duda", Nickname: "Mestre"}}, players)
}

func TestReadCSVMissingNameColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("player\nAna\n"))
	assert.Error(t, err)
}

func TestReadJSON(t *testing.T) {
	in := `[{"name":"Ana","nickname":"Tacada"},{"name":"  "},{"name":"` + strings.Repeat("x", 60) + `"}]`

	players, err := ReadJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Ana", players[0].Name)
	assert.Len(t, players[1].Name, MaxNameLength)

	_, err = ReadJSON(strings.NewReader(`{"name":"Ana"}`))
	assert.Error(t, err)
}

func TestWriteThenRead(t *testing.T) {
	players := []bracket.Player{{Name: "Ana", Nickname: "Tacada"}, {Name: "Bia, a Rainha"}}

	for _, f := range []Format{FormatCSV, FormatJSON} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, f, players))
			got, err := Read(&buf, f)
			require.NoError(t, err)
			assert.Equal(t, players, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatCSV, false},
		{"CSV", FormatCSV, false},
		{"text/csv; charset=utf-8", FormatCSV, false},
		{"json", FormatJSON, false},
		{"application/json", FormatJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownFormat, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
