// Package roster reads and writes tournament player lists as CSV or JSON.
package roster

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AdamBeresnev/cue-bracket/internal/bracket"
	"github.com/AdamBeresnev/cue-bracket/internal/utils"
)

const MaxNameLength = 50

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

var (
	ErrUnknownFormat = errors.New("unknown roster format")
	ErrEmptyName     = errors.New("player name is empty")
)

// ParseFormat accepts "csv", "json" or a matching content type.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "csv" || strings.HasPrefix(s, "text/csv"):
		return FormatCSV, nil
	case s == "json" || strings.HasPrefix(s, "application/json"):
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/csv; charset=utf-8"
}

func Read(r io.Reader, f Format) ([]bracket.Player, error) {
	switch f {
	case FormatCSV:
		return ReadCSV(r)
	case FormatJSON:
		return ReadJSON(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

func Write(w io.Writer, f Format, players []bracket.Player) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, players)
	case FormatJSON:
		return json.NewEncoder(w).Encode(Normalize(players))
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// ReadCSV expects a "name,nickname" header; the nickname column is
// optional. Blank lines are skipped.
func ReadCSV(r io.Reader) ([]bracket.Player, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	nameCol, nickCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "name", "nome":
			nameCol = i
		case "nickname", "apelido":
			nickCol = i
		}
	}
	if nameCol < 0 {
		return nil, errors.New("csv header has no name column")
	}

	var players []bracket.Player
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if nameCol >= len(rec) {
			continue
		}
		p := bracket.Player{Name: rec[nameCol]}
		if nickCol >= 0 && nickCol < len(rec) {
			p.Nickname = rec[nickCol]
		}
		players = append(players, p)
	}
	return Normalize(players), nil
}

// ReadJSON accepts an array of {"name","nickname"} objects.
func ReadJSON(r io.Reader) ([]bracket.Player, error) {
	var players []bracket.Player
	if err := json.NewDecoder(r).Decode(&players); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	return Normalize(players), nil
}

func WriteCSV(w io.Writer, players []bracket.Player) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "nickname"}); err != nil {
		return err
	}
	for _, p := range players {
		if err := cw.Write([]string{p.Name, p.Nickname}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Normalize trims and clips names, drops players without a name and keeps
// the first occurrence of a repeated name (case-insensitive).
func Normalize(players []bracket.Player) []bracket.Player {
	seen := make(map[string]bool, len(players))
	out := make([]bracket.Player, 0, len(players))
	for _, p := range players {
		p, err := Clean(p)
		if err != nil {
			continue
		}
		key := strings.ToLower(p.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// Clean trims and clips a single player.
func Clean(p bracket.Player) (bracket.Player, error) {
	p.Name = utils.Clip(p.Name, MaxNameLength)
	p.Nickname = utils.Clip(p.Nickname, MaxNameLength)
	if p.Name == "" {
		return p, ErrEmptyName
	}
	return p, nil
}
