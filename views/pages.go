package views

import (
	"context"
	"io"

	"github.com/AdamBeresnev/cue-bracket/internal/bracket"
	"github.com/AdamBeresnev/cue-bracket/internal/video"
	"github.com/a-h/templ"
)

func Index(tournaments []bracket.Tournament) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &writer{w: w}
		hw.raw(`<h1>Meus torneios</h1>`)
		if len(tournaments) == 0 {
			hw.raw(`<p class="empty">Nenhum torneio ainda.</p>`)
			return hw.err
		}
		hw.raw(`<ul class="tournaments">`)
		for _, t := range tournaments {
			hw.rawf(`<li><a href="/tournaments/%s">`, t.ID)
			hw.text(t.Name)
			hw.raw(`</a> <span class="status">`)
			hw.text(statusLabel(t.Status))
			hw.raw(`</span></li>`)
		}
		hw.raw(`</ul>`)
		return hw.err
	})
	return layout("Meus torneios", body)
}

func LoginPage(providers []string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &writer{w: w}
		hw.raw(`<h1>Entrar</h1><ul class="providers">`)
		for _, p := range providers {
			hw.raw(`<li><a href="/auth/`)
			hw.text(p)
			hw.raw(`">`)
			hw.text(p)
			hw.raw(`</a></li>`)
		}
		hw.raw(`</ul><form method="post" action="/auth/guest"><button>Entrar como convidado</button></form>`)
		return hw.err
	})
	return layout("Entrar", body)
}

// TournamentView renders the public bracket page with the table stream.
func TournamentView(t *bracket.Tournament, entries []bracket.Entry, embed video.EmbedInfo) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &writer{w: w}
		hw.raw(`<h1>`)
		hw.text(t.Name)
		hw.raw(`</h1><p class="status">`)
		hw.text(statusLabel(t.Status))
		hw.raw(`</p>`)
		if t.Description != "" {
			hw.raw(`<p class="description">`)
			hw.text(t.Description)
			hw.raw(`</p>`)
		}

		hw.component(ctx, streamEmbed(embed))

		if t.Bracket == nil {
			hw.raw(`<h2>Inscritos</h2><ol class="roster">`)
			for _, e := range entries {
				hw.raw(`<li>`)
				hw.text(slotText(bracket.PlayerSlot(e.Player())))
				hw.raw(`</li>`)
			}
			hw.raw(`</ol>`)
			return hw.err
		}

		hw.component(ctx, bracketView(PrepareBracketData(t.Bracket)))
		return hw.err
	})
	return layout(t.Name, body)
}

func streamEmbed(embed video.EmbedInfo) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &writer{w: w}
		switch embed.Type {
		case video.EmbedTypeNone:
			return nil
		case video.EmbedTypeVideo:
			hw.raw(`<video class="stream" controls src="`)
			hw.text(embed.URL)
			hw.raw(`"></video>`)
		default:
			hw.raw(`<iframe class="stream" allowfullscreen src="`)
			hw.text(embed.URL)
			hw.raw(`"></iframe>`)
		}
		return hw.err
	})
}

func bracketView(data BracketData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &writer{w: w}
		if data.Champion != nil {
			hw.raw(`<p class="champion">Campeão: `)
			hw.text(slotText(*data.Champion))
			hw.raw(`</p>`)
		}
		for _, section := range data.Sections {
			hw.rawf(`<section class="side side-%s"><h2>`, section.Side)
			hw.text(section.Title)
			hw.raw(`</h2><div class="rounds">`)
			for _, round := range section.Rounds {
				if round.Current {
					hw.raw(`<div class="round current"><h3>`)
				} else {
					hw.raw(`<div class="round"><h3>`)
				}
				hw.text(round.Name)
				hw.raw(`</h3>`)
				for _, m := range round.Matches {
					hw.rawf(`<div class="match" id="match-%d"><span class="match-id">#%d</span>`, m.ID, m.ID)
					for i, s := range m.Players {
						hw.rawf(`<div class="%s">`, slotClass(m, i))
						hw.text(slotText(s))
						if s.Score != nil {
							hw.rawf(`<span class="score">%d</span>`, *s.Score)
						}
						hw.raw(`</div>`)
					}
					hw.raw(`</div>`)
				}
				hw.raw(`</div>`)
			}
			hw.raw(`</div></section>`)
		}
		return hw.err
	})
}
