package web

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/jaminalder/timetravel-tic-tac-toe/internal/app"
	"github.com/jaminalder/timetravel-tic-tac-toe/internal/domain"
)

type templates struct {
	game  *template.Template
	board *template.Template
	index *template.Template
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"iter": func(n int) []int {
			a := make([]int, n)
			for i := range a {
				a[i] = i
			}
			return a
		},
		"cellSymbol": func(c domain.Cell) string { return c.String() },
		"add":        func(a, b int) int { return a + b },
		"mul":        func(a, b int) int { return a * b },
	}
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic-Tac-Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>
<style>
.board-row{display:flex}
.square{width:48px;height:48px;font-size:24px;font-weight:bold}
.square.winning{background:#ffe066}
.game{display:flex;gap:24px}
</style>
</head><body>{{template "content" .}}</body></html>`))
	// Define the board template within the same set so game can include it
	template.Must(base.New("board").Parse(boardTemplate))
	index := template.Must(base.Clone())
	template.Must(index.New("content").Parse(`<h1>Tic-Tac-Toe</h1><form action="/game" method="post"><button>New game</button></form>`))
	game := template.Must(base.Clone())
	template.Must(game.New("content").Parse(`
<div hx-ext="sse" sse-connect="/game/{{.ID}}/events" sse-swap="board" hx-swap="innerHTML">{{template "board" .}}</div>`))
	// Standalone board template used for fragment rendering
	board := template.Must(template.New("board_only").Funcs(funcs()).Parse(boardTemplate))
	return &templates{game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.Bytes(), nil
}

// boardData is what the board fragment renders.
type boardData struct {
	ID   string
	View domain.View
}

func newBoardData(gs app.GameState) boardData {
	return boardData{ID: gs.ID, View: gs.Game.View()}
}

const boardTemplate = `
<div id="board" class="game">
  <div class="game-board">
  {{range $r := iter 3}}
  <div class="board-row">
    {{range $c := iter 3}}{{$i := add (mul $r 3) $c}}
      <form hx-post="/game/{{$.ID}}/play" hx-target="#board" hx-swap="outerHTML" action="/game/{{$.ID}}/play" method="post">
        <input type="hidden" name="cell" value="{{$i}}">
        <button type="submit" class="square{{if index $.View.Winning $i}} winning{{end}}">{{cellSymbol (index $.View.Board $i)}}</button>
      </form>
    {{end}}
  </div>
  {{end}}
  </div>
  <div class="game-info">
    <div class="status">{{.View.Status}}</div>
    <form hx-post="/game/{{.ID}}/sort" hx-target="#board" hx-swap="outerHTML" action="/game/{{.ID}}/sort" method="post">
      <button type="submit">{{.View.SortLabel}}</button>
    </form>
    <ol>
    {{range .View.Moves}}
      <li>
      {{if .Current}}
        <div class="current">{{.Label}}</div>
      {{else}}
        <form hx-post="/game/{{$.ID}}/jump" hx-target="#board" hx-swap="outerHTML" action="/game/{{$.ID}}/jump" method="post">
          <input type="hidden" name="step" value="{{.Move}}">
          <button type="submit">{{.Label}}</button>
        </form>
      {{end}}
      </li>
    {{end}}
    </ol>
  </div>
</div>
`
