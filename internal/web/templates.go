package web

import (
    "bytes"
    "fmt"
    "html/template"

    "github.com/jaminalder/tictactoe-ai/internal/domain"
    "github.com/rs/zerolog/log"
)

type templates struct {
    base  *template.Template
    game  *template.Template
    board *template.Template
}

func funcs() template.FuncMap {
    return template.FuncMap{
        "iter": func(n int) []int { a := make([]int, n); for i := range a { a[i] = i }; return a },
        "cellSymbol": func(c domain.Cell) string {
            switch c { case domain.X: return "X"; case domain.O: return "O"; default: return "" }
        },
        "add":     func(a, b int) int { return a + b },
        "mul":     func(a, b int) int { return a * b },
        "empty":   func(c domain.Cell) bool { return c == domain.Empty },
        "percent": func(v float64) string { return fmt.Sprintf("%.2f%%", v) },
    }
}

func loadTemplates() *templates {
    base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic-Tac-Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
</head><body>{{template "content" .}}</body></html>`))
    template.Must(base.New("board").Funcs(funcs()).Parse(boardTemplate))
    game := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Tic-Tac-Toe</h1>
<div hx-ext="sse" sse-connect="/events">
  <div id="live" sse-swap="board">{{template "board" .}}</div>
</div>`))
    // Standalone board template used for fragment rendering
    board := template.Must(template.New("board_only").Funcs(funcs()).Parse(boardTemplate))
    return &templates{base: base, game: game, board: board}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
    var buf bytes.Buffer
    var err error
    if name == "" {
        err = t.Execute(&buf, data)
    } else {
        err = t.ExecuteTemplate(&buf, name, data)
    }
    if err != nil {
        log.Error().Err(err).Str("template", t.Name()).Msg("render failed")
    }
    return buf.Bytes()
}

const boardTemplate = `
<div id="board">
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  {{if .Message}}
  <div class="result">{{.Message}}</div>
  {{end}}
  {{range $r := iter 3}}
  <div class="row">
    {{range $c := iter 3}}
      {{$i := add (mul $r 3) $c}}
      <form hx-post="/move" hx-target="#board" hx-swap="outerHTML" method="post">
        <input type="hidden" name="pos" value="{{$i}}">
        <button type="submit"{{if or $.Over (not (empty (index $.Board $i)))}} disabled{{end}}>{{cellSymbol (index $.Board $i)}}</button>
      </form>
    {{end}}
  </div>
  {{end}}
  {{if .Over}}
  <form hx-get="/board" hx-target="#board" hx-swap="outerHTML" method="get"><button>Play again</button></form>
  {{end}}
  <form hx-post="/difficulty" hx-target="#board" hx-swap="outerHTML" method="post">
    <select name="level">
      {{range .Difficulties}}<option value="{{.}}"{{if eq . $.Difficulty}} selected{{end}}>{{.}}</option>{{end}}
    </select>
    <button>Set difficulty</button>
  </form>
  <form hx-post="/reset" hx-target="#board" hx-swap="outerHTML" method="post"><button>Reset</button></form>
  <table class="stats">
    <tr><td>Total Games: {{.Stats.Total}}</td><td></td></tr>
    <tr><td>Player Wins: {{.Stats.HumanWins}}</td><td>Win Rate: {{percent .Stats.HumanWinRate}}</td></tr>
    <tr><td>Computer Wins: {{.Stats.ComputerWins}}</td><td>Win Rate: {{percent .Stats.ComputerWinRate}}</td></tr>
    <tr><td>Ties: {{.Stats.Ties}}</td><td>Tie Rate: {{percent .Stats.TieRate}}</td></tr>
  </table>
</div>
`
