package widget

import (
	"fmt"
	"html/template"
	"io"
)

// widgetTemplate lays out the elements the widget binds to: name,
// name-holder, alert, send and table. html/template escapes every value.
var widgetTemplate = template.Must(template.New("widget").Parse(`<div id="name-holder" class="form-group {{.Class}}">
  <input id="name" type="text" class="form-control" value="{{.Value}}">
  <button id="send" type="button" class="btn btn-default">Send</button>
</div>
<div id="alert" class="alert alert-danger"{{if not .Alert}} hidden{{end}}>{{.Alert}}</div>
<table id="table" class="table">
{{- range .Rows}}
  <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</table>
`))

type htmlView struct {
	Class string
	Value string
	Alert string
	Rows  [][]string
}

// RenderHTML writes s as an HTML fragment.
func RenderHTML(w io.Writer, s State) error {
	view := htmlView{
		Class: s.Indicator.Class(),
		Value: s.Value,
		Alert: s.Alert,
		Rows:  s.Rows(),
	}
	if err := widgetTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render widget: %w", err)
	}
	return nil
}
