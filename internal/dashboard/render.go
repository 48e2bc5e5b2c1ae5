package dashboard

import (
	"io"
	"text/template"
)

var textTemplate = template.Must(template.New("panel").Parse(
	`{{- if eq .Kind "data" -}}
{{ .Heading }}
  {{ .Temperature }}
  {{ .Description }}
  {{ .Humidity }}
  {{ .WindSpeed }}
{{ else -}}
{{ .Message }}
{{ end -}}
`))

// RenderText writes v's display region as plain text.
func RenderText(w io.Writer, v View) error {
	return textTemplate.Execute(w, v.Panel())
}
