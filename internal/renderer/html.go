package renderer

import (
	"agency/internal/logger"
	"bytes"
	"context"
	"html/template"
)

const documentHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 50px; }
        .field { margin-bottom: 10px; }
        .label { font-weight: bold; display: block; }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <p>{{.Description}}</p>
{{- range .Fields}}
    <div class="field">
        <span class="label">{{.Label}}:</span>
        <span>{{.Value}}</span>
    </div>
{{- end}}
</body>
</html>
`

type HTMLRenderer struct {
	tmpl *template.Template
	log  logger.Logger
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		tmpl: template.Must(template.New("document").Parse(documentHTML)),
		log:  logger.New("renderer").File("html"),
	}
}

func (r *HTMLRenderer) Render(ctx context.Context, request RenderRequest) ([]byte, error) {
	log := r.log.Function("Render")

	if err := ctx.Err(); err != nil {
		return nil, log.Err("render cancelled", err)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, request); err != nil {
		return nil, log.Err("failed to render html document", err, "title", request.Title)
	}

	return buf.Bytes(), nil
}

func (r *HTMLRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *HTMLRenderer) Extension() string {
	return "html"
}
