package handlers

import (
	"bytes"
	"html/template"
	"mime"
	"strings"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json"
)

// Format is the representation a response is rendered in.
type Format int

const (
	FormatHTML Format = iota
	FormatJSON
)

// FormatFor picks the response format from a request Content-Type.
// JSON media types (including +json suffixes) get JSON, everything else is treated as a form.
func FormatFor(contentType string) Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return FormatHTML
	}

	if mediaType == contentTypeJSON || strings.HasSuffix(mediaType, "+json") {
		return FormatJSON
	}

	return FormatHTML
}

var pages = template.Must(template.New("pages").Parse(`
{{- define "home" -}}
<h1>URL Shortener</h1>
<form method="POST" action="/shorten">
    <input type="text" name="url" placeholder="Enter your URL here" size="50">
    <input type="submit" value="Shorten">
</form>
{{- end -}}

{{- define "created" -}}
<h1>URL shortened</h1>
<p>Short URL: <a href="{{.}}">{{.}}</a></p>
<a href="/">Shorten another URL</a>
{{- end -}}

{{- define "error" -}}
<h1>Error</h1>
<p>{{.}}</p>
<a href="/">Back to home</a>
{{- end -}}
`))

// Renderer produces the HTML pages and fragments served by the link handler.
type Renderer struct {
	home []byte
}

// NewRenderer renders the static home page once.
func NewRenderer() (*Renderer, error) {
	home, err := render("home", nil)
	if err != nil {
		return nil, err
	}

	return &Renderer{home: home}, nil
}

// Home returns the landing page with the shorten form.
func (r *Renderer) Home() []byte {
	return r.home
}

// Created renders the fragment linking to a new short URL.
func (r *Renderer) Created(shortURL string) ([]byte, error) {
	return render("created", shortURL)
}

// Error renders an error fragment with a link back home.
func (r *Renderer) Error(message string) ([]byte, error) {
	return render("error", message)
}

func render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
