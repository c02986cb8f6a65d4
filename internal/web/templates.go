package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
)

var (
	//go:embed templates/*.html
	templatesFS embed.FS
	pages       = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

	//go:embed assets/*
	assetsFS embed.FS
)

// renderTemplate executes the page into a buffer first so that a failing
// template yields a clean 500 instead of a truncated page.
func (s *server) renderTemplate(w http.ResponseWriter, code int, name string, data map[string]any) {
	var buf bytes.Buffer
	err := pages.ExecuteTemplate(&buf, name, data)
	if err != nil {
		slog.Error("rendering page", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

// renderError shows the error page. reqErr may be nil for plain status pages.
func (s *server) renderError(w http.ResponseWriter, code int, reqErr error) {
	data := map[string]any{
		"Title":  fmt.Sprintf("%d %s", code, http.StatusText(code)),
		"Status": code,
	}

	if reqErr != nil {
		slog.Warn("request failed", "status", code, "error", reqErr)
		data["Message"] = reqErr.Error()
	}

	s.renderTemplate(w, code, "error.html", data)
}
