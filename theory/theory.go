// Package theory holds the explanatory text shown next to each simulation.
package theory

import (
	"embed"
	"fmt"

	"github.com/charmbracelet/glamour"

	"fabsim/model"
)

//go:embed text/*.md
var text embed.FS

// Markdown returns the explanation of process followed by the note on the
// model variants.
func Markdown(process model.Process) (string, error) {
	p, err := model.ParseProcess(string(process))
	if err != nil {
		return "", err
	}
	body, err := text.ReadFile("text/" + string(p) + ".md")
	if err != nil {
		return "", fmt.Errorf("theory for %s: %w", p, err)
	}
	variants, err := text.ReadFile("text/variants.md")
	if err != nil {
		return "", fmt.Errorf("theory variants: %w", err)
	}
	return string(body) + "\n" + string(variants), nil
}

// Render formats the explanation for a terminal of the given width.
func Render(process model.Process, width int) (string, error) {
	md, err := Markdown(process)
	if err != nil {
		return "", err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("theory renderer: %w", err)
	}
	return r.Render(md)
}
