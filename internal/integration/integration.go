// Package integration provides embedded shell integration snippets.
package integration

import (
	"bytes"
	_ "embed"
	"os/exec"
	"path/filepath"
	"text/template"
)

// Zsh contains the zsh shell integration script.
//
//go:embed zsh.sh
var Zsh string

// Render renders the integration script to replace the zsh path.
func Render() (string, error) {
	// First use LookPath to find zsh binary
	zsh, err := exec.LookPath("zsh")
	if err != nil {
		return "", err
	}

	zsh = filepath.ToSlash(zsh)

	// Then use text/template to substitute the zsh path
	tmpl, err := template.New("zsh").Parse(Zsh)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{
		"ZSH": zsh,
	}); err != nil {
		return "", err
	}

	return buf.String(), nil
}
