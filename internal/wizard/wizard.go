// Package wizard implements the interactive project setup form behind
// `cmseval init`.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ProjectSpec holds all fields collected during the interactive wizard.
type ProjectSpec struct {
	ProviderType string
	Model        string
	Host         string
	UseCases     []string
	ReportTitle  string
}

const configTemplate = `# cmseval project configuration.
provider:
  type: {{ .ProviderType }}
{{- if .Model }}
  model: {{ .Model }}
{{- end }}
{{- if .Host }}
  host: {{ .Host }}
{{- end }}
{{- if .UseCases }}
evaluation:
  use_cases:
{{- range .UseCases }}
    - {{ . }}
{{- end }}
{{- end }}
{{- if .ReportTitle }}
report:
  title: "{{ .ReportTitle }}"
{{- end }}
`

// RunInitWizard runs an interactive huh form to collect project settings.
// useCaseKeys drives the use-case multi-select; pass the ontology's key
// order so the form matches the data file.
func RunInitWizard(in io.Reader, out io.Writer, useCaseKeys []string) (*ProjectSpec, error) {
	var (
		providerType string
		model        string
		host         string
		useCases     []string
		reportTitle  string
	)

	options := make([]huh.Option[string], 0, len(useCaseKeys))
	for _, key := range useCaseKeys {
		options = append(options, huh.NewOption(key, key))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default LLM provider").
				Options(
					huh.NewOption("ollama (local)", "ollama"),
					huh.NewOption("openai", "openai"),
					huh.NewOption("anthropic", "anthropic"),
				).
				Value(&providerType),
			huh.NewInput().
				Title("Model").
				Description("Leave blank to use the provider's default").
				Placeholder("llama3.1").
				Value(&model),
			huh.NewInput().
				Title("Ollama host").
				Description("Only used by the ollama provider").
				Placeholder("http://localhost:11444").
				Value(&host),
			huh.NewMultiSelect[string]().
				Title("Use cases to score by default").
				Description("Leave empty to score against every use case").
				Options(options...).
				Value(&useCases),
			huh.NewInput().
				Title("Report title").
				Placeholder("CMS Platform Evaluation Report").
				Value(&reportTitle),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	return &ProjectSpec{
		ProviderType: providerType,
		Model:        strings.TrimSpace(model),
		Host:         strings.TrimSpace(host),
		UseCases:     useCases,
		ReportTitle:  strings.TrimSpace(reportTitle),
	}, nil
}

// GenerateConfig renders a starter .cmseval.yaml from the given spec.
func GenerateConfig(spec *ProjectSpec) (string, error) {
	tmpl, err := template.New("cmsevalyaml").Parse(configTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}
