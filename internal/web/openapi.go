package web

import (
	"github.com/yuzeguitarist/qrgen/internal/qr"
	"gopkg.in/yaml.v3"
)

type openAPIDoc struct {
	OpenAPI string                 `yaml:"openapi"`
	Info    openAPIInfo            `yaml:"info"`
	Paths   map[string]openAPIPath `yaml:"paths"`
}

type openAPIInfo struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
}

type openAPIPath struct {
	Get openAPIOperation `yaml:"get"`
}

type openAPIOperation struct {
	Summary    string                     `yaml:"summary"`
	Tags       []string                   `yaml:"tags,omitempty"`
	Parameters []openAPIParam             `yaml:"parameters,omitempty"`
	Responses  map[string]openAPIResponse `yaml:"responses"`
}

type openAPIParam struct {
	Name        string        `yaml:"name"`
	In          string        `yaml:"in"`
	Required    bool          `yaml:"required,omitempty"`
	Description string        `yaml:"description,omitempty"`
	Schema      openAPISchema `yaml:"schema"`
}

type openAPISchema struct {
	Type      string   `yaml:"type"`
	Format    string   `yaml:"format,omitempty"`
	Default   any      `yaml:"default,omitempty"`
	Minimum   *int     `yaml:"minimum,omitempty"`
	Maximum   *int     `yaml:"maximum,omitempty"`
	MinLength *int     `yaml:"minLength,omitempty"`
	MaxLength *int     `yaml:"maxLength,omitempty"`
	Enum      []string `yaml:"enum,omitempty"`
}

type openAPIResponse struct {
	Description string                      `yaml:"description"`
	Content     map[string]openAPIMediaType `yaml:"content,omitempty"`
}

type openAPIMediaType struct {
	Schema openAPISchema `yaml:"schema"`
}

func intPtr(v int) *int { return &v }

func jsonResponse(desc string) openAPIResponse {
	return openAPIResponse{
		Description: desc,
		Content:     map[string]openAPIMediaType{"application/json": {Schema: openAPISchema{Type: "object"}}},
	}
}

func openAPIDocument() openAPIDoc {
	p := qr.Describe()
	binary := openAPISchema{Type: "string", Format: "binary"}
	return openAPIDoc{
		OpenAPI: "3.0.3",
		Info: openAPIInfo{
			Title:       "qrgen",
			Description: "Renders QR codes from text as PNG or SVG.",
			Version:     "1.0",
		},
		Paths: map[string]openAPIPath{
			"/": {Get: openAPIOperation{
				Summary: "Landing page with a QR form",
				Tags:    []string{"viewer"},
				Responses: map[string]openAPIResponse{
					"200": {Description: "HTML page", Content: map[string]openAPIMediaType{"text/html": {Schema: openAPISchema{Type: "string"}}}},
				},
			}},
			"/qr": {Get: openAPIOperation{
				Summary: "Render a QR code",
				Tags:    []string{"qr"},
				Parameters: []openAPIParam{
					{Name: "texto", In: "query", Required: true, Description: "Text or URL to encode",
						Schema: openAPISchema{Type: "string", MinLength: intPtr(1), MaxLength: intPtr(p.Text.MaxLength)}},
					{Name: "box_size", In: "query", Description: "Pixels per module",
						Schema: openAPISchema{Type: "integer", Default: p.BoxSize.Default, Minimum: intPtr(p.BoxSize.Min), Maximum: intPtr(p.BoxSize.Max)}},
					{Name: "border", In: "query", Description: "Quiet zone width in modules",
						Schema: openAPISchema{Type: "integer", Default: p.Border.Default, Minimum: intPtr(p.Border.Min), Maximum: intPtr(p.Border.Max)}},
					{Name: "fill_color", In: "query", Description: "Module color: name, #rgb, #rrggbb, rgb() or hsl()",
						Schema: openAPISchema{Type: "string", Default: p.FillColor.Default}},
					{Name: "back_color", In: "query", Description: "Background color",
						Schema: openAPISchema{Type: "string", Default: p.BackColor.Default}},
					{Name: "format", In: "query", Description: "Output format",
						Schema: openAPISchema{Type: "string", Default: p.Format.Default, Enum: p.Format.Options}},
					{Name: "download", In: "query", Description: "Send as attachment instead of inline",
						Schema: openAPISchema{Type: "boolean"}},
				},
				Responses: map[string]openAPIResponse{
					"200": {Description: "QR image", Content: map[string]openAPIMediaType{
						qr.FormatPNG.MediaType(): {Schema: binary},
						qr.FormatSVG.MediaType(): {Schema: binary},
					}},
					"422": jsonResponse("Validation error"),
					"500": jsonResponse("Rendering error"),
				},
			}},
			"/qr/params": {Get: openAPIOperation{
				Summary:   "Describe accepted parameters",
				Tags:      []string{"qr"},
				Responses: map[string]openAPIResponse{"200": jsonResponse("Parameter descriptor")},
			}},
			"/healthz": {Get: openAPIOperation{
				Summary:   "Liveness probe",
				Responses: map[string]openAPIResponse{"200": jsonResponse("Service is up")},
			}},
		},
	}
}

func openAPIYAML() ([]byte, error) {
	doc := openAPIDocument()
	return yaml.Marshal(&doc)
}
