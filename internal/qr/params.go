package qr

type IntParam struct {
	Default int `json:"default" yaml:"default"`
	Min     int `json:"min" yaml:"min"`
	Max     int `json:"max" yaml:"max"`
}

type StringParam struct {
	Default string `json:"default" yaml:"default"`
}

type ChoiceParam struct {
	Default string   `json:"default" yaml:"default"`
	Options []string `json:"options" yaml:"options"`
}

type TextParam struct {
	MaxLength int `json:"max_length" yaml:"max_length"`
}

type BoolParam struct {
	Default bool `json:"default" yaml:"default"`
}

// Params describes every accepted query parameter. Field order is the
// order clients see in JSON.
type Params struct {
	BoxSize   IntParam    `json:"box_size" yaml:"box_size"`
	Border    IntParam    `json:"border" yaml:"border"`
	FillColor StringParam `json:"fill_color" yaml:"fill_color"`
	BackColor StringParam `json:"back_color" yaml:"back_color"`
	Format    ChoiceParam `json:"format" yaml:"format"`
	Text      TextParam   `json:"texto" yaml:"texto"`
	Download  BoolParam   `json:"download" yaml:"download"`
}

// Describe builds the descriptor from the package constants. Each call
// returns a new value.
func Describe() Params {
	formats := make([]string, 0, len(Formats))
	for _, f := range Formats {
		formats = append(formats, string(f))
	}
	return Params{
		BoxSize:   IntParam{Default: DefaultBoxSize, Min: MinBoxSize, Max: MaxBoxSize},
		Border:    IntParam{Default: DefaultBorder, Min: MinBorder, Max: MaxBorder},
		FillColor: StringParam{Default: DefaultFill},
		BackColor: StringParam{Default: DefaultBack},
		Format:    ChoiceParam{Default: string(DefaultFormat), Options: formats},
		Text:      TextParam{MaxLength: MaxTextLength},
		Download:  BoolParam{Default: false},
	}
}
