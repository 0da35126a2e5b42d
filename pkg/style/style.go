// Package style holds the flattened style attached to nodes during a render
// pass and the inheritance resolver that produces it. Effective style is a
// transient render-time artifact: it is computed through the recursion call
// stack and never written back onto the tree.
package style

// Properties is a flattened style. Zero values mean "unset": empty strings
// and zero numbers fall through to the inherited value during a merge, while
// the tri-state booleans use pointers so an explicit false can override an
// inherited true.
type Properties struct {
	FontFamily      string  `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
	FontSize        float64 `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	LineHeight      float64 `json:"lineHeight,omitempty" yaml:"lineHeight,omitempty"`
	LetterSpacing   float64 `json:"letterSpacing,omitempty" yaml:"letterSpacing,omitempty"`
	FontColor       string  `json:"fontColor,omitempty" yaml:"fontColor,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	Bold            *bool   `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic          *bool   `json:"italic,omitempty" yaml:"italic,omitempty"`
	Underline       *bool   `json:"underline,omitempty" yaml:"underline,omitempty"`
	Strikethrough   *bool   `json:"strikethrough,omitempty" yaml:"strikethrough,omitempty"`
	Alignment       string  `json:"alignment,omitempty" yaml:"alignment,omitempty"`
}

// Bool returns a pointer for use in Properties literals.
func Bool(v bool) *bool { return &v }

// IsZero reports whether no field is set.
func (p Properties) IsZero() bool {
	return p == Properties{}
}

// Merge overlays child on parent field by field: fields the child sets win,
// unset fields keep the parent value. Neither argument is mutated.
func Merge(parent, child Properties) Properties {
	out := parent
	if child.FontFamily != "" {
		out.FontFamily = child.FontFamily
	}
	if child.FontSize != 0 {
		out.FontSize = child.FontSize
	}
	if child.LineHeight != 0 {
		out.LineHeight = child.LineHeight
	}
	if child.LetterSpacing != 0 {
		out.LetterSpacing = child.LetterSpacing
	}
	if child.FontColor != "" {
		out.FontColor = child.FontColor
	}
	if child.BackgroundColor != "" {
		out.BackgroundColor = child.BackgroundColor
	}
	if child.Bold != nil {
		out.Bold = child.Bold
	}
	if child.Italic != nil {
		out.Italic = child.Italic
	}
	if child.Underline != nil {
		out.Underline = child.Underline
	}
	if child.Strikethrough != nil {
		out.Strikethrough = child.Strikethrough
	}
	if child.Alignment != "" {
		out.Alignment = child.Alignment
	}
	return out
}
