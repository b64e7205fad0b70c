package idef0

import "github.com/matzehuels/idef0/pkg/fonts"

// Style holds the measurements layout and rendering work from. All lengths
// are in points.
type Style struct {
	FontFamily string  `toml:"font_family" json:"font_family"`
	FontSize   float64 `toml:"font_size" json:"font_size"`

	BoxMinWidth  float64 `toml:"box_min_width" json:"box_min_width"`
	BoxMinHeight float64 `toml:"box_min_height" json:"box_min_height"`
	BoxPadding   float64 `toml:"box_padding" json:"box_padding"`

	// AnchorSpacing is the minimum distance between two anchors on one side.
	AnchorSpacing float64 `toml:"anchor_spacing" json:"anchor_spacing"`
	// Clearance is the distance from a box side to the first bend of a line.
	Clearance float64 `toml:"clearance" json:"clearance"`
	// LineGap separates parallel line segments.
	LineGap float64 `toml:"line_gap" json:"line_gap"`
	// SideMargin is the base gap between consecutive boxes.
	SideMargin float64 `toml:"side_margin" json:"side_margin"`
}

// DefaultStyle returns the style used when none is configured.
func DefaultStyle() Style {
	return Style{
		FontFamily:    fonts.FontFamily,
		FontSize:      12,
		BoxMinWidth:   120,
		BoxMinHeight:  60,
		BoxPadding:    10,
		AnchorSpacing: 20,
		Clearance:     20,
		LineGap:       10,
		SideMargin:    20,
	}
}

// withDefaults fills zero fields from DefaultStyle.
func (s Style) withDefaults() Style {
	def := DefaultStyle()
	if s.FontFamily == "" {
		s.FontFamily = def.FontFamily
	}
	fill := func(v *float64, d float64) {
		if *v <= 0 {
			*v = d
		}
	}
	fill(&s.FontSize, def.FontSize)
	fill(&s.BoxMinWidth, def.BoxMinWidth)
	fill(&s.BoxMinHeight, def.BoxMinHeight)
	fill(&s.BoxPadding, def.BoxPadding)
	fill(&s.AnchorSpacing, def.AnchorSpacing)
	fill(&s.Clearance, def.Clearance)
	fill(&s.LineGap, def.LineGap)
	fill(&s.SideMargin, def.SideMargin)
	return s
}

func (s *Style) textWidth(text string) float64 {
	return fonts.TextWidth(text, s.FontSize)
}
