// Package theme holds the colour palette and the static currency table used by the audit report.
package theme

import "strings"

type Color struct {
	R, G, B int
}

// Palette maps semantic roles to colours. It is a plain value: copy it, override fields, pass it on.
type Palette struct {
	// backgrounds, darkest first
	Bg1, Bg2, Bg3, Bg4, Bg5 Color

	Lemon      Color
	LemonLight Color
	LemonDark  Color
	LemonMuted Color

	Cyan   Color
	Purple Color
	Gold   Color
	Red    Color
	Green  Color
	Blue   Color

	White Color
	Light Color
	Gray  Color
	Muted Color
	Dim   Color
	Black Color
}

func DefaultPalette() Palette {
	return Palette{
		Bg1: Color{8, 12, 10},
		Bg2: Color{12, 18, 15},
		Bg3: Color{18, 26, 22},
		Bg4: Color{25, 35, 30},
		Bg5: Color{35, 48, 42},

		Lemon:      Color{163, 230, 53},
		LemonLight: Color{190, 242, 100},
		LemonDark:  Color{101, 163, 13},
		LemonMuted: Color{80, 120, 50},

		Cyan:   Color{34, 211, 238},
		Purple: Color{168, 85, 247},
		Gold:   Color{251, 191, 36},
		Red:    Color{239, 68, 68},
		Green:  Color{34, 197, 94},
		Blue:   Color{59, 130, 246},

		White: Color{255, 255, 255},
		Light: Color{229, 231, 235},
		Gray:  Color{156, 163, 175},
		Muted: Color{107, 114, 128},
		Dim:   Color{75, 85, 99},
		Black: Color{0, 0, 0},
	}
}

func (p Palette) Success() Color { return p.Lemon }
func (p Palette) Pending() Color { return p.Gold }
func (p Palette) Error() Color   { return p.Red }

// StatusColor picks the colour for a free-form status label:
// completed/approved are success, rejected is error, everything else is pending.
func (p Palette) StatusColor(status string) Color {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "completed", "approved":
		return p.Success()
	case "rejected":
		return p.Error()
	default:
		return p.Pending()
	}
}

// RoleColor colours a signer role by the approval stage it belongs to.
func (p Palette) RoleColor(role string) Color {
	switch {
	case strings.Contains(role, "DCB") || strings.Contains(role, "DAES"):
		return p.Gold
	case strings.Contains(role, "Treasury") || strings.Contains(role, "Minting"):
		return p.Lemon
	default:
		return p.Purple
	}
}
