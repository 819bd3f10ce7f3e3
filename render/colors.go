package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/mrchimp/zombies-vs-medics/component"
)

// RGB color definitions
var (
	RgbCivilian = tcell.NewRGBColor(153, 153, 153) // Gray
	RgbZombie   = tcell.NewRGBColor(255, 0, 0)     // Red
	RgbMedic    = tcell.NewRGBColor(0, 255, 0)     // Green
	RgbCorpse   = tcell.NewRGBColor(102, 51, 34)   // Dried brown

	RgbBackground      = tcell.NewRGBColor(0, 0, 0)
	RgbGraphBackground = tcell.NewRGBColor(17, 17, 17)

	// Status bar
	RgbStatusText     = tcell.NewRGBColor(0, 0, 0)
	RgbStatusBar      = tcell.NewRGBColor(255, 255, 255)
	RgbPlayBg         = tcell.NewRGBColor(144, 238, 144) // Light grass green
	RgbPausedBg       = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbMessageBg      = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbStatusBarDimFg = tcell.NewRGBColor(150, 150, 150)
)

var kindColors = [component.KindCount]tcell.Color{
	component.KindCivilian: RgbCivilian,
	component.KindZombie:   RgbZombie,
	component.KindMedic:    RgbMedic,
	component.KindCorpse:   RgbCorpse,
}

// KindColor returns the display color of a kind
func KindColor(k component.Kind) tcell.Color {
	if !k.Valid() {
		return RgbBackground
	}
	return kindColors[k]
}

// graphOrder stacks graph bands top to bottom
var graphOrder = [component.KindCount]component.Kind{
	component.KindCivilian,
	component.KindMedic,
	component.KindCorpse,
	component.KindZombie,
}

// drawOrder paints later kinds over earlier ones when they share a pixel
var drawOrder = [component.KindCount]component.Kind{
	component.KindCorpse,
	component.KindCivilian,
	component.KindMedic,
	component.KindZombie,
}
