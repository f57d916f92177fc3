package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/components"
)

// RGB color definitions
var (
	RgbBackground   = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbGridSquare   = tcell.NewRGBColor(36, 40, 59)    // Checkerboard alternate square
	RgbBorder       = tcell.NewRGBColor(86, 95, 137)   // Muted blue-gray frame
	RgbStatusText   = tcell.NewRGBColor(192, 202, 245) // Light foreground
	RgbStatusScore  = tcell.NewRGBColor(255, 165, 0)   // Orange score
	RgbPausedBg     = tcell.NewRGBColor(255, 165, 0)   // Orange pause badge
	RgbPausedText   = tcell.NewRGBColor(0, 0, 0)       // Dark text on badges
	RgbSnakeHead    = tcell.NewRGBColor(50, 255, 50)   // Bright green
	RgbSnakeBody    = tcell.NewRGBColor(0, 200, 0)     // Normal green
	RgbSnakeTail    = tcell.NewRGBColor(0, 130, 0)     // Dark green
	RgbSnakeDead    = tcell.NewRGBColor(255, 80, 80)   // Red head after a crash
	RgbFood         = tcell.NewRGBColor(255, 80, 80)   // Apple red
	RgbButton       = tcell.NewRGBColor(65, 72, 104)   // Button face
	RgbButtonText   = tcell.NewRGBColor(255, 255, 255) // White glyphs
	RgbDialogBg     = tcell.NewRGBColor(15, 15, 25)    // Near-black dialog
	RgbDialogTitle  = tcell.NewRGBColor(255, 255, 0)   // Yellow title
	RgbDialogError  = tcell.NewRGBColor(255, 0, 0)     // Error red
	RgbDialogAccent = tcell.NewRGBColor(144, 238, 144) // Light green confirmation
)

// Bonus flavor colors
var flavorColors = [...]tcell.Color{
	components.FlavorCheese:    tcell.NewRGBColor(255, 215, 0),   // Gold
	components.FlavorBeer:      tcell.NewRGBColor(230, 160, 40),  // Amber
	components.FlavorHamburger: tcell.NewRGBColor(160, 82, 45),   // Brown
	components.FlavorPizza:     tcell.NewRGBColor(255, 99, 71),   // Tomato
	components.FlavorSushi:     tcell.NewRGBColor(250, 128, 114), // Salmon
}

// FlavorColor returns the foreground color of a bonus flavor
func FlavorColor(f components.Flavor) tcell.Color {
	if int(f) < len(flavorColors) {
		return flavorColors[f]
	}
	return RgbDialogTitle
}
