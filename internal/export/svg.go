package export

import (
	"fmt"
	"strings"

	"github.com/kmuro/fieldsim/internal/sim"
	"github.com/kmuro/fieldsim/internal/storage"
	"github.com/kmuro/fieldsim/internal/viz"
)

const background = "#0a0a0a"

// SceneSVG renders one frame as an SVG snapshot of the arena. Arena
// coordinates map straight onto SVG coordinates, both are y-down with the
// origin at the top left.
func SceneSVG(arenaWidth, arenaHeight float64, balls []storage.BallMeta, frame sim.Frame) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<rect x="0.5" y="0.5" width="%.1f" height="%.1f" fill="none" stroke="#444444"/>
`, arenaWidth, arenaHeight, arenaWidth, arenaHeight, background, arenaWidth-1, arenaHeight-1))

	for i, b := range frame {
		if i >= len(balls) {
			break
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, b.X, b.Y, balls[i].Radius, balls[i].Color))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoriesSVG draws each ball's path across a run as a polyline in
// the ball's color, with the final position marked by a filled circle.
func TrajectoriesSVG(arenaWidth, arenaHeight float64, balls []storage.BallMeta, frames []sim.Frame) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, arenaWidth, arenaHeight, arenaWidth, arenaHeight, background))

	if len(frames) == 0 {
		sb.WriteString("</svg>")
		return sb.String()
	}

	for i, meta := range balls {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, meta.Color))
		for j, frame := range frames {
			if i >= len(frame) {
				break
			}
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", frame[i].X, frame[i].Y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", frame[i].X, frame[i].Y))
			}
		}
		sb.WriteString("\"/>\n")

		last := frames[len(frames)-1]
		if i < len(last) {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, last[i].X, last[i].Y, meta.Radius, meta.Color))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG, one dot per set sub-pixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="#00ff00">
`, width, height, width, height, background))

	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
