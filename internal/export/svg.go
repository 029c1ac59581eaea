package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/physics3/internal/physics3"
)

// ChainToSVG draws the rest pose of a setting's pendulum chain: a polyline
// through the vertex positions plus one circle per vertex, sized by radius
// where the chain leaves room. Model space is drawn as is, so positive Y hangs
// downward. Returns "" when the setting has no vertices.
func ChainToSVG(s physics3.Setting, width, height int, strokeColor string) string {
	if len(s.Vertices) == 0 {
		return ""
	}

	minX, maxX := s.Vertices[0].Position.X, s.Vertices[0].Position.X
	minY, maxY := s.Vertices[0].Position.Y, s.Vertices[0].Position.Y
	for _, v := range s.Vertices {
		x, y := v.Position.XY()
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	// one scale for both axes keeps the chain's proportions
	scale := min(float64(width)/rangeX, float64(height)/rangeY)
	offX := (float64(width) - rangeX*scale) / 2
	offY := (float64(height) - rangeY*scale) / 2
	project := func(p physics3.Vector2) (float64, float64) {
		return offX + (p.X-minX)*scale, offY + (p.Y-minY)*scale
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<title>%s</title>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, escape(s.ID), strokeColor))

	for i, v := range s.Vertices {
		x, y := project(v.Position)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", strokeColor))
	for _, v := range s.Vertices {
		x, y := project(v.Position)
		r := v.Radius * scale * 0.1
		if r < 2 {
			r = 2
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, x, y, r))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

var svgEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string {
	return svgEscaper.Replace(s)
}
