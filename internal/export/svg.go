package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/lspline/internal/stoch"
)

// SVG draws path as a polyline and stems as vertical impulse lines on a
// shared scale.
func SVG(w io.Writer, path, stems stoch.Series, width, height int) error {
	if path.Len() < 2 {
		return fmt.Errorf("export: path needs at least two points")
	}

	minX, maxX := path.Times[0], path.Times[len(path.Times)-1]
	minY, maxY := 0.0, 0.0
	for _, s := range []stoch.Series{path, stems} {
		for i, v := range s.Values {
			minY = math.Min(minY, v)
			maxY = math.Max(maxY, v)
			if i < len(s.Times) {
				minX = math.Min(minX, s.Times[i])
				maxX = math.Max(maxX, s.Times[i])
			}
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	px := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	py := func(y float64) float64 { return float64(height) - (y-minY)/rangeY*float64(height) }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	sb.WriteString(`<g stroke="#ff5f87" stroke-width="1">` + "\n")
	for i, v := range stems.Values {
		x := px(stems.Times[i])
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x, py(0), x, py(v))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(`<path fill="none" stroke="#00d7af" stroke-width="1.5" d="M`)
	for i, v := range path.Values {
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", px(path.Times[i]), py(v))
	}
	sb.WriteString("\"/>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
