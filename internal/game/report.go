package game

import (
	"fmt"
	"sort"
	"strings"
)

// CityReport renders a plain-text summary of the city: structures in draw
// order, ground cover counts, road components and the agent's path.
func CityReport(c *City) string {
	var b strings.Builder
	tm := c.Tiles()
	fmt.Fprintf(&b, "--- Iso City report ---\n")
	fmt.Fprintf(&b, "grid=%dx%d tick=%d structures=%d occupied=%d\n\n",
		tm.Size, tm.Size, c.Tick(), len(c.Structures()), len(tm.OccupiedCells()))

	b.WriteString("== structures (draw order) ==\n")
	n := 0
	for _, e := range c.RenderList().Entries() {
		if e.Kind != RenderStructure {
			continue
		}
		s := e.Structure
		fmt.Fprintf(&b, "  #%-3d %-32s origin=(%d,%d) size=%dx%d depth=%d\n",
			s.ID, s.TypeKey, s.OriginCol, s.OriginRow, s.Footprint.Width, s.Footprint.Height, s.Depth)
		n++
	}
	if n == 0 {
		b.WriteString("  (none)\n")
	}

	b.WriteString("\n== ground ==\n")
	counts := make(map[GroundKey]int)
	for i := range tm.Tiles {
		counts[tm.Tiles[i].Ground]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %-16s %d\n", k, counts[GroundKey(k)])
	}

	b.WriteString("\n== roads ==\n")
	comps := c.Roads().Components()
	if len(comps) == 0 {
		b.WriteString("  (no road tiles)\n")
	}
	for i, comp := range comps {
		fmt.Fprintf(&b, "  component %d: %d tiles from (%d,%d)\n", i, len(comp), comp[0][0], comp[0][1])
	}

	b.WriteString("\n== agent ==\n")
	a := c.Roads().Agent()
	if a == nil {
		b.WriteString("  (none)\n")
		return b.String()
	}
	path := c.Roads().PathTiles()
	cells := make([]string, len(path))
	for i, p := range path {
		cells[i] = fmt.Sprintf("(%d,%d)", p[0], p[1])
	}
	pos := a.Position()
	fmt.Fprintf(&b, "  variant=%d moving=%v leg=%.2fs retargets=%d\n", a.Variant, a.Moving(), a.LegDuration(), a.Retargets())
	fmt.Fprintf(&b, "  path=%s\n", strings.Join(cells, " "))
	fmt.Fprintf(&b, "  pos=(%.1f,%.1f) says=%q\n", pos.X, pos.Y, a.Speech())
	return b.String()
}
