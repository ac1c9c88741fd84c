package dot

// Style maps operator module prefixes ("algebra" in "algebra.join") to
// Graphviz colors.
type Style struct {
	FillColors map[string]string
	FontColors map[string]string
}

// DefaultStyle returns the stock color scheme.
func DefaultStyle() Style {
	return Style{
		FillColors: map[string]string{
			"algebra": "cyan",
			"aggr":    "green",
			"batcalc": "gold",
			"group":   "orangered",
			"sql":     "gainsboro",
			"bat":     "peachpuff",
		},
		FontColors: map[string]string{
			"group": "white",
		},
	}
}

// Merge returns a copy of s with every entry of o layered on top.
func (s Style) Merge(o Style) Style {
	return Style{
		FillColors: mergeColors(s.FillColors, o.FillColors),
		FontColors: mergeColors(s.FontColors, o.FontColors),
	}
}

func mergeColors(base, over map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// attrs returns the node attribute suffix for a module, e.g.
// " style=filled fillcolor=cyan". Operators without a module get none.
func (s Style) attrs(module string) string {
	if module == "" {
		return ""
	}
	var out string
	if c, ok := s.FillColors[module]; ok {
		out += " style=filled fillcolor=" + c
	}
	if c, ok := s.FontColors[module]; ok {
		out += " fontcolor=" + c
	}
	return out
}
