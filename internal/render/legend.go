package render

// ClassLabel pairs a class code with the name shown in a legend.
type ClassLabel struct {
	Code  int
	Label string
}

// LegendEntry is one legend row: the colormap position of a class and
// its label.
type LegendEntry struct {
	Position float64
	Label    string
}

// Legend builds legend entries for the supplied labels, in the order
// given. Labels whose code is absent from the mapping are skipped; a
// nil or empty label list yields no entries, which lets callers
// suppress the legend for bands with too many classes.
func (m ClassMapping) Legend(labels []ClassLabel) []LegendEntry {
	entries := make([]LegendEntry, 0, len(labels))
	for _, label := range labels {
		pos, ok := m.positions[label.Code]
		if !ok {
			continue
		}
		entries = append(entries, LegendEntry{Position: pos, Label: label.Label})
	}
	return entries
}
