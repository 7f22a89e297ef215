package model

// Preset is a named starting board in text form, top row first.
// Each row uses '.' for empty and a piece letter for occupied cells.
type Preset struct {
	Name        string
	Description string
	Rows        []string
}

// Dimensions returns the rows and columns the preset describes
func (p Preset) Dimensions() (rows, cols int) {
	if len(p.Rows) == 0 {
		return 0, 0
	}
	return len(p.Rows), len(p.Rows[0])
}
