package primitives

// stroke is a segment in a glyph cell, in fractions of the cell's ink width (x) and height (y).
type stroke struct {
	x0, y0, x1, y1 float32
}

func (s stroke) scaled(w, h float32) (x0, y0, x1, y1 float32) {
	return s.x0 * w, s.y0 * h, s.x1 * w, s.y1 * h
}

// boxStrokes outlines the cell and stands in for characters the font does not define.
var boxStrokes = []stroke{{0, 0, 1, 0}, {1, 0, 1, 1}, {1, 1, 0, 1}, {0, 1, 0, 0}}

// strokeFont maps uppercase ASCII letters, digits and common punctuation to their strokes.
var strokeFont = map[rune][]stroke{
	'A': {
		{0, 0, 0.5, 1},
		{0.5, 1, 1, 0},
		{0.2, 0.5, 0.8, 0.5},
	},
	'B': {
		{0, 0, 0, 1},
		{0, 1, 0.7, 1},
		{0.7, 1, 1, 0.8},
		{1, 0.8, 1, 0.6},
		{1, 0.6, 0.7, 0.5},
		{0, 0.5, 0.7, 0.5},
		{0.7, 0.5, 1, 0.4},
		{1, 0.4, 1, 0.2},
		{1, 0.2, 0.7, 0},
		{0.7, 0, 0, 0},
	},
	'C': {
		{1, 0.8, 0.5, 1},
		{0.5, 1, 0, 0.7},
		{0, 0.7, 0, 0.3},
		{0, 0.3, 0.5, 0},
		{0.5, 0, 1, 0.2},
	},
	'D': {
		{0, 0, 0, 1},
		{0, 1, 0.6, 1},
		{0.6, 1, 1, 0.7},
		{1, 0.7, 1, 0.3},
		{1, 0.3, 0.6, 0},
		{0.6, 0, 0, 0},
	},
	'E': {
		{1, 1, 0, 1},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0.5, 0.7, 0.5},
	},
	'F': {
		{1, 1, 0, 1},
		{0, 1, 0, 0},
		{0, 0.5, 0.7, 0.5},
	},
	'G': {
		{1, 0.8, 0.5, 1},
		{0.5, 1, 0, 0.7},
		{0, 0.7, 0, 0.3},
		{0, 0.3, 0.5, 0},
		{0.5, 0, 1, 0.3},
		{1, 0.3, 1, 0.5},
		{1, 0.5, 0.5, 0.5},
	},
	'H': {
		{0, 0, 0, 1},
		{1, 0, 1, 1},
		{0, 0.5, 1, 0.5},
	},
	'I': {
		{0.3, 0, 0.7, 0},
		{0.5, 0, 0.5, 1},
		{0.3, 1, 0.7, 1},
	},
	'J': {
		{0.3, 1, 0.7, 1},
		{0.5, 1, 0.5, 0.2},
		{0.5, 0.2, 0.3, 0},
		{0.3, 0, 0, 0.2},
	},
	'K': {
		{0, 0, 0, 1},
		{1, 1, 0, 0.5},
		{0, 0.5, 1, 0},
	},
	'L': {
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	},
	'M': {
		{0, 0, 0, 1},
		{0, 1, 0.5, 0.5},
		{0.5, 0.5, 1, 1},
		{1, 1, 1, 0},
	},
	'N': {
		{0, 0, 0, 1},
		{0, 1, 1, 0},
		{1, 0, 1, 1},
	},
	'O': {
		{0.3, 0, 0.7, 0},
		{0.7, 0, 1, 0.3},
		{1, 0.3, 1, 0.7},
		{1, 0.7, 0.7, 1},
		{0.7, 1, 0.3, 1},
		{0.3, 1, 0, 0.7},
		{0, 0.7, 0, 0.3},
		{0, 0.3, 0.3, 0},
	},
	'P': {
		{0, 0, 0, 1},
		{0, 1, 0.7, 1},
		{0.7, 1, 1, 0.8},
		{1, 0.8, 1, 0.6},
		{1, 0.6, 0.7, 0.5},
		{0.7, 0.5, 0, 0.5},
	},
	'Q': {
		{0.3, 0, 0.7, 0},
		{0.7, 0, 1, 0.3},
		{1, 0.3, 1, 0.7},
		{1, 0.7, 0.7, 1},
		{0.7, 1, 0.3, 1},
		{0.3, 1, 0, 0.7},
		{0, 0.7, 0, 0.3},
		{0, 0.3, 0.3, 0},
		{0.5, 0.3, 1, 0},
	},
	'R': {
		{0, 0, 0, 1},
		{0, 1, 0.7, 1},
		{0.7, 1, 1, 0.8},
		{1, 0.8, 1, 0.6},
		{1, 0.6, 0.7, 0.5},
		{0.7, 0.5, 0, 0.5},
		{0.5, 0.5, 1, 0},
	},
	'S': {
		{1, 0.8, 0.5, 1},
		{0.5, 1, 0, 0.7},
		{0, 0.7, 0.3, 0.5},
		{0.3, 0.5, 0.7, 0.5},
		{0.7, 0.5, 1, 0.3},
		{1, 0.3, 0.5, 0},
		{0.5, 0, 0, 0.2},
	},
	'T': {
		{0, 1, 1, 1},
		{0.5, 1, 0.5, 0},
	},
	'U': {
		{0, 1, 0, 0.3},
		{0, 0.3, 0.3, 0},
		{0.3, 0, 0.7, 0},
		{0.7, 0, 1, 0.3},
		{1, 0.3, 1, 1},
	},
	'V': {
		{0, 1, 0.5, 0},
		{0.5, 0, 1, 1},
	},
	'W': {
		{0, 1, 0.25, 0},
		{0.25, 0, 0.5, 0.5},
		{0.5, 0.5, 0.75, 0},
		{0.75, 0, 1, 1},
	},
	'X': {
		{0, 1, 1, 0},
		{1, 1, 0, 0},
	},
	'Y': {
		{0, 1, 0.5, 0.5},
		{1, 1, 0.5, 0.5},
		{0.5, 0.5, 0.5, 0},
	},
	'Z': {
		{0, 1, 1, 1},
		{1, 1, 0, 0},
		{0, 0, 1, 0},
	},
	'0': {
		{0.3, 0, 0.7, 0},
		{0.7, 0, 1, 0.3},
		{1, 0.3, 1, 0.7},
		{1, 0.7, 0.7, 1},
		{0.7, 1, 0.3, 1},
		{0.3, 1, 0, 0.7},
		{0, 0.7, 0, 0.3},
		{0, 0.3, 0.3, 0},
		{0.2, 0.2, 0.8, 0.8},
	},
	'1': {
		{0.3, 0.8, 0.5, 1},
		{0.5, 1, 0.5, 0},
		{0.3, 0, 0.7, 0},
	},
	'2': {
		{0, 0.8, 0.3, 1},
		{0.3, 1, 0.7, 1},
		{0.7, 1, 1, 0.7},
		{1, 0.7, 1, 0.5},
		{1, 0.5, 0, 0},
		{0, 0, 1, 0},
	},
	'3': {
		{0, 1, 1, 1},
		{1, 1, 0.5, 0.5},
		{0.5, 0.5, 1, 0.3},
		{1, 0.3, 0.7, 0},
		{0.7, 0, 0, 0},
	},
	'4': {
		{0.7, 0, 0.7, 1},
		{0.7, 1, 0, 0.3},
		{0, 0.3, 1, 0.3},
	},
	'5': {
		{1, 1, 0, 1},
		{0, 1, 0, 0.5},
		{0, 0.5, 0.7, 0.5},
		{0.7, 0.5, 1, 0.3},
		{1, 0.3, 0.7, 0},
		{0.7, 0, 0, 0},
	},
	'6': {
		{1, 0.8, 0.5, 1},
		{0.5, 1, 0, 0.5},
		{0, 0.5, 0, 0.3},
		{0, 0.3, 0.3, 0},
		{0.3, 0, 0.7, 0},
		{0.7, 0, 1, 0.2},
		{1, 0.2, 1, 0.4},
		{1, 0.4, 0.7, 0.5},
		{0.7, 0.5, 0, 0.5},
	},
	'7': {
		{0, 1, 1, 1},
		{1, 1, 0.3, 0},
	},
	'8': {
		{0.3, 0.5, 0, 0.7},
		{0, 0.7, 0.3, 1},
		{0.3, 1, 0.7, 1},
		{0.7, 1, 1, 0.7},
		{1, 0.7, 0.7, 0.5},
		{0.7, 0.5, 0.3, 0.5},
		{0.3, 0.5, 0, 0.3},
		{0, 0.3, 0.3, 0},
		{0.3, 0, 0.7, 0},
		{0.7, 0, 1, 0.3},
		{1, 0.3, 0.7, 0.5},
	},
	'9': {
		{0, 0.2, 0.5, 0},
		{0.5, 0, 1, 0.5},
		{1, 0.5, 1, 0.7},
		{1, 0.7, 0.7, 1},
		{0.7, 1, 0.3, 1},
		{0.3, 1, 0, 0.8},
		{0, 0.8, 0, 0.6},
		{0, 0.6, 0.3, 0.5},
		{0.3, 0.5, 1, 0.5},
	},
	' ': {},
	'-': {
		{0.2, 0.5, 0.8, 0.5},
	},
	'_': {
		{0, 0, 1, 0},
	},
	'.': {
		{0.4, 0, 0.6, 0},
		{0.6, 0, 0.6, 0.1},
		{0.6, 0.1, 0.4, 0.1},
		{0.4, 0.1, 0.4, 0},
	},
	':': {
		{0.4, 0.2, 0.6, 0.2},
		{0.6, 0.2, 0.6, 0.3},
		{0.6, 0.3, 0.4, 0.3},
		{0.4, 0.3, 0.4, 0.2},
		{0.4, 0.7, 0.6, 0.7},
		{0.6, 0.7, 0.6, 0.8},
		{0.6, 0.8, 0.4, 0.8},
		{0.4, 0.8, 0.4, 0.7},
	},
	'>': {
		{0, 1, 1, 0.5},
		{1, 0.5, 0, 0},
	},
	'<': {
		{1, 1, 0, 0.5},
		{0, 0.5, 1, 0},
	},
	'/': {
		{0, 0, 1, 1},
	},
	'\\': {
		{0, 1, 1, 0},
	},
	'=': {
		{0.1, 0.6, 0.9, 0.6},
		{0.1, 0.4, 0.9, 0.4},
	},
	'+': {
		{0.1, 0.5, 0.9, 0.5},
		{0.5, 0.2, 0.5, 0.8},
	},
	'*': {
		{0.1, 0.5, 0.9, 0.5},
		{0.2, 0.2, 0.8, 0.8},
		{0.2, 0.8, 0.8, 0.2},
	},
	'[': {
		{0.7, 1, 0.3, 1},
		{0.3, 1, 0.3, 0},
		{0.3, 0, 0.7, 0},
	},
	']': {
		{0.3, 1, 0.7, 1},
		{0.7, 1, 0.7, 0},
		{0.7, 0, 0.3, 0},
	},
	'(': {
		{0.7, 1, 0.3, 0.7},
		{0.3, 0.7, 0.3, 0.3},
		{0.3, 0.3, 0.7, 0},
	},
	')': {
		{0.3, 1, 0.7, 0.7},
		{0.7, 0.7, 0.7, 0.3},
		{0.7, 0.3, 0.3, 0},
	},
}
