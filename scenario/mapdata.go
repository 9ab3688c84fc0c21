package scenario

import (
	"fmt"
	"os"

	"github.com/pathlab/gridbench/grid"
)

// cellValue maps a map-body character to traversability.
// '.', 'G', 'S' are open terrain; '@', 'O', 'T', 'W' are blockers.
func cellValue(c byte) (bool, error) {
	switch c {
	case '.', 'G', 'S':
		return true, nil
	case '@', 'O', 'T', 'W':
		return false, nil
	}

	return false, fmt.Errorf("%w: %q", ErrBadCell, c)
}

// readMapBody decodes "height <h>\nwidth <w>\nmap\n<rows>" into a grid.
// Shared by the patch file and the single-map format.
func readMapBody(l *lexer) (*grid.Grid, error) {
	if err := l.expect("height"); err != nil {
		return nil, err
	}
	height, err := l.intval()
	if err != nil {
		return nil, fmt.Errorf("%w: height: %v", ErrBadHeader, err)
	}
	if err := l.expect("width"); err != nil {
		return nil, err
	}
	width, err := l.intval()
	if err != nil {
		return nil, fmt.Errorf("%w: width: %v", ErrBadHeader, err)
	}
	if width < 1 || width > grid.MaxDim || height < 1 || height > grid.MaxDim {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}
	if err := l.expect("map"); err != nil {
		return nil, err
	}

	g, err := grid.New(width, height)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, width)
	for y, i := 0, 0; y < height; y++ {
		if err := l.row(buf); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrBadHeader, y, err)
		}
		for x := 0; x < width; x++ {
			v, err := cellValue(buf[x])
			if err != nil {
				return nil, fmt.Errorf("%w (row %d, col %d)", err, y, x)
			}
			g.Set(i, v)
			i++
		}
	}

	return g, nil
}

// LoadMap decodes the older single-map format: a "type octile" header
// followed by the standard map body.
func LoadMap(path string) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l := newLexer(f)
	if err := l.expect("type"); err != nil {
		return nil, err
	}
	if err := l.expect("octile"); err != nil {
		return nil, err
	}

	return readMapBody(l)
}
