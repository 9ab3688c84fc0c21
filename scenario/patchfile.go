package scenario

import (
	"fmt"
	"os"

	"github.com/pathlab/gridbench/grid"
)

// LoadPatches decodes a patch file and verifies every registered patch
// fits a width×height map (at placement (0,0); per-command placements are
// checked against the command's offset at scenario load).
func LoadPatches(path string, width, height int) ([]*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l := newLexer(f)
	if err := l.expect("type"); err != nil {
		return nil, err
	}
	if err := l.expect("patch"); err != nil {
		return nil, err
	}
	if err := l.expect("patches"); err != nil {
		return nil, err
	}
	count, err := l.intval()
	if err != nil {
		return nil, fmt.Errorf("%w: patch count: %v", ErrBadHeader, err)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative patch count %d", ErrBadHeader, count)
	}

	patches := make([]*grid.Grid, 0, count)
	for i := 0; i < count; i++ {
		if err := l.expect("patch"); err != nil {
			return nil, err
		}
		id, err := l.intval()
		if err != nil {
			return nil, fmt.Errorf("%w: patch id: %v", ErrBadHeader, err)
		}
		if id != i {
			return nil, fmt.Errorf("%w: patch id %d, expected %d", ErrBadHeader, id, i)
		}
		sub, err := readMapBody(l)
		if err != nil {
			return nil, fmt.Errorf("patch %d: %w", i, err)
		}
		if sub.Width() > width || sub.Height() > height {
			return nil, fmt.Errorf("%w: patch %d is %dx%d on a %dx%d map",
				ErrPatchPlacement, i, sub.Width(), sub.Height(), width, height)
		}
		patches = append(patches, sub)
	}

	return patches, nil
}
