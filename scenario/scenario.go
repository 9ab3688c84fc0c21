package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pathlab/gridbench/grid"
)

// Load decodes the version-2 scenario at path, resolving its patch file
// against the scenario's directory. Every parse error wraps one of the
// package sentinels; any error aborts the load.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return decode(f, filepath.Dir(path))
}

// decode reads the scenario grammar from r; dir anchors relative patch
// file references.
func decode(r io.Reader, dir string) (*Scenario, error) {
	l := newLexer(r)

	if err := l.expect("version"); err != nil {
		return nil, err
	}
	version, err := l.intval()
	if err != nil || version != 2 {
		return nil, fmt.Errorf("%w: unsupported version", ErrBadHeader)
	}
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

	// cost list: a count, then names; exactly one must be "octile"
	costs, err := l.intval()
	if err != nil {
		return nil, fmt.Errorf("%w: cost count: %v", ErrBadHeader, err)
	}
	if costs < 1 {
		return nil, fmt.Errorf("%w: cost count %d", ErrBadCosts, costs)
	}
	costPos := -1
	for i := 0; i < costs; i++ {
		name, err := l.token()
		if err != nil {
			return nil, fmt.Errorf("%w: cost name: %v", ErrBadHeader, err)
		}
		if name == "octile" {
			if costPos >= 0 {
				return nil, fmt.Errorf("%w: duplicate", ErrBadCosts)
			}
			costPos = i
		}
	}
	if costPos < 0 {
		return nil, fmt.Errorf("%w: missing", ErrBadCosts)
	}

	if err := l.expect("patch"); err != nil {
		return nil, err
	}
	patchFile, err := l.token()
	if err != nil {
		return nil, fmt.Errorf("%w: patch filename: %v", ErrBadHeader, err)
	}
	if !filepath.IsAbs(patchFile) {
		patchFile = filepath.Join(dir, patchFile)
	}
	patches, err := LoadPatches(patchFile, width, height)
	if err != nil {
		return nil, err
	}

	if err := l.expect("commands"); err != nil {
		return nil, err
	}

	s := &Scenario{
		Width:   width,
		Height:  height,
		Patches: patches,
	}
	if err := s.readCommands(l, costs, costPos); err != nil {
		return nil, err
	}

	return s, nil
}

// readCommands consumes P/Q lines until a clean EOF.
func (s *Scenario) readCommands(l *lexer, costs, costPos int) error {
	for {
		tok, err := l.token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadCommand, err)
		}
		switch tok {
		case "P":
			if err := s.readPatchCommand(l); err != nil {
				return err
			}
		case "Q":
			if err := s.readQueryCommand(l, costs, costPos); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownCommand, tok)
		}
	}
}

func (s *Scenario) readPatchCommand(l *lexer) error {
	vals := make([]int, 4)
	for i := range vals {
		v, err := l.intval()
		if err != nil {
			return fmt.Errorf("%w: P: %v", ErrBadCommand, err)
		}
		vals[i] = v
	}
	bucket, id, px, py := vals[0], vals[1], vals[2], vals[3]
	if id < 0 || id >= len(s.Patches) {
		return fmt.Errorf("%w: %d of %d", ErrBadPatchRef, id, len(s.Patches))
	}
	if px < 0 || py < 0 ||
		px+s.Patches[id].Width() > s.Width || py+s.Patches[id].Height() > s.Height {
		return fmt.Errorf("%w: patch %d at (%d,%d)", ErrPatchPlacement, id, px, py)
	}
	s.Commands = append(s.Commands, Command{
		Type:    CmdPatch,
		Bucket:  uint16(bucket),
		PatchID: id,
		Pos:     grid.Pt(px, py),
	})
	s.patchCommands++

	return nil
}

func (s *Scenario) readQueryCommand(l *lexer, costs, costPos int) error {
	vals := make([]int, 5)
	for i := range vals {
		v, err := l.intval()
		if err != nil {
			return fmt.Errorf("%w: Q: %v", ErrBadCommand, err)
		}
		vals[i] = v
	}
	bucket := vals[0]
	sx, sy, gx, gy := vals[1], vals[2], vals[3], vals[4]
	for _, c := range [][2]int{{sx, sy}, {gx, gy}} {
		if c[0] < 0 || c[0] >= s.Width || c[1] < 0 || c[1] >= s.Height {
			return fmt.Errorf("%w: (%d,%d)", ErrQueryBounds, c[0], c[1])
		}
	}
	var refCost float64
	for i := 0; i < costs; i++ {
		v, err := l.floatval()
		if err != nil {
			return fmt.Errorf("%w: Q cost %d: %v", ErrBadCommand, i, err)
		}
		if i == costPos {
			refCost = v
		}
	}
	s.Commands = append(s.Commands, Command{
		Type:   CmdQuery,
		Bucket: uint16(bucket),
		Start:  grid.Pt(sx, sy),
		Goal:   grid.Pt(gx, gy),
	})
	s.QueryCosts = append(s.QueryCosts, refCost)
	s.queryCommands++

	return nil
}
