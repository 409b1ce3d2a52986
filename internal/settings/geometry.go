package settings

import (
	"encoding/binary"
	"errors"
	"fmt"

	"dockshell/internal/dock"
)

const (
	geometryMagic   = 'G'
	geometryVersion = 1
)

var errBadGeometry = errors.New("bad geometry blob")

// Geometry is the terminal size and focused dock at exit.
type Geometry struct {
	Width  int
	Height int
	Focus  dock.ID
}

// MarshalBinary encodes g as magic, version, width, height (uint16 each) and
// a length-prefixed focus ID.
func (g Geometry) MarshalBinary() ([]byte, error) {
	if g.Width < 0 || g.Width > 0xffff || g.Height < 0 || g.Height > 0xffff {
		return nil, fmt.Errorf("geometry %dx%d out of range", g.Width, g.Height)
	}
	if len(g.Focus) > 0xff {
		return nil, fmt.Errorf("focus id too long: %d bytes", len(g.Focus))
	}
	b := make([]byte, 0, 7+len(g.Focus))
	b = append(b, geometryMagic, geometryVersion)
	b = binary.BigEndian.AppendUint16(b, uint16(g.Width))
	b = binary.BigEndian.AppendUint16(b, uint16(g.Height))
	b = append(b, byte(len(g.Focus)))
	b = append(b, g.Focus...)
	return b, nil
}

func (g *Geometry) UnmarshalBinary(b []byte) error {
	if len(b) < 7 || b[0] != geometryMagic {
		return errBadGeometry
	}
	if b[1] != geometryVersion {
		return fmt.Errorf("%w: version %d", errBadGeometry, b[1])
	}
	n := int(b[6])
	if len(b) != 7+n {
		return errBadGeometry
	}
	g.Width = int(binary.BigEndian.Uint16(b[2:4]))
	g.Height = int(binary.BigEndian.Uint16(b[4:6]))
	g.Focus = dock.ID(b[7:])
	return nil
}
