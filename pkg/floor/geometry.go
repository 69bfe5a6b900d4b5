package floor

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/stitchline/stitchline/pkg/errors"
	"github.com/stitchline/stitchline/pkg/floorplan"
)

// =============================================================================
// Geometry - Floor Configuration
// =============================================================================

// Geometry holds every spacing constant and facing angle used by placement.
// All distances are metres, all angles degrees. Load overrides from a TOML
// file with LoadGeometryFile or start from DefaultGeometry.
type Geometry struct {
	// Lanes holds the fixed across-line (Z) offset of each lane.
	Lanes LaneOffsets `toml:"lanes"`

	// MachinePitch is the along-line spacing between consecutive machines.
	MachinePitch float64 `toml:"machine_pitch"`

	// SectionGap is the along-line clearance before each section starts.
	SectionGap float64 `toml:"section_gap"`

	// BoardClearance is the along-line space reserved by a section board.
	BoardClearance float64 `toml:"board_clearance"`

	// BoardHeight is the elevation (Y) of the floating section boards.
	BoardHeight float64 `toml:"board_height"`

	// InspectionOffset is the across-line offset of inspection tables from
	// their pair's inner lane; InspectionAdvance is the along-line space the
	// table consumes.
	InspectionOffset  float64 `toml:"inspection_offset"`
	InspectionAdvance float64 `toml:"inspection_advance"`

	// TrolleyOffset and TrolleyAdvance are the same for material trolleys.
	TrolleyOffset  float64 `toml:"trolley_offset"`
	TrolleyAdvance float64 `toml:"trolley_advance"`

	// SupermarketCabinet toggles the cabinet fixture between the last
	// preparation section and assembly; CabinetClearance is the along-line
	// space it consumes.
	SupermarketCabinet bool    `toml:"supermarket_cabinet"`
	CabinetClearance   float64 `toml:"cabinet_clearance"`

	// Yaw holds the canonical facing angles.
	Yaw FacingAngles `toml:"yaw"`
}

// LaneOffsets holds the across-line offset of each lane.
type LaneOffsets struct {
	A float64 `toml:"a"`
	B float64 `toml:"b"`
	C float64 `toml:"c"`
	D float64 `toml:"d"`
}

// FacingAngles holds the four canonical yaw angles in degrees.
type FacingAngles struct {
	Front float64 `toml:"front"`
	Back  float64 `toml:"back"`
	Left  float64 `toml:"left"`
	Right float64 `toml:"right"`
}

// DefaultGeometry returns the standard floor constants.
func DefaultGeometry() Geometry {
	return Geometry{
		Lanes:              LaneOffsets{A: 0, B: 2.0, C: 6.0, D: 8.0},
		MachinePitch:       1.2,
		SectionGap:         1.5,
		BoardClearance:     0.6,
		BoardHeight:        2.2,
		InspectionOffset:   0.9,
		InspectionAdvance:  1.5,
		TrolleyOffset:      0.9,
		TrolleyAdvance:     1.2,
		SupermarketCabinet: true,
		CabinetClearance:   1.0,
		Yaw:                FacingAngles{Front: 0, Back: 180, Left: 90, Right: 270},
	}
}

// LaneOffset returns the across-line offset of a lane.
func (g Geometry) LaneOffset(l floorplan.Lane) float64 {
	switch l {
	case floorplan.LaneA:
		return g.Lanes.A
	case floorplan.LaneB:
		return g.Lanes.B
	case floorplan.LaneC:
		return g.Lanes.C
	default:
		return g.Lanes.D
	}
}

// LaneYaw returns the default facing of a lane: paired lanes A/B and C/D face
// each other across their aisle.
func (g Geometry) LaneYaw(l floorplan.Lane) float64 {
	switch l {
	case floorplan.LaneA, floorplan.LaneD:
		return g.Yaw.Left
	default:
		return g.Yaw.Right
	}
}

// Validate checks the spacing constants are usable.
func (g Geometry) Validate() error {
	if g.MachinePitch <= 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "machine pitch must be positive, got %g", g.MachinePitch)
	}
	if g.SectionGap < 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "section gap cannot be negative, got %g", g.SectionGap)
	}
	if g.BoardClearance < 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "board clearance cannot be negative, got %g", g.BoardClearance)
	}
	if g.InspectionAdvance < 0 || g.TrolleyAdvance < 0 || g.CabinetClearance < 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "fixture advances cannot be negative")
	}
	seen := map[float64]floorplan.Lane{}
	for _, l := range floorplan.Lanes {
		z := g.LaneOffset(l)
		if other, dup := seen[z]; dup {
			return errors.New(errors.ErrCodeInvalidGeometry, "lanes %s and %s share across-line offset %g", other, l, z)
		}
		seen[z] = l
	}
	return nil
}

// LoadGeometryFile reads geometry overrides from a TOML file on top of the
// defaults, then validates the result.
func LoadGeometryFile(path string) (Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Geometry{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "geometry file %s not found", path)
		}
		return Geometry{}, err
	}

	g := DefaultGeometry()
	if err := toml.Unmarshal(data, &g); err != nil {
		return Geometry{}, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "decode geometry %s", path)
	}
	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}
	return g, nil
}
