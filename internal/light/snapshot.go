package light

import (
	"github.com/vovakirdan/illumi/internal/geom"
	"github.com/vovakirdan/illumi/internal/raycast"
)

// Snapshot is the tick-local flattened geometry consumed by a pass.
// It is rebuilt every tick and read-only while a pass runs.
type Snapshot struct {
	Segments []geom.Segment
	Arcs     []geom.Arc

	segs raycast.SegmentTable
	arcs raycast.ArcTable
}

// Reset empties the snapshot, keeping its buffers.
func (s *Snapshot) Reset() {
	s.Segments = s.Segments[:0]
	s.Arcs = s.Arcs[:0]
	s.segs.Reset()
	s.arcs.Reset()
}

// AddSegment appends a segment to both the primitive list and the kernel table.
func (s *Snapshot) AddSegment(seg geom.Segment) {
	s.Segments = append(s.Segments, seg)
	s.segs.Push(seg.P1, seg.P2)
}

// AddArc appends an arc to both the primitive list and the kernel table.
func (s *Snapshot) AddArc(a geom.Arc) {
	s.Arcs = append(s.Arcs, a)
	s.arcs.Push(a)
}
