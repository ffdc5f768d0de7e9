package light

import "github.com/vovakirdan/illumi/internal/core"

// Stroke is one drawable ray link.
type Stroke struct {
	From, To   core.Vec2
	Generation int
	Outcome    Outcome
	Source     int // index into the sources slice
}

// Strokes appends every link of every chain of sources to dst.
func Strokes(dst []Stroke, sources []*Source) []Stroke {
	for si, src := range sources {
		for i := range src.Rays {
			src.Rays[i].Chain(func(r *Ray) {
				dst = append(dst, Stroke{
					From:       r.Origin,
					To:         r.End,
					Generation: r.Generation,
					Outcome:    r.Outcome,
					Source:     si,
				})
			})
		}
	}
	return dst
}
