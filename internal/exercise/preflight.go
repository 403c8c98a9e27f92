package exercise

import (
	"fmt"

	"github.com/itaybre/milim/internal/catalog"
)

// Defect identifies a supported word/format pair that cannot be
// materialized with the current catalog content.
type Defect struct {
	Pair catalog.Pair
	Err  error
}

func (d Defect) String() string {
	return fmt.Sprintf("%s/%s: %v", d.Pair.WordID, d.Pair.FormatID, d.Err)
}

// Preflight tries to materialize every supported pair at the maximum
// option count and reports the pairs that fail. An empty result means
// every pair the scheduler could select will render.
func (b *Builder) Preflight() []Defect {
	var defects []Defect
	for _, p := range b.cat.SupportedPairs() {
		w, err := b.cat.Word(p.WordID)
		if err != nil {
			defects = append(defects, Defect{Pair: p, Err: err})
			continue
		}
		f, err := b.cat.Format(p.FormatID)
		if err != nil {
			defects = append(defects, Defect{Pair: p, Err: err})
			continue
		}
		if _, err := b.Build(w, f, MaxOptions); err != nil {
			defects = append(defects, Defect{Pair: p, Err: err})
		}
	}
	return defects
}
