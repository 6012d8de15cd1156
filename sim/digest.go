package sim

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Digest hashes the state of every agent in spawn order. Two worlds built the same
// way and stepped the same number of times have equal digests. Agent handles are
// random and are left out.
func (w *World) Digest() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	d := xxhash.New()
	buf := make([]byte, 0, 64)
	for i, s := range w.snapshots() {
		a := s.Agent
		buf = buf[:0]
		buf = binary.LittleEndian.AppendUint64(buf, uint64(i))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(a.Floor))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(a.Action))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(a.Gaze))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(a.Position.X))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(a.Position.Y))
		if a.Airborne() {
			buf = binary.LittleEndian.AppendUint64(buf, uint64(a.Flight.Target))
			buf = binary.LittleEndian.AppendUint64(buf, uint64(a.Flight.Elapsed()))
		}
		_, _ = d.Write(buf)
	}
	binary.LittleEndian.PutUint64(buf[:8], w.status().Tick)
	_, _ = d.Write(buf[:8])
	return d.Sum64()
}
