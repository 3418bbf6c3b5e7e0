package world

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// fingerprint hashes the generation parameters together with every cell, so
// two worlds share a fingerprint only if their grids are bit-identical.
func fingerprint(cfg Config, out *grids) uint64 {
	d := xxhash.New()

	var buf [8]byte
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}

	writeUint(uint64(cfg.Seed))
	writeUint(uint64(cfg.Resolution))
	_, _ = d.WriteString(string(cfg.Algorithm))

	for _, v := range out.elevation.values {
		writeUint(math.Float64bits(v))
	}
	for _, v := range out.moisture.values {
		writeUint(math.Float64bits(v))
	}
	return d.Sum64()
}

// Fingerprint identifies the current grids.
func (w *World) Fingerprint() uint64 { return w.fingerprint }

// ETag renders the fingerprint as a strong HTTP entity tag.
func (w *World) ETag() string {
	return `"` + strconv.FormatUint(w.fingerprint, 16) + `"`
}
