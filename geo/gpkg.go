package geo

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
)

// SRIDWGS84 is the spatial reference system identifier of WGS 84, the only
// reference system the application stores.
const SRIDWGS84 = 4326

const (
	gpkgMagic1  = 0x47 // 'G'
	gpkgMagic2  = 0x50 // 'P'
	gpkgVersion = 0x00

	// little-endian header with a 2D envelope
	gpkgFlags = 0x03

	gpkgHeaderSize   = 8
	gpkgEnvelopeSize = 32
)

// envelopeSizes maps the envelope contents indicator code to the envelope length in bytes.
var envelopeSizes = [...]int{0, 32, 48, 48, 64}

// EncodeGpkg renders the geometry as a GeoPackage geometry BLOB: the binary
// header (magic, version, flags, SRS id, envelope) followed by the WKB body.
func EncodeGpkg(g orb.Geometry) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("geo.EncodeGpkg: nil geometry")
	}
	body, err := wkb.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("geo.EncodeGpkg: marshal wkb: %w", err)
	}
	bound := g.Bound()
	buf := make([]byte, gpkgHeaderSize+gpkgEnvelopeSize, gpkgHeaderSize+gpkgEnvelopeSize+len(body))
	buf[0] = gpkgMagic1
	buf[1] = gpkgMagic2
	buf[2] = gpkgVersion
	buf[3] = gpkgFlags
	binary.LittleEndian.PutUint32(buf[4:8], uint32(SRIDWGS84))
	binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(bound.Min[0]))
	binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(bound.Max[0]))
	binary.LittleEndian.PutUint64(buf[24:32], math.Float64bits(bound.Min[1]))
	binary.LittleEndian.PutUint64(buf[32:40], math.Float64bits(bound.Max[1]))
	return append(buf, body...), nil
}

// DecodeGpkg parses a GeoPackage geometry BLOB and returns the geometry it carries.
func DecodeGpkg(data []byte) (orb.Geometry, error) {
	if len(data) < gpkgHeaderSize {
		return nil, fmt.Errorf("geo.DecodeGpkg: truncated header: %d bytes", len(data))
	}
	if data[0] != gpkgMagic1 || data[1] != gpkgMagic2 {
		return nil, fmt.Errorf("geo.DecodeGpkg: not a geopackage geometry")
	}
	if data[2] != gpkgVersion {
		return nil, fmt.Errorf("geo.DecodeGpkg: unsupported version %d", data[2])
	}
	envelope := int((data[3] >> 1) & 0x07)
	if envelope >= len(envelopeSizes) {
		return nil, fmt.Errorf("geo.DecodeGpkg: invalid envelope indicator %d", envelope)
	}
	offset := gpkgHeaderSize + envelopeSizes[envelope]
	if len(data) < offset {
		return nil, fmt.Errorf("geo.DecodeGpkg: truncated envelope: %d bytes", len(data))
	}
	g, err := wkb.Unmarshal(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("geo.DecodeGpkg: unmarshal wkb: %w", err)
	}
	return g, nil
}
