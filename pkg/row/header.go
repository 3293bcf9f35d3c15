package row

import (
	"encoding/binary"

	"github.com/huynhanx03/go-hybridrow/pkg/schema"
)

// Version is the format version byte that starts every row.
type Version byte

const (
	// VersionV1 is the only supported format version.
	VersionV1 Version = 0x81

	// HeaderSize is the version byte plus the schema id.
	HeaderSize = 1 + schema.SchemaIDSize
)

// Header precedes the root scope of every row.
type Header struct {
	Version  Version
	SchemaID schema.SchemaID
}

func (h Header) put(dst []byte) {
	dst[0] = byte(h.Version)
	binary.LittleEndian.PutUint32(dst[1:HeaderSize], uint32(h.SchemaID))
}

func readHeader(src []byte) Header {
	return Header{
		Version:  Version(src[0]),
		SchemaID: schema.SchemaID(binary.LittleEndian.Uint32(src[1:HeaderSize])),
	}
}
