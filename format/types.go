package format

import "bytes"

// Format identifies one of the container formats the codec package can
// produce or consume.
type Format uint8

const (
	Gzip      Format = 0x1 // Gzip represents DEFLATE data with gzip framing.
	Xz        Format = 0x2 // Xz represents the XZ container (LZMA2 filter).
	Lzma      Format = 0x3 // Lzma represents the legacy standalone LZMA container.
	Bzip2     Format = 0x4 // Bzip2 represents the bzip2 block format.
	Lz4       Format = 0x5 // Lz4 represents the self-describing LZ4 frame format.
	Lz4Legacy Format = 0x6 // Lz4Legacy represents the legacy fixed-block LZ4 container.
	Zstd      Format = 0x7 // Zstd represents the Zstandard frame format.
)

func (f Format) String() string {
	switch f {
	case Gzip:
		return "Gzip"
	case Xz:
		return "Xz"
	case Lzma:
		return "Lzma"
	case Bzip2:
		return "Bzip2"
	case Lz4:
		return "Lz4"
	case Lz4Legacy:
		return "Lz4Legacy"
	case Zstd:
		return "Zstd"
	default:
		return "Unknown"
	}
}

// Ext returns the conventional file name extension for the format, with the
// leading dot. Unknown formats return an empty string.
//
// Both LZ4 containers share the ".lz4" extension; the magic bytes, not the
// extension, tell them apart.
func (f Format) Ext() string {
	switch f {
	case Gzip:
		return ".gz"
	case Xz:
		return ".xz"
	case Lzma:
		return ".lzma"
	case Bzip2:
		return ".bz2"
	case Lz4, Lz4Legacy:
		return ".lz4"
	case Zstd:
		return ".zst"
	default:
		return ""
	}
}

// Magic byte sequences for each supported container.
//
// The lzma alone format has no real magic; 0x5D is the encoded properties
// byte for the lc=3 lp=0 pb=2 defaults every known encoder emits, and the
// following zero bytes belong to the little-endian dictionary size.
var (
	magicGzip      = []byte{0x1f, 0x8b}
	magicXz        = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	magicLzma      = []byte{0x5d, 0x00, 0x00}
	magicBzip2     = []byte{'B', 'Z', 'h'}
	magicLz4       = []byte{0x04, 0x22, 0x4d, 0x18}
	magicLz4Legacy = []byte{0x02, 0x21, 0x4c, 0x18}
	magicZstd      = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

var magicTable = []struct {
	format Format
	magic  []byte
}{
	{Gzip, magicGzip},
	{Xz, magicXz},
	{Bzip2, magicBzip2},
	{Lz4, magicLz4},
	{Lz4Legacy, magicLz4Legacy},
	{Zstd, magicZstd},
	// Weakest signature last so the stronger ones win.
	{Lzma, magicLzma},
}

// Detect sniffs the magic bytes at the start of data and reports the
// container format, if any. It never reads past the first six bytes.
func Detect(data []byte) (Format, bool) {
	for _, e := range magicTable {
		if bytes.HasPrefix(data, e.magic) {
			return e.format, true
		}
	}

	return 0, false
}
