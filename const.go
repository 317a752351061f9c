package galextract

const (
	magic        = "UNIONFILES"
	magicScanLen = 64   // magic must appear within this many bytes of the start
	dirStart     = 0x10 // directory position is fixed, independent of where the magic sits
	nameSlotLen  = 256
	uendTag      = "UEND"

	maxNameLen = 200 // sanitized output paths are clamped to this

	readBuffer  = 1000 * 1000 * 1 //MiB
	writeBuffer = readBuffer

	defaultOutDir = "output"
)

// Checksum Types
const (
	sumNone uint8 = iota
	sumCRC16
	sumCRC32
	sumXXHash
	sumSHA256
	sumBlake3
)

// Per-entry outcomes
const (
	OutcomeOK uint8 = iota
	OutcomeSkippedEmpty
	OutcomeSkippedInvalid
	OutcomeFailed
)
