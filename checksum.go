package galextract

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"hash/crc32"

	crc16 "github.com/sigurn/crc16"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
)

func newHasher(t uint8) hash.Hash {
	switch t {
	case sumCRC32:
		return crc32.NewIEEE()
	case sumCRC16:
		table := crc16.MakeTable(crc16.CRC16_CCITT_FALSE)
		return crc16.New(table)
	case sumSHA256:
		return sha256.New()
	case sumBlake3:
		return blake3.New()
	case sumXXHash:
		fallthrough
	default:
		return xxh3.New()
	}
}

func checksumName(t uint8) string {
	switch t {
	case sumCRC32:
		return "crc32"
	case sumCRC16:
		return "crc16"
	case sumSHA256:
		return "sha256"
	case sumBlake3:
		return "blake3"
	case sumXXHash:
		return "xxhash"
	default:
		return "none"
	}
}

// SetChecksumType selects the digest recorded per extracted payload by its
// -sumtype flag name.
func SetChecksumType(name string) error {
	switch name {
	case "crc16":
		checksumType = sumCRC16
	case "crc32":
		checksumType = sumCRC32
	case "xxhash":
		checksumType = sumXXHash
	case "sha256":
		checksumType = sumSHA256
	case "blake3":
		checksumType = sumBlake3
	default:
		return fmt.Errorf("unknown checksum type: %v", name)
	}
	return nil
}
