package galextract

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrNotUnionFiles is the only fatal parse condition: the magic signature is
// missing from the head of the file.
var ErrNotUnionFiles = errors.New("not a UNIONFILES archive")

// ParseDirectory reads the directory table from an archive. The format stores
// no entry count and no end marker, so the loop runs until a record fails the
// path heuristic or the file runs out; both are normal termination, and the
// entries collected up to that point are returned.
func ParseDirectory(br *BinReader) ([]Entry, error) {
	head := make([]byte, len(magic))
	_, headErr := io.ReadFull(br, head)
	if headErr != nil || string(head) != magic {
		// Some containers carry junk before the signature. Scan the first 64
		// bytes before giving up.
		if _, err := br.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		peek := make([]byte, magicScanLen)
		n, _ := io.ReadFull(br, peek)
		idx := bytes.Index(peek[:n], []byte(magic))
		if idx < 0 {
			return nil, fmt.Errorf("%w: no %q in first %d bytes", ErrNotUnionFiles, magic, magicScanLen)
		}
		doLog(true, "magic found at offset %v", idx)
	}

	// The directory sits at a fixed position regardless of where the magic
	// was found.
	if _, err := br.Seek(dirStart, io.SeekStart); err != nil {
		return nil, err
	}

	var entries []Entry
	slot := make([]byte, nameSlotLen)
	pair := make([]byte, 8)
	for {
		if _, err := io.ReadFull(br, slot); err != nil {
			// Short slot read: the directory ends at the file boundary
			break
		}

		name := decodeName(slot)
		if !looksLikePath(name) {
			doLog(true, "directory ended at invalid name: %q", name)
			break
		}

		if _, err := io.ReadFull(br, pair); err != nil {
			break
		}
		offset := binary.LittleEndian.Uint32(pair[0:4])
		size := binary.LittleEndian.Uint32(pair[4:8])

		// The record separator shows up inconsistently across records, so
		// peek instead of consuming; when absent the four bytes belong to the
		// next record's name slot.
		if tag, err := br.Peek(len(uendTag)); err == nil && string(tag) == uendTag {
			br.Discard(len(uendTag))
		}

		entries = append(entries, Entry{Name: name, Offset: offset, Size: size})
	}

	return entries, nil
}
