package galextract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// List prints the directory table of the archive at arcPath without touching
// the filesystem. With jsonOut the listing is emitted as indented JSON.
func List(arcPath string, jsonOut bool) error {
	arc, err := NewBinReader(arcPath)
	if err != nil {
		return fmt.Errorf("could not open archive: %w", err)
	}
	defer arc.Close()

	entries, err := ParseDirectory(arc)
	if err != nil {
		return err
	}

	if jsonOut {
		out := ArchiveListingOut{Archive: filepath.Base(arcPath)}
		for _, entry := range entries {
			out.Entries = append(out.Entries, ListEntryOut{
				Name:   entry.Name,
				Offset: entry.Offset,
				Size:   entry.Size,
				Empty:  entry.Offset == 0 || entry.Size == 0,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fileCount := 0
	var byteCount uint64
	for _, entry := range entries {
		fmt.Printf("%v\n", entry.Name)
		if entry.Offset != 0 && entry.Size != 0 {
			fileCount++
			byteCount += uint64(entry.Size)
		}
	}
	fmt.Printf("%v files, %v\n", fileCount, humanize.Bytes(byteCount))
	return nil
}
