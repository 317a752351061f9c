package galextract

// Entry is one directory record: a stored name plus the absolute position of
// its payload within the archive. Offset or Size of zero marks an empty slot.
type Entry struct {
	Name   string
	Offset uint32
	Size   uint32
}

// EntryResult is the outcome of extracting one entry.
type EntryResult struct {
	Entry   Entry
	Path    string // final on-disk path, empty when skipped
	Outcome uint8
	Written int64
	Sum     string // hex digest of the written payload, when enabled
	Err     error
}

// ExtractReport collects per-entry results for one extraction run.
type ExtractReport struct {
	Entries []EntryResult
}

func (r *ExtractReport) count(outcome uint8) int {
	n := 0
	for _, e := range r.Entries {
		if e.Outcome == outcome {
			n++
		}
	}
	return n
}

// Extracted returns the number of entries written to disk.
func (r *ExtractReport) Extracted() int { return r.count(OutcomeOK) }

// Skipped returns the number of empty or invalid entries passed over.
func (r *ExtractReport) Skipped() int {
	return r.count(OutcomeSkippedEmpty) + r.count(OutcomeSkippedInvalid)
}

// Failed returns the number of entries that hit an I/O error.
func (r *ExtractReport) Failed() int { return r.count(OutcomeFailed) }

// ArchiveListingOut is the JSON shape for list mode.
type ArchiveListingOut struct {
	Archive string         `json:"archive"`
	Entries []ListEntryOut `json:"entries"`
}

type ListEntryOut struct {
	Name   string `json:"name"`
	Offset uint32 `json:"offset"`
	Size   uint32 `json:"size"`
	Empty  bool   `json:"empty,omitempty"`
}
