package galextract

import "runtime"

var (
	// VerboseMode adds time and caller info to log output.
	VerboseMode bool

	// ShowProgress enables the extraction progress bar.
	ShowProgress bool

	// ComputeSums records a digest of every extracted payload in the report.
	ComputeSums bool

	// SpaceCheck verifies free disk space before extracting.
	SpaceCheck bool

	// Threads is the number of parallel extraction workers.
	Threads int

	checksumType uint8

	// rejectPrefixes terminates directory parsing when a decoded name starts
	// with one of these. "BM" catches bitmap payloads that directly follow the
	// directory and would otherwise be misread as a record.
	rejectPrefixes []string
)

// ResetDefaults resets global configuration variables to their default values.
func ResetDefaults() {
	VerboseMode = false
	ShowProgress = false
	ComputeSums = false
	SpaceCheck = true
	Threads = runtime.NumCPU()
	checksumType = sumXXHash
	rejectPrefixes = []string{"BM"}
}

// SetRejectPrefixes overrides the name prefixes that end directory parsing.
// An empty list disables the prefix heuristic entirely.
func SetRejectPrefixes(prefixes []string) {
	rejectPrefixes = prefixes
}

func init() {
	ResetDefaults()
}
