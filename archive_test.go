package galextract

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// recordSpec describes one directory record for synthetic test archives. The
// name is raw slot bytes so tests can plant invalid sequences.
type recordSpec struct {
	name   []byte
	offset uint32
	size   uint32
	uend   bool
}

// buildArchive assembles a UNIONFILES blob: magic, pad to the fixed directory
// start, the given records, then the tail bytes (payloads or garbage).
// Offsets inside records are absolute, so callers compute them against
// dirEnd(records).
func buildArchive(records []recordSpec, tail []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(magic)
	buf.Write(make([]byte, dirStart-len(magic)))
	for _, r := range records {
		slot := make([]byte, nameSlotLen)
		copy(slot, r.name)
		buf.Write(slot)
		binary.Write(&buf, binary.LittleEndian, r.offset)
		binary.Write(&buf, binary.LittleEndian, r.size)
		if r.uend {
			buf.WriteString(uendTag)
		}
	}
	buf.Write(tail)
	return buf.Bytes()
}

// dirEnd returns the absolute offset of the first byte after the directory.
func dirEnd(records []recordSpec) uint32 {
	end := uint32(dirStart)
	for _, r := range records {
		end += nameSlotLen + 8
		if r.uend {
			end += uint32(len(uendTag))
		}
	}
	return end
}

func writeArchive(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.uni")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write archive: %v", err)
	}
	return path
}

func checkFile(t *testing.T, path string, expect []byte) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %v: %v", path, err)
	}
	if !bytes.Equal(data, expect) {
		t.Fatalf("content mismatch for %v: got %q want %q", path, data, expect)
	}
}

func TestExtractRoundTrip(t *testing.T) {
	ResetDefaults()
	Threads = 1

	records := []recordSpec{
		{name: []byte("a.bin"), uend: true},
		{name: []byte(`data\foo.txt`), uend: false},
	}
	payloadA := []byte("hello archive")
	payloadB := []byte("nested payload")
	base := dirEnd(records)
	records[0].offset = base
	records[0].size = uint32(len(payloadA))
	records[1].offset = base + uint32(len(payloadA))
	records[1].size = uint32(len(payloadB))

	arc := writeArchive(t, buildArchive(records, append(append([]byte{}, payloadA...), payloadB...)))
	dest := filepath.Join(t.TempDir(), "out")

	report, err := Extract(arc, dest)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if report.Extracted() != 2 || report.Failed() != 0 {
		t.Fatalf("report mismatch: extracted %v failed %v", report.Extracted(), report.Failed())
	}

	checkFile(t, filepath.Join(dest, "a.bin"), payloadA)
	checkFile(t, filepath.Join(dest, "data", "foo.txt"), payloadB)
}

func TestExtractSkipsEmptyEntries(t *testing.T) {
	ResetDefaults()
	Threads = 1

	records := []recordSpec{
		{name: []byte("real.dat"), uend: true},
		{name: []byte("hole.dat"), offset: 0, size: 0, uend: true},
		{name: []byte("zero.dat"), offset: 1, size: 0, uend: true},
	}
	payload := []byte("content")
	records[0].offset = dirEnd(records)
	records[0].size = uint32(len(payload))

	arc := writeArchive(t, buildArchive(records, payload))
	dest := filepath.Join(t.TempDir(), "out")

	report, err := Extract(arc, dest)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if report.Extracted() != 1 {
		t.Fatalf("expected 1 extracted, got %v", report.Extracted())
	}
	if report.Skipped() != 2 {
		t.Fatalf("expected 2 skipped, got %v", report.Skipped())
	}
	if report.Failed() != 0 {
		t.Fatalf("empty entries must not count as failures, got %v", report.Failed())
	}
	if _, err := os.Stat(filepath.Join(dest, "hole.dat")); !os.IsNotExist(err) {
		t.Fatalf("empty entry should produce no file")
	}
}

func TestExtractIdempotent(t *testing.T) {
	ResetDefaults()
	Threads = 1

	records := []recordSpec{{name: []byte("same.bin"), uend: true}}
	payload := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}
	records[0].offset = dirEnd(records)
	records[0].size = uint32(len(payload))
	arc := writeArchive(t, buildArchive(records, payload))

	read := func(dest string) []byte {
		if _, err := Extract(arc, dest); err != nil {
			t.Fatalf("extract: %v", err)
		}
		data, err := os.ReadFile(filepath.Join(dest, "same.bin"))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		return data
	}

	first := read(filepath.Join(t.TempDir(), "one"))
	second := read(filepath.Join(t.TempDir(), "two"))
	if !bytes.Equal(first, second) {
		t.Fatalf("extraction is not idempotent")
	}
}

func TestExtractParallelMatchesSerial(t *testing.T) {
	ResetDefaults()

	var records []recordSpec
	var tail []byte
	payloads := [][]byte{
		bytes.Repeat([]byte("abc"), 100),
		bytes.Repeat([]byte{0x42}, 777),
		[]byte("tiny"),
		bytes.Repeat([]byte("xyz123"), 55),
	}
	names := []string{"one.bin", "two.bin", "sub\\three.bin", "four.bin"}
	for i := range payloads {
		records = append(records, recordSpec{name: []byte(names[i]), uend: i%2 == 0})
	}
	base := dirEnd(records)
	for i, p := range payloads {
		records[i].offset = base + uint32(len(tail))
		records[i].size = uint32(len(p))
		tail = append(tail, p...)
	}
	arc := writeArchive(t, buildArchive(records, tail))

	Threads = 1
	serialDest := filepath.Join(t.TempDir(), "serial")
	if _, err := Extract(arc, serialDest); err != nil {
		t.Fatalf("serial extract: %v", err)
	}

	Threads = 4
	parallelDest := filepath.Join(t.TempDir(), "parallel")
	report, err := Extract(arc, parallelDest)
	if err != nil {
		t.Fatalf("parallel extract: %v", err)
	}
	if report.Extracted() != len(payloads) {
		t.Fatalf("parallel extracted %v of %v", report.Extracted(), len(payloads))
	}

	checks := []string{"one.bin", "two.bin", filepath.Join("sub", "three.bin"), "four.bin"}
	for i, rel := range checks {
		serialData, err := os.ReadFile(filepath.Join(serialDest, rel))
		if err != nil {
			t.Fatalf("read serial %v: %v", rel, err)
		}
		if !bytes.Equal(serialData, payloads[i]) {
			t.Fatalf("serial content mismatch for %v", rel)
		}
		parallelData, err := os.ReadFile(filepath.Join(parallelDest, rel))
		if err != nil {
			t.Fatalf("read parallel %v: %v", rel, err)
		}
		if !bytes.Equal(serialData, parallelData) {
			t.Fatalf("parallel content mismatch for %v", rel)
		}
	}
}

func TestExtractHostilePathSkipped(t *testing.T) {
	ResetDefaults()
	Threads = 1

	records := []recordSpec{
		{name: []byte(`..\..\evil.txt`), uend: true},
		{name: []byte("good.txt"), uend: true},
	}
	payload := []byte("fine")
	base := dirEnd(records)
	records[0].offset = base
	records[0].size = 4
	records[1].offset = base
	records[1].size = uint32(len(payload))

	tmp := t.TempDir()
	arc := writeArchive(t, buildArchive(records, payload))
	dest := filepath.Join(tmp, "deep", "out")

	report, err := Extract(arc, dest)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if report.Entries[0].Outcome != OutcomeSkippedInvalid {
		t.Fatalf("hostile path should be skipped, got outcome %v", report.Entries[0].Outcome)
	}
	if _, err := os.Stat(filepath.Join(tmp, "evil.txt")); !os.IsNotExist(err) {
		t.Fatalf("hostile path escaped the destination")
	}
	checkFile(t, filepath.Join(dest, "good.txt"), payload)
}

func TestExtractShortPayloadKeepsPartial(t *testing.T) {
	ResetDefaults()
	Threads = 1

	records := []recordSpec{{name: []byte("trunc.bin"), uend: true}}
	payload := []byte("only this much")
	records[0].offset = dirEnd(records)
	records[0].size = uint32(len(payload)) + 1000 // span runs past EOF

	arc := writeArchive(t, buildArchive(records, payload))
	dest := filepath.Join(t.TempDir(), "out")

	report, err := Extract(arc, dest)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if report.Entries[0].Outcome != OutcomeOK {
		t.Fatalf("short payload read must not fail, got outcome %v (err %v)",
			report.Entries[0].Outcome, report.Entries[0].Err)
	}
	if report.Entries[0].Written != int64(len(payload)) {
		t.Fatalf("written %v, want %v", report.Entries[0].Written, len(payload))
	}
	checkFile(t, filepath.Join(dest, "trunc.bin"), payload)
}

func TestExtractMissingMagicWritesNothing(t *testing.T) {
	ResetDefaults()
	Threads = 1

	arc := writeArchive(t, bytes.Repeat([]byte{0x55, 0xaa}, 200))
	dest := filepath.Join(t.TempDir(), "out")

	if _, err := Extract(arc, dest); err == nil {
		t.Fatalf("expected format error for missing magic")
	}

	dir, err := os.ReadDir(dest)
	if err != nil {
		t.Fatalf("read dest: %v", err)
	}
	if len(dir) != 0 {
		t.Fatalf("no files should be written on format error, found %v", len(dir))
	}
}

func TestExtractRecordsDigests(t *testing.T) {
	ResetDefaults()
	Threads = 1
	ComputeSums = true
	if err := SetChecksumType("sha256"); err != nil {
		t.Fatalf("sum type: %v", err)
	}

	records := []recordSpec{{name: []byte("sum.bin"), uend: true}}
	payload := []byte("digest me")
	records[0].offset = dirEnd(records)
	records[0].size = uint32(len(payload))

	arc := writeArchive(t, buildArchive(records, payload))
	report, err := Extract(arc, filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	// sha256("digest me")
	want := "a230eb9c90aa2a2e9cc1286fd505a348beae8cb74730255608db9284e2f7cef5"
	if report.Entries[0].Sum != want {
		t.Fatalf("digest mismatch: got %v want %v", report.Entries[0].Sum, want)
	}
}

func TestExtractDuplicateNamesOverwrite(t *testing.T) {
	ResetDefaults()
	Threads = 1

	records := []recordSpec{
		{name: []byte("dup.bin"), uend: true},
		{name: []byte("dup.bin"), uend: true},
	}
	first := []byte("first")
	second := []byte("second")
	base := dirEnd(records)
	records[0].offset = base
	records[0].size = uint32(len(first))
	records[1].offset = base + uint32(len(first))
	records[1].size = uint32(len(second))

	arc := writeArchive(t, buildArchive(records, append(append([]byte{}, first...), second...)))
	dest := filepath.Join(t.TempDir(), "out")
	if _, err := Extract(arc, dest); err != nil {
		t.Fatalf("extract: %v", err)
	}

	// Table order wins: the later duplicate lands last
	checkFile(t, filepath.Join(dest, "dup.bin"), second)
}
