package galextract

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/remeh/sizedwaitgroup"
)

// Extract parses the directory of the archive at arcPath and writes every
// valid entry beneath destination, creating it as needed. Only a missing
// magic signature (or an unreadable archive/destination) aborts the run;
// everything per-entry is skip-and-continue, with the details collected in
// the returned report.
func Extract(arcPath, destination string) (*ExtractReport, error) {
	if destination == "" {
		destination = defaultOutDir
	}
	if err := os.MkdirAll(destination, 0o755); err != nil {
		return nil, fmt.Errorf("could not create destination: %w", err)
	}

	arc, err := NewBinReader(arcPath)
	if err != nil {
		return nil, fmt.Errorf("could not open archive: %w", err)
	}
	defer arc.Close()

	doLog(true, "Opening archive: %v", arcPath)

	entries, err := ParseDirectory(arc)
	if err != nil {
		return nil, err
	}
	doLog(false, "Found %v entries, extracting...", len(entries))

	var totalBytes int64
	for _, entry := range entries {
		if entry.Offset != 0 && entry.Size != 0 {
			totalBytes += int64(entry.Size)
		}
	}

	if SpaceCheck {
		free, _, err := getDiskSpace(destination)
		if err != nil {
			doLog(false, "warning: free space check failed: %v", err)
		} else if uint64(totalBytes) > free {
			return nil, fmt.Errorf("insufficient disk space: need %v, available %v",
				humanize.Bytes(uint64(totalBytes)), humanize.Bytes(free))
		}
	}

	p, done, finished := progressTicker(&progressData{total: totalBytes})
	defer func() {
		close(done)
		<-finished
	}()

	report := &ExtractReport{Entries: make([]EntryResult, len(entries))}

	if Threads > 1 && len(entries) > 1 {
		// Payload spans are independent of each other, so entries can be
		// copied in parallel as long as each worker holds its own reader.
		wg := sizedwaitgroup.New(Threads)
		for i := range entries {
			wg.Add()
			go func(i int) {
				defer wg.Done()
				arcB, err := NewBinReader(arcPath)
				if err != nil {
					report.Entries[i] = EntryResult{Entry: entries[i], Outcome: OutcomeFailed, Err: err}
					doLog(false, "[failed] %v: %v", entries[i].Name, err)
					return
				}
				defer arcB.Close()
				report.Entries[i] = extractEntry(arcB, destination, entries[i], p)
			}(i)
		}
		wg.Wait()
	} else {
		for i, entry := range entries {
			report.Entries[i] = extractEntry(arc, destination, entry, p)
		}
	}

	doLog(false, "Done: %v extracted, %v skipped, %v failed.",
		report.Extracted(), report.Skipped(), report.Failed())
	return report, nil
}

// extractEntry copies one payload span to its output file. The archive read
// plus output write is a single unit of work per entry; any failure inside it
// is absorbed into the result so the batch keeps going.
func extractEntry(arc *BinReader, destination string, entry Entry, p *progressData) EntryResult {
	res := EntryResult{Entry: entry}

	if entry.Offset == 0 || entry.Size == 0 {
		res.Outcome = OutcomeSkippedEmpty
		doLog(false, "[skip] empty entry: %v", entry.Name)
		return res
	}

	safeName := sanitizeName(entry.Name)
	if safeName == "" {
		res.Outcome = OutcomeSkippedInvalid
		doLog(false, "[skip] invalid path: %q", entry.Name)
		return res
	}

	finalPath, err := safeJoin(destination, safeName)
	if err != nil {
		res.Outcome = OutcomeSkippedInvalid
		res.Err = err
		doLog(false, "[skip] invalid path: %q", entry.Name)
		return res
	}
	res.Path = finalPath

	if err := os.MkdirAll(filepath.Dir(finalPath), os.ModePerm); err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		doLog(false, "[failed] %v: %v", safeName, err)
		return res
	}

	if _, err := arc.Seek(int64(entry.Offset), io.SeekStart); err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		doLog(false, "[failed] %v: %v", safeName, err)
		return res
	}

	p.file.Store(safeName)

	newFile, err := os.OpenFile(finalPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		doLog(false, "[failed] %v: %v", safeName, err)
		return res
	}

	// A payload span truncated by the end of the archive yields a short copy,
	// not an error; whatever was read is kept.
	var src io.Reader = io.LimitReader(arc, int64(entry.Size))
	src = countingReader{r: src, p: p}

	bw := bufio.NewWriterSize(newFile, writeBuffer)
	var writer io.Writer = bw
	var hasher hash.Hash
	if ComputeSums {
		hasher = newHasher(checksumType)
		writer = io.MultiWriter(bw, hasher)
	}

	written, err := io.Copy(writer, src)
	if err == nil {
		err = bw.Flush()
	}
	if closeErr := newFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		doLog(false, "[failed] %v: %v", safeName, err)
		return res
	}

	res.Written = written
	res.Outcome = OutcomeOK
	if hasher != nil {
		res.Sum = hex.EncodeToString(hasher.Sum(nil))
		doLog(false, "[OK] %v (%v) %v=%v", safeName, humanize.Bytes(uint64(written)),
			checksumName(checksumType), res.Sum)
	} else {
		doLog(false, "[OK] %v (%v)", safeName, humanize.Bytes(uint64(written)))
	}
	return res
}
