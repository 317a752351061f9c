package galextract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

const (
	// maxBarWidth limits the progress bar size so that extremely wide
	// terminals don't allocate a huge bar.
	maxBarWidth  = 60
	updatePeriod = time.Second / 4
)

func getLineWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

type progressData struct {
	written      atomic.Int64
	total        int64
	startTime    time.Time
	lastPrintStr string
	file         atomic.Value
}

func progressTicker(p *progressData) (*progressData, chan struct{}, chan struct{}) {
	done := make(chan struct{})
	finished := make(chan struct{})
	if !ShowProgress {
		close(finished)
		return p, done, finished
	}

	p.startTime = time.Now()

	go func() {
		ticker := time.NewTicker(updatePeriod)
		defer ticker.Stop()
		defer close(finished)

		for {
			select {
			case <-ticker.C:
				printProgress(p)
			case <-done:
				printProgress(p)
				fmt.Print("\n")
				return
			}
		}
	}()

	return p, done, finished
}

func printProgress(p *progressData) {
	if !ShowProgress {
		return
	}

	frac := 1.0
	if p.total > 0 {
		frac = float64(p.written.Load()) / float64(p.total)
		if frac > 1 {
			frac = 1
		}
	}

	// Average speed since start; payload copies are raw so a window buys
	// nothing here.
	var speed float64
	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 {
		speed = float64(p.written.Load()) / elapsed
	}

	fileName, _ := p.file.Load().(string)
	fileName = filepath.Base(fileName)

	info := fmt.Sprintf(" %3.2f%% %v/s %s", frac*100, humanize.Bytes(uint64(speed)), fileName)
	width := getLineWidth()
	barWidth := width - len(info) - 2 // 2 for the surrounding []
	if barWidth > maxBarWidth {
		barWidth = maxBarWidth
	}
	if barWidth < 0 {
		barWidth = 0
	}

	filled := int(frac * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := "[" + strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled) + "]"

	out := bar + info

	// Print only if changed (reduce flicker)
	if out != p.lastPrintStr {
		fmt.Printf("\r\033[K%s", out)
		p.lastPrintStr = out
	}
}
