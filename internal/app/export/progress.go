package export

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Tracker observes row-by-row export progress
type Tracker interface {
	Start(total int, description string)
	Increment()
	Done()
}

type nopTracker struct{}

func (nopTracker) Start(int, string) {}
func (nopTracker) Increment()        {}
func (nopTracker) Done()             {}

func orNopTracker(t Tracker) Tracker {
	if t == nil {
		return nopTracker{}
	}
	return t
}

// ProgressConfig controls whether and where the export bar renders
type ProgressConfig struct {
	Enabled bool
	Writer  io.Writer
}

// ProgressBar renders export progress as a terminal bar
type ProgressBar struct {
	container *mpb.Progress
	bar       *mpb.Bar
	enabled   bool
	mu        sync.Mutex
}

var _ Tracker = (*ProgressBar)(nil)

// NewProgressBar creates a bar. A disabled bar does nothing.
func NewProgressBar(config ProgressConfig) *ProgressBar {
	if !config.Enabled {
		return &ProgressBar{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWaitGroup(&sync.WaitGroup{}),
	)

	return &ProgressBar{
		container: container,
		enabled:   true,
	}
}

// Start adds a bar of total steps
func (pb *ProgressBar) Start(total int, description string) {
	if !pb.enabled || pb.container == nil {
		return
	}

	pb.mu.Lock()
	defer pb.mu.Unlock()

	pb.bar = pb.container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
			decor.OnComplete(
				decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), " ✓ ",
			),
		),
	)
}

// Increment advances the bar by one row
func (pb *ProgressBar) Increment() {
	if pb.enabled && pb.bar != nil {
		pb.bar.Increment()
	}
}

// Done marks the bar complete and waits for the final render
func (pb *ProgressBar) Done() {
	if !pb.enabled || pb.container == nil {
		return
	}
	if pb.bar != nil {
		pb.bar.SetTotal(pb.bar.Current(), true)
	}
	pb.container.Wait()
}

// IsTTY reports whether writer is a terminal
func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ShouldShowProgress enables the bar when forced or when stderr is a terminal
func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}

	return IsTTY(os.Stderr)
}
