package texture

import (
	"fmt"
	"image"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/surfview/internal/logger"
)

// Result is a finished load, successful or not.
type Result struct {
	Path  string
	Image *image.RGBA
	Err   error
}

// Loader reads and decodes textures on background goroutines. The frame
// thread collects finished results with Poll, so GL uploads stay on the
// thread that owns the context.
type Loader struct {
	results chan Result
	wg      sync.WaitGroup
	read    func(string) ([]byte, error)
}

// NewLoader creates a loader that reads from the filesystem.
func NewLoader() *Loader {
	return &Loader{
		results: make(chan Result, 8),
		read:    os.ReadFile,
	}
}

// Load starts loading path in the background.
func (l *Loader) Load(path string) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.results <- l.load(path)
	}()
}

func (l *Loader) load(path string) Result {
	log := logger.Named("texture")
	if !Supported(path) {
		return Result{Path: path, Err: fmt.Errorf("load %s: unsupported extension", path)}
	}
	data, err := l.read(path)
	if err != nil {
		return Result{Path: path, Err: fmt.Errorf("load %s: %w", path, err)}
	}
	img, err := Decode(path, data)
	if err != nil {
		return Result{Path: path, Err: err}
	}
	FlipVertical(img)
	log.Debug("texture decoded",
		zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return Result{Path: path, Image: img}
}

// Poll returns a finished result without blocking.
func (l *Loader) Poll() (Result, bool) {
	select {
	case r := <-l.results:
		return r, true
	default:
		return Result{}, false
	}
}

// Wait blocks until every started load has delivered its result.
func (l *Loader) Wait() {
	l.wg.Wait()
}
