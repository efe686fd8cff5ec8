package rename

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/aidanlsb/projrename/internal/fsys"
)

// Option configures a Verifier or an Executor.
type Option func(*settings)

type settings struct {
	layout Layout
	logger *log.Logger
}

// WithLayout overrides DefaultLayout. Empty fields keep their defaults.
func WithLayout(l Layout) Option {
	return func(s *settings) { s.layout = l.WithDefaults() }
}

// WithLogger routes check and step progress to logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		layout: DefaultLayout(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// engine is the state shared by Verifier and Executor.
type engine struct {
	fs fsys.FileSystem
	settings
}

func newEngine(fs fsys.FileSystem, opts []Option) engine {
	return engine{fs: fs, settings: newSettings(opts)}
}

// Layout returns the layout in effect.
func (e *engine) Layout() Layout { return e.layout }

func (e *engine) fileContains(path, text string) (bool, error) {
	content, err := e.fs.ReadAllText(path)
	if err != nil {
		return false, err
	}
	return strings.Contains(content, text), nil
}
