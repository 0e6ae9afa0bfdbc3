package cli

import (
	"io"
	"os"

	"github.com/xolan/swimlog/internal/config"
	"github.com/xolan/swimlog/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// Services is nil when the data directory could not be resolved;
	// ServicesErr then holds the reason.
	Services    *service.Services
	ServicesErr error

	Config config.Config
}

// DefaultDeps creates a new Deps with default values
func DefaultDeps() *Deps {
	services, err := service.NewServices()

	cfg := config.DefaultConfig()
	if services != nil {
		cfg = services.Config.Get()
	}

	return &Deps{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Stdin:       os.Stdin,
		Exit:        os.Exit,
		Services:    services,
		ServicesErr: err,
		Config:      cfg,
	}
}

// NewDeps creates a new Deps with the given services
func NewDeps(services *service.Services, cfg config.Config) *Deps {
	return &Deps{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		Exit:     os.Exit,
		Services: services,
		Config:   cfg,
	}
}

// Global deps instance for CLI, created on first use
var deps *Deps

// SetDeps sets the global deps (for testing)
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets to default deps
func ResetDeps() {
	deps = nil
}

// GetDeps returns the current deps
func GetDeps() *Deps {
	if deps == nil {
		deps = DefaultDeps()
	}
	return deps
}
