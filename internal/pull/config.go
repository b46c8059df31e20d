package pull

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults for Config.
const (
	DefaultScrollFraction = 0.5
	DefaultMinimizeDelay  = 1 * time.Second
	DefaultTouchSlop      = 10
	DefaultHeaderLayout   = "default"
)

var validate = validator.New()

// Config holds the pull behaviour of an Attacher. It is copied by New and
// cannot be changed afterwards.
type Config struct {
	// ScrollFraction is the share of the surface height that must be pulled
	// to trigger a refresh.
	ScrollFraction float64 `validate:"gt=0,lte=1"`

	// RefreshOnRelease arms the refresh at the threshold and starts it when
	// the pointer is released.
	RefreshOnRelease bool

	// MinimizeEnabled minimizes the header MinimizeDelay after a refresh starts.
	MinimizeEnabled bool
	MinimizeDelay   time.Duration `validate:"gte=0"`

	// TouchSlop is the displacement below which pointer motion is jitter.
	TouchSlop float64 `validate:"gte=0"`

	// HeaderLayout selects the header the Environment builds.
	HeaderLayout string `validate:"required"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		ScrollFraction:   DefaultScrollFraction,
		RefreshOnRelease: false,
		MinimizeEnabled:  true,
		MinimizeDelay:    DefaultMinimizeDelay,
		TouchSlop:        DefaultTouchSlop,
		HeaderLayout:     DefaultHeaderLayout,
	}
}

// Validate checks the configuration ranges.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
