package pull

import "fmt"

// DefaultHeader is the header built by DefaultEnvironment.
type DefaultHeader struct {
	Host   Host
	Layout string
}

// DefaultEnvironment builds a DefaultHeader for the layouts it knows.
type DefaultEnvironment struct {
	// Layouts lists accepted layout names. Empty means DefaultHeaderLayout only.
	Layouts []string
}

// InflateHeader implements Environment.
func (e DefaultEnvironment) InflateHeader(host Host, layout string) (Header, error) {
	layouts := e.Layouts
	if len(layouts) == 0 {
		layouts = []string{DefaultHeaderLayout}
	}
	for _, l := range layouts {
		if l == layout {
			return &DefaultHeader{Host: host, Layout: layout}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidHeaderLayout, layout)
}
