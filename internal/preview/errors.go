package preview

import "fmt"

// ConfigError is raised, via panic, for integration bugs: a strategy built
// without a host, shown without a surface, or shown with an empty URL.
type ConfigError struct {
	Strategy string
	Reason   string
}

func (e *ConfigError) Error() string {
	if e.Strategy == "" {
		return "preview: " + e.Reason
	}
	return fmt.Sprintf("preview %s: %s", e.Strategy, e.Reason)
}
