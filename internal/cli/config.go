package cli

import (
	"github.com/nordvolt/gridcore/internal/config"
)

// loadConfig returns config.Default() when path is empty, or the
// loaded-and-validated YAML config at path otherwise, per §6.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		c := config.Default()
		return c, nil
	}
	c, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	return *c, nil
}
