package config

import (
	"errors"
	"fmt"
)

// Validate reports every setting that cannot produce a working viewer.
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Viewer.BaseURL == "" {
		errs = append(errs, errors.New("viewer base_url is empty"))
	}
	if c.Viewer.Frames <= 0 {
		errs = append(errs, fmt.Errorf("viewer frames %d must be positive", c.Viewer.Frames))
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewer size %dx%d must be positive", c.Viewer.Width, c.Viewer.Height))
	}
	if c.Viewer.SampleInterval < 0 {
		errs = append(errs, fmt.Errorf("viewer sample_interval %v is negative", c.Viewer.SampleInterval))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
