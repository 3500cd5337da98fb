package config

import (
	"fmt"
)

// LookbackChoices are the selectable display windows, in days.
var LookbackChoices = []int{1, 7, 30, 90, 180, 365}

// ValidLookback reports whether days is one of the fixed choices.
func ValidLookback(days int) bool {
	for _, d := range LookbackChoices {
		if d == days {
			return true
		}
	}
	return false
}

func validate(c *Config) error {
	if err := c.Fetch.validate(); err != nil {
		return err
	}
	if err := c.Chart.validate(); err != nil {
		return err
	}
	return nil
}

func (f *FetchConfig) validate() error {
	if f.PaddingDays < 200 {
		return fmt.Errorf("fetch.padding_days must be >= 200 to seed the longest moving average")
	}
	if f.TimeoutSeconds > 60 {
		return fmt.Errorf("fetch.timeout_seconds must be <= 60")
	}
	return nil
}

func (c *ChartConfig) validate() error {
	if !ValidLookback(c.DefaultDays) {
		return fmt.Errorf("chart.default_days must be one of %v", LookbackChoices)
	}
	return nil
}
