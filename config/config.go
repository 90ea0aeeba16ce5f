package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/wattsup/stonks/common"
	"github.com/wattsup/stonks/log"
	"github.com/wattsup/stonks/strategies"
	"github.com/wattsup/stonks/strategies/base"
)

// ReadConfigFromFile will take a config from a path
func ReadConfigFromFile(path string) (*Config, error) {
	fileData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadConfig(fileData)
}

// LoadConfig unmarshalls byte data into a config struct
func LoadConfig(data []byte) (resp *Config, err error) {
	err = json.Unmarshal(data, &resp)
	return resp, err
}

// Validate checks all config settings
func (c *Config) Validate() error {
	err := c.validateStrategySettings()
	if err != nil {
		return err
	}
	err = c.validateDataSettings()
	if err != nil {
		return err
	}
	return c.validatePortfolioSettings()
}

// ApplyQuickTestDates fills an unset date range with the quick optimizer
// window, the ten weeks trailing the last day of the previous month. A
// partially or fully set range is left alone
func (c *Config) ApplyQuickTestDates(now time.Time) {
	if !c.DataSettings.StartDate.IsZero() || !c.DataSettings.EndDate.IsZero() {
		return
	}
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	c.DataSettings.EndDate = end
	c.DataSettings.StartDate = end.AddDate(0, 0, -10*7)
}

func (c *Config) validateStrategySettings() error {
	if c.StrategySettings.Name == "" {
		return errNoStrategySet
	}
	strat, err := strategies.LoadStrategyByName(c.StrategySettings.Name)
	if err != nil {
		return err
	}
	if len(c.StrategySettings.CustomSettings) > 0 {
		if err = strat.SetParams(c.StrategySettings.CustomSettings); err != nil {
			return err
		}
	}
	for k := range c.StrategySettings.Ranges {
		if _, ok := strat.Ranges()[k]; !ok {
			return fmt.Errorf("%w: %v", base.ErrUnknownParam, k)
		}
	}
	return nil
}

func (c *Config) validateDataSettings() error {
	if c.DataSettings.CSVDirectory == "" {
		return errNoDataDirectory
	}
	if len(c.DataSettings.Symbols) == 0 {
		return errNoSymbols
	}
	if !c.DataSettings.StartDate.Before(c.DataSettings.EndDate) {
		return fmt.Errorf("%w: %v to %v", errBadDateRange,
			c.DataSettings.StartDate, c.DataSettings.EndDate)
	}
	return nil
}

func (c *Config) validatePortfolioSettings() error {
	if !c.PortfolioSettings.InitialCash.IsPositive() {
		return fmt.Errorf("%w: %v", errBadInitialCash, c.PortfolioSettings.InitialCash)
	}
	if c.LiveSettings.GracePeriodSeconds < 0 {
		return fmt.Errorf("%w: %v", errBadGracePeriod, c.LiveSettings.GracePeriodSeconds)
	}
	return nil
}

// PrintSetting prints relevant settings to the console for easy reading
func (c *Config) PrintSetting() {
	log.Infoln(common.Config, "------------------Simulation Settings------------------------")
	log.Infof(common.Config, "Strategy: %v", c.StrategySettings.Name)
	if len(c.StrategySettings.CustomSettings) > 0 {
		log.Infoln(common.Config, "Custom strategy variables:")
		for k, v := range c.StrategySettings.CustomSettings {
			log.Infof(common.Config, "%v: %v", k, v)
		}
	} else {
		log.Infoln(common.Config, "Custom strategy variables: unset")
	}
	log.Infof(common.Config, "Walk forward tuning: %v", c.StrategySettings.WalkForward)
	log.Infof(common.Config, "Symbols: %v", c.DataSettings.Symbols)
	log.Infof(common.Config, "Dates: %v to %v",
		c.DataSettings.StartDate.Format("2006-01-02"),
		c.DataSettings.EndDate.Format("2006-01-02"))
	log.Infof(common.Config, "Initial cash: %v", c.PortfolioSettings.InitialCash.Round(2))
	log.Infoln(common.Config, "-------------------------------------------------------------")
}
