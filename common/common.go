package common

import "github.com/wattsup/stonks/log"

// RegisterSubLoggers sets up all subloggers. Calling it twice returns
// log.ErrSubLoggerAlreadyRegistered
func RegisterSubLoggers() error {
	var err error
	if Backtest, err = log.NewSubLogger("BACKTEST"); err != nil {
		return err
	}
	if Portfolio, err = log.NewSubLogger("PORTFOLIO"); err != nil {
		return err
	}
	if Strategy, err = log.NewSubLogger("STRATEGY"); err != nil {
		return err
	}
	if Optimise, err = log.NewSubLogger("OPTIMISE"); err != nil {
		return err
	}
	if Livetrader, err = log.NewSubLogger("LIVETRADER"); err != nil {
		return err
	}
	if Config, err = log.NewSubLogger("CONFIG"); err != nil {
		return err
	}
	if Data, err = log.NewSubLogger("DATA"); err != nil {
		return err
	}
	return nil
}
