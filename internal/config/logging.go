package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// InitLogging sets the global logrus level and formatter.
func InitLogging(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("config: invalid LEDGER_LOG_LEVEL: %w", err)
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}
