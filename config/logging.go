package config

import (
	"io"

	"go.viam.com/camerainit/logging"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger returns a stdout logger at the configured level, also writing to the configured log
// file if any. The returned closer closes the log file.
func (c *Config) NewLogger(name string) (logging.Logger, io.Closer, error) {
	level := logging.INFO
	if c.LogLevel != "" {
		var err error
		if level, err = logging.LevelFromString(c.LogLevel); err != nil {
			return nil, nil, err
		}
	}
	logger := logging.NewLogger(name)
	logger.SetLevel(level)

	if c.LogFile == "" {
		return logger, nopCloser{}, nil
	}
	appender, closer := logging.NewFileAppender(c.LogFile)
	logger.AddAppender(appender)
	return logger, closer, nil
}
