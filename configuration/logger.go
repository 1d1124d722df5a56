package configuration

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fulldump/handlealloc/utils"
)

var logLevels = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// NewLogger builds a production zap logger for c.LogLevel.
func (c *Configuration) NewLogger() (*zap.Logger, error) {

	level, exists := logLevels[strings.ToLower(c.LogLevel)]
	if !exists {
		return nil, fmt.Errorf("bad log level '%s', must be [%s]", c.LogLevel, strings.Join(utils.GetKeys(logLevels), "|"))
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)

	return config.Build()
}
