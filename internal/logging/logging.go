package logging

import (
	"strings"

	"go.uber.org/zap"
)

// New builds the development logger for local runs and the production one otherwise.
func New(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func LogSQLQuery(logger *zap.Logger, sql string) {
	logger.Debug("SQL query", zap.String("query", strings.Join(strings.Fields(sql), " ")))
}
