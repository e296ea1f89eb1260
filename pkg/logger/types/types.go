package types

import "go.uber.org/zap"

// Logger represents a named logger
type Logger struct {
	*zap.SugaredLogger
	Name string
}
