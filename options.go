package fsm

import "go.uber.org/zap"

// WithLogger sets the logger used to record state changes and history moves.
// Entries are written at debug level. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(f *FSM) {
		if logger != nil {
			f.logger = logger
		}
	}
}
