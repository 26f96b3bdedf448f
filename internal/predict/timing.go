package predict

import (
	"time"

	"go.uber.org/zap"
)

// Track starts a timer for op and returns the function that stops it.
// Call the result with defer so the record is written on every return path.
func Track(log *zap.Logger, op string, fields ...zap.Field) func() {
	start := time.Now()
	return func() {
		log.Debug("Finished "+op, append(fields, zap.Duration("elapsed", time.Since(start)))...)
	}
}
