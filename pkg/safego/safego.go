// Package safego runs functions with panic isolation.
package safego

import (
	"fmt"
	"runtime/debug"

	"opportunityhub-backend/pkg/logger"

	"go.uber.org/zap"
)

// Run calls fn and converts a panic into an error.
func Run(name string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("recovered panic",
				zap.String("task", name),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
			err = fmt.Errorf("%s: panic: %v", name, r)
		}
	}()
	fn()
	return nil
}

// Go starts fn in a goroutine. A panic is logged instead of crashing the process.
func Go(name string, fn func()) {
	go func() {
		_ = Run(name, fn)
	}()
}
