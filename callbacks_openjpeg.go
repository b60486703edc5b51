//go:build openjpeg && cgo

package jpeg2k

// The message callbacks live in their own file: a file with //export
// directives may only declare in its preamble, and the stream shim needs
// definitions.

// #include <stdlib.h>
import "C"

import (
	"fmt"
	"runtime/cgo"
	"strings"
	"unsafe"

	"go.uber.org/zap"
)

// nativeMessages collects decoder diagnostics for one decode call.
// Warnings drive strict mode; the last error message decorates the
// returned error.
type nativeMessages struct {
	warnings []string
	lastErr  string
}

//export goJpeg2kInfo
func goJpeg2kInfo(msg *C.char, ctx unsafe.Pointer) {
	if msg == nil {
		return
	}
	Logger().Debug("openjpeg", zap.String("msg", trimMessage(msg)))
}

//export goJpeg2kWarn
func goJpeg2kWarn(msg *C.char, ctx unsafe.Pointer) {
	if msg == nil || ctx == nil {
		return
	}
	text := trimMessage(msg)
	Logger().Warn("openjpeg", zap.String("msg", text))
	handle := *(*cgo.Handle)(ctx)
	if state, ok := handle.Value().(*nativeMessages); ok {
		state.warnings = append(state.warnings, text)
	}
}

//export goJpeg2kError
func goJpeg2kError(msg *C.char, ctx unsafe.Pointer) {
	if msg == nil || ctx == nil {
		return
	}
	handle := *(*cgo.Handle)(ctx)
	if state, ok := handle.Value().(*nativeMessages); ok {
		state.lastErr = trimMessage(msg)
	}
}

func trimMessage(msg *C.char) string {
	return strings.TrimSpace(C.GoString(msg))
}

func (s *nativeMessages) wrap(sentinel error) error {
	if s.lastErr != "" {
		return fmt.Errorf("%w: %s", sentinel, s.lastErr)
	}
	return sentinel
}
