// Package logging configures the process wide phuslu logger.
package logging

import (
	"io"
	"os"

	"github.com/phuslu/log"
)

// Setup installs the default logger at the given level. Output is colored
// console text on a terminal and JSON lines otherwise.
func Setup(level string) {
	SetupWriter(level, os.Stderr)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(level string, out io.Writer) {
	var writer log.Writer = &log.IOWriter{Writer: out}
	if f, ok := out.(*os.File); ok && log.IsTerminal(f.Fd()) {
		writer = &log.ConsoleWriter{Writer: out, ColorOutput: true}
	}

	log.DefaultLogger = log.Logger{
		Level:      log.ParseLevel(level),
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Writer:     writer,
	}
}
