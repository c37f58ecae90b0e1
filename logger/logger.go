// Package logger provides a logging interface for use in this library.
package logger

import (
	"log"
	"os"
)

// Interface provides the minimal logging interface the library components
// need. It is implemented by *log.Logger.
type Interface interface {
	Printf(format string, v ...interface{})
	Print(v ...interface{})
	Println(v ...interface{})
}

// DefaultLogger logs output to os.Stderr.
var DefaultLogger = log.New(os.Stderr, "", log.LstdFlags)
