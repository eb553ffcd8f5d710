// Package logger re-exports emosound/pkg/logger for internal packages.
package logger

import (
	pkglogger "emosound/pkg/logger"
)

// Re-export types from pkg/logger
type (
	Logger = pkglogger.Logger
	Config = pkglogger.Config
	Format = pkglogger.Format
)

// Re-export constants from pkg/logger
const (
	DefaultTraceIDKey = pkglogger.DefaultTraceIDKey
	FormatJSON        = pkglogger.FormatJSON
	FormatText        = pkglogger.FormatText
)

// Re-export functions from pkg/logger
var (
	New                = pkglogger.New
	NewWithConfig      = pkglogger.NewWithConfig
	ContextWithTraceID = pkglogger.ContextWithTraceID
	TraceIDFromContext = pkglogger.TraceIDFromContext
)
