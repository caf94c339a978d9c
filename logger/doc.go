// Package logger wraps logrus with component-scoped entries and optional
// file rotation through lumberjack.
package logger
