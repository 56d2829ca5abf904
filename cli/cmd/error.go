package cmd

import "github.com/ardnew/lambdex/lang"

var (
	ErrOpenSource     = lang.NewError("open source")
	ErrInvalidBinding = lang.NewError("invalid binding")
	ErrReadBindings   = lang.NewError("read bindings file")
	ErrNotCallable    = lang.NewError("arguments given but result is not a lambda")
	ErrWriteOutput    = lang.NewError("write output")
	ErrWriteConfig    = lang.NewError("write configuration file")
	ErrFileExists     = lang.NewError("file exists (use --force to overwrite)")
)
