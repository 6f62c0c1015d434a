package main

import (
	"errors"

	"pkt.systems/trustdocs"
	"pkt.systems/trustdocs/fixtures"
)

// Exit codes for the trustdocs CLI.
// 0=success, 1=general, 2=usage, 3=output not writable, 4=document could
// not be laid out.
const (
	ExitSuccess = 0
	ExitGeneral = 1
	ExitUsage   = 2
	ExitIO      = 3
	ExitLayout  = 4
)

var errUsage = errors.New("usage error")

// exitCodeFor returns the exit code for a single error. Callers must wrap
// with %w so errors.Is and errors.As see the cause.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, errUsage) || errors.Is(err, fixtures.ErrUnknownFixture) {
		return ExitUsage
	}
	if trustdocs.IsIOError(err) {
		return ExitIO
	}
	if trustdocs.IsLayoutError(err) ||
		errors.Is(err, trustdocs.ErrUnknownStyle) ||
		errors.Is(err, fixtures.ErrInvalidRecord) ||
		errors.Is(err, fixtures.ErrNoBeneficiaries) ||
		errors.Is(err, fixtures.ErrNoSignatories) ||
		errors.Is(err, fixtures.ErrUnevenShare) ||
		errors.Is(err, fixtures.ErrShareMismatch) {
		return ExitLayout
	}
	return ExitGeneral
}

// exitCodeForAll picks one exit code for a run with several failures. An
// unwritable output wins over layout problems since it usually affects every
// document.
func exitCodeForAll(errs []error) int {
	code := ExitSuccess
	for _, err := range errs {
		c := exitCodeFor(err)
		switch {
		case c == ExitIO:
			return ExitIO
		case code == ExitSuccess, code == ExitGeneral && c == ExitLayout:
			code = c
		}
	}
	return code
}
