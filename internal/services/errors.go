package services

import "errors"

var (
	// ErrInvalidInput marks caller mistakes; handlers map it to 400.
	ErrInvalidInput = errors.New("invalid input")

	ErrRunNotFound = errors.New("run not found")
	ErrRunRunning  = errors.New("run is running")
	ErrRunFinished = errors.New("run reached its generation limit")
	ErrTooManyRuns = errors.New("too many runs")
	ErrShutdown    = errors.New("run manager is shut down")

	ErrGeocoderUnavailable = errors.New("geocoder is not configured")
)
