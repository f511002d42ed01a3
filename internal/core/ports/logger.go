package ports

// Logger reports progress and problems to the user.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Info reports normal progress, such as a finished run.
	Info(msg string)
	// Warn reports a problem that does not stop the current run.
	Warn(msg string)
	// Error reports err together with its cause chain.
	Error(err error)
}
