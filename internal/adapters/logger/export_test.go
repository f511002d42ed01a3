package logger

// Error chain helpers exposed to logger_test.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
