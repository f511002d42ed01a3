package domain

// Command is a single invocation of an external tool.
type Command struct {
	// Name is the executable, resolved against PATH when it has no separator.
	Name string
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds variables layered over the process environment.
	Env map[string]string
}
