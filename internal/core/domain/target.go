package domain

// Target identifies the remote device: a serial port or "auto".
type Target string

// TargetAuto lets the device tool pick the first available board.
const TargetAuto Target = "auto"

// String returns the string representation of the Target.
func (t Target) String() string {
	if t == "" {
		return string(TargetAuto)
	}
	return string(t)
}

// IsAuto reports whether the target is auto-detected.
func (t Target) IsAuto() bool {
	return t == "" || t == TargetAuto
}

// Remote addresses one device through the device tool.
type Remote struct {
	Tool   string
	Target Target
}

// String returns the target, which identifies the remote in messages.
func (r Remote) String() string {
	return r.Target.String()
}
