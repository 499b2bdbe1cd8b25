package monitor

// CommandError is a rejected command line. Its message is shown to the
// operator as is.
type CommandError struct {
	Message string
}

// Error implements error.
func (e *CommandError) Error() string {
	return e.Message
}

var (
	// ErrUnknownCommand indicates no command matched the line.
	ErrUnknownCommand = &CommandError{"ERROR! Command not found"}
	// ErrNumberFormat indicates a bus value without a 0x/0b/0d marker.
	ErrNumberFormat = &CommandError{"Error invalid number format specifier. Should be 0x, 0b, or 0d."}
	// ErrInvalidParameter indicates a bit command without digits.
	ErrInvalidParameter = &CommandError{"Invalid parameter."}
	// ErrNotOutputPort indicates a bit index outside the output lines.
	ErrNotOutputPort = &CommandError{"Bit number is not a valid output port."}
)
