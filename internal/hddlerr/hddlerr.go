// Package hddlerr wraps errors raised by the CLI and shell front ends with
// both a technical message (for logs) and an operator-facing one (for the
// terminal), mirroring the teacher's tqerrors package.
package hddlerr

import "fmt"

// operatorError is an error encountered while running a front-end command.
// It carries a message to show the operator as well as a more technical
// "error message" style message.
type operatorError struct {
	msg      string
	operator string
	wrap     error
}

func (e *operatorError) Error() string {
	return e.msg
}

// OperatorMessage shows the message that should be displayed to the operator
// to describe the error.
func (e *operatorError) OperatorMessage() string {
	return e.operator
}

// Unwrap gives the error that the operatorError wraps, if it wraps one.
func (e *operatorError) Unwrap() error {
	return e.wrap
}

// Operator returns a new error that has both the message to show the
// operator and the technical description of the error.
func Operator(operator, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got operatorError(%q)", operator)
	}
	return &operatorError{
		msg:      technical,
		operator: operator,
	}
}

// Operatorf returns a new error that has a message to show to the operator
// and an automatically generated Error() description. The arguments given
// are the format string and the arguments to the format string.
func Operatorf(operatorFormat string, a ...interface{}) error {
	return Operator(fmt.Sprintf(operatorFormat, a...), "")
}

// WrapOperator returns a new error that has both the message to show the
// operator and the technical description of the error, and that wraps the
// given error.
func WrapOperator(e error, operator, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got operatorError(%q)", operator)
	}
	return &operatorError{
		msg:      technical,
		operator: operator,
		wrap:     e,
	}
}

// WrapOperatorf returns a new error that has both the message to show the
// operator and an automatically generated Error() description, and that
// wraps the given error. The arguments given are the error to wrap, then the
// format followed by its arguments.
func WrapOperatorf(e error, operatorFormat string, a ...interface{}) error {
	return WrapOperator(e, fmt.Sprintf(operatorFormat, a...), "")
}

// Message gets the message to display to the operator for the given error.
// If it is one of the types defined in hddlerr, the special operator message
// is returned (if it exists). Otherwise, err.Error() is returned.
func Message(err error) string {
	if opErr, ok := err.(*operatorError); ok {
		return opErr.OperatorMessage()
	}
	return err.Error()
}
