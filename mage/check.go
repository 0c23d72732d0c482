package mage

import "fmt"

// InvariantError is the panic value of a failed Check: a caller defect such
// as using an unbound proxy or binding twice.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "mage: invariant violated: " + e.Msg
}

// ProtocolMismatchError is the panic value raised when a stub receives a
// method id its interface does not define.
type ProtocolMismatchError struct {
	Interface string
	MethodID  uint32
}

func (e *ProtocolMismatchError) Error() string {
	return fmt.Sprintf("mage: protocol mismatch: %s has no method with id %d", e.Interface, e.MethodID)
}

// Check panics with *InvariantError when cond is false. It is not meant to
// be recovered from outside tests.
func Check(cond bool, format string, args ...any) {
	if cond {
		return
	}
	panic(&InvariantError{Msg: fmt.Sprintf(format, args...)})
}

// ProtocolMismatch aborts dispatch of an unknown method id.
func ProtocolMismatch(iface string, id uint32) {
	panic(&ProtocolMismatchError{Interface: iface, MethodID: id})
}
