//go:build !windows

package ansi

// EnableANSI is a no-op outside Windows; those terminals speak ANSI natively.
func EnableANSI() {
}
