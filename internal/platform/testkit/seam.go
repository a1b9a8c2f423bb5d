package testkit

import (
	"sync"
	"testing"
)

// seams guards package-level variables that tests replace
var seams sync.Mutex

// Swap points *target at v until the test ends
// pair it with Serial when parallel tests read the same variable
func Swap[T any](t testing.TB, target *T, v T) {
	t.Helper()
	prev := *target
	*target = v
	t.Cleanup(func() { *target = prev })
}

// Serial holds the seam lock for the rest of the test
func Serial(t testing.TB) {
	t.Helper()
	seams.Lock()
	t.Cleanup(seams.Unlock)
}
