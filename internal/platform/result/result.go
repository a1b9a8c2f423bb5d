// Package result carries expected, pattern-matchable failures as values
// Infrastructure faults still travel as errors next to the Result
package result

// Reason tags an expected failure; values are stable on the wire
type Reason string

const (
	// NoOrg means the acting user has no organization
	NoOrg Reason = "no-org"

	// NotPartOfOrg means the resource belongs to another organization
	NotPartOfOrg Reason = "not-part-of-org"

	// NoProject means the project public id did not resolve
	NoProject Reason = "no-project"

	// NoRoom means the room public id did not resolve inside the project
	NoRoom Reason = "no-room"

	// NoImage means the image did not resolve
	NoImage Reason = "no-image"

	// NoRoomOrInference means a reassignment target or source was missing
	NoRoomOrInference Reason = "no-room-or-inference"

	// NoInference means the inference id did not resolve
	NoInference Reason = "no-inference"

	// NoTemplate means the template code is not in the catalog
	NoTemplate Reason = "no-template"

	// InvalidInput means a request field failed validation
	InvalidInput Reason = "invalid-input"
)

// Result is either a value or a tagged failure
type Result[T any] struct {
	Value  T
	Reason Reason
	failed bool
}

// OK wraps a successful value
func OK[T any](v T) Result[T] { return Result[T]{Value: v} }

// Fail builds a tagged failure
func Fail[T any](r Reason) Result[T] { return Result[T]{Reason: r, failed: true} }

// Failed reports whether r holds a failure
func (r Result[T]) Failed() bool { return r.failed }

// Recast carries a failure into a Result of another type
// calling it on a success is a programmer error
func Recast[T, U any](r Result[U]) Result[T] {
	if !r.failed {
		panic("result: Recast on a successful result")
	}
	return Fail[T](r.Reason)
}
