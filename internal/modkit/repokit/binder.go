package repokit

// Binder binds a domain repo to a Queryer, so one repo value serves both
// the pool and any transaction a service opens
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc lets you create a Binder from a function
type BindFunc[T any] func(Queryer) T

// Bind calls the underlying function
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }
