// Package di provides a hierarchical dependency injection resolver.
//
// Bindings live in a Collection owned by an Injector. Injectors form a tree:
// a child resolves keys it does not hold through its parent, and caches
// constructed instances in the collection that owns the binding.
//
// # Keys
//
// A key is either a *Class (constructible type) or a named *Identifier:
//
//	var LogKey = di.CreateIdentifier("log")
//
//	var StoreClass = di.NewClass(NewStore,
//	    di.WithName("Store"),
//	    di.Need(0, LogKey),
//	)
//
// # Resolution
//
//	inj := di.New(di.NewCollection(
//	    di.Provide(StoreClass),
//	    di.Bind(LogKey, di.UseValue(log)),
//	))
//	store := di.MustResolve[*Store](inj, StoreClass)
//
// Lazy class bindings return a *Lazy handle (or a proxy built from it) and
// construct on first use or when the host drains the idle queue with
// RunPending.
package di
