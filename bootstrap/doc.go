// Package bootstrap hosts a root injector for a process.
//
// An App owns the root di.Injector, a component.Registry that starts and
// stops injectors in order, lifecycle hooks, and the idle loop that drains
// deferred lazy constructions.
//
//	cfg, _ := di.LoadConfig("my-service")
//	app, err := bootstrap.NewApp("my-service", cfg, collection)
//	app.OnReady(func(ctx context.Context) error { ... })
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package bootstrap
