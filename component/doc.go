// Package component defines the lifecycle interface shared by long-lived
// resolver objects and an ordered registry that drives them.
//
// Injectors implement Component: Start resolves their eager keys, Stop
// disposes their own collection. Registering a root injector before its
// children makes StopAll dispose the children first, since the registry
// stops in reverse registration order.
//
// # Interfaces
//
//   - Component: Start/Stop/Health lifecycle
//   - Registry: start in order, stop in reverse, remove a scope early,
//     aggregate health
package component
