package logger

import "sync"

// named holds loggers overridden per component. Packages fetch their logger
// with Get at call time so tests can swap one in with Register.
var named sync.Map // map[string]*Logger

// Register installs l as the logger returned by Get(name).
func Register(name string, l *Logger) {
	named.Store(name, l)
}

// Unregister drops the override for name.
func Unregister(name string) {
	named.Delete(name)
}

// Get returns the logger registered under name, or the global logger
// tagged with name as its component.
func Get(name string) *Logger {
	if l, ok := named.Load(name); ok {
		return l.(*Logger)
	}
	return GetGlobalLogger().WithComponent(name)
}
