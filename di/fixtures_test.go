package di_test

import (
	"bytes"
	"fmt"
	"sync/atomic"

	"github.com/kbukum/scopedi/di"
	"github.com/kbukum/scopedi/logger"
)

var nameSeq atomic.Int64

// uniqueName keeps identifiers of different tests apart in the process-wide table.
func uniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, nameSeq.Add(1))
}

func captureLogger() (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logger.NewWithWriter(&buf, &logger.Config{Level: "debug", Format: logger.FormatJSON}, "di"), &buf
}

// isolated builds a root injector that ignores the default singleton registry.
func isolated(c *di.Collection, opts ...di.Option) *di.Injector {
	log, _ := captureLogger()
	base := []di.Option{di.WithSingletons(di.NewSingletonRegistry()), di.WithLogger(log)}
	return di.New(c, append(base, opts...)...)
}

type A struct{ id int64 }

var aSeq atomic.Int64

func NewA() *A { return &A{id: aSeq.Add(1)} }

type B struct {
	arg string
	a   *A
}

func NewB(arg string, a *A) *B { return &B{arg: arg, a: a} }

// closer records its name into a shared slice when closed.
type closer struct {
	name  string
	order *[]string
	err   error
}

func (c *closer) Close() error {
	*c.order = append(*c.order, c.name)
	return c.err
}

type disposer struct {
	name  string
	order *[]string
}

func (d *disposer) Dispose() {
	*d.order = append(*d.order, d.name)
}

type Greeter interface {
	Hello() string
}

type greeter struct{ name string }

func (g *greeter) Hello() string { return "hello " + g.name }

// greeterProxy exposes Greeter over a lazy handle.
type greeterProxy struct{ l *di.Lazy }

func (p greeterProxy) Hello() string { return p.l.MustValue().(Greeter).Hello() }

func registerLogger(t interface{ Cleanup(func()) }, name string, l *logger.Logger) {
	logger.Register(name, l)
	t.Cleanup(func() { logger.Unregister(name) })
}
