package dispatch

import (
	"context"
	"fmt"

	"loanserve-backend/pkg/apperr"
)

// Request is any value routable through the dispatcher. RequestName is an
// explicit type tag (e.g. "loan.disburse"); no reflection is involved in
// routing.
type Request interface {
	RequestName() string
}

// HandlerFunc is the untyped form stored in the registry.
type HandlerFunc func(ctx context.Context, req Request) (any, error)

// handlerCapability namespaces handler entries inside the shared registry.
func handlerCapability(name string) string { return "handler:" + name }

// Dispatcher routes a request value to the single handler registered for its
// request name. It holds no mutable state of its own.
type Dispatcher struct {
	registry *Registry
}

func NewDispatcher(r *Registry) *Dispatcher { return &Dispatcher{registry: r} }

// Send resolves and invokes the handler for req. A missing handler is a
// routing-level condition (HandlerNotFound), distinct from registry
// misconfiguration elsewhere. Handler errors propagate verbatim.
func (d *Dispatcher) Send(ctx context.Context, req Request) (any, error) {
	name := req.RequestName()
	inst, err := d.registry.Resolve(handlerCapability(name))
	if err != nil {
		return nil, apperr.HandlerNotFound(name)
	}
	h, ok := inst.(HandlerFunc)
	if !ok {
		return nil, apperr.Configuration(handlerCapability(name))
	}
	return h(ctx, req)
}

// Register wraps a typed handler into the untyped registry entry. The zero
// value of Req supplies the routing key; the wrapper re-asserts the concrete
// type at invoke time.
func Register[Req Request, Res any](r *Registry, fn func(ctx context.Context, req Req) (Res, error)) {
	var zero Req
	name := zero.RequestName()
	wrapped := HandlerFunc(func(ctx context.Context, req Request) (any, error) {
		typed, ok := req.(Req)
		if !ok {
			return nil, apperr.Validation(fmt.Sprintf("request %q carries unexpected type %T", name, req))
		}
		return fn(ctx, typed)
	})
	r.RegisterSingleton(handlerCapability(name), wrapped)
}

// Send is the typed convenience caller over Dispatcher.Send.
func Send[Res any](ctx context.Context, d *Dispatcher, req Request) (Res, error) {
	var zero Res
	out, err := d.Send(ctx, req)
	if err != nil {
		return zero, err
	}
	res, ok := out.(Res)
	if !ok {
		return zero, apperr.Validation(fmt.Sprintf("request %q produced unexpected result type %T", req.RequestName(), out))
	}
	return res, nil
}
