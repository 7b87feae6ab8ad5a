// Package router maps navigation tokens ("view" or "view/id") to exactly one
// active view and keeps the current token so it can be restored later.
package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

type View string

const (
	ViewList     View = "list"
	ViewAdd      View = "add"
	ViewDetail   View = "detail"
	ViewSettings View = "settings"
	ViewEdit     View = "edit"
)

var ErrUnknownView = errors.New("unknown view")

var views = map[View]bool{
	ViewList: true, ViewAdd: true, ViewDetail: true, ViewSettings: true, ViewEdit: true,
}

// Route is a parsed token.
type Route struct {
	View View
	ID   string
}

func (r Route) String() string {
	if r.ID == "" {
		return string(r.View)
	}
	return string(r.View) + "/" + r.ID
}

// needsID reports whether the view cannot render without a record id.
func (v View) needsID() bool {
	return v == ViewDetail || v == ViewEdit
}

// Parse turns a token into a Route. An empty token means the list view.
// Views that need an id fall back to the list view when none is given.
func Parse(token string) (Route, error) {
	token = strings.Trim(strings.TrimSpace(token), "#/")
	if token == "" {
		return Route{View: ViewList}, nil
	}

	name, id, _ := strings.Cut(token, "/")
	v := View(name)
	if !views[v] {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}

	if v.needsID() && id == "" {
		return Route{View: ViewList}, nil
	}
	if !v.needsID() {
		id = ""
	}
	return Route{View: v, ID: id}, nil
}

// Handler renders one view.
type Handler func(ctx context.Context, id string) error

// Router dispatches routes to registered handlers.
type Router struct {
	mu       sync.Mutex
	handlers map[View]Handler
	current  Route
}

func New() *Router {
	return &Router{
		handlers: make(map[View]Handler),
		current:  Route{View: ViewList},
	}
}

// Handle registers h for v, replacing any previous handler.
func (r *Router) Handle(v View, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[v] = h
}

// Current returns the active route.
func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate builds a token from view and id and resolves it.
func (r *Router) Navigate(ctx context.Context, v View, id string) error {
	return r.Resolve(ctx, Route{View: v, ID: id}.String())
}

// Resolve parses token, makes it the current route and runs its handler.
// On a parse error the current route is left unchanged.
func (r *Router) Resolve(ctx context.Context, token string) error {
	route, err := Parse(token)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.current = route
	h := r.handlers[route.View]
	r.mu.Unlock()

	if h == nil {
		return nil
	}
	return h(ctx, route.ID)
}
