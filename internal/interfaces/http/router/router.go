// Package router assembles the gin engine and mounts the API under /api/<version>.
package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
	root       []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar mounted under the versioned prefix
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// RegisterRoot adds a RouteRegistrar mounted both at the engine root and
// under the versioned prefix (health checks)
func (r *Router) RegisterRoot(registrars ...RouteRegistrar) *Router {
	r.root = append(r.root, registrars...)
	return r
}

// Prefix returns the versioned API prefix
func (r *Router) Prefix() string {
	return "/api/" + r.apiVersion
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group(r.Prefix())

	for _, registrar := range r.root {
		registrar.RegisterRoutes(&r.engine.RouterGroup)
		registrar.RegisterRoutes(api)
	}
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}
