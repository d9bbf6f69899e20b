package sim

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// A Resettable object can be returned to its power-on state. Reset is
// sampled synchronously: a harness that wants to assert reset in a cycle
// must apply it before any other intent for that cycle.
type Resettable interface {
	Reset()
}

// A Component is an element that is being simulated. It handles its own
// events and can be instrumented with hooks.
type Component interface {
	Named
	Handler
	Hookable
}

// ComponentBase provides some functions that other components can use.
type ComponentBase struct {
	HookableBase
	name string
}

// NewComponentBase creates a new ComponentBase
func NewComponentBase(name string) *ComponentBase {
	c := new(ComponentBase)
	c.name = name
	return c
}

// Name returns the name of the component
func (c *ComponentBase) Name() string {
	return c.name
}
