package engine

import "reflect"

// ResourceStore holds per-scene state keyed by type
// Subsystems install their private state here from their Init hook
// Accessed only from the scheduling goroutine
type ResourceStore struct {
	resources map[reflect.Type]any
}

// NewResourceStore creates an empty store
func NewResourceStore() *ResourceStore {
	return &ResourceStore{
		resources: make(map[reflect.Type]any),
	}
}

// AddResource registers or replaces the resource of type T
// Pointer types are recommended so holders can mutate in place
func AddResource[T any](rs *ResourceStore, resource T) {
	rs.resources[reflect.TypeFor[T]()] = resource
}

// GetResource returns the resource of type T and whether it exists
func GetResource[T any](rs *ResourceStore) (T, bool) {
	val, ok := rs.resources[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return val.(T), true
}

// MustGetResource returns the resource of type T or panics
// Use for state a registered subsystem guarantees, such as *ActorRegistry
func MustGetResource[T any](rs *ResourceStore) T {
	res, ok := GetResource[T](rs)
	if !ok {
		panic("required resource not found: " + reflect.TypeFor[T]().String())
	}
	return res
}

// RemoveResource deletes the resource of type T, reports whether it existed
func RemoveResource[T any](rs *ResourceStore) bool {
	t := reflect.TypeFor[T]()
	if _, ok := rs.resources[t]; !ok {
		return false
	}
	delete(rs.resources, t)
	return true
}

// Len returns the number of stored resources
func (rs *ResourceStore) Len() int {
	return len(rs.resources)
}
