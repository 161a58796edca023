// Package types holds small generic containers shared across packages.
package types

// DefaultMap is a map whose Get materializes a default value for missing keys.
// It is not safe for concurrent use.
type DefaultMap[K comparable, V any] struct {
	data        map[K]V
	defaultFunc func() V
}

// NewDefaultMap creates an empty DefaultMap that fills gaps with defaultFunc.
func NewDefaultMap[K comparable, V any](defaultFunc func() V) DefaultMap[K, V] {
	return DefaultMap[K, V]{
		data:        make(map[K]V),
		defaultFunc: defaultFunc,
	}
}

// Get returns the value for key, storing defaultFunc() first if key is absent.
func (d *DefaultMap[K, V]) Get(key K) V {
	val, ok := d.data[key]
	if ok {
		return val
	}

	val = d.defaultFunc()
	d.data[key] = val
	return val
}

// Set assigns val to key.
func (d *DefaultMap[K, V]) Set(key K, val V) {
	d.data[key] = val
}

// Delete removes key.
func (d *DefaultMap[K, V]) Delete(key K) {
	delete(d.data, key)
}

// ToMap exposes the underlying map.
func (d *DefaultMap[K, V]) ToMap() map[K]V {
	return d.data
}
