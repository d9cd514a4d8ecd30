// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ordmap implements an ordered map that retains the order of items
added to a slice, while also providing fast key-based map lookup of items,
using the Go generics system.

It is used for scene lights and humanoid bone tables, where lookups are by
name but iteration (rendering, listing) must follow insertion order.
*/
package ordmap

// KeyValue represents a key-value pair.
type KeyValue[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is a generic ordered map that combines the order of a slice
// and the fast key lookup of a map. A map stores an index
// into a slice that has the value and key associated with the value.
type Map[K comparable, V any] struct {

	// Order is an ordered list of values and associated keys, in the order added.
	Order []KeyValue[K, V]

	// Map is the key to index mapping.
	Map map[K]int
}

// Init initializes the map if it isn't already.
func (om *Map[K, V]) Init() {
	if om.Map == nil {
		om.Map = make(map[K]int)
	}
}

// Reset resets the map, removing any existing elements.
func (om *Map[K, V]) Reset() {
	om.Map = nil
	om.Order = nil
}

// Add adds a new value for given key.
// If key already exists in map, it replaces the item at that existing index,
// otherwise it is added to the end.
func (om *Map[K, V]) Add(key K, val V) {
	om.Init()
	if idx, has := om.Map[key]; has {
		om.Order[idx] = KeyValue[K, V]{Key: key, Value: val}
	} else {
		om.Map[key] = len(om.Order)
		om.Order = append(om.Order, KeyValue[K, V]{Key: key, Value: val})
	}
}

// ValueByKey returns the value corresponding to the given key,
// with a zero value returned for a missing key. See [Map.ValueByKeyTry]
// for one that returns a bool for missing keys.
func (om *Map[K, V]) ValueByKey(key K) V {
	v, _ := om.ValueByKeyTry(key)
	return v
}

// ValueByKeyTry returns the value corresponding to the given key,
// with false returned for a missing key.
func (om *Map[K, V]) ValueByKeyTry(key K) (V, bool) {
	if om == nil {
		var zv V
		return zv, false
	}
	idx, ok := om.Map[key]
	if ok {
		return om.Order[idx].Value, ok
	}
	var zv V
	return zv, false
}

// Len returns the number of items in the map.
func (om *Map[K, V]) Len() int {
	if om == nil {
		return 0
	}
	return len(om.Order)
}

// Keys returns a slice of the keys in order.
func (om *Map[K, V]) Keys() []K {
	kl := make([]K, om.Len())
	for i, kv := range om.Order {
		kl[i] = kv.Key
	}
	return kl
}
