package observable

import "fmt"

// ArrayObserver receives notifications around every mutation of an Array.
// start is the index of the first affected element; removed and added
// count the elements leaving and entering at start.
type ArrayObserver interface {
	ArrayWillChange(a *Array, start, removed, added int)
	ArrayDidChange(a *Array, start, removed, added int)
}

type Array struct {
	items     []interface{}
	observers []ArrayObserver
}

func NewArray(items ...interface{}) *Array {
	return &Array{items: append([]interface{}(nil), items...)}
}

func (a *Array) Len() int {
	return len(a.items)
}

func (a *Array) At(i int) interface{} {
	return a.items[i]
}

// Slice returns a copy of the array's current elements.
func (a *Array) Slice() []interface{} {
	return append([]interface{}(nil), a.items...)
}

// Get exposes `length` to path lookups.
func (a *Array) Get(key string) interface{} {
	if key == "length" {
		return len(a.items)
	}
	return nil
}

func (a *Array) Push(items ...interface{}) {
	a.Replace(len(a.items), 0, items...)
}

func (a *Array) InsertAt(i int, items ...interface{}) {
	a.Replace(i, 0, items...)
}

func (a *Array) RemoveAt(i int) interface{} {
	v := a.items[i]
	a.Replace(i, 1)
	return v
}

func (a *Array) Clear() {
	a.Replace(0, len(a.items))
}

// Replace removes removeCount elements at start and inserts items in
// their place, bracketing the change with observer notifications.
func (a *Array) Replace(start, removeCount int, items ...interface{}) {
	if start < 0 || start > len(a.items) || removeCount < 0 || start+removeCount > len(a.items) {
		panic(fmt.Sprintf("observable: Replace(%d, %d) out of range for length %d", start, removeCount, len(a.items)))
	}
	if removeCount == 0 && len(items) == 0 {
		return
	}

	obs := append([]ArrayObserver(nil), a.observers...)
	for _, o := range obs {
		o.ArrayWillChange(a, start, removeCount, len(items))
	}

	tail := append([]interface{}(nil), a.items[start+removeCount:]...)
	a.items = append(append(a.items[:start], items...), tail...)

	for _, o := range obs {
		o.ArrayDidChange(a, start, removeCount, len(items))
	}
}

func (a *Array) AddArrayObserver(o ArrayObserver) {
	a.observers = append(a.observers, o)
}

func (a *Array) RemoveArrayObserver(o ArrayObserver) {
	for i, e := range a.observers {
		if e == o {
			a.observers = append(a.observers[:i:i], a.observers[i+1:]...)
			return
		}
	}
}

func (a *Array) ObserverCount() int {
	return len(a.observers)
}
