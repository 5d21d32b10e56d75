package observable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []string
}

func (r *recordingObserver) ArrayWillChange(a *Array, start, removed, added int) {
	r.events = append(r.events, "will", itoa(start), itoa(removed), itoa(added))
}

func (r *recordingObserver) ArrayDidChange(a *Array, start, removed, added int) {
	r.events = append(r.events, "did", itoa(start), itoa(removed), itoa(added))
}

func itoa(i int) string {
	return string(rune('0' + i))
}

func TestArray(t *testing.T) {
	t.Run("Mutations", func(t *testing.T) {
		a := NewArray("a", "b", "c")
		a.Push("d")
		a.InsertAt(0, "z")
		assert.Equal(t, "b", a.RemoveAt(2))
		assert.Equal(t, []interface{}{"z", "a", "c", "d"}, a.Slice())

		a.Replace(1, 2, "x", "y", "w")
		assert.Equal(t, []interface{}{"z", "x", "y", "w", "d"}, a.Slice())

		a.Clear()
		assert.Equal(t, 0, a.Len())
	})

	t.Run("ObserversBracketChanges", func(t *testing.T) {
		a := NewArray("a", "b")
		r := &recordingObserver{}
		a.AddArrayObserver(r)

		a.Replace(1, 1, "x", "y")
		assert.Equal(t, []string{"will", "1", "1", "2", "did", "1", "1", "2"}, r.events)

		r.events = nil
		a.Replace(0, 0)
		assert.Empty(t, r.events, "no-op replace must not notify")

		a.RemoveArrayObserver(r)
		a.Push("z")
		assert.Empty(t, r.events)
		assert.Equal(t, 0, a.ObserverCount())
	})

	t.Run("OutOfRangePanics", func(t *testing.T) {
		a := NewArray("a")
		assert.Panics(t, func() { a.Replace(0, 2) })
		assert.Panics(t, func() { a.InsertAt(3, "x") })
	})
}

func TestObject(t *testing.T) {
	o := NewObject(map[string]interface{}{"name": "Yehuda"})
	calls := 0
	cancel := o.AddObserver("name", func() { calls++ })

	o.Set("name", "Tom")
	o.Set("other", 1)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "Tom", o.Get("name"))

	cancel()
	o.Set("name", "Paul")
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, o.ObserverCount("name"))
	assert.Equal(t, []string{"name", "other"}, o.Keys())
}

type person struct {
	Name    string
	Friends []string
}

func TestGet(t *testing.T) {
	root := NewObject(map[string]interface{}{
		"people": NewArray(
			NewObject(map[string]interface{}{"name": "Yehuda"}),
			map[string]interface{}{"name": "Tom"},
		),
		"lead": &person{Name: "Paul", Friends: []string{"a", "b"}},
	})

	assert.Equal(t, root, Get(root, "this"))
	assert.Equal(t, root, Get(root, ""))
	assert.Equal(t, 2, Get(root, "people.length"))
	assert.Equal(t, "Yehuda", Get(root, "people.0.name"))
	assert.Equal(t, "Tom", Get(root, "this.people.1.name"))
	assert.Equal(t, "Paul", Get(root, "lead.name"), "struct fields match case-insensitively on the first rune")
	assert.Equal(t, 2, Get(root, "lead.Friends.length"))
	assert.Nil(t, Get(root, "missing.deeper"))
	assert.Nil(t, Get(root, "people.7"))
}

func TestSet(t *testing.T) {
	root := NewObject(map[string]interface{}{
		"user": NewObject(nil),
	})
	require.NoError(t, Set(root, "user.name", "Dave"))
	assert.Equal(t, "Dave", Get(root, "user.name"))
	assert.Error(t, Set(root, "this", 1))
	assert.Error(t, Set(root, "user.name.first", "x"))
}

func TestWatch(t *testing.T) {
	inner := NewObject(map[string]interface{}{"items": NewArray(1)})
	root := NewObject(map[string]interface{}{"list": inner})

	calls := 0
	w := Watch(root, "list.items", func() { calls++ })

	inner.Set("items", NewArray(1, 2))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, w.Value().(*Array).Len())

	replacement := NewObject(map[string]interface{}{"items": NewArray()})
	root.Set("list", replacement)
	assert.Equal(t, 2, calls)

	inner.Set("items", NewArray())
	assert.Equal(t, 2, calls, "detached intermediate must not notify")

	replacement.Set("items", NewArray(9))
	assert.Equal(t, 3, calls)

	w.Stop()
	replacement.Set("items", nil)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 0, replacement.ObserverCount("items"))
	assert.Equal(t, 0, root.ObserverCount("list"))
}

func TestFromValue(t *testing.T) {
	v := FromValue(map[interface{}]interface{}{
		"people": []interface{}{
			map[interface{}]interface{}{"name": "Yehuda"},
		},
		"count": 1,
	})
	o, ok := v.(*Object)
	require.True(t, ok)
	a, ok := o.Get("people").(*Array)
	require.True(t, ok)
	assert.Equal(t, "Yehuda", Get(a.At(0), "name"))

	assert.Equal(t, map[string]interface{}{
		"people": []interface{}{map[string]interface{}{"name": "Yehuda"}},
		"count":  1,
	}, Plain(v))
}
