package document

// Value is either a scalar or an ordered list of strings. A key that recurs
// under the same context becomes a list in document order.
type Value struct {
	items []string
	list  bool
}

// Scalar returns a single-valued Value.
func Scalar(s string) Value {
	return Value{items: []string{s}}
}

// List returns a multi-valued Value.
func List(items ...string) Value {
	return Value{items: append([]string(nil), items...), list: true}
}

// IsList reports whether the value holds more than one occurrence.
func (v Value) IsList() bool { return v.list }

// First returns the scalar, or the first list element.
func (v Value) First() (string, bool) {
	if len(v.items) == 0 {
		return "", false
	}
	return v.items[0], true
}

// Items returns every occurrence in document order.
func (v Value) Items() []string {
	return append([]string(nil), v.items...)
}

// Record is a flat, insertion-ordered map from derived key to Value.
type Record struct {
	keys   []string
	values map[string]Value
}

// NewRecord returns an empty Record.
func NewRecord() *Record {
	return &Record{values: make(map[string]Value)}
}

// Len returns the number of distinct keys.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Keys returns the keys in first-insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Set stores a scalar, replacing any previous value.
func (r *Record) Set(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = Scalar(value)
}

// SetOnce stores a scalar only if key is absent. It reports whether it stored.
func (r *Record) SetOnce(key, value string) bool {
	if _, ok := r.values[key]; ok {
		return false
	}
	r.keys = append(r.keys, key)
	r.values[key] = Scalar(value)
	return true
}

// InsertOrAppend stores value as a scalar on first sight and promotes the
// entry to a list on every later occurrence.
func (r *Record) InsertOrAppend(key, value string) {
	cur, ok := r.values[key]
	if !ok {
		r.keys = append(r.keys, key)
		r.values[key] = Scalar(value)
		return
	}
	cur.items = append(cur.items, value)
	cur.list = true
	r.values[key] = cur
}

// Strings returns every occurrence stored under key (nil when absent).
func (r *Record) Strings(key string) []string {
	v, ok := r.Get(key)
	if !ok {
		return nil
	}
	return v.Items()
}
