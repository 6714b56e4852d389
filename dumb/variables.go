package dumb

// Variables is the global declaration table shared by every region of a run.
type Variables struct {
	values map[string]int64
	order  []string
}

func newVariables() *Variables {
	return &Variables{values: make(map[string]int64)}
}

// Lookup returns the value bound to name.
func (v *Variables) Lookup(name string) (int64, bool) {
	val, ok := v.values[name]
	return val, ok
}

// Assign updates name in place when declared, otherwise declares it.
func (v *Variables) Assign(name string, val int64) {
	if _, ok := v.values[name]; !ok {
		v.order = append(v.order, name)
	}
	v.values[name] = val
}

// Names returns the declared identifiers in declaration order.
func (v *Variables) Names() []string {
	return append([]string(nil), v.order...)
}

func (v *Variables) Len() int {
	return len(v.order)
}

func (v *Variables) Reset() {
	clear(v.values)
	v.order = v.order[:0]
}
