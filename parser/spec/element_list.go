package spec

// ElementList is an ordered run of elements, usually in document or
// traversal order.
type ElementList []*Element

// Contains returns the index of e in the list, or -1.
func (l ElementList) Contains(e *Element) int {
	for i := range l {
		if l[i] == e {
			return i
		}
	}
	return -1
}

// Names returns the raw tag tokens of the list in order.
func (l ElementList) Names() []string {
	out := make([]string, 0, len(l))
	for _, e := range l {
		out = append(out, e.Name)
	}
	return out
}

// TagNames returns the bare tag names of the list in order.
func (l ElementList) TagNames() []string {
	out := make([]string, 0, len(l))
	for _, e := range l {
		out = append(out, e.TagName)
	}
	return out
}

// Unique drops repeated elements, keeping the first occurrence of each.
func (l ElementList) Unique() ElementList {
	seen := make(map[*Element]struct{}, len(l))
	out := make(ElementList, 0, len(l))
	for _, e := range l {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
