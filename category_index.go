package main

// every distinct category seen during a run, in the order first seen.
type CategoryIndex struct {
	idx  map[string]bool
	list []string
}

func NewCategoryIndex() *CategoryIndex {
	return &CategoryIndex{idx: map[string]bool{}}
}

// adds `tag` unless it has already been recorded.
func (ci *CategoryIndex) Record(tag string) {
	if ci.idx[tag] {
		return
	}
	ci.idx[tag] = true
	ci.list = append(ci.list, tag)
}

// returns a copy of the recorded categories.
func (ci *CategoryIndex) Snapshot() []string {
	return append([]string{}, ci.list...)
}
