package view

import "sort"

// Selection is an immutable set of customer ids, every change returns a new set
type Selection struct {
	ids map[string]struct{}
}

func NewSelection(ids ...string) Selection {
	s := Selection{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

func (s Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s Selection) Len() int {
	return len(s.ids)
}

func (s Selection) Empty() bool {
	return len(s.ids) == 0
}

// IDs returns selected ids in stable order
func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Toggle flips membership of id
func (s Selection) Toggle(id string) Selection {
	next := s.clone()
	if next.Has(id) {
		delete(next.ids, id)
	} else {
		next.ids[id] = struct{}{}
	}
	return next
}

func (s Selection) clone() Selection {
	next := Selection{ids: make(map[string]struct{}, len(s.ids)+1)}
	for id := range s.ids {
		next.ids[id] = struct{}{}
	}
	return next
}
