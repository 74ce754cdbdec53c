// Package grouper partitions candidates by the type that encloses them.
package grouper

import "github.com/qian-o/CodeGenerator/internal/models"

// Group is the ordered set of items belonging to one type
type Group[T any] struct {
	Type  models.TypeDescriptor
	Items []T
}

// By partitions items by key. Groups appear in the order their type is
// first encountered and items keep their input order within a group.
func By[T any](items []T, key func(T) models.TypeDescriptor) []Group[T] {
	index := make(map[models.TypeDescriptor]int)
	var groups []Group[T]

	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[T]{Type: k})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// Fields groups field candidates by enclosing type
func Fields(fields []models.FieldCandidate) []Group[models.FieldCandidate] {
	return By(fields, func(f models.FieldCandidate) models.TypeDescriptor { return f.Enclosing })
}

// Methods groups method candidates by enclosing type
func Methods(methods []models.MethodCandidate) []Group[models.MethodCandidate] {
	return By(methods, func(m models.MethodCandidate) models.TypeDescriptor { return m.Enclosing })
}
