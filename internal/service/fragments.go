package service

import (
	language "github.com/davmik/gqlserve/internal/language"
)

// Fragment is a named, reusable selection set with a type condition. It is
// created during the fragment-collection pass and lives for the request.
type Fragment struct {
	TypeCondition string
	SelectionSet  language.SelectionSet
}

// FragmentMap holds the request's fragment definitions by name.
type FragmentMap map[string]Fragment

// collectFragments gathers every fragment definition in the document. It does
// not recurse into selection sets; fragment references expand lazily at
// selection time. The first definition of a name wins.
func collectFragments(doc *language.QueryDocument) FragmentMap {
	fragments := make(FragmentMap, len(doc.Fragments))
	for _, def := range doc.Fragments {
		if _, ok := fragments[def.Name]; ok {
			continue
		}
		fragments[def.Name] = Fragment{
			TypeCondition: def.TypeCondition,
			SelectionSet:  def.SelectionSet,
		}
	}
	return fragments
}
