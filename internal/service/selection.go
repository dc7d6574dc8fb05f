package service

import (
	"context"

	language "github.com/davmik/gqlserve/internal/language"
)

// selectionVisitor walks a selection set and resolves each field or fragment
// unless it is skipped by a directive or type condition. It borrows the
// request's fragments and variables and the current object's type names and
// resolvers; values and errs are the only state it mutates.
type selectionVisitor struct {
	ctx       context.Context
	fragments FragmentMap
	variables Variables
	typeNames TypeNames
	resolvers ResolverMap
	errs      *errorSink
	values    *JSONObject
}

func (v *selectionVisitor) visitSelectionSet(selectionSet language.SelectionSet) {
	for _, selection := range selectionSet {
		switch sel := selection.(type) {
		case *language.Field:
			v.visitField(sel)
		case *language.FragmentSpread:
			v.visitFragmentSpread(sel)
		case *language.InlineFragment:
			v.visitInlineFragment(sel)
		}
	}
}

func (v *selectionVisitor) visitField(field *language.Field) {
	skip, err := v.shouldSkip(field.Directives)
	if err != nil {
		// The skip decision is unknowable; null the field and keep going.
		v.errs.appendError(err)
		v.values.Set(responseKey(field), nil)
		return
	}
	if skip {
		return
	}

	key := responseKey(field)

	arguments := NewJSONObject()
	for _, arg := range field.Arguments {
		arguments.Set(arg.Name, ValueFromAST(arg.Value, v.variables))
	}

	resolver, ok := v.resolvers[field.Name]
	if !ok {
		v.errs.append("Missing resolver: " + field.Name)
		v.values.Set(key, nil)
		return
	}

	result, err := resolver(ResolverParams{
		Context:   v.ctx,
		Arguments: arguments,
		Selection: field.SelectionSet,
		Fragments: v.fragments,
		Variables: v.variables,
		errs:      v.errs,
	})
	if err != nil {
		v.errs.appendError(err)
		v.values.Set(key, nil)
		return
	}
	v.values.Set(key, result)
}

func (v *selectionVisitor) visitFragmentSpread(spread *language.FragmentSpread) {
	skip, err := v.shouldSkip(spread.Directives)
	if err != nil {
		v.errs.appendError(err)
		return
	}
	if skip {
		return
	}

	fragment, ok := v.fragments[spread.Name]
	if !ok {
		v.errs.append("Unknown fragment: " + spread.Name)
		return
	}

	if _, ok := v.typeNames[fragment.TypeCondition]; !ok {
		return
	}
	// Merge the fragment's fields into the current scope; later writes to
	// the same response key overwrite earlier ones.
	v.visitSelectionSet(fragment.SelectionSet)
}

func (v *selectionVisitor) visitInlineFragment(fragment *language.InlineFragment) {
	skip, err := v.shouldSkip(fragment.Directives)
	if err != nil {
		v.errs.appendError(err)
		return
	}
	if skip {
		return
	}

	if fragment.TypeCondition != "" {
		if _, ok := v.typeNames[fragment.TypeCondition]; !ok {
			return
		}
	}
	v.visitSelectionSet(fragment.SelectionSet)
}

// shouldSkip evaluates @skip and @include on a selection. Multiple directives
// compose with OR-of-skips: any directive demanding skip wins. Other
// directives are ignored.
func (v *selectionVisitor) shouldSkip(directives language.DirectiveList) (bool, error) {
	for _, directive := range directives {
		var invert bool
		switch directive.Name {
		case "skip":
			invert = false
		case "include":
			invert = true
		default:
			continue
		}

		arg := directive.Arguments.ForName("if")
		if arg == nil {
			return false, invalidArgument("if", "missing")
		}
		condition, ok := ValueFromAST(arg.Value, v.variables).(bool)
		if !ok {
			return false, invalidArgument("if", "not a Boolean")
		}
		if condition != invert {
			return true, nil
		}
	}
	return false, nil
}

// responseKey is the JSON key a field's result appears under: the alias if
// present, else the field name.
func responseKey(field *language.Field) string {
	if field.Alias != "" {
		return field.Alias
	}
	return field.Name
}
