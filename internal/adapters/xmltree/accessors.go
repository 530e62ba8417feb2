package xmltree

import (
	"fmt"
	"strings"

	"cbrrates/internal/domain"
)

// Field returns the value stored under name in an object node.
func Field(n Node, name string) (Node, error) {
	obj, err := AsObject(n)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", name, err)
	}
	v, ok := obj.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrMissingField, name)
	}
	return v, nil
}

// Path walks nested objects, e.g. Path(doc, "Valute", "CharCode").
func Path(n Node, names ...string) (Node, error) {
	cur := n
	for i, name := range names {
		next, err := Field(cur, name)
		if err != nil {
			return nil, fmt.Errorf("path %s: %w", strings.Join(names[:i+1], "."), err)
		}
		cur = next
	}
	return cur, nil
}

// AsString returns a scalar value, or the text of an object that carries one.
func AsString(n Node) (string, error) {
	switch v := n.(type) {
	case Scalar:
		return string(v), nil
	case *Object:
		if text, ok := v.Get(TextKey); ok {
			if s, isScalar := text.(Scalar); isScalar {
				return string(s), nil
			}
		}
	}
	return "", mismatch(KindScalar, n)
}

func AsObject(n Node) (*Object, error) {
	if obj, ok := n.(*Object); ok && obj != nil {
		return obj, nil
	}
	return nil, mismatch(KindObject, n)
}

func AsList(n Node) (List, error) {
	if l, ok := n.(List); ok {
		return l, nil
	}
	return nil, mismatch(KindList, n)
}

// Items treats a lone element as a one-element list, since a single
// repeated element is not distinguishable from a plain child.
func Items(n Node) []Node {
	switch v := n.(type) {
	case nil:
		return nil
	case List:
		return v
	default:
		return []Node{v}
	}
}

func mismatch(want Kind, got Node) error {
	if got == nil {
		return fmt.Errorf("%w: want %s, got nothing", domain.ErrTypeMismatch, want)
	}
	return fmt.Errorf("%w: want %s, got %s", domain.ErrTypeMismatch, want, got.Kind())
}
