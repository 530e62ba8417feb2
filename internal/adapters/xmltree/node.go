// Package xmltree turns an XML document into a generic tree of scalars, objects and lists.
package xmltree

import "strconv"

// TextKey holds the character data of an element that also has attributes or children.
const TextKey = "#text"

type Kind int

const (
	KindScalar Kind = iota
	KindObject
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindObject:
		return "object"
	case KindList:
		return "list"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Node is one of Scalar, *Object or List.
type Node interface {
	Kind() Kind
	node()
}

type Scalar string

func (Scalar) Kind() Kind { return KindScalar }
func (Scalar) node()      {}

// List holds sibling elements that share a name, in document order.
type List []Node

func (List) Kind() Kind { return KindList }
func (List) node()      {}

// Object is an element with attributes or child elements. Keys keep document order.
type Object struct {
	keys   []string
	fields map[string]Node
}

func NewObject() *Object {
	return &Object{fields: make(map[string]Node)}
}

func (*Object) Kind() Kind { return KindObject }
func (*Object) node()      {}

func (o *Object) Get(key string) (Node, bool) {
	n, ok := o.fields[key]
	return n, ok
}

func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

func (o *Object) Len() int { return len(o.keys) }

// Add stores n under key. A key seen before turns into a List of all its values.
func (o *Object) Add(key string, n Node) {
	existing, ok := o.fields[key]
	if !ok {
		o.keys = append(o.keys, key)
		o.fields[key] = n
		return
	}
	if l, isList := existing.(List); isList {
		o.fields[key] = append(l, n)
		return
	}
	o.fields[key] = List{existing, n}
}
