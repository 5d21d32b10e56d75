package stache

import "strconv"

type ParamKind int

const (
	PathParam ParamKind = iota
	StringParam
	NumberParam
	BoolParam
)

func (k ParamKind) String() string {
	switch k {
	case PathParam:
		return "path"
	case StringParam:
		return "string"
	case NumberParam:
		return "number"
	case BoolParam:
		return "bool"
	}
	return "ParamKind(" + strconv.Itoa(int(k)) + ")"
}

// A Param is a single positional parameter or hash value, as written.
// Value holds a string for paths and strings, an int64 or float64 for
// numbers and a bool for booleans.
type Param struct {
	Kind  ParamKind
	Raw   string
	Value interface{}
}

// Path returns the param's path and whether it is one.
func (p Param) Path() (string, bool) {
	if p.Kind != PathParam {
		return "", false
	}
	return p.Value.(string), true
}

// String returns the param's value as a string: the path for paths and
// the source text for everything else.
func (p Param) String() string {
	if s, ok := p.Value.(string); ok {
		return s
	}
	return p.Raw
}

type Hash map[string]Param

type Node interface {
	Line() int
}

type Program struct {
	Name  string
	Nodes []Node
}

type TextNode struct {
	line int
	Text string
}

func (n *TextNode) Line() int { return n.line }

// MustacheNode is a {{...}} or {{{...}}} expression. It is a helper call
// when its path names a helper or when it carries params or a hash.
type MustacheNode struct {
	line    int
	Path    string
	Params  []Param
	Hash    Hash
	Escaped bool
}

func (n *MustacheNode) Line() int { return n.line }

type BlockNode struct {
	line    int
	Name    string
	Params  []Param
	Hash    Hash
	Program *Program
	Inverse *Program
}

func (n *BlockNode) Line() int { return n.line }
