package stache

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/aymerick/raymond/ast"
	"github.com/aymerick/raymond/parser"
)

var (
	pathRe        = regexp.MustCompile(`^[A-Za-z_$@][A-Za-z0-9_$@\-]*(\.[A-Za-z0-9_$@\-]+)*$`)
	errorPrefixRe = regexp.MustCompile(`^(?:Parse|Lexer) error on line (\d+):?\s*`)
)

type ParseError struct {
	Name string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("stache: %s:%d: %s", e.Name, e.Line, e.Msg)
}

// Parse parses src into a Program. name is used in error messages only.
func Parse(name, src string) (*Program, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, wrapError(name, err)
	}
	c := &converter{name: name}
	return c.program(tree)
}

// Must is a helper that wraps a call to Parse and panics if the error is
// non-nil. It is intended for templates compiled into a program.
func Must(prog *Program, err error) *Program {
	if err != nil {
		panic(err)
	}
	return prog
}

// wrapError turns a raymond error into a ParseError, lifting the line
// number out of its message.
func wrapError(name string, err error) *ParseError {
	pe := &ParseError{Name: name, Msg: err.Error()}
	if m := errorPrefixRe.FindStringSubmatchIndex(pe.Msg); m != nil {
		pe.Line, _ = strconv.Atoi(pe.Msg[m[2]:m[3]])
		pe.Msg = pe.Msg[m[1]:]
	}
	return pe
}

// converter narrows a raymond tree to the subset views render: text,
// mustaches and blocks whose parameters are paths or literals.
type converter struct {
	name string
}

func (c *converter) errorf(n ast.Node, format string, args ...interface{}) error {
	return &ParseError{Name: c.name, Line: n.Location().Line, Msg: fmt.Sprintf(format, args...)}
}

func (c *converter) program(p *ast.Program) (*Program, error) {
	prog := &Program{Name: c.name}
	if p == nil {
		return prog, nil
	}
	if len(p.BlockParams) > 0 {
		return nil, c.errorf(p, "block parameters are not supported, use `each item in list`")
	}
	for _, stmt := range p.Body {
		n, err := c.statement(stmt)
		if err != nil {
			return nil, err
		}
		if n != nil {
			prog.Nodes = append(prog.Nodes, n)
		}
	}
	return prog, nil
}

func (c *converter) statement(stmt ast.Node) (Node, error) {
	line := stmt.Location().Line
	switch s := stmt.(type) {
	case *ast.ContentStatement:
		if s.Value == "" {
			return nil, nil
		}
		return &TextNode{line: line, Text: s.Value}, nil

	case *ast.CommentStatement:
		return nil, nil

	case *ast.MustacheStatement:
		path, params, hash, err := c.expression(s.Expression)
		if err != nil {
			return nil, err
		}
		return &MustacheNode{
			line:    line,
			Path:    path,
			Params:  params,
			Hash:    hash,
			Escaped: !s.Unescaped,
		}, nil

	case *ast.BlockStatement:
		name, params, hash, err := c.expression(s.Expression)
		if err != nil {
			return nil, err
		}
		body, err := c.program(s.Program)
		if err != nil {
			return nil, err
		}
		var inverse *Program
		if s.Inverse != nil {
			if inverse, err = c.program(s.Inverse); err != nil {
				return nil, err
			}
		}
		return &BlockNode{
			line:    line,
			Name:    name,
			Params:  params,
			Hash:    hash,
			Program: body,
			Inverse: inverse,
		}, nil

	case *ast.PartialStatement:
		return nil, c.errorf(stmt, "partials are not supported")
	}
	return nil, c.errorf(stmt, "unexpected %s", stmt)
}

// expression splits an expression into its leading path, positional
// params and hash.
func (c *converter) expression(e *ast.Expression) (string, []Param, Hash, error) {
	head, err := c.param(e.Path)
	if err != nil {
		return "", nil, nil, err
	}
	name, ok := head.Path()
	if !ok {
		return "", nil, nil, c.errorf(e, "expected a path or helper name, found %s %s", head.Kind, head.Raw)
	}

	var params []Param
	for _, n := range e.Params {
		p, err := c.param(n)
		if err != nil {
			return "", nil, nil, err
		}
		params = append(params, p)
	}

	var hash Hash
	if e.Hash != nil {
		hash = make(Hash, len(e.Hash.Pairs))
		for _, pair := range e.Hash.Pairs {
			v, err := c.param(pair.Val)
			if err != nil {
				return "", nil, nil, err
			}
			hash[pair.Key] = v
		}
	}
	return name, params, hash, nil
}

func (c *converter) param(n ast.Node) (Param, error) {
	switch v := n.(type) {
	case *ast.PathExpression:
		raw := v.Original
		if v.Data && (raw == "" || raw[0] != '@') {
			raw = "@" + raw
		}
		if v.Depth > 0 || !pathRe.MatchString(raw) {
			return Param{}, c.errorf(n, "malformed path %s", raw)
		}
		return Param{Kind: PathParam, Raw: raw, Value: raw}, nil

	case *ast.StringLiteral:
		return Param{Kind: StringParam, Raw: strconv.Quote(v.Value), Value: v.Value}, nil

	case *ast.BooleanLiteral:
		return Param{Kind: BoolParam, Raw: strconv.FormatBool(v.Value), Value: v.Value}, nil

	case *ast.NumberLiteral:
		raw := strconv.FormatFloat(v.Value, 'f', -1, 64)
		if v.Value == math.Trunc(v.Value) && math.Abs(v.Value) < math.MaxInt64 {
			return Param{Kind: NumberParam, Raw: raw, Value: int64(v.Value)}, nil
		}
		return Param{Kind: NumberParam, Raw: raw, Value: v.Value}, nil

	case *ast.SubExpression:
		return Param{}, c.errorf(n, "subexpressions are not supported")
	}
	return Param{}, c.errorf(n, "unexpected %s", n)
}
