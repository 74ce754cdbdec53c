package scanner

import (
	"go/ast"

	"golang.org/x/tools/go/ast/inspector"
)

// NodeContext is passed to a walk callback for every node
type NodeContext struct {
	Node  ast.Node
	Stack []ast.Node // outermost first, Node last
	File  *ast.File
}

// Parent returns the n-th enclosing node, 1 being the direct parent
func (c NodeContext) Parent(n int) ast.Node {
	i := len(c.Stack) - 1 - n
	if i < 0 {
		return nil
	}
	return c.Stack[i]
}

// Walk visits every node of files in order. The callback returns whether
// the walk descends into the node's children.
func Walk(files []*ast.File, visit func(NodeContext) bool) {
	inspector.New(files).WithStack(nil, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}
		file, _ := stack[0].(*ast.File)
		return visit(NodeContext{Node: n, Stack: stack, File: file})
	})
}
