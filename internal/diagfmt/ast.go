package diagfmt

import (
	"fmt"
	"io"

	"playground/internal/ast"
	"playground/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatAST печатает дерево файла в виде
//
//	File (span: 1:1-1:6)
//	└─ Tail: Literal Int 42 (span: 1:1-1:3)
func FormatAST(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	file := builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file %d not found", fileID)
	}
	root := &treeNode{label: fmt.Sprintf("File (span: %s)", formatSpan(file.Span, fs))}
	if body, ok := builder.Exprs.Block(file.Body); ok {
		root.children = blockChildren(builder, body, fs)
	}
	if _, err := fmt.Fprintln(w, root.label); err != nil {
		return err
	}
	return writeChildren(w, root.children, "")
}

func writeChildren(w io.Writer, nodes []*treeNode, prefix string) error {
	for i, n := range nodes {
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, n.label); err != nil {
			return err
		}
		if err := writeChildren(w, n.children, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

func blockChildren(b *ast.Builder, block *ast.ExprBlockData, fs *source.FileSet) []*treeNode {
	out := make([]*treeNode, 0, len(block.Stmts)+1)
	for _, id := range block.Stmts {
		out = append(out, stmtNode(b, id, fs))
	}
	if block.Tail.IsValid() {
		out = append(out, role("Tail", exprNode(b, block.Tail, fs)))
	}
	return out
}

func role(name string, n *treeNode) *treeNode {
	n.label = name + ": " + n.label
	return n
}

func stmtNode(b *ast.Builder, id ast.StmtID, fs *source.FileSet) *treeNode {
	st := b.Stmts.Get(id)
	if st == nil {
		return &treeNode{label: fmt.Sprintf("Stmt[%d]: <nil>", id)}
	}
	node := &treeNode{label: fmt.Sprintf("%s (span: %s)", st.Kind, formatSpan(st.Span, fs))}
	switch st.Kind {
	case ast.StmtLet:
		let := b.Stmts.Let(id)
		node.label = fmt.Sprintf("Let %s (span: %s)", b.Name(let.Name), formatSpan(st.Span, fs))
		node.children = append(node.children, role("Value", exprNode(b, let.Value, fs)))
	case ast.StmtExpr:
		node.children = append(node.children, exprNode(b, b.Stmts.Expr(id).Expr, fs))
	case ast.StmtWhile:
		loop := b.Stmts.While(id)
		node.children = append(node.children,
			role("Cond", exprNode(b, loop.Cond, fs)),
			role("Body", exprNode(b, loop.Body, fs)),
		)
	}
	return node
}

func exprNode(b *ast.Builder, id ast.ExprID, fs *source.FileSet) *treeNode {
	e := b.Exprs.Get(id)
	if e == nil {
		return &treeNode{label: "<none>"}
	}
	span := formatSpan(e.Span, fs)
	node := &treeNode{label: fmt.Sprintf("%s (span: %s)", e.Kind, span)}
	switch e.Kind {
	case ast.ExprIdent:
		data, _ := b.Exprs.Ident(id)
		node.label = fmt.Sprintf("Ident %s (span: %s)", b.Name(data.Name), span)
	case ast.ExprLit:
		data, _ := b.Exprs.Literal(id)
		node.label = fmt.Sprintf("Literal %s %s (span: %s)", data.Kind, b.Name(data.Value), span)
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		node.label = fmt.Sprintf("Binary %s (span: %s)", data.Op, span)
		node.children = append(node.children, exprNode(b, data.Left, fs), exprNode(b, data.Right, fs))
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		node.label = fmt.Sprintf("Unary %s (span: %s)", data.Op, span)
		node.children = append(node.children, exprNode(b, data.Operand, fs))
	case ast.ExprGroup:
		data, _ := b.Exprs.Group(id)
		node.children = append(node.children, exprNode(b, data.Inner, fs))
	case ast.ExprAssign:
		data, _ := b.Exprs.Assign(id)
		node.label = fmt.Sprintf("Assign %s (span: %s)", b.Name(data.Target), span)
		node.children = append(node.children, role("Value", exprNode(b, data.Value, fs)))
	case ast.ExprBlock:
		data, _ := b.Exprs.Block(id)
		node.children = blockChildren(b, data, fs)
	case ast.ExprIf:
		data, _ := b.Exprs.If(id)
		node.children = append(node.children,
			role("Cond", exprNode(b, data.Cond, fs)),
			role("Then", exprNode(b, data.Then, fs)),
		)
		if data.Else.IsValid() {
			node.children = append(node.children, role("Else", exprNode(b, data.Else, fs)))
		}
	}
	return node
}
