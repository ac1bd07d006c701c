package calc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	num  float64
	name string
	op   TokenKind
	fn   Function

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // num
	nodeName // lookup(name)

	nodeCall   // fn(left)
	nodeAssign // name = left

	nodeUnary  // op left
	nodeBinary // left op right
)

var nodenames = [...]string{
	nodeNone:   "None",
	nodeNum:    "Num",
	nodeName:   "Name",
	nodeCall:   "Call",
	nodeAssign: "Assign",
	nodeUnary:  "Unary",
	nodeBinary: "Binary",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodenames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodenames[k]
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

var opstrs = map[TokenKind]string{
	TokenNeg: "-",
	TokenPow: " ^ ",
	TokenMul: " * ",
	TokenDiv: " / ",
	TokenAdd: " + ",
	TokenSub: " - ",
}

func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNum:
		b.WriteString(strconv.FormatFloat(n.num, 'g', -1, 64))
	case nodeName:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.fn.String())
		n.left.fmt(b, !square)
	case nodeAssign:
		b.WriteString(n.name)
		b.WriteString(" = ")
		n.left.fmt(b, !square)
	case nodeUnary:
		b.WriteString(opstr(n.op))
		n.left.fmt(b, !square)
	case nodeBinary:
		n.left.fmt(b, !square)
		b.WriteString(opstr(n.op))
		n.right.fmt(b, !square)
	default:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b, !square)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b, !square)
		}
		b.WriteByte('$')
	}
}

func opstr(op TokenKind) string {
	if s, ok := opstrs[op]; ok {
		return s
	}
	return " ?" + op.String() + "? "
}

// names adds the names of variables used or assigned in n to m.
func (n *node) names(m map[string]bool) {
	if n == nil {
		return
	}
	if n.kind == nodeName || n.kind == nodeAssign {
		m[n.name] = true
	}
	n.left.names(m)
	n.right.names(m)
}
