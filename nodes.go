package calculator

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. Each node owns
// its children; trees are never shared or modified after parsing.
type node struct {
	kind nodeKind

	// op is the operator or function token for nodeNeg, nodeBinary, and calls.
	op TokenKind
	// num is the value of a nodeNum.
	num float32
	// name is the variable of a nodeName or nodeAssign.
	name string

	left  *node
	right *node
	// args holds the arguments of a nodeCallN.
	args []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeGroup  // (left)
	nodeNum    // num
	nodeNeg    // -left
	nodeBinary // left op right
	nodeCall1  // op(left)
	nodeCall2  // op(left, right)
	nodeCallN  // op(args...)
	nodeAssign // let name = left
	nodeName   // lookup(name)
)

var nodenames = [...]string{
	nodeNone:   "None",
	nodeGroup:  "Group",
	nodeNum:    "Num",
	nodeNeg:    "Neg",
	nodeBinary: "Binary",
	nodeCall1:  "Call1",
	nodeCall2:  "Call2",
	nodeCallN:  "CallN",
	nodeAssign: "Assign",
	nodeName:   "Name",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodenames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodenames[k]
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes source text for the tree. Parsing the output yields the same
// tree, since grouping nodes keep their parentheses.
func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteString("$")
		if n.left != nil {
			n.left.fmt(b)
		}
		b.WriteString("$")
	case nodeGroup:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeNum:
		b.WriteString(fmtnum(n.num))
	case nodeName:
		b.WriteString(n.name)
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b)
	case nodeBinary:
		n.left.fmt(b)
		b.WriteByte(' ')
		b.WriteString(n.op.String())
		b.WriteByte(' ')
		n.right.fmt(b)
	case nodeCall1:
		b.WriteString(n.op.String())
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeCall2:
		b.WriteString(n.op.String())
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteString(", ")
		n.right.fmt(b)
		b.WriteByte(')')
	case nodeCallN:
		b.WriteString(n.op.String())
		b.WriteByte('(')
		for i, arg := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			arg.fmt(b)
		}
		b.WriteByte(')')
	case nodeAssign:
		b.WriteString("let ")
		b.WriteString(n.name)
		b.WriteString(" = ")
		n.left.fmt(b)
	default:
		panic("calculator: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
