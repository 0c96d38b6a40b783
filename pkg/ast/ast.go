// Package ast defines hemlock's abstract syntax tree.
//
// Rather than the classic per-kind struct hierarchy (one Go type per
// statement/expression kind behind a Node interface), hemlock uses a
// single tagged-variant Node struct dispatched on Kind — spec.md §9
// calls this out directly as the recommended re-architecture, and it is
// grounded here on the teacher's own *types.ASTNode, which carries a
// Type field plus a fixed set of optional relation fields (LHS, RHS,
// Steps, Arguments, Expressions) rather than a type per AST shape.
package ast

import "github.com/hemlocklang/hemlock/pkg/token"

// Kind tags the variant a Node represents.
type Kind uint8

const (
	Program Kind = iota
	LetStatement
	ReturnStatement
	ExpressionStatement
	BlockStatement

	Identifier
	IntegerLiteral
	StringLiteral
	BooleanLiteral
	PrefixExpression
	InfixExpression
	IfExpression
	FunctionLiteral
	CallExpression
	ArrayLiteral
	IndexExpression
	HashLiteral
)

// HashPair is one key/value entry of a HashLiteral, evaluated in source
// order (spec.md §4.5, §5).
type HashPair struct {
	Key   *Node
	Value *Node
}

// Node is hemlock's single AST node type. Every node carries the token
// that introduced it (spec.md §3 invariant: every reachable node has a
// non-null token) plus whichever of the relation fields its Kind uses.
// Unused fields stay at their zero value; callers index only the fields
// meaningful for the node's Kind (documented per Kind below).
type Node struct {
	Kind  Kind
	Token token.Token

	// Literal payloads.
	Str string // Identifier name, StringLiteral bytes, PrefixExpression/InfixExpression operator
	Int int64  // IntegerLiteral value
	Bool bool  // BooleanLiteral value

	// Relations — which fields apply depends on Kind:
	//   LetStatement:        Str = name, Right = value expr
	//   ReturnStatement:     Right = value expr
	//   ExpressionStatement: Right = expr
	//   BlockStatement/Program: Statements
	//   PrefixExpression:    Str = operator, Right = operand
	//   InfixExpression:     Str = operator, Left, Right = operands
	//   IfExpression:        Left = condition, Consequence, Alternative (Alternative may be nil)
	//   FunctionLiteral:     Params (Identifier nodes), Consequence = body block
	//   CallExpression:      Left = callee, Elements = arguments
	//   ArrayLiteral:        Elements
	//   IndexExpression:     Left = target, Right = index
	//   HashLiteral:         Pairs
	Left         *Node
	Right        *Node
	Consequence  *Node
	Alternative  *Node
	Statements   []*Node
	Params       []*Node
	Elements     []*Node
	Pairs        []HashPair
}

// arenaChunkSize nodes per chunk; most hemlock programs fit in one chunk.
const arenaChunkSize = 64

// NodeArena is a bump-pointer allocator for Node values, grounded on
// pkg/types.NodeArena. Parsing a program allocates nodes only from its
// parser's arena; the arena's chunks are released in bulk once the parsed
// tree is dropped (or its Program is evicted from pkg/cache), sidestepping the
// per-node GC pressure a tree of individually-heap-allocated nodes would
// create. This also gives the evaluator's closure/environment cycles
// (spec.md §5, §9) a natural answer for the AST side of the graph: AST
// nodes themselves never participate in a reference cycle, since
// evaluation never allocates new nodes or stores them back into the
// arena's owner.
//
// NodeArena is not safe for concurrent use; each Parser owns one.
type NodeArena struct {
	chunks [][]Node
	pos    int
}

// NewNodeArena returns an arena pre-warmed with one chunk.
func NewNodeArena() *NodeArena {
	return &NodeArena{chunks: [][]Node{make([]Node, arenaChunkSize)}}
}

// Alloc returns a pointer to a zero-valued Node inside the arena with
// Kind and Token set. All other fields are left at the zero value for
// the caller to fill in.
func (a *NodeArena) Alloc(kind Kind, tok token.Token) *Node {
	if a.pos >= arenaChunkSize {
		a.chunks = append(a.chunks, make([]Node, arenaChunkSize))
		a.pos = 0
	}
	n := &a.chunks[len(a.chunks)-1][a.pos]
	a.pos++
	n.Kind = kind
	n.Token = tok
	return n
}
