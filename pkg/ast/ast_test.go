package ast

import (
	"testing"

	"github.com/hemlocklang/hemlock/pkg/token"
)

func TestNodeStringLetStatement(t *testing.T) {
	arena := NewNodeArena()

	program := arena.Alloc(Program, token.Token{})
	stmt := arena.Alloc(LetStatement, token.Token{Type: token.Let, Literal: "let"})
	stmt.Str = "myVar"

	value := arena.Alloc(Identifier, token.Token{Type: token.Identifier, Literal: "anotherVar"})
	value.Str = "anotherVar"
	stmt.Right = value

	program.Statements = []*Node{stmt}

	want := "let myVar = anotherVar;"
	if got := program.String(); got != want {
		t.Errorf("program.String() = %q, want %q", got, want)
	}
}

func TestNodeArenaAllocGrowsAcrossChunks(t *testing.T) {
	arena := NewNodeArena()
	var nodes []*Node
	for i := 0; i < arenaChunkSize*2+1; i++ {
		nodes = append(nodes, arena.Alloc(Identifier, token.Token{}))
	}
	seen := make(map[*Node]bool, len(nodes))
	for _, n := range nodes {
		if seen[n] {
			t.Fatalf("arena handed out the same pointer twice")
		}
		seen[n] = true
	}
}

func TestNilNodeStringIsEmpty(t *testing.T) {
	var n *Node
	if n.String() != "" {
		t.Errorf("nil *Node.String() should be empty, got %q", n.String())
	}
}
