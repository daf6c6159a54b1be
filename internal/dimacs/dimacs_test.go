package dimacs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/abp-sat/abpsat/internal/clause"
	"github.com/abp-sat/abpsat/internal/varhandler"
)

func TestWriteHeaderAndClauses(t *testing.T) {
	alloc := varhandler.New(0)
	container, vec := clause.NewVectorContainer(0, alloc)
	container.Add(1, -2, 3)
	container.Add(-1, 2)

	var buf bytes.Buffer
	if err := Write(&buf, vec); err != nil {
		t.Fatalf("Write: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "p cnf 3 2" {
		t.Fatalf("header = %q, want %q", lines[0], "p cnf 3 2")
	}
	if lines[1] != "1 -2 3 0" {
		t.Fatalf("clause 1 = %q, want %q", lines[1], "1 -2 3 0")
	}
	if lines[2] != "-1 2 0" {
		t.Fatalf("clause 2 = %q, want %q", lines[2], "-1 2 0")
	}
}

func TestWriteEmpty(t *testing.T) {
	alloc := varhandler.New(0)
	_, vec := clause.NewVectorContainer(0, alloc)
	var buf bytes.Buffer
	if err := Write(&buf, vec); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "p cnf 0 0\n" {
		t.Fatalf("got %q, want %q", got, "p cnf 0 0\n")
	}
}
