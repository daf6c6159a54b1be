// Package dimacs renders an in-memory clause vector as a DIMACS CNF
// text stream, for the CLI's -print-w dump mode.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/abp-sat/abpsat/internal/clause"
)

// Write emits "p cnf <vars> <clauses>" followed by each clause
// terminated by a literal 0, per spec.md 6.
func Write(w io.Writer, v *clause.Vector) error {
	bw := bufio.NewWriter(w)
	clauses := v.Clauses()
	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", v.MaxVar(), len(clauses)); err != nil {
		return err
	}
	for _, cl := range clauses {
		for _, lit := range cl {
			if _, err := bw.WriteString(strconv.Itoa(lit)); err != nil {
				return err
			}
			if err := bw.WriteByte(' '); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("0\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
