/*
Package fasta writes the primary sequences of an imported structure in
FASTA format, one entry per chain.
*/
package fasta

import (
	"fmt"
	"io"
	"strings"

	"github.com/TuftsBCB/seq"

	"github.com/bcblab/molio/mol"
)

// An Entry is a single FASTA record: a one line header and a sequence.
type Entry struct {
	Header   string
	Sequence []seq.Residue
}

// String is the FASTA text of the entry, with the sequence wrapped at 60
// columns.
func (e Entry) String() string {
	return e.StringCols(60)
}

// StringCols returns the FASTA text of the entry with the sequence wrapped
// at the number of columns given. If cols is <= 0, no wrapping is done.
func (e Entry) StringCols(cols int) string {
	s := make([]byte, len(e.Sequence))
	for i, r := range e.Sequence {
		s[i] = byte(r)
	}
	if cols <= 0 || len(s) == 0 {
		return fmt.Sprintf(">%s\n%s", e.Header, s)
	}

	wrapped := make([]string, 1+((len(s)-1)/cols))
	for i := range wrapped {
		start := cols * i
		end := start + cols
		if end > len(s) {
			end = len(s)
		}
		wrapped[i] = string(s[start:end])
	}
	return fmt.Sprintf(">%s\n%s", e.Header, strings.Join(wrapped, "\n"))
}

// FromStructure extracts one entry per chain that has at least one amino
// acid residue, in chain order of first appearance. Headers have the form
// "<name> chain <id>".
func FromStructure(s *mol.Structure) []Entry {
	var entries []Entry
	for _, chain := range s.Chains() {
		sequence := s.Sequence(chain)
		if len(sequence) == 0 {
			continue
		}
		entries = append(entries, Entry{
			Header:   fmt.Sprintf("%s chain %s", s.Name, chain),
			Sequence: sequence,
		})
	}
	return entries
}

// Write writes the given entries to w in FASTA format.
func Write(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, e); err != nil {
			return err
		}
	}
	return nil
}
