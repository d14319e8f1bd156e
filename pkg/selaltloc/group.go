// 12 Oct 2026

package selaltloc

import (
	"github.com/andrew-torda/pdbtools/pdb/record"
)

const blank byte = ' '

// Group collects the records of one cluster of alternate conformers.
// all keeps the input order. byLabel and residues are indexed by label,
// in the order labels were first seen.
type Group struct {
	all      []record.Atom
	labels   []byte
	byLabel  map[byte][]record.Atom
	residues map[byte][]record.Residue // ordered set, per label
}

func newGroup() *Group {
	return &Group{
		byLabel:  make(map[byte][]record.Atom),
		residues: make(map[byte][]record.Residue),
	}
}

func (g *Group) add(a record.Atom) {
	l := a.Altloc
	if _, ok := g.byLabel[l]; !ok {
		g.labels = append(g.labels, l)
	}
	g.all = append(g.all, a)
	g.byLabel[l] = append(g.byLabel[l], a)
	r := a.Residue()
	for _, seen := range g.residues[l] {
		if seen == r {
			return
		}
	}
	g.residues[l] = append(g.residues[l], r)
}

func (g *Group) empty() bool { return len(g.all) == 0 }
func (g *Group) nLabel() int { return len(g.labels) }

func (g *Group) has(l byte) bool {
	_, ok := g.byLabel[l]
	return ok
}

// equalResidueCounts is true if every label has been seen on the same
// number of residues.
func (g *Group) equalResidueCounts() bool {
	n := len(g.residues[g.labels[0]])
	for _, l := range g.labels[1:] {
		if len(g.residues[l]) != n {
			return false
		}
	}
	return true
}

// allSameResidue is true if every record belongs to one residue.
func (g *Group) allSameResidue() bool {
	if g.empty() {
		return false
	}
	r0 := g.all[0].Residue()
	for _, l := range g.labels {
		for _, r := range g.residues[l] {
			if r != r0 {
				return false
			}
		}
	}
	return true
}

// partial groups are alternates confined to one residue, which also
// has atoms without alternates. Anything else is a full group, a run of
// residues labelled in parallel.
func (g *Group) partial() bool {
	return g.has(blank) && g.allSameResidue()
}

// residueIndex numbers the residues of the group in the order they were
// first seen, over all labels.
func (g *Group) residueIndex() map[record.Residue]int {
	ndx := make(map[record.Residue]int)
	for _, a := range g.all {
		if _, ok := ndx[a.Residue()]; !ok {
			ndx[a.Residue()] = len(ndx)
		}
	}
	return ndx
}
