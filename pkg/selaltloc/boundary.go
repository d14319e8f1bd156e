package selaltloc

import (
	"github.com/andrew-torda/pdbtools/pdb/record"
)

// tracker remembers the last coordinate record. ok is false at the
// start and after every terminator.
type tracker struct {
	altloc  byte
	resName string
	resNum  int
	ok      bool
}

func track(a record.Atom) tracker {
	return tracker{altloc: a.Altloc, resName: a.ResName, resNum: a.ResNum, ok: true}
}

// isAnotherGroup decides whether cur starts a new group, given the
// previous record and the group being filled.
// The last case handles a run of residues labelled A, then the same run
// labelled B, followed by a new residue with label B again. It is a rule
// of thumb for what real files do and can split clusters which a human
// would keep together. Do not tidy it up, output depends on it.
func isAnotherGroup(prev tracker, cur record.Atom, g *Group) bool {
	if !prev.ok {
		return false
	}
	a0, a1 := prev.altloc, cur.Altloc
	ru0, ru1 := prev.resNum, cur.ResNum
	ra0, ra1 := prev.resName, cur.ResName
	switch {
	case a0 != a1 && a1 == blank && ru1 > ru0: // leaving alternates
		return true
	case a0 == blank && a1 != blank && ru1 > ru0: // entering alternates
		return true
	case a0 == blank && a1 == blank && (ru1 != ru0 || ra1 != ra0):
		return true
	case a0 == a1 && a0 != blank && g.has(a1) && ru1 > ru0 &&
		g.nLabel() > 1 && g.equalResidueCounts():
		return true
	}
	return false
}
