// 12 Oct 2026
// Turn a finished group into output lines.

package selaltloc

import (
	"fmt"
	"math"
	"sort"

	"github.com/andrew-torda/matrix"
	"github.com/andrew-torda/pdbtools/pdb/record"
)

// PairingError is fatal. In occupancy mode, the ANISOU records of an
// atom have to match its coordinate records one to one.
type PairingError struct {
	N       int // line number at which the group was flushed
	Key     record.AtomKey
	NAtom   int
	NAnisou int
}

func (e *PairingError) Error() string {
	return fmt.Sprintf("line %d: atom %q of %s %d chain %c has %d coordinate "+
		"records but %d ANISOU records", e.N, e.Key.Name, e.Key.ResName,
		e.Key.ResNum, e.Key.Chain, e.NAtom, e.NAnisou)
}

// flush empties the current group into the output and starts a new one.
func (s *Selector) flush() error {
	g := s.group
	if g.empty() {
		return nil
	}
	s.group = newGroup()
	s.stats.Groups++
	partial := g.partial()
	if partial {
		s.stats.Partial++
	} else {
		s.stats.Full++
	}
	s.log.Debug("flush", "line", s.nLine, "labels", string(g.labels),
		"records", len(g.all), "partial", partial)
	switch {
	case partial && s.opts.UseLabel:
		s.partialByLabel(g)
	case partial:
		return s.partialByOccupancy(g)
	case s.opts.UseLabel:
		s.fullByLabel(g)
	default:
		s.fullByOccupancy(g)
	}
	return nil
}

func (s *Selector) out(line string) {
	s.stats.Out++
	s.emit(line)
}

// atomSet holds the records of one atom, over all labels.
type atomSet struct {
	key  record.AtomKey
	recs []record.Atom
}

// byAtom splits a group into atoms. Records are sorted by serial number
// first, so atoms come out in order of their lowest serial, whichever
// label it belongs to. A stable sort means ties stay in input order and
// an ANISOU record stays right behind the coordinate record it belongs to.
func byAtom(g *Group) []*atomSet {
	recs := make([]record.Atom, len(g.all))
	copy(recs, g.all)
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Serial < recs[j].Serial })

	index := make(map[record.AtomKey]*atomSet)
	var sets []*atomSet
	for _, a := range recs {
		set, ok := index[a.Key()]
		if !ok {
			set = &atomSet{key: a.Key()}
			index[a.Key()] = set
			sets = append(sets, set)
		}
		set.recs = append(set.recs, a)
	}
	return sets
}

// partialByLabel picks, atom by atom, the record with the wanted label
// and its ANISOU partner. An atom without that label keeps every record.
func (s *Selector) partialByLabel(g *Group) {
	want := s.opts.Label
	for _, set := range byAtom(g) {
		i := -1
		for j, a := range set.recs {
			if a.Altloc == want {
				i = j
				break
			}
		}
		if i < 0 {
			for _, a := range set.recs {
				s.out(a.Line)
			}
			continue
		}
		s.out(set.recs[i].Blanked())
		n := 1
		if j := i + 1; !set.recs[i].IsAnisou() && j < len(set.recs) &&
			set.recs[j].IsAnisou() && set.recs[j].Altloc == want {
			s.out(set.recs[j].Blanked())
			n++
		}
		s.stats.Dropped += len(set.recs) - n
	}
}

// pairAnisou splits the records of one atom into coordinate records and
// ANISOU records. If there are any ANISOU records, there must be one per
// coordinate record and the i'th belongs to the i'th.
func pairAnisou(set *atomSet) (atoms, anisou []record.Atom, ok bool) {
	for _, a := range set.recs {
		if a.IsAnisou() {
			anisou = append(anisou, a)
		} else {
			atoms = append(atoms, a)
		}
	}
	ok = len(anisou) == 0 || len(anisou) == len(atoms)
	return atoms, anisou, ok
}

// partialByOccupancy keeps, atom by atom, the record with the highest
// occupancy. On ties the first one wins.
func (s *Selector) partialByOccupancy(g *Group) error {
	for _, set := range byAtom(g) {
		atoms, anisou, ok := pairAnisou(set)
		if !ok {
			return &PairingError{N: s.nLine, Key: set.key, NAtom: len(atoms), NAnisou: len(anisou)}
		}
		order := make([]int, len(atoms))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool {
			return atoms[order[i]].Occupancy > atoms[order[j]].Occupancy
		})
		best := order[0]
		s.out(atoms[best].Blanked())
		n := 1
		if len(anisou) > 0 {
			s.out(anisou[best].Blanked())
			n++
		}
		s.stats.Dropped += len(set.recs) - n
	}
	return nil
}

// passAll writes a group out untouched.
func (s *Selector) passAll(g *Group) {
	s.stats.Fallbacks++
	for _, a := range g.all {
		s.out(a.Line)
	}
}

// keepLabel writes the records of one label with the altloc cleared,
// plus any records without an altloc, in input order.
func (s *Selector) keepLabel(g *Group, want byte) {
	for _, a := range g.all {
		switch a.Altloc {
		case want:
			s.out(a.Blanked())
		case blank:
			s.out(a.Line)
		default:
			s.stats.Dropped++
		}
	}
}

// fullByLabel keeps one conformer of a multi residue cluster. If the
// cluster does not have the label, we cannot know what the user wants,
// so the whole thing goes out unchanged.
func (s *Selector) fullByLabel(g *Group) {
	if !g.has(s.opts.Label) {
		s.log.Debug("label not in group, keeping all", "label", string(s.opts.Label),
			"line", s.nLine)
		s.passAll(g)
		return
	}
	s.keepLabel(g, s.opts.Label)
}

// alternates are the labels of a group other than blank.
func alternates(g *Group) []byte {
	var labels []byte
	for _, l := range g.labels {
		if l != blank {
			labels = append(labels, l)
		}
	}
	return labels
}

// firstOcc is the occupancy of the first coordinate record of a label.
func firstOcc(g *Group, l byte) float64 {
	for _, a := range g.byLabel[l] {
		if !a.IsAnisou() {
			return a.Occupancy
		}
	}
	return 0
}

// occTable has a row per label and a column per residue, holding the
// occupancy of the first coordinate record of the label on that
// residue. Residues a label never visits are -1.
func occTable(g *Group, labels []byte) *matrix.FMatrix2d {
	ndx := g.residueIndex()
	occ := matrix.NewFMatrix2d(len(labels), len(ndx))
	for i, l := range labels {
		row := occ.Mat[i]
		for j := range row {
			row[j] = -1
		}
		for _, a := range g.byLabel[l] {
			if j := ndx[a.Residue()]; !a.IsAnisou() && row[j] < 0 {
				row[j] = float32(a.Occupancy)
			}
		}
	}
	return occ
}

// checkOcc warns if a conformer does not have one occupancy throughout.
// We pick a conformer by looking at its first record only.
func (s *Selector) checkOcc(g *Group, labels []byte) {
	const tol = 0.005
	occ := occTable(g, labels)
	for i, row := range occ.Mat {
		lo, hi := float32(math.MaxFloat32), float32(-1)
		for _, o := range row {
			if o < 0 {
				continue
			}
			lo, hi = min(lo, o), max(hi, o)
		}
		if hi-lo > tol {
			s.log.Warn("occupancy varies within a conformer", "label", string(labels[i]),
				"min", lo, "max", hi, "line", s.nLine)
		}
	}
}

// fullByOccupancy keeps the conformer whose first record has the
// highest occupancy. A later label only wins if it is strictly bigger.
// Records without an altloc are not competing and always stay.
// If nothing beats zero there is no sensible choice and the group goes
// out unchanged.
func (s *Selector) fullByOccupancy(g *Group) {
	labels := alternates(g)
	s.checkOcc(g, labels)
	best, bestOcc := blank, 0.0
	for _, l := range labels {
		if o := firstOcc(g, l); o > bestOcc {
			best, bestOcc = l, o
		}
	}
	if best == blank {
		s.passAll(g)
		return
	}
	s.keepLabel(g, best)
}
