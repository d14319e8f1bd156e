package selaltloc_test

import (
	"fmt"

	"github.com/andrew-torda/pdbtools/pdb/pdbtest"
	"github.com/andrew-torda/pdbtools/pkg/selaltloc"
)

func ExampleSelector() {
	recs := []pdbtest.Rec{
		{Serial: 1, Name: " N  ", ResName: "GLU", ResNum: 2, Occ: 1},
		{Serial: 2, Name: " CA ", Altloc: 'A', ResName: "GLU", ResNum: 2, Occ: 0.4},
		{Serial: 3, Name: " CA ", Altloc: 'B', ResName: "GLU", ResNum: 2, Occ: 0.6},
		{Serial: 4, Name: " N  ", ResName: "ALA", ResNum: 3, Occ: 1},
	}
	s := selaltloc.NewSelector(selaltloc.Options{}, func(line string) {
		fmt.Println(line[:26])
	})
	for _, r := range recs {
		if err := s.Feed(r.Atom()); err != nil {
			fmt.Println(err)
			return
		}
	}
	if err := s.Finish(); err != nil {
		fmt.Println(err)
	}
	// Output:
	// ATOM      1  N   GLU A   2
	// ATOM      3  CA  GLU A   2
	// ATOM      4  N   ALA A   3
}
