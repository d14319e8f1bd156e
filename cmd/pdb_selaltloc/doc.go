// 13 Oct 2026

/*
Pdb_selaltloc picks one alternate location for each atom in a PDB file.

Usage:
	pdb_selaltloc [-<label>] [file]

By default, the conformer with the highest occupancy is kept. With a
label, like -A, the conformer with that label is kept.
The chosen records have their altloc column cleared. Everything else in
the file comes through unchanged.

If no file is given, stdin will be used. Output goes to stdout.
The file may be gzipped.

Atoms are collected into groups. A group is either one residue, where
some atoms have alternates and others do not, or a run of residues
which all have alternates labelled in parallel (A on residues 10 to 14,
then B on residues 10 to 14). In a one residue group, each atom is
handled by itself. In a run of residues, the whole run is taken from one
label. If you ask for a label which a run does not have, the run is
written out as it was, rather than guessing.

When choosing by occupancy, an atom with ANISOU records must have one
per alternate. If not, the program stops with an error.

Piping into head is fine. When the reader goes away, we stop quietly
and exit 0.

Settings
If $PDBTOOLS_CONFIG names a TOML file, it is read:

	log_level = "debug"
	chunk_lines = 5000
	no_mmap = false
*/
package main
