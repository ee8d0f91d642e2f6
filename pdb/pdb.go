package pdb

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/TuftsBCB/structure"

	"github.com/bcblab/molio/mol"
)

// Entry represents a parsed PDB file: the structure it describes plus the
// raw pieces (REMARK 350 blocks) that are only interpreted on demand.
type Entry struct {
	Path      string
	IdCode    string
	Structure *mol.Structure
	remark350 []string
}

// ModelCount reports the number of models in the source file.
func (e *Entry) ModelCount() int {
	return e.Structure.ModelCount()
}

type pdbParser struct {
	entry    *Entry
	line     []byte
	frames   [][]structure.Coords
	cur      int         // index of the frame being filled
	bySerial map[int]int // ATOM serial -> atom index, model 1 only
	bonds    map[[2]int]bool
}

// ReadFile reads a PDB entry from the named file. If the file name ends
// with ".gz", gzip decompression is used.
func ReadFile(fp string) (*Entry, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if path.Ext(fp) == ".gz" {
		if reader, err = gzip.NewReader(reader); err != nil {
			return nil, err
		}
	}
	return Read(reader, fp)
}

// Read reads a PDB entry from the reader given. The path is only used for
// error messages and for guessing an id code when the HEADER record has
// none.
func Read(r io.Reader, fp string) (*Entry, error) {
	entry := &Entry{
		Path:      fp,
		Structure: &mol.Structure{Name: path.Base(fp)},
	}
	parser := pdbParser{
		entry:    entry,
		frames:   [][]structure.Coords{nil},
		bySerial: make(map[int]int, 500),
		bonds:    make(map[[2]int]bool, 50),
	}

	breader := bufio.NewReaderSize(r, 1000)
	for {
		// 'isPrefix' is ignored; PDB lines are 80 columns and our buffer
		// is far larger.
		line, _, err := breader.ReadLine()
		if err == io.EOF && len(line) == 0 {
			break
		} else if err != io.EOF && err != nil {
			return nil, err
		}
		parser.line = line
		if err := parser.parseLine(); err != nil {
			return nil, err
		}
	}

	if err := parser.finish(); err != nil {
		return nil, err
	}

	// If we couldn't find an id code, inspect the base name of the path.
	if len(entry.IdCode) == 0 {
		name := path.Base(entry.Path)
		switch {
		case len(name) >= 7 && name[0:3] == "pdb":
			entry.IdCode = name[3:7]
		case len(name) == 7: // cath
			entry.IdCode = name[0:4]
		}
	}
	return entry, nil
}

func (p *pdbParser) parseLine() error {
	switch p.cols(1, 6) {
	case "HEADER":
		p.entry.IdCode = strings.ToLower(p.cols(63, 66))
	case "MODEL":
		if len(p.frames[p.cur]) > 0 {
			p.frames = append(p.frames, nil)
			p.cur++
		}
	case "ATOM", "HETATM":
		return p.parseAtom()
	case "CONECT":
		p.parseConect()
	case "REMARK":
		if p.cols(8, 10) == "350" {
			p.entry.remark350 = append(p.entry.remark350, string(p.line))
		}
	}
	return nil
}

func (p *pdbParser) parseAtom() error {
	x, err := p.atof(31, 38)
	if err != nil {
		return err
	}
	y, err := p.atof(39, 46)
	if err != nil {
		return err
	}
	z, err := p.atof(47, 54)
	if err != nil {
		return err
	}
	coords := structure.Coords{X: x, Y: y, Z: z}
	p.frames[p.cur] = append(p.frames[p.cur], coords)
	if p.cur > 0 {
		// Later models only contribute coordinates.
		return nil
	}

	serial, err := p.atoi(7, 11)
	if err != nil {
		return err
	}
	atom := mol.Atom{
		Serial:  serial,
		Name:    p.cols(13, 16),
		Element: p.cols(77, 78),
		Residue: p.cols(18, 20),
		Chain:   p.cols(22, 22),
		InsCode: spaceToZero(p.at(27)),
		AltLoc:  spaceToZero(p.at(17)),
		Het:     p.cols(1, 6) == "HETATM",
		Coords:  coords,
	}
	if id, err := p.atoi(23, 26); err == nil {
		atom.ResID = id
	}
	if occ, err := p.atof(55, 60); err == nil {
		atom.Occupancy = occ
	}
	if bf, err := p.atof(61, 66); err == nil {
		atom.BFactor = bf
	}
	atom.Charge = p.charge()

	p.bySerial[serial] = len(p.entry.Structure.Atoms)
	p.entry.Structure.Atoms = append(p.entry.Structure.Atoms, atom)
	return nil
}

// charge reads the formal charge from columns 79-80, which hold a digit
// followed by a sign, e.g. "2-" or "1+".
func (p *pdbParser) charge() int {
	s := p.cols(79, 80)
	if len(s) < 1 {
		return 0
	}
	n := int(s[0] - '0')
	if n < 0 || n > 9 {
		return 0
	}
	if len(s) == 2 && s[1] == '-' {
		return -n
	}
	return n
}

func (p *pdbParser) parseConect() {
	from, err := p.atoi(7, 11)
	if err != nil {
		return
	}
	fi, ok := p.bySerial[from]
	if !ok {
		return
	}
	for c := 12; c <= 27; c += 5 {
		to, err := p.atoi(c, c+4)
		if err != nil {
			continue
		}
		ti, ok := p.bySerial[to]
		if !ok {
			continue
		}
		a, b := fi, ti
		if a > b {
			a, b = b, a
		}
		p.bonds[[2]int{a, b}] = true
	}
}

func (p *pdbParser) finish() error {
	s := p.entry.Structure
	if len(s.Atoms) == 0 {
		return fmt.Errorf("The file '%s' does not appear to be a valid "+
			"PDB file.", p.entry.Path)
	}

	// A trailing MODEL with no atoms leaves an empty frame behind.
	if n := len(p.frames); n > 1 && len(p.frames[n-1]) == 0 {
		p.frames = p.frames[:n-1]
	}
	for i, frame := range p.frames {
		if len(frame) != len(s.Atoms) {
			return fmt.Errorf("Model %d of '%s' has %d coordinates for %d "+
				"atoms.", i+1, p.entry.Path, len(frame), len(s.Atoms))
		}
	}
	if len(p.frames) > 1 {
		s.Frames = p.frames
	}

	if len(p.bonds) > 0 {
		bonds := make([]mol.Bond, 0, len(p.bonds))
		for pair := range p.bonds {
			bonds = append(bonds, mol.Bond{
				A: pair[0], B: pair[1], Order: mol.OrderSingle,
			})
		}
		sort.Slice(bonds, func(i, j int) bool {
			if bonds[i].A != bonds[j].A {
				return bonds[i].A < bonds[j].A
			}
			return bonds[i].B < bonds[j].B
		})
		s.Bonds = bonds
	}
	return nil
}

// cols returns the trimmed text in the 1-indexed inclusive column range
// given, tolerating short lines.
func (p *pdbParser) cols(start, end int) string {
	if start > len(p.line) {
		return ""
	}
	if end > len(p.line) {
		end = len(p.line)
	}
	return strings.TrimSpace(string(p.line[start-1 : end]))
}

// at returns the byte in the 1-indexed column given, or a space when the
// line is too short.
func (p *pdbParser) at(i int) byte {
	if i > len(p.line) {
		return ' '
	}
	return p.line[i-1]
}

func (p *pdbParser) atoi(start, end int) (int, error) {
	return strconv.Atoi(p.cols(start, end))
}

func (p *pdbParser) atof(start, end int) (float64, error) {
	return strconv.ParseFloat(p.cols(start, end), 64)
}

func spaceToZero(b byte) byte {
	if b == ' ' {
		return 0
	}
	return b
}
