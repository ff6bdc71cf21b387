// Package fai reads fasta index files to look up chromosome lengths.
package fai

import (
	"fmt"
	"github.com/vertgenlab/gonomics/fileio"
	"strconv"
	"strings"
)

// Index holds one entry per sequence of an indexed fasta file.
type Index struct {
	chroms  []chrOffset    // in file order
	nameMap map[string]int // maps chr name to index in chroms
}

// chrOffset is one line of a fai file.
type chrOffset struct {
	name         string // Name of this reference sequence
	len          int    // Total length of this reference sequence, in bases
	offset       int    // Offset within the FASTA file of this sequence's first base
	basesPerLine int    // The number of bases on each line
	bytesPerLine int    // The number of bytes in each line, including the newline
}

// String method for chrOffset enables easy writing with the fmt package.
func (c chrOffset) String() string {
	return fmt.Sprintf("%s\t%d\t%d\t%d\t%d", c.name, c.len, c.offset, c.basesPerLine, c.bytesPerLine)
}

// String method for Index enables easy writing with the fmt package.
func (idx Index) String() string {
	answer := new(strings.Builder)
	for i := range idx.chroms {
		answer.WriteString(idx.chroms[i].String())
		answer.WriteByte('\n')
	}
	return answer.String()
}

// Len returns the length of chr and whether chr is in the index.
func (idx Index) Len(chr string) (int, bool) {
	i, found := idx.nameMap[chr]
	if !found {
		return 0, false
	}
	return idx.chroms[i].len, true
}

// Names returns the sequence names in file order.
func (idx Index) Names() []string {
	ans := make([]string, len(idx.chroms))
	for i := range idx.chroms {
		ans[i] = idx.chroms[i].name
	}
	return ans
}

// ReadIndex reads a fai index file.
func ReadIndex(filename string) (Index, error) {
	file := fileio.EasyOpen(filename)
	defer file.Close()

	answer := Index{nameMap: make(map[string]int)}
	var curr chrOffset
	var line string
	var col []string
	var done bool
	var err error
	for line, done = fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		col = strings.Split(line, "\t")
		if len(col) != 5 {
			return answer, fmt.Errorf("malformed index file %s, error on line: %s", filename, line)
		}
		curr.name = col[0]
		if curr.len, err = strconv.Atoi(col[1]); err != nil {
			return answer, fmt.Errorf("%s: %w", filename, err)
		}
		if curr.offset, err = strconv.Atoi(col[2]); err != nil {
			return answer, fmt.Errorf("%s: %w", filename, err)
		}
		if curr.basesPerLine, err = strconv.Atoi(col[3]); err != nil {
			return answer, fmt.Errorf("%s: %w", filename, err)
		}
		if curr.bytesPerLine, err = strconv.Atoi(col[4]); err != nil {
			return answer, fmt.Errorf("%s: %w", filename, err)
		}
		answer.nameMap[curr.name] = len(answer.chroms)
		answer.chroms = append(answer.chroms, curr)
	}
	return answer, nil
}
