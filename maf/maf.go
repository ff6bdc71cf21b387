// Package maf reads the columns of Mutation Annotation Format files needed to place point mutations on the genome.
package maf

import (
	"fmt"
	"github.com/vertgenlab/gonomics/fileio"
	"strconv"
	"strings"
)

// Record is one row of a MAF file.
type Record struct {
	Gene   string
	Sample string
	Chrom  string
	Pos    int // Start_Position, 1-based
	Strand byte
	Ref    string
	Alt    string
}

// required columns and the optional ones read when present.
const (
	colSample = "Tumor_Sample_Barcode"
	colChrom  = "Chromosome"
	colStart  = "Start_Position"
	colRef    = "Reference_Allele"
	colAlt    = "Tumor_Seq_Allele2"
	colGene   = "Hugo_Symbol"
	colStrand = "Strand"
)

// Read returns all records of a MAF file. Lines starting with '#' are skipped and the first
// remaining line must be the column header.
func Read(filename string) ([]Record, error) {
	file := fileio.EasyOpen(filename)
	defer file.Close()

	var ans []Record
	var header map[string]int
	var line string
	var done bool
	var lineNum int
	for line, done = fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		lineNum++
		if strings.TrimSpace(line) == "" {
			continue
		}
		if header == nil {
			h, err := parseHeader(line)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", filename, err)
			}
			header = h
			continue
		}
		r, err := parseLine(line, header)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", filename, lineNum, err)
		}
		ans = append(ans, r)
	}
	if header == nil {
		return nil, fmt.Errorf("%s: no header line found", filename)
	}
	return ans, nil
}

func parseHeader(line string) (map[string]int, error) {
	cols := strings.Split(line, "\t")
	ans := make(map[string]int, len(cols))
	for i := range cols {
		ans[strings.TrimSpace(cols[i])] = i
	}
	for _, req := range []string{colSample, colChrom, colStart, colRef, colAlt} {
		if _, found := ans[req]; !found {
			return nil, fmt.Errorf("missing required column %s", req)
		}
	}
	return ans, nil
}

func parseLine(line string, header map[string]int) (Record, error) {
	var r Record
	var err error
	words := strings.Split(line, "\t")
	get := func(col string) string {
		idx, found := header[col]
		if !found || idx >= len(words) {
			return ""
		}
		return strings.TrimSpace(words[idx])
	}

	r.Sample = get(colSample)
	r.Chrom = get(colChrom)
	r.Ref = strings.ToUpper(get(colRef))
	r.Alt = strings.ToUpper(get(colAlt))
	r.Gene = get(colGene)
	if r.Pos, err = strconv.Atoi(get(colStart)); err != nil {
		return r, fmt.Errorf("could not convert %s to an integer", get(colStart))
	}
	switch s := get(colStrand); s {
	case "", "+":
		r.Strand = '+'
	case "-":
		r.Strand = '-'
	default:
		return r, fmt.Errorf("unrecognized strand %q", s)
	}
	return r, nil
}
