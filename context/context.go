// Package context places point mutations from VCF or MAF files on a reference genome and
// cuts the flanking window each one is scanned in.
package context

import (
	"fmt"
	"github.com/dasnellings/motifTools/fai"
	"github.com/dasnellings/motifTools/maf"
	"github.com/dasnellings/motifTools/mutation"
	"github.com/dasnellings/motifTools/strand"
	"github.com/op/go-logging"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/fasta"
	"github.com/vertgenlab/gonomics/vcf"
	"path"
	"strings"
)

var log = logging.MustGetLogger("context")

func init() {
	logging.SetLevel(logging.WARNING, "context")
}

// Reference returns the bases of chrom in the 0-based half open interval [start, end).
type Reference interface {
	Seek(chrom string, start, end int) ([]dna.Base, error)
}

// FastaReference is a Reference backed by an indexed fasta file.
type FastaReference struct {
	seeker *fasta.Seeker
	index  fai.Index
}

// OpenReference opens an indexed fasta file. The index is expected at filename + ".fai".
func OpenReference(filename string) (*FastaReference, error) {
	idx, err := fai.ReadIndex(filename + ".fai")
	if err != nil {
		return nil, err
	}
	log.Debugf("reference index of %s:\n%s", filename, idx)
	return &FastaReference{seeker: fasta.NewSeeker(filename, ""), index: idx}, nil
}

// maxListedChroms caps the sequence names quoted in unknown chromosome errors.
const maxListedChroms = 5

// Seek returns an error for unknown chromosomes and intervals outside of the chromosome.
func (r *FastaReference) Seek(chrom string, start, end int) ([]dna.Base, error) {
	size, found := r.index.Len(chrom)
	if !found {
		names := r.index.Names()
		if len(names) > maxListedChroms {
			names = append(names[:maxListedChroms], "...")
		}
		return nil, fmt.Errorf("chromosome %s not found in reference, which has %s", chrom, strings.Join(names, ", "))
	}
	if start < 0 || end > size || start > end {
		return nil, fmt.Errorf("%s:%d-%d is outside of the %d bases of %s", chrom, start, end, size, chrom)
	}
	return fasta.SeekByName(r.seeker, chrom, start, end)
}

func (r *FastaReference) Close() error {
	return r.seeker.Close()
}

// Stats counts the records read by a loader.
type Stats struct {
	Loaded  int
	Skipped int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d loaded, %d skipped", s.Loaded, s.Skipped)
}

// Window returns the plus strand context of the 1-based position pos with pad bases on each side.
func Window(ref Reference, chrom string, pos, pad int) ([]mutation.Flank, error) {
	start := (pos - 1) - pad
	if start < 0 {
		return nil, fmt.Errorf("window of %s:%d with pad %d runs off the start of the chromosome", chrom, pos, pad)
	}
	seq, err := ref.Seek(chrom, start, pos+pad)
	if err != nil {
		return nil, err
	}
	if len(seq) != 2*pad+1 {
		return nil, fmt.Errorf("window of %s:%d with pad %d runs off the end of the chromosome", chrom, pos, pad)
	}
	dna.AllToUpper(seq)
	return mutation.NewContext(chrom, start+1, seq), nil
}

// New builds a mutation and its window. The transcript strand is copied to every flank.
// Records that are not single base substitutions or whose reference allele disagrees with
// the genome return an error.
func New(ref Reference, chrom string, pos int, refAllele, altAllele string, tStrand byte, pad int) (mutation.Mutation, error) {
	m := mutation.Mutation{
		Chrom:  chrom,
		Pos:    pos,
		Strand: tStrand,
		Ref:    strings.ToUpper(refAllele),
		Alt:    strings.ToUpper(altAllele),
	}
	if !m.IsSubstitution() {
		return m, fmt.Errorf("%s: %s>%s is not a substitution", m.Site(), m.Ref, m.Alt)
	}
	ctx, err := Window(ref, chrom, pos, pad)
	if err != nil {
		return m, err
	}
	if dna.BaseToString(ctx[pad].Base) != m.Ref {
		return m, fmt.Errorf("%s: reference allele %s does not match genome base %s", m.Site(), m.Ref, dna.BaseToString(ctx[pad].Base))
	}
	for i := range ctx {
		ctx[i].Strand = tStrand
	}
	m.Context = ctx
	return m, nil
}

// FromVcf builds a mutation from a biallelic substitution. When considerStrand is set the transcript
// strand is read from the Strand= INFO key, otherwise every record is on the plus strand.
func FromVcf(v vcf.Vcf, ref Reference, pad int, considerStrand bool) (mutation.Mutation, error) {
	// exclude multiallelic and indels
	if !vcf.IsBiallelic(v) || !vcf.IsSubstitution(v) || v.Pos == 1 {
		return mutation.Mutation{}, fmt.Errorf("%s:%d: not a biallelic substitution", v.Chr, v.Pos)
	}
	var tStrand byte = '+'
	var err error
	if considerStrand {
		if tStrand, err = strand.FromInfo(v); err != nil {
			return mutation.Mutation{}, err
		}
	}
	return New(ref, v.Chr, v.Pos, v.Ref, v.Alt[0], tStrand, pad)
}

// FromMaf builds a mutation from a MAF record.
func FromMaf(r maf.Record, ref Reference, pad int) (mutation.Mutation, error) {
	return New(ref, r.Chrom, r.Pos, r.Ref, r.Alt, r.Strand, pad)
}

// SampleName derives a sample name from a VCF file name by dropping the directory and the .vcf/.vcf.gz suffix.
func SampleName(filename string) string {
	name := path.Base(filename)
	name = strings.TrimSuffix(name, ".gz")
	return strings.TrimSuffix(name, ".vcf")
}

// LoadVcf reads every VCF file as one sample. Records that cannot be placed are logged and skipped.
func LoadVcf(files []string, ref Reference, pad int, considerStrand bool) (mutation.Samples, Stats) {
	ans := make(mutation.Samples)
	var stats Stats
	for _, file := range files {
		sample := SampleName(file)
		records, _ := vcf.GoReadToChan(file)
		for v := range records {
			m, err := FromVcf(v, ref, pad, considerStrand)
			if err != nil {
				log.Debugf("skipping record in %s: %s", file, err)
				stats.Skipped++
				continue
			}
			ans[sample] = append(ans[sample], m)
			stats.Loaded++
		}
		if _, found := ans[sample]; !found {
			log.Warningf("no usable mutations in %s", file)
		}
	}
	log.Infof("vcf input: %s", stats)
	return ans, stats
}

// LoadMaf reads a MAF file and groups its records by Tumor_Sample_Barcode.
func LoadMaf(filename string, ref Reference, pad int) (mutation.Samples, Stats, error) {
	var stats Stats
	records, err := maf.Read(filename)
	if err != nil {
		return nil, stats, err
	}
	ans := make(mutation.Samples)
	for i := range records {
		m, err := FromMaf(records[i], ref, pad)
		if err != nil {
			log.Debugf("skipping record in %s: %s", filename, err)
			stats.Skipped++
			continue
		}
		ans[records[i].Sample] = append(ans[records[i].Sample], m)
		stats.Loaded++
	}
	log.Infof("maf input: %s", stats)
	return ans, stats, nil
}
