package interval

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/grailbio/base/tsv"
)

// PosType is the type used to represent interval coordinates.  int32 should
// be wide enough for some time to come, since that's what BAM is limited to.
type PosType int32

// PosTypeMax is the maximum value that can be represented by a PosType.
const PosTypeMax = math.MaxInt32

// Gene is a host marker-gene interval.  Chrom is derived from the gene ID:
// annotation pipelines upstream of this one emit IDs of the form
// "<contig>_<ordinal>", so the substring before the first '_' names the
// chromosome the gene lives on.
type Gene struct {
	ID    string
	Chrom string
	Start PosType
	Stop  PosType
}

// Phage is a single prophage segment.  Multiple segments may share a
// chromosome.
type Phage struct {
	PhageID string
	Chrom   string
	Start   PosType
	Stop    PosType
}

// PhageInfo is one row of a phage-info file: five tab-delimited columns with
// no header, where Positions and PhageIDs are parallel comma-joined lists.
type PhageInfo struct {
	SRR        string
	HostGenome string
	Chrom      string
	Positions  string
	PhageIDs   string
}

// chromOfGeneID returns the substring of id before the first '_', or all of
// id when it contains no underscore.
func chromOfGeneID(id string) string {
	if pos := strings.IndexByte(id, '_'); pos != -1 {
		return id[:pos]
	}
	return id
}

// ParseRange parses a "start-stop" range string into a coordinate pair.  It
// errors out on anything that does not split into exactly two integers; the
// caller decides whether that's fatal (it isn't for phage-info lists, where
// malformed entries are skipped).
func ParseRange(s string) (start, stop PosType, err error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		err = fmt.Errorf("interval.ParseRange: %q does not split into two fields", s)
		return
	}
	var parsedStart, parsedStop int
	if parsedStart, err = strconv.Atoi(parts[0]); err != nil {
		return
	}
	if parsedStop, err = strconv.Atoi(parts[1]); err != nil {
		return
	}
	if (parsedStart > PosTypeMax) || (parsedStop > PosTypeMax) {
		err = fmt.Errorf("interval.ParseRange: coordinate in %q out of range", s)
		return
	}
	start = PosType(parsedStart)
	stop = PosType(parsedStop)
	return
}

// ReadGenes reads a gene annotation TSV.  The file must have a header row
// with at least the "Gene Id", "Start Position" and "Stop Position" columns;
// any other columns are ignored.  Unlike depth files, annotations are trusted
// input, so an unparseable coordinate is an error rather than a dropped row.
func ReadGenes(r io.Reader) ([]Gene, error) {
	tsvReader := tsv.NewReader(r)
	tsvReader.HasHeaderRow = true
	tsvReader.UseHeaderNames = true

	var genes []Gene
	for {
		var row struct {
			ID    string `tsv:"Gene Id"`
			Start int64  `tsv:"Start Position"`
			Stop  int64  `tsv:"Stop Position"`
		}
		if err := tsvReader.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		genes = append(genes, Gene{
			ID:    row.ID,
			Chrom: chromOfGeneID(row.ID),
			Start: PosType(row.Start),
			Stop:  PosType(row.Stop),
		})
	}
	return genes, nil
}

// ReadPhageInfo reads all rows of a phage-info file.  The first row is the
// authoritative source of the sample identity (SRR + host genome); callers
// must not average or merge identity fields across rows.
func ReadPhageInfo(r io.Reader) ([]PhageInfo, error) {
	tsvReader := tsv.NewReader(r)

	var rows []PhageInfo
	for {
		var row PhageInfo
		if err := tsvReader.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Segments zips the PhageIDs and Positions lists of one phage-info row into
// Phage intervals.  A position entry that ParseRange rejects causes just that
// segment to be skipped; excess entries on the longer list are ignored.
func (p PhageInfo) Segments() []Phage {
	ids := strings.Split(p.PhageIDs, ",")
	ranges := strings.Split(p.Positions, ",")
	n := len(ids)
	if len(ranges) < n {
		n = len(ranges)
	}
	segments := make([]Phage, 0, n)
	for i := 0; i < n; i++ {
		start, stop, err := ParseRange(ranges[i])
		if err != nil {
			continue
		}
		segments = append(segments, Phage{
			PhageID: ids[i],
			Chrom:   p.Chrom,
			Start:   start,
			Stop:    stop,
		})
	}
	return segments
}
