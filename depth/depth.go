package depth

import (
	"bufio"
	"context"
	"io"
	"strconv"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/klauspost/compress/gzip"
	"github.com/phagelab/prophage/interval"
	"github.com/pkg/errors"
)

// PosType is the integer type used to represent genomic positions.
type PosType = interval.PosType

// Observation is one per-base depth measurement, as emitted by samtools
// depth: chromosome, 1-based position, read coverage at that position.
// Immutable once loaded.
type Observation struct {
	Chrom string
	Pos   PosType
	Depth float64
}

// getTokens splits curLine into at most len(tokens) fields, returning how
// many were found.  Every byte <= ' ' acts as a delimiter, so tabs and runs
// of spaces are handled alike.  The manual scan avoids the allocations of
// the standard string-split functions on these short rows.
func getTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// ReadObservations loads per-position depth rows from a headerless
// tab-delimited stream of (chromosome, position, depth).  Rows with a
// missing or unparseable position or depth are dropped, not fatal: depth
// files are produced by long pipelines and the occasional mangled row must
// not take down a whole sample.
func ReadObservations(reader io.Reader) ([]Observation, error) {
	scanner := bufio.NewScanner(reader)

	var tokens [3][]byte
	var observations []Observation
	nDropped := 0
	for scanner.Scan() {
		curLine := scanner.Bytes()
		nToken := getTokens(tokens[:], curLine)
		if nToken == 0 {
			continue
		}
		if nToken != 3 {
			nDropped++
			continue
		}
		// gunsafe.BytesToString is safe here: the string does not outlive
		// the strconv call, and Bytes() avoids the per-line allocation that
		// Text() would force.
		pos, err := strconv.Atoi(gunsafe.BytesToString(tokens[1]))
		if err != nil {
			nDropped++
			continue
		}
		depthVal, err := strconv.ParseFloat(gunsafe.BytesToString(tokens[2]), 64)
		if err != nil {
			nDropped++
			continue
		}
		observations = append(observations, Observation{
			// tokens[0] points into the scanner's buffer; copy before keeping.
			Chrom: string(tokens[0]),
			Pos:   PosType(pos),
			Depth: depthVal,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if nDropped != 0 {
		log.Printf("depth loaded, %d observation(s), %d malformed row(s) dropped", len(observations), nDropped)
	} else {
		log.Printf("depth loaded, %d observation(s)", len(observations))
	}
	return observations, nil
}

// ReadObservationsFromPath is a wrapper for ReadObservations that takes a
// path instead of an io.Reader, transparently decompressing gzipped input.
func ReadObservationsFromPath(ctx context.Context, path string) (observations []Observation, err error) {
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		return nil, errors.Wrapf(err, "open depth file %s", path)
	}
	defer func() {
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(infile.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return nil, errors.Wrapf(err, "gzip depth file %s", path)
		}
	}
	return ReadObservations(reader)
}
