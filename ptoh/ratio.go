// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package ptoh

import (
	"context"
	"os"
	"path/filepath"

	"github.com/grailbio/base/log"
	"github.com/phagelab/prophage/depth"
	"github.com/phagelab/prophage/interval"
)

// RatioOpts adjusts stage-2 behavior.
type RatioOpts struct {
	// Activity appends the Activity column to the output.  The historical
	// PtoH.tsv schema ends at Quality, so retaining Activity is opt-in
	// rather than a silent schema change.
	Activity bool
}

// DefaultRatioOpts is the RatioOpts used when the caller passes nil.
var DefaultRatioOpts = RatioOpts{}

// Ratio runs stage 2: it reads a stage-1 phage_counts.tsv and
// host_counts.tsv, classifies every phage segment against the host
// normalization, and writes the PtoH table to outPath.
//
// Records whose ratio is undefined (host median of zero) are written with a
// NaN PtoH and reported in the log; they do not fail the stage.
func Ratio(ctx context.Context, phageCountsPath, hostCountsPath, outPath string, opts *RatioOpts) error {
	if opts == nil {
		opts = &DefaultRatioOpts
	}

	host, err := ReadHostCounts(ctx, hostCountsPath)
	if err != nil {
		return err
	}
	rows, err := ReadPhageCounts(ctx, phageCountsPath)
	if err != nil {
		return err
	}

	records := make([]Record, 0, len(rows))
	nUndefined := 0
	for _, row := range rows {
		phage := interval.Phage{
			PhageID: row.PhageID,
			Chrom:   row.Chrom,
			Start:   interval.PosType(row.Start),
			Stop:    interval.PosType(row.Stop),
		}
		regionStats := depth.RegionStats{
			Total:       row.Total,
			PerBaseMean: row.PerBaseMean,
			Median:      row.MedianDepth,
			Length:      int(row.RegionLength),
		}
		record, cerr := Classify(phage, regionStats, host)
		if cerr == ErrUndefinedRatio {
			nUndefined++
		} else if cerr != nil {
			return cerr
		}
		records = append(records, record)
	}
	if nUndefined != 0 {
		log.Error.Printf("ptoh.Ratio: %d record(s) have undefined PtoH (median_of_MG is zero); written as NaN", nUndefined)
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0775); err != nil {
			return err
		}
	}
	if err := writeRecords(ctx, outPath, records, opts.Activity); err != nil {
		return err
	}
	log.Printf("ptoh.Ratio: wrote %d record(s) to %s", len(records), outPath)
	return nil
}
