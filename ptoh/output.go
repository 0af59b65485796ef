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
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
)

// Stage-1 and stage-2 file schemas.  Column names and order are fixed;
// downstream tooling selects columns by header name.

// GeneCountsName etc. are the fixed basenames of the stage-1 output files.
const (
	GeneCountsName  = "marker_gene_counts.tsv"
	PhageCountsName = "phage_counts.tsv"
	HostCountsName  = "host_counts.tsv"
)

// PhageCountsRow is one row of phage_counts.tsv.
type PhageCountsRow struct {
	PhageID      string  `tsv:"Phage_Id"`
	Chrom        string  `tsv:"Chromosome"`
	Start        int64   `tsv:"Start"`
	Stop         int64   `tsv:"Stop"`
	Total        float64 `tsv:"Total_Counts"`
	PerBaseMean  float64 `tsv:"Per_Counts"`
	MedianDepth  float64 `tsv:"Median_Depth"`
	RegionLength int64   `tsv:"Region_Length"`
}

type hostCountsRow struct {
	SampleID   string  `tsv:"Sample_ID"`
	MedianOfMG float64 `tsv:"Median_of_MG"`
}

func writeGeneCounts(ctx context.Context, path string, geneStats []GeneStats) (err error) {
	var dst file.File
	if dst, err = file.Create(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, dst, &err)
	w := tsv.NewWriter(dst.Writer(ctx))
	w.WriteString("Gene Id\tTotal_Counts\tPer_Counts\tMedian_Depth\tRegion_Length")
	if err = w.EndLine(); err != nil {
		return
	}
	for _, gs := range geneStats {
		w.WriteString(gs.Gene.ID)
		w.WriteFloat64(gs.Stats.Total, 'g', -1)
		w.WriteFloat64(gs.Stats.PerBaseMean, 'g', -1)
		w.WriteFloat64(gs.Stats.Median, 'g', -1)
		w.WriteInt64(int64(gs.Stats.Length))
		if err = w.EndLine(); err != nil {
			return
		}
	}
	return w.Flush()
}

func writePhageCounts(ctx context.Context, path string, phageStats []PhageStats) (err error) {
	var dst file.File
	if dst, err = file.Create(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, dst, &err)
	w := tsv.NewWriter(dst.Writer(ctx))
	w.WriteString("Phage_Id\tChromosome\tStart\tStop\tTotal_Counts\tPer_Counts\tMedian_Depth\tRegion_Length")
	if err = w.EndLine(); err != nil {
		return
	}
	for _, ps := range phageStats {
		w.WriteString(ps.Phage.PhageID)
		w.WriteString(ps.Phage.Chrom)
		w.WriteInt64(int64(ps.Phage.Start))
		w.WriteInt64(int64(ps.Phage.Stop))
		w.WriteFloat64(ps.Stats.Total, 'g', -1)
		w.WriteFloat64(ps.Stats.PerBaseMean, 'g', -1)
		w.WriteFloat64(ps.Stats.Median, 'g', -1)
		w.WriteInt64(int64(ps.Stats.Length))
		if err = w.EndLine(); err != nil {
			return
		}
	}
	return w.Flush()
}

func writeHostCounts(ctx context.Context, path string, host HostNorm) (err error) {
	var dst file.File
	if dst, err = file.Create(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, dst, &err)
	w := tsv.NewRowWriter(dst.Writer(ctx))
	row := hostCountsRow{SampleID: host.SampleID, MedianOfMG: host.MedianOfMG}
	if err = w.Write(&row); err != nil {
		return
	}
	return w.Flush()
}

// ReadPhageCounts reads a stage-1 phage_counts.tsv.
func ReadPhageCounts(ctx context.Context, path string) (rows []PhageCountsRow, err error) {
	var src file.File
	if src, err = file.Open(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, src, &err)
	r := tsv.NewReader(src.Reader(ctx))
	r.HasHeaderRow = true
	r.RequireParseAllColumns = true
	for {
		var row PhageCountsRow
		if err = r.Read(&row); err != nil {
			if err == io.EOF {
				err = nil
				break
			}
			return
		}
		rows = append(rows, row)
	}
	return
}

// ReadHostCounts reads a stage-1 host_counts.tsv.  Only the first row is
// authoritative; a file with no rows at all is an error since the sample
// identity and normalization are then missing.
func ReadHostCounts(ctx context.Context, path string) (host HostNorm, err error) {
	var src file.File
	if src, err = file.Open(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, src, &err)
	r := tsv.NewReader(src.Reader(ctx))
	r.HasHeaderRow = true
	r.RequireParseAllColumns = true
	var row hostCountsRow
	if err = r.Read(&row); err != nil {
		if err == io.EOF {
			err = errors.E("ptoh.ReadHostCounts: no host row in", path)
		}
		return
	}
	host = HostNorm{SampleID: row.SampleID, MedianOfMG: row.MedianOfMG}
	return
}

func writeRecords(ctx context.Context, path string, records []Record, withActivity bool) (err error) {
	var dst file.File
	if dst, err = file.Create(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, dst, &err)
	w := tsv.NewWriter(dst.Writer(ctx))
	w.WriteString("Sample_ID\tPhage_Id\tChromosome\tStart\tStop\tTotal_Counts\tPer_Counts\tMedian_of_MG\tPtoH\tQuality")
	if withActivity {
		w.WriteString("Activity")
	}
	if err = w.EndLine(); err != nil {
		return
	}
	for _, record := range records {
		w.WriteString(record.SampleID)
		w.WriteString(record.PhageID)
		w.WriteString(record.Chrom)
		w.WriteInt64(int64(record.Start))
		w.WriteInt64(int64(record.Stop))
		w.WriteFloat64(record.Total, 'g', -1)
		w.WriteFloat64(record.PerBaseMean, 'g', -1)
		w.WriteFloat64(record.MedianOfMG, 'g', -1)
		w.WriteFloat64(record.PtoH, 'g', -1)
		w.WriteString(record.Quality)
		if withActivity {
			w.WriteString(record.Activity)
		}
		if err = w.EndLine(); err != nil {
			return
		}
	}
	return w.Flush()
}
