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

// Package ptoh derives a normalized phage-to-host depth ratio for each
// prophage segment of one sample and classifies the segment's sequencing
// quality and biological activity.
//
// The pipeline runs in two stages.  Stage 1 (Count) intersects per-position
// depth observations with marker-gene and phage-segment intervals, writing
// per-region statistics plus a single host-normalization row.  Stage 2
// (Ratio) joins the phage statistics with the host median and writes the
// classified PtoH table.  Stage 2 only consumes stage-1 files, so the stages
// can run as separate processes.
package ptoh

import (
	"context"
	"os"
	"path/filepath"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/phagelab/prophage/depth"
	"github.com/phagelab/prophage/interval"
)

// CountOpts adjusts stage-1 behavior.
type CountOpts struct {
	// Parallelism bounds the number of simultaneous region-aggregation jobs;
	// 0 means runtime.NumCPU().
	Parallelism int
}

// DefaultCountOpts is the CountOpts used when the caller passes nil.
var DefaultCountOpts = CountOpts{
	Parallelism: 0,
}

// GeneStats pairs a marker gene with its aggregated depth statistics.
type GeneStats struct {
	Gene  interval.Gene
	Stats depth.RegionStats
}

// PhageStats pairs a phage segment with its aggregated depth statistics.
type PhageStats struct {
	Phage interval.Phage
	Stats depth.RegionStats
}

// Count runs stage 1 for one sample: it loads the phage-info, gene
// annotation and depth files, aggregates depth over every gene and phage
// region, computes the host normalization, and writes
// marker_gene_counts.tsv, phage_counts.tsv and host_counts.tsv into outDir.
//
// The host normalization is computed only after every gene aggregation has
// completed; gene aggregations themselves run in parallel since each one
// only reads the shared index.
func Count(ctx context.Context, phageInfoPath, genePath, depthPath, outDir string, opts *CountOpts) error {
	if opts == nil {
		opts = &DefaultCountOpts
	}

	phageRows, err := interval.ReadPhageInfoFromPath(ctx, phageInfoPath)
	if err != nil {
		return err
	}
	if len(phageRows) == 0 {
		return errors.E("ptoh.Count: phage-info file", phageInfoPath, "has no rows; sample identity missing")
	}
	genes, err := interval.ReadGenesFromPath(ctx, genePath)
	if err != nil {
		return err
	}
	if len(genes) == 0 {
		return errors.E("ptoh.Count: gene annotation", genePath, "has no rows; host normalization undefined")
	}
	observations, err := depth.ReadObservationsFromPath(ctx, depthPath)
	if err != nil {
		return err
	}
	index := depth.NewIndex(observations)

	geneRegions := make([]depth.Region, len(genes))
	for i, gene := range genes {
		geneRegions[i] = depth.Region{Chrom: gene.Chrom, Start: gene.Start, Stop: gene.Stop}
	}
	geneRegionStats := index.AggregateRegions(geneRegions, opts.Parallelism)
	geneStats := make([]GeneStats, len(genes))
	for i := range genes {
		geneStats[i] = GeneStats{Gene: genes[i], Stats: geneRegionStats[i]}
	}

	var phages []interval.Phage
	for _, row := range phageRows {
		phages = append(phages, row.Segments()...)
	}
	phageRegions := make([]depth.Region, len(phages))
	for i, phage := range phages {
		phageRegions[i] = depth.Region{Chrom: phage.Chrom, Start: phage.Start, Stop: phage.Stop}
	}
	phageRegionStats := index.AggregateRegions(phageRegions, opts.Parallelism)
	phageStats := make([]PhageStats, len(phages))
	for i := range phages {
		phageStats[i] = PhageStats{Phage: phages[i], Stats: phageRegionStats[i]}
	}
	log.Printf("ptoh.Count: aggregated %d gene region(s), %d phage segment(s)", len(geneStats), len(phageStats))

	// All gene aggregations are complete at this point; the barrier the host
	// median depends on is the AggregateRegions return above.
	host, err := NormalizeHost(geneRegionStats, phageRows[0].HostGenome, phageRows[0].SRR)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0775); err != nil {
		return err
	}
	if err := writeGeneCounts(ctx, filepath.Join(outDir, GeneCountsName), geneStats); err != nil {
		return err
	}
	if err := writePhageCounts(ctx, filepath.Join(outDir, PhageCountsName), phageStats); err != nil {
		return err
	}
	if err := writeHostCounts(ctx, filepath.Join(outDir, HostCountsName), host); err != nil {
		return err
	}
	log.Printf("ptoh.Count: wrote %s, %s, %s under %s", GeneCountsName, PhageCountsName, HostCountsName, outDir)
	return nil
}
