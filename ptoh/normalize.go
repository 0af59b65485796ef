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
	"github.com/grailbio/base/errors"
	"github.com/montanaflynn/stats"
	"github.com/phagelab/prophage/depth"
)

// HostNorm is the single host-normalization statistic for one sample: the
// median of the per-base mean depths across all of the sample's marker
// genes.  Exactly one HostNorm exists per sample, and it must be computed
// from the complete gene set before any ratio is derived.
type HostNorm struct {
	SampleID   string
	MedianOfMG float64
}

// SampleID joins a host genome name and an SRR accession with a literal
// double hyphen, e.g. "Ecoli_K12--SRR123".
func SampleID(hostGenome, srr string) string {
	return hostGenome + "--" + srr
}

// NormalizeHost reduces the complete per-gene RegionStats sequence for one
// sample to its HostNorm.  The median is taken over per-gene means rather
// than over the flattened per-base depths; the two are different statistics
// and only the former is robust to a handful of very long genes.
//
// An empty geneStats slice leaves the median undefined and is an error;
// callers must supply at least one gene.
func NormalizeHost(geneStats []depth.RegionStats, hostGenome, srr string) (HostNorm, error) {
	if len(geneStats) == 0 {
		return HostNorm{}, errors.E("ptoh.NormalizeHost: no marker-gene regions to normalize against")
	}
	perBaseMeans := make([]float64, len(geneStats))
	for i, gs := range geneStats {
		perBaseMeans[i] = gs.PerBaseMean
	}
	median, err := stats.Median(perBaseMeans)
	if err != nil {
		return HostNorm{}, err
	}
	return HostNorm{SampleID: SampleID(hostGenome, srr), MedianOfMG: median}, nil
}
