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
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/phagelab/prophage/depth"
)

func geneStatsWithMeans(means ...float64) []depth.RegionStats {
	stats := make([]depth.RegionStats, len(means))
	for i, mean := range means {
		stats[i] = depth.RegionStats{PerBaseMean: mean, Length: 1, Total: mean}
	}
	return stats
}

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		name  string
		means []float64
		want  float64
	}{
		{"odd", []float64{30, 10, 20}, 20},
		{"even", []float64{1, 2, 3, 4}, 2.5},
		{"single", []float64{7.5}, 7.5},
		// Median of per-gene means, not of the flattened depths: one huge
		// gene contributes one value, same as every other gene.
		{"robustToOutlier", []float64{5, 5, 5, 5, 1000}, 5},
	}
	for _, tt := range tests {
		host, err := NormalizeHost(geneStatsWithMeans(tt.means...), "Ecoli_K12", "SRR123")
		expect.NoError(t, err, tt.name)
		expect.EQ(t, host.MedianOfMG, tt.want, tt.name)
		expect.EQ(t, host.SampleID, "Ecoli_K12--SRR123", tt.name)
	}
}

func TestNormalizeHostEmpty(t *testing.T) {
	_, err := NormalizeHost(nil, "Ecoli_K12", "SRR123")
	expect.True(t, err != nil)
}
