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
	"math"
	"testing"

	"github.com/phagelab/prophage/depth"
	"github.com/phagelab/prophage/interval"
	"github.com/stretchr/testify/assert"
)

func TestSampleID(t *testing.T) {
	assert.Equal(t, "Ecoli_K12--SRR123", SampleID("Ecoli_K12", "SRR123"))
}

func TestQualityBoundary(t *testing.T) {
	tests := []struct {
		perBaseMean float64
		medianOfMG  float64
		want        string
	}{
		// Equality to 10 yields "high"; the comparisons are strict
		// less-than.
		{10.0, 50, QualityHigh},
		{9.999, 50, QualityLow},
		{50, 10.0, QualityHigh},
		{50, 9.999, QualityLow},
		{10.0, 10.0, QualityHigh},
		{5, 5, QualityLow},
	}
	for _, tt := range tests {
		phage := interval.Phage{PhageID: "phA", Chrom: "chr1", Start: 1, Stop: 10}
		stats := depth.RegionStats{PerBaseMean: tt.perBaseMean, Length: 10}
		host := HostNorm{SampleID: "h--s", MedianOfMG: tt.medianOfMG}
		record, err := Classify(phage, stats, host)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, record.Quality, "per=%v median=%v", tt.perBaseMean, tt.medianOfMG)
	}
}

func TestActivityBoundary(t *testing.T) {
	// With a host median of 1, PtoH equals the per-base mean, so the
	// boundary values can be exercised directly.
	tests := []struct {
		ptoH float64
		want string
	}{
		{1.5, ActivityActive},
		{1.4999, ActivityLow},
		{1.0, ActivityLow},
		{0.9999, ActivityInactive},
		{0, ActivityInactive},
		{3, ActivityActive},
	}
	for _, tt := range tests {
		phage := interval.Phage{PhageID: "phA", Chrom: "chr1", Start: 1, Stop: 10}
		stats := depth.RegionStats{PerBaseMean: tt.ptoH, Length: 10}
		host := HostNorm{SampleID: "h--s", MedianOfMG: 1}
		record, err := Classify(phage, stats, host)
		assert.NoError(t, err)
		assert.Equal(t, tt.ptoH, record.PtoH)
		assert.Equal(t, tt.want, record.Activity, "ptoH=%v", tt.ptoH)
	}
}

func TestClassifyUndefinedRatio(t *testing.T) {
	phage := interval.Phage{PhageID: "phA", Chrom: "chr1", Start: 1, Stop: 10}
	stats := depth.RegionStats{Total: 120, PerBaseMean: 12, Length: 10}
	host := HostNorm{SampleID: "h--s", MedianOfMG: 0}
	record, err := Classify(phage, stats, host)
	assert.Equal(t, ErrUndefinedRatio, err)
	assert.True(t, math.IsNaN(record.PtoH))
	assert.Equal(t, "", record.Activity)
	// A zero host median always means insufficient coverage.
	assert.Equal(t, QualityLow, record.Quality)
	// The record is still usable for reporting.
	assert.Equal(t, "phA", record.PhageID)
	assert.Equal(t, 12.0, record.PerBaseMean)
}
