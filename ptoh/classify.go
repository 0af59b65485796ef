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

	"github.com/grailbio/base/errors"
	"github.com/phagelab/prophage/depth"
	"github.com/phagelab/prophage/interval"
)

const (
	// minUsableDepth is the coverage floor for the quality flag: a segment
	// whose per-base mean OR whose host median is strictly below this is
	// flagged "low".  Exactly 10 still counts as "high".
	minUsableDepth = 10.0
	// activeRatio and inactiveRatio split the PtoH line into three
	// gap-free, non-overlapping classes: [1.5, inf) active, (-inf, 1)
	// inactive, [1, 1.5) low.
	activeRatio   = 1.5
	inactiveRatio = 1.0
)

// Quality flag values.
const (
	QualityLow  = "low"
	QualityHigh = "high"
)

// Activity classification values.
const (
	ActivityActive   = "active"
	ActivityInactive = "inactive"
	ActivityLow      = "low"
)

// ErrUndefinedRatio is returned by Classify when the host median is zero.
// The offending record still carries a NaN PtoH so the caller can report it;
// the ratio is never silently coerced to 0 or infinity.
var ErrUndefinedRatio = errors.E("ptoh: median_of_MG is zero, PtoH undefined")

// Record is one classified phage segment: the segment's aggregated depth
// statistics joined with its sample's host normalization.
type Record struct {
	SampleID    string
	PhageID     string
	Chrom       string
	Start       interval.PosType
	Stop        interval.PosType
	Total       float64
	PerBaseMean float64
	MedianOfMG  float64
	PtoH        float64
	Quality     string
	Activity    string
}

func qualityOf(perBaseMean, medianOfMG float64) string {
	if (perBaseMean < minUsableDepth) || (medianOfMG < minUsableDepth) {
		return QualityLow
	}
	return QualityHigh
}

func activityOf(ptoH float64) string {
	switch {
	case ptoH >= activeRatio:
		return ActivityActive
	case ptoH < inactiveRatio:
		return ActivityInactive
	default:
		return ActivityLow
	}
}

// Classify joins one phage segment's RegionStats with the sample's HostNorm
// into a Record.  One-shot and stateless: each segment is classified
// independently.
//
// When host.MedianOfMG is zero the ratio is undefined; Classify fills in a
// NaN PtoH, leaves Activity empty, and returns ErrUndefinedRatio alongside
// the record.  The quality flag is still meaningful (a zero host median is
// always "low" coverage).
func Classify(phage interval.Phage, regionStats depth.RegionStats, host HostNorm) (Record, error) {
	record := Record{
		SampleID:    host.SampleID,
		PhageID:     phage.PhageID,
		Chrom:       phage.Chrom,
		Start:       phage.Start,
		Stop:        phage.Stop,
		Total:       regionStats.Total,
		PerBaseMean: regionStats.PerBaseMean,
		MedianOfMG:  host.MedianOfMG,
		Quality:     qualityOf(regionStats.PerBaseMean, host.MedianOfMG),
	}
	if host.MedianOfMG == 0 {
		record.PtoH = math.NaN()
		return record, ErrUndefinedRatio
	}
	record.PtoH = regionStats.PerBaseMean / host.MedianOfMG
	record.Activity = activityOf(record.PtoH)
	return record, nil
}
