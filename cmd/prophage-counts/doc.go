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

/*
Given a phage-info file, a gene annotation TSV and a samtools-depth file for
one sample, prophage-counts aggregates per-base depth over every marker-gene
and prophage-segment interval and writes three TSVs into the output
directory: marker_gene_counts.tsv, phage_counts.tsv and host_counts.tsv.
The host_counts.tsv row (median of per-gene mean depths) is the denominator
consumed by prophage-ptoh.

Sample usage:
prophage-counts \
    phage_info.txt \
    gene_annotation.tsv \
    sample.depth \
    ./result_dir
*/
package main
