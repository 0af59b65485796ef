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
prophage-ptoh joins a phage_counts.tsv with its sample's host_counts.tsv
(both produced by prophage-counts), computes the phage-to-host depth ratio
PtoH = Per_Counts / Median_of_MG for every segment, and writes PtoH.tsv with
a coverage quality flag per segment.  Pass -activity to also emit the
three-way activity classification column.

Sample usage:
prophage-ptoh \
    ./result_dir/phage_counts.tsv \
    ./result_dir/host_counts.tsv \
    ./result_dir/PtoH.tsv
*/
package main
