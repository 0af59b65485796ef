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
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/phagelab/prophage/ptoh"
)

var parallelism = flag.Int("parallelism", ptoh.DefaultCountOpts.Parallelism, "Maximum number of simultaneous region-aggregation jobs; 0 = runtime.NumCPU()")

func prophageCountsUsage() {
	fmt.Printf("Usage: %s [OPTIONS] phage_info gene_annotation depth_file output_dir\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = prophageCountsUsage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 4 {
		flag.Usage()
		log.Fatalf("Expected 4 positional arguments (phage_info, gene_annotation, depth_file, output_dir), got %d", flag.NArg())
	}
	positionalArgs := flag.Args()
	ctx := vcontext.Background()
	opts := ptoh.CountOpts{
		Parallelism: *parallelism,
	}
	if err := ptoh.Count(ctx, positionalArgs[0], positionalArgs[1], positionalArgs[2], positionalArgs[3], &opts); err != nil {
		log.Panicf("%v", err)
	}
	log.Debug.Printf("exiting")
}
