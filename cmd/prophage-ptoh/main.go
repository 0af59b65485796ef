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

var activity = flag.Bool("activity", ptoh.DefaultRatioOpts.Activity, "Append the Activity classification column to the output")

func prophagePtoHUsage() {
	fmt.Printf("Usage: %s [OPTIONS] phage_counts.tsv host_counts.tsv output.tsv\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = prophagePtoHUsage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 3 {
		flag.Usage()
		log.Fatalf("Expected 3 positional arguments (phage_counts, host_counts, output), got %d", flag.NArg())
	}
	positionalArgs := flag.Args()
	ctx := vcontext.Background()
	opts := ptoh.RatioOpts{
		Activity: *activity,
	}
	if err := ptoh.Ratio(ctx, positionalArgs[0], positionalArgs[1], positionalArgs[2], &opts); err != nil {
		log.Panicf("%v", err)
	}
	log.Debug.Printf("exiting")
}
