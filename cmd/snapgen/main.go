// Command snapgen writes a domain bounds file and a sequence of iter*
// snapshot directories for trying out the viewer.
package main

import (
	"flag"
	"log"
	"time"
)

func main() {
	var opts genOptions
	flag.StringVar(&opts.Root, "root", "output/save", "snapshot root directory")
	flag.StringVar(&opts.Bounds, "bounds", "input/lengths.npy", "domain lengths file")
	flag.Float64Var(&opts.Lx, "lx", 4, "domain length along x")
	flag.Float64Var(&opts.Ly, "ly", 4, "domain length along y")
	flag.IntVar(&opts.N, "n", 32, "number of particles")
	flag.Float64Var(&opts.Radius, "radius", 0.05, "particle radius")
	flag.IntVar(&opts.Frames, "frames", 100, "number of snapshots")
	flag.Float64Var(&opts.DT, "dt", 0.02, "time between snapshots")
	flag.Int64Var(&opts.Seed, "seed", time.Now().UnixNano(), "random seed")
	flag.BoolVar(&opts.Compress, "zstd", false, "zstd compress the arrays")
	flag.Parse()

	if err := generate(opts); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d snapshots of %d particles to %s", opts.Frames, opts.N, opts.Root)
}
