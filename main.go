package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/kwv/geogrid/grid"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	configFile  = flag.String("config", "config.yaml", "Path to configuration file")
	reduceOnly  = flag.Bool("reduce-only", false, "Block-reduce the dataset and exit without gridding")
	printRegion = flag.Bool("print-region", false, "Print the geographic data region and exit")
	outputFile  = flag.String("output", "", "Override the configured grid CSV output path")
)

func main() {
	flag.Parse()
	fmt.Printf("geogrid version: %s\n", Version)

	config, err := grid.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if *printRegion {
		data, err := grid.ReadScatteredCSV(config.Input)
		if err != nil {
			log.Fatalf("Error reading dataset: %v", err)
		}
		region, err := grid.BoundingRegion(data.Lon, data.Lat)
		if err != nil {
			log.Fatalf("Error computing region: %v", err)
		}
		fmt.Printf("Data region in degrees: W=%g E=%g S=%g N=%g (%d points)\n",
			region.West, region.East, region.South, region.North, len(data.Lon))
		return
	}

	app := NewApp(config)
	app.OutputOverride = *outputFile

	if *reduceOnly {
		if err := app.RunReduceOnly(); err != nil {
			log.Fatalf("Error reducing: %v", err)
		}
		return
	}

	if err := app.Run(); err != nil {
		log.Fatalf("Error running pipeline: %v", err)
	}
}
