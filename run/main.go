package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jbousquin/rbi"
	"github.com/maseology/mmio"
)

func main() {

	ctrlFP := "rbi.ctrl"
	if len(os.Args) > 1 {
		ctrlFP = os.Args[1]
	}

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap("\nRun complete.")

	println("load control file " + ctrlFP)
	cfg, err := rbi.LoadRunConfig(ctrlFP)
	if err != nil {
		log.Fatalf(" %v", err)
	}

	println("scoring benefits..")
	if err := rbi.Run(cfg); err != nil {
		log.Fatalf(" %v", err)
	}
}
