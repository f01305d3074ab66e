package main

import (
	"log"
	"os"

	"github.com/tkabila/shajara/core"
)

func main() {
	conf, err := core.NewConfig()
	if err != nil {
		log.Fatal(err)
	}

	cli := &commandLine{conf: conf}
	if err := cli.run(os.Args); err != nil && err != errHelp {
		log.Fatal(err)
	}
}
