package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker regenerate | worker classify <search-response.json> [category] [projectType]")
	}

	var err error
	switch os.Args[1] {
	case "regenerate":
		err = runRegenerate()
	case "classify":
		err = runClassify(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}
