package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/uevr-go/uevr/generator/generator"
)

var (
	fileName   string
	configPath *string
	outputPath *string
	schema     *bool
	verbose    *bool
)

func init() {
	fileName = os.Getenv("GOFILE")
	configPath = flag.String("config", "types.yaml", "the type table to generate bindings from")
	outputPath = flag.String("output", "", "the file to write, derived from the config name when empty")
	schema = flag.Bool("schema", false, "print the JSON schema of the config format and exit")
	verbose = flag.Bool("v", false, "enable verbose logging")
}

func Usage() {
	fmt.Fprintf(os.Stderr, "Usage of uevr/generator:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = Usage
	flag.Parse()

	if *schema {
		data, err := generator.Schema()
		if err != nil {
			log.Fatal(err)
		}

		_, _ = os.Stdout.Write(data)
		return
	}

	dir, err := filepath.Abs(".")
	if err != nil {
		panic(err)
	}

	err = generator.Generate(dir, fileName, *configPath, *outputPath, *verbose)
	if err != nil {
		log.Fatal(err)
	}
}
