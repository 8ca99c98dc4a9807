package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/mendable-io/jsonmend"
)

func readDoc(path string, useYAML bool) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if useYAML {
		err = yaml.Unmarshal(data, &doc)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func run(leftPath, rightPath string, useYAML bool) error {
	left, err := readDoc(leftPath, useYAML)
	if err != nil {
		return err
	}
	right, err := readDoc(rightPath, useYAML)
	if err != nil {
		return err
	}

	patch, err := jsonmend.Diff(left, right)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	return encoder.Encode(patch)
}

func main() {
	useYAML := flag.Bool("yaml", false, "read the documents as YAML")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Printf("usage: jmdiff [-yaml] left.json right.json\n")
		return
	}

	err := run(flag.Arg(0), flag.Arg(1), *useYAML)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
