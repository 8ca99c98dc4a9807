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

func readPatch(path string) (jsonmend.Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var patch jsonmend.Patch
	if err := json.Unmarshal(data, &patch); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return patch, nil
}

func run(docPath, patchPath string, useYAML bool) error {
	doc, err := readDoc(docPath, useYAML)
	if err != nil {
		return err
	}
	patch, err := readPatch(patchPath)
	if err != nil {
		return err
	}

	result, err := patch.Apply(doc)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	return encoder.Encode(result)
}

func main() {
	useYAML := flag.Bool("yaml", false, "read the document as YAML")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Printf("usage: jmpatch [-yaml] document.json patch.json\n")
		return
	}

	err := run(flag.Arg(0), flag.Arg(1), *useYAML)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
