package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/debemdeboas/quote-saver/internal/config"
)

const header = `# Quote Saver configuration example
# Copy this file to config.yaml and customize as needed.
# S3 credentials are read from QUOTES_S3_ACCESS_KEY_ID and
# QUOTES_S3_SECRET_ACCESS_KEY only.

`

// render returns the example config: the defaults as YAML under header.
func render() (string, error) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return header + string(yamlData), nil
}

func main() {
	output, err := render()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating YAML: %v\n", err)
		os.Exit(1)
	}

	outputFile := "config.example.yaml"
	if len(os.Args) > 1 {
		outputFile = os.Args[1]
	}

	if outputFile == "-" {
		fmt.Print(output)
		return
	}
	if err := os.WriteFile(outputFile, []byte(output), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated example config: %s\n", outputFile)
}
