package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// runConfig is the optional YAML file given with -config. Each section maps RaceTrack field
// names to values, for example:
//
//	testSet:
//	  BuildID: "11101"
//	  Product: G11N_vCAC
//	testCase:
//	  Name: case1
//	  Feature: feature1
type runConfig struct {
	TestSet  map[string]string `yaml:"testSet"`
	TestCase map[string]string `yaml:"testCase"`
}

func loadRunConfig(path string) (runConfig, error) {
	var rc runConfig
	if path == "" {
		return rc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return rc, err
	}
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return rc, fmt.Errorf("malformed config file %s: %w", path, err)
	}
	return rc, nil
}
