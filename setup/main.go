package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"sort"
	"strings"
)

// Generates a setup_env.sh script that exports the service's JSON config
// env vars from a directory of config files. The service config is split
// into a service.json plus one json file per search family; each file
// becomes a VIRGO4_SEARCH_PARAMS_WS_JSON_* var, loaded in sorted order.
func main() {
	var cfgBase string
	var port string
	flag.StringVar(&cfgBase, "dir", "", "local directory containing service.json and families/*.json")
	flag.StringVar(&port, "port", "8080", "port to run the service on")
	flag.Parse()

	if cfgBase == "" {
		log.Fatal("dir is required")
	}

	type cfgData struct {
		File   string
		EnvVar string
	}

	cfgFiles := []cfgData{
		{File: "service.json", EnvVar: "VIRGO4_SEARCH_PARAMS_WS_JSON_01"},
	}

	entries, err := os.ReadDir(path.Join(cfgBase, "families"))
	if err != nil {
		log.Fatal(err.Error())
	}

	var names []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for i, name := range names {
		cfgFiles = append(cfgFiles, cfgData{
			File:   path.Join("families", name),
			EnvVar: fmt.Sprintf("VIRGO4_SEARCH_PARAMS_WS_JSON_%02d", i+2),
		})
	}

	log.Printf("Generate service config from %s", cfgBase)

	out := make([]string, 0)
	for _, cf := range cfgFiles {
		tgtFile := path.Join(cfgBase, cf.File)
		jsonBytes, err := os.ReadFile(tgtFile)
		if err != nil {
			log.Fatal(err.Error())
		}

		json := string(jsonBytes)

		if cf.File == "service.json" {
			json = strings.Replace(json, "8080", port, 1)
		}

		// single-quote for the shell, escaping embedded single quotes
		quoted := strings.ReplaceAll(json, `'`, `'\''`)
		out = append(out, fmt.Sprintf("export %s='%s'", cf.EnvVar, quoted))
	}

	outF, err := os.Create("setup_env.sh")
	if err != nil {
		log.Fatal(err.Error())
	}
	outF.WriteString("#!/bin/bash\n\n")
	outF.WriteString(strings.Join(out, "\n"))
	outF.WriteString("\n")
	outF.Close()
	os.Chmod("setup_env.sh", 0777)
}
