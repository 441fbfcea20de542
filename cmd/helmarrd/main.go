package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/helmarr/helmarr/internal/config"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to config file (default: discovered)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("helmarrd %s\n", version)
		os.Exit(0)
	}

	path := *configPath
	if path == "" {
		discovered, err := config.Discover()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		path = discovered
	}

	if err := runServer(path); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
