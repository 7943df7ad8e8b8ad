// cmd/seedcheck validates seed files without touching a database.
package main

import (
	"flag"
	"fmt"
	"os"

	"clubhouse/seed"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: seedcheck FILE...")
	}
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	exitCode := 0
	for _, path := range files {
		f, err := seed.Load(path)
		if err != nil {
			fmt.Printf("%s: %v\n", path, err)
			exitCode = 1
			continue
		}

		problems := seed.Check(f)
		for _, p := range problems {
			fmt.Printf("%s: %s\n", path, p)
		}
		if len(problems) > 0 {
			exitCode = 1
			continue
		}
		fmt.Printf("%s: OK\n", path)
	}
	os.Exit(exitCode)
}
