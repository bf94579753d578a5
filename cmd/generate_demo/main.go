// Command generate_demo writes a sample book archive built from public domain titles.
// Usage: go run ./cmd/generate_demo [-out path/to/books.zip]
package main

import (
	"flag"
	"log"

	"github.com/mrlokans/zipshelf/internal/config"
	"github.com/mrlokans/zipshelf/internal/demo"
)

func main() {
	out := flag.String("out", config.DefaultZipPath, "path of the archive to write")
	withNoise := flag.Bool("noise", true, "add a malformed document and a non-JSON file")
	flag.Parse()

	log.Printf("Generating demo archive at %s...", *out)

	entries, err := demo.Entries(demo.Catalogue())
	if err != nil {
		log.Fatalf("Failed to encode demo books: %v", err)
	}
	if *withNoise {
		entries = append(entries,
			demo.Entry{Name: "library/broken.json", Content: `{"name": "Half a record"`},
			demo.Entry{Name: "library/README.txt", Content: "Sample library for zipshelf.\n"},
		)
	}

	if err := demo.WriteArchive(*out, entries); err != nil {
		log.Fatalf("Failed to write demo archive: %v", err)
	}

	log.Printf("Wrote %d files to %s", len(entries), *out)
}
