// Package demo builds sample book archives for trying the render command and
// for tests.
package demo

import (
	"archive/zip"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Entry is one file stored in a demo archive.
type Entry struct {
	Name    string
	Content string
}

// Record is a book record as it appears in the JSON documents. Nil fields are
// left out so the renderer's fallbacks show up in the demo.
type Record struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// Document groups records into one JSON file.
type Document struct {
	Name    string
	Records []Record
}

// Entries encodes documents as archive entries. A document with exactly one
// record is stored as a bare object, as some exporters do.
func Entries(documents []Document) ([]Entry, error) {
	entries := make([]Entry, 0, len(documents))
	for _, doc := range documents {
		var value any = doc.Records
		if len(doc.Records) == 1 {
			value = doc.Records[0]
		}

		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", doc.Name, err)
		}
		entries = append(entries, Entry{Name: doc.Name, Content: string(data)})
	}
	return entries, nil
}

// WriteArchive writes entries to a new zip file at path, replacing any
// existing file. Entry names ending in "/" become directories.
func WriteArchive(path string, entries []Entry) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close archive: %w", closeErr)
		}
	}()

	w := zip.NewWriter(out)
	for _, entry := range entries {
		fw, err := w.Create(entry.Name)
		if err != nil {
			return fmt.Errorf("add %s: %w", entry.Name, err)
		}
		if _, err := fw.Write([]byte(entry.Content)); err != nil {
			return fmt.Errorf("write %s: %w", entry.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish archive: %w", err)
	}
	return nil
}
