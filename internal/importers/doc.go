// Package importers turns a book archive into rendered output.
//
// # Architecture
//
// The import pipeline follows a fixed flow:
//
//	Archive → CheckReadable → Extractor → ListRecursive → JSONLoader → Renderer → Display
//
// Every stage returns one value or an error. The first error stops the run; it is
// wrapped in a *StageError naming the stage and returned from Pipeline.Run, so the
// caller reports it exactly once.
//
// # Partial failures
//
// JSONLoader reads and parses every .json document independently. A document that
// cannot be read or is not valid JSON is logged as a warning and contributes no
// records; the run only fails when no document yields records at all (ErrNoValidData)
// or when the archive holds no .json documents (ErrNoDataFound).
//
// # Record shapes
//
// A document holding an array contributes each element as one record, a document
// holding an object contributes the object, anything else contributes nothing.
// Normalize then fills missing fields:
//
//	name        → "Unknown Book #<n>"  (n is the 1-based position across all documents)
//	price       → "N/A"
//	description → "(no description)"
//
// # Example Usage
//
//	loader := importers.NewJSONLoader(logger, m)
//	pipeline := importers.NewPipeline(archive.NewZipExtractor(0), loader, renderer, display, logger, m)
//	result, err := pipeline.Run(ctx, "./books.zip", "./Data/extracted")
package importers
