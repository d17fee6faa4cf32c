// Package ingest reads vector architectural drawings from PDF files and
// produces per-sheet geometry and text in real-world feet.
//
// [Ingestor.Extract] opens a document, walks its pages, and converts each
// page's vector content (line segments, rectangles) and text runs into a
// [Sheet]. Page coordinates are scaled from PDF points to decimal feet using
// the sheet's detected scale annotation, falling back to the conventional
// 1/4" = 1'-0" architectural scale when no annotation is found; [UnitScale]
// records which path was taken.
//
// Sheets with no extractable vector content (scanned raster drawings, blank
// pages) are skipped and reported as [ExtractionError] values rather than
// failing the whole document.
package ingest
