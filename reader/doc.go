// Package reader loads tabular source files into query datasets.
//
// CSV is the primary format; Apache Parquet files are read through
// github.com/parquet-go/parquet-go and flattened to text cells. Either may
// be compressed with gzip, zstd, lz4, snappy or brotli, detected from the
// file suffix.
//
// # Basic Usage
//
// Reading a single file:
//
//	ds, err := reader.Load("data.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(ds.Columns(), ds.Len())
//
// Holding the file open explicitly:
//
//	r, err := reader.NewReader("data.tsv.zst", reader.WithDelimiter('\t'))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	ds, err := r.ReadAll()
//
// # Multi-file Operations
//
// Reading multiple files using glob patterns:
//
//	ds, err := reader.LoadGlob("data/2024-*.csv")
//
// The columns of all files are merged in first-seen order and every row
// gets a "_file" column with its source path.
//
// # Malformed Lines
//
// A CSV line with fewer fields than the header produces a row that lacks
// the trailing columns. Surplus fields of a longer line are kept in the
// row's overflow slot (query.Row.Extra), never as named columns.
//
// # Errors
//
// Missing or unreadable files return a *SourceError matching
// ErrSourceUnavailable. Decoding errors are wrapped with the file path.
package reader
