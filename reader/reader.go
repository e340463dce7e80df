package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vegasq/csvq/query"
)

// Format is the encoding of a source file
type Format int

const (
	FormatAuto Format = iota
	FormatCSV
	FormatParquet
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatParquet:
		return "parquet"
	default:
		return "auto"
	}
}

// knownExtensions are the extensions the loader recognises without warning
var knownExtensions = map[string]Format{
	".csv":     FormatCSV,
	".tsv":     FormatCSV,
	".parquet": FormatParquet,
}

// Option configures a Reader
type Option func(*Reader)

// WithDelimiter sets the CSV field delimiter. The default is ',' except for
// .tsv files, which default to tab.
func WithDelimiter(d rune) Option {
	return func(r *Reader) {
		r.delimiter = d
	}
}

// WithFormat forces the source format instead of detecting it
func WithFormat(f Format) Option {
	return func(r *Reader) {
		r.format = f
	}
}

// Reader loads a CSV or parquet file, optionally compressed, into a
// query.Dataset.
//
// It keeps the OS file handle open until Close.
type Reader struct {
	path        string
	file        *os.File
	size        int64
	format      Format
	compression Compression
	delimiter   rune
}

// NewReader opens the file at path.
//
// The format is detected from the extension once any compression suffix
// (.gz, .zst, .lz4, .sz, .br) is removed: .parquet files are read as
// parquet, anything else as CSV. Missing or unreadable files return a
// *SourceError.
//
// Example:
//
//	r, err := NewReader("data.csv.gz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
func NewReader(path string, opts ...Option) (*Reader, error) {
	r := &Reader{path: path}
	for _, opt := range opts {
		opt(r)
	}

	var base string
	r.compression, base = DetectCompression(path)
	ext := strings.ToLower(filepath.Ext(base))

	if r.format == FormatAuto {
		r.format = FormatCSV
		if f, ok := knownExtensions[ext]; ok {
			r.format = f
		}
	}
	if r.delimiter == 0 {
		r.delimiter = ','
		if ext == ".tsv" {
			r.delimiter = '\t'
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &SourceError{Path: path, Op: "open", Err: unwrapPathError(err)}
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, &SourceError{Path: path, Op: "stat", Err: unwrapPathError(err)}
	}
	if stat.IsDir() {
		_ = file.Close()
		return nil, &SourceError{Path: path, Op: "open", Err: fmt.Errorf("is a directory")}
	}

	r.file = file
	r.size = stat.Size()
	return r, nil
}

// ReadAll decodes the whole file into memory
func (r *Reader) ReadAll() (*query.Dataset, error) {
	if r.file == nil {
		return nil, &SourceError{Path: r.path, Op: "read", Err: os.ErrClosed}
	}

	if r.format == FormatParquet && r.compression == CompressionNone {
		ds, err := readParquet(r.file, r.size)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.path, err)
		}
		return ds, nil
	}

	stream, err := decompress(r.file, r.compression)
	if err != nil {
		return nil, &SourceError{Path: r.path, Op: "decompress", Err: err}
	}
	defer func() { _ = stream.Close() }()

	var ds *query.Dataset
	switch r.format {
	case FormatParquet:
		ds, err = readParquetStream(stream)
	default:
		ds, err = readCSV(stream, r.delimiter)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}
	return ds, nil
}

// Close releases the file handle. It is safe to call Close multiple times.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// Load opens path, reads it fully and closes it
func Load(path string, opts ...Option) (*query.Dataset, error) {
	r, err := NewReader(path, opts...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	return r.ReadAll()
}

// KnownExtension reports whether path (ignoring a compression suffix) ends
// in .csv, .tsv or .parquet
func KnownExtension(path string) bool {
	_, base := DetectCompression(path)
	_, ok := knownExtensions[strings.ToLower(filepath.Ext(base))]
	return ok
}

// unwrapPathError strips the *os.PathError wrapper, whose path and op the
// SourceError already carries
func unwrapPathError(err error) error {
	if pe, ok := err.(*os.PathError); ok {
		return pe.Err
	}
	return err
}
