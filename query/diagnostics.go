package query

// Diagnostics receives the non-fatal findings of the engines: rows lacking
// a column, cells that failed numeric coercion, empty aggregations.
// *slog.Logger satisfies it.
type Diagnostics interface {
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopDiagnostics struct{}

func (nopDiagnostics) Warn(string, ...any)  {}
func (nopDiagnostics) Error(string, ...any) {}

// NopDiagnostics discards everything
var NopDiagnostics Diagnostics = nopDiagnostics{}

func diagnosticsOrNop(d Diagnostics) Diagnostics {
	if d == nil {
		return NopDiagnostics
	}
	return d
}
