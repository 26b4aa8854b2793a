package batch

// ItemStatus is the processing outcome of a single batch item.
type ItemStatus string

// Batch item status values.
const (
	StatusOK ItemStatus = "ok"
	// StatusLexicalOnly marks an item stored without a vector: it is reachable by text search only.
	StatusLexicalOnly ItemStatus = "lexical_only"
	StatusError       ItemStatus = "error"
)

// Result is the outcome of processing one item in a batch operation.
type Result struct {
	id     string
	status ItemStatus
	err    error
}

// NewOK creates a successful batch result.
func NewOK(id string) Result { return Result{id: id, status: StatusOK} }

// NewLexicalOnly records an item stored without its embedding; err says why.
func NewLexicalOnly(id string, err error) Result {
	return Result{id: id, status: StatusLexicalOnly, err: err}
}

// NewError creates a failed batch result.
func NewError(id string, err error) Result { return Result{id: id, status: StatusError, err: err} }

// ID returns the item identifier.
func (r Result) ID() string { return r.id }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }

// Stored reports whether the item reached the store.
func (r Result) Stored() bool { return r.status != StatusError }

// Summary counts results by status.
type Summary struct {
	OK          int
	LexicalOnly int
	Failed      int
}

// Summarize tallies a batch.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.status {
		case StatusOK:
			s.OK++
		case StatusLexicalOnly:
			s.LexicalOnly++
		default:
			s.Failed++
		}
	}
	return s
}
