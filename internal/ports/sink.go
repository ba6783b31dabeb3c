package ports

// TagSink receives finished tags. It decides the output format; the core
// never deduplicates, so the same name may arrive many times.
type TagSink interface {
	Put(tag Tag) error

	// Close flushes and releases the sink. No Put may follow.
	Close() error
}

// Sorter is implemented by sinks that can order their records on request.
// The run calls Sort at most once, after every Put and before Close.
type Sorter interface {
	Sort() error
}

// PriorCounter is implemented by sinks opened in append mode. Prior returns
// how many records the sink held before this run started.
type PriorCounter interface {
	Prior() int
}
