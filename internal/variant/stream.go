package variant

// Stream is a pull-based, finite, non-restartable sequence of variants.
// Next returns nil, nil once the stream is exhausted, and stays
// exhausted afterwards. Implementations own the underlying decoder
// resources for their whole lifetime; Close releases them.
//
// A Stream is used by exactly one consumer at a time.
type Stream interface {
	// Next reads the next variant.
	// Returns nil, nil when there are no more variants.
	Next() (*Variant, error)

	// Close closes the stream and releases resources.
	Close() error
}

// StreamFunc adapts a pair of closures to the Stream interface. This is
// how the format adapters erase their native record types: the next
// closure captures the underlying reader by value.
type StreamFunc struct {
	NextFunc  func() (*Variant, error)
	CloseFunc func() error
}

func (s *StreamFunc) Next() (*Variant, error) {
	return s.NextFunc()
}

func (s *StreamFunc) Close() error {
	if s.CloseFunc == nil {
		return nil
	}
	return s.CloseFunc()
}

// SliceStream replays a fixed set of variants, mainly for tests and for
// consumers that already hold their data in memory.
type SliceStream struct {
	variants []*Variant
	pos      int
}

// NewSliceStream creates a stream over the given variants.
func NewSliceStream(variants []*Variant) *SliceStream {
	return &SliceStream{variants: variants}
}

func (s *SliceStream) Next() (*Variant, error) {
	if s.pos >= len(s.variants) {
		return nil, nil
	}
	v := s.variants[s.pos]
	s.pos++
	return v, nil
}

func (s *SliceStream) Close() error {
	return nil
}

// Collect drains a stream into a slice. The stream is exhausted but not
// closed afterwards.
func Collect(s Stream) ([]*Variant, error) {
	var out []*Variant
	for {
		v, err := s.Next()
		if err != nil {
			return out, err
		}
		if v == nil {
			return out, nil
		}
		out = append(out, v)
	}
}

// Each calls fn for every remaining variant in the stream.
func Each(s Stream, fn func(*Variant) error) error {
	for {
		v, err := s.Next()
		if err != nil {
			return err
		}
		if v == nil {
			return nil
		}
		if err := fn(v); err != nil {
			return err
		}
	}
}
