package jpeg2k

// DecodeOptions controls native decoding and pixel assembly behavior.
// The zero value requests a full-resolution, lenient decode with the
// decoder's default threading.
type DecodeOptions struct {
	// Reduce specifies the resolution reduction factor.
	// 0 means full resolution.
	// 1 means half resolution (skip finest decomposition level).
	// 2 means quarter resolution, etc.
	// The output dimensions are divided by 2^Reduce.
	Reduce int

	// Strict rejects recoverable decoder warnings. When set, any
	// non-fatal anomaly the decoder reports fails the decode with
	// ErrStrictMode instead of being logged and dropped.
	Strict bool

	// NumThreads bounds the worker threads used by the native decoder
	// and by multi-component pixel assembly. 0 uses the decoder default
	// (and GOMAXPROCS for assembly). Threading never changes output
	// bytes, only latency.
	NumThreads int
}

func (o *DecodeOptions) sanitized() DecodeOptions {
	var out DecodeOptions
	if o != nil {
		out = *o
	}
	if out.Reduce < 0 {
		out.Reduce = 0
	}
	if out.NumThreads < 0 {
		out.NumThreads = 0
	}
	return out
}
