package analysis

import (
	"errors"

	"go.uber.org/zap"

	"github.com/dkrasn/seqlens/internal/resultcache"
	"github.com/dkrasn/seqlens/internal/seq"
)

// Engine runs analysis requests against normalized sequences, consulting
// the result cache before computing. Analyzers are stateless; the cache is
// the only shared mutable state, so one Engine is safe for concurrent use.
type Engine struct {
	cache  *resultcache.Cache
	logger *zap.Logger
}

// NewEngine creates an engine backed by the given cache. A nil cache
// disables memoization; every request computes.
func NewEngine(cache *resultcache.Cache) *Engine {
	return &Engine{
		cache:  cache,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for warning and debug messages.
func (e *Engine) SetLogger(l *zap.Logger) {
	e.logger = l
}

// Analyze runs one request against a sequence. Parameter errors surface
// unmodified; any other computation failure is wrapped in a ComputeError.
// Failed computations are never cached.
func (e *Engine) Analyze(s *seq.Sequence, req Request) (Result, error) {
	if e.cache == nil {
		return e.compute(s, req)
	}

	key := resultcache.Key{
		Fingerprint: s.Fingerprint(),
		Op:          string(req.Op),
		Params:      req.Canonical(),
	}

	v, err := e.cache.GetOrCompute(key, func() (any, error) {
		return e.compute(s, req)
	})
	if err != nil {
		return nil, err
	}
	return v.(Result), nil
}

func (e *Engine) compute(s *seq.Sequence, req Request) (Result, error) {
	res, err := run(s, req)
	if err != nil {
		var paramErr *InvalidParameterError
		if errors.As(err, &paramErr) {
			return nil, err
		}
		e.logger.Warn("analysis failed",
			zap.String("op", string(req.Op)),
			zap.String("params", req.Canonical()),
			zap.Error(err))
		return nil, &ComputeError{Op: req.Op, Err: err}
	}
	return res, nil
}

// run dispatches a request to its analyzer.
func run(s *seq.Sequence, req Request) (Result, error) {
	p := req.Params
	switch req.Op {
	case OpComposition:
		return Composition(s), nil
	case OpGCSkew:
		return GCSkew(s, p.Window, p.Step)
	case OpKmer:
		return KmerFrequency(s, p.K, p.ExcludeAmbiguous)
	case OpCodonUsage:
		return CodonUsage(s), nil
	case OpTranslation:
		return Translate(s, p.Frame, p.StopAtFirstStop)
	case OpEntropy:
		return ShannonEntropy(s, p.Unit, p.K)
	case OpRollingEntropy:
		return RollingEntropy(s, p.Window, p.Step)
	case OpMotif:
		return FindMotif(s, p.Motif, p.CaseSensitive)
	default:
		return nil, &InvalidParameterError{Param: "op", Value: string(req.Op), Reason: "unknown operation"}
	}
}
