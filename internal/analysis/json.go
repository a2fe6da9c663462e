package analysis

import (
	"encoding/json"
	"fmt"
)

// DecodeResult unmarshals a JSON payload back into the concrete result type
// for op. It is the inverse of marshaling a Result, used by the persistent
// result store.
func DecodeResult(op Op, payload []byte) (Result, error) {
	var res Result
	switch op {
	case OpComposition:
		res = &CompositionResult{}
	case OpGCSkew:
		res = &GCSkewResult{}
	case OpKmer:
		res = &KmerResult{}
	case OpCodonUsage:
		res = &CodonUsageResult{}
	case OpTranslation:
		res = &TranslationResult{}
	case OpEntropy:
		res = &EntropyResult{}
	case OpRollingEntropy:
		res = &RollingEntropyResult{}
	case OpMotif:
		res = &MotifResult{}
	default:
		return nil, fmt.Errorf("decode result: unknown operation %q", op)
	}

	if err := json.Unmarshal(payload, res); err != nil {
		return nil, fmt.Errorf("decode %s result: %w", op, err)
	}
	return res, nil
}
