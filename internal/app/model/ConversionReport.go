package model

// ConversionResult is the outcome of converting a single input file.
type ConversionResult struct {
	Input       string
	Output      string
	SizeBytes   int64
	DurationSec int
	Err         error
}

// Succeeded reports whether the conversion produced an output.
func (r ConversionResult) Succeeded() bool {
	return r.Err == nil
}

// ConversionReport aggregates the results of a converter run.
type ConversionReport struct {
	Succeeded []ConversionResult
	Failed    []ConversionResult
}

func (r *ConversionReport) Add(result ConversionResult) {
	if result.Succeeded() {
		r.Succeeded = append(r.Succeeded, result)
		return
	}
	r.Failed = append(r.Failed, result)
}

func (r *ConversionReport) SuccessCount() int { return len(r.Succeeded) }

func (r *ConversionReport) FailureCount() int { return len(r.Failed) }

func (r *ConversionReport) Total() int { return len(r.Succeeded) + len(r.Failed) }
