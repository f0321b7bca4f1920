package oracle

import "context"

// Classifier is the external text-understanding collaborator. Implementations
// send the prompt to a natural-language model and return its raw textual
// answer. Callers own validation of the answer against their closed label
// sets; the classifier itself guarantees nothing beyond a non-empty string on
// success.
type Classifier interface {
	Classify(ctx context.Context, prompt string) (string, error)
}
