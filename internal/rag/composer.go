package rag

import (
	"fmt"
	"strings"
)

// fragmentSeparator joins retrieved fragment texts inside the prompt.
// Retrieval order is preserved.
const fragmentSeparator = "\n\n---\n\n"

const promptTemplate = `You are a helpful assistant answering questions from a private document collection.
Answer the question using only the context below. If the context does not contain
the answer, say that you don't know.

Context:
%s

Question:
%s

Answer:`

// Compose assembles the retrieval context and the question into a single
// generation prompt.
func Compose(question string, fragmentTexts []string) string {
	context := strings.Join(fragmentTexts, fragmentSeparator)
	return fmt.Sprintf(promptTemplate, context, question)
}
