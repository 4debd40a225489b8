package rag

import "concierge-ai/internal/storage"

// AskRequest represents a question to answer from the indexed corpus.
type AskRequest struct {
	// Question is the user's question to answer.
	Question string `json:"question"`
	// K optionally specifies the desired fragment count. Defaults to 5.
	K int `json:"k,omitempty"`
}

// Scored pairs a retrieved fragment with its similarity score.
type Scored struct {
	Fragment *storage.FragmentRecord
	Score    float32
}

// Reference points at a fragment that was used to generate the answer.
type Reference struct {
	// SourcePath is the corpus-relative path of the source document.
	SourcePath string `json:"source_path"`
	// Page is the zero-based page number, absent for unpaged sources.
	Page *int `json:"page,omitempty"`
	// StableID is the fragment's stable identifier.
	StableID string `json:"stable_id"`
	// Score is the similarity score of this fragment for the question.
	Score float32 `json:"score"`
}

// AskResponse represents the answer to a question.
type AskResponse struct {
	// Answer is the generated answer.
	Answer string `json:"answer"`
	// References are the fragments that grounded the answer.
	References []Reference `json:"references"`
}
