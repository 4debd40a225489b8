package rag

// FragmentSeparator exposes fragmentSeparator to external tests.
const FragmentSeparator = fragmentSeparator
