// Package gemini implements the generation.ContentProvider interface
// using Google's Gemini API: term enrichment, vocabulary extraction from
// text and images, and quiz generation. All calls go through a shared
// retry loop with exponential backoff and jitter; permanent failures
// (safety blocks, malformed responses) are never retried.
package gemini
