// Package generation defines the boundary between the engine and the
// external generative content provider: term enrichment, vocabulary
// extraction from text and images, and quiz generation. The interface
// keeps the core free of any concrete LLM dependency.
package generation
