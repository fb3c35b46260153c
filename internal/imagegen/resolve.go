package imagegen

import (
	"context"
	"fmt"
	"sync"

	"github.com/roboco-io/docforge/internal/schema"
)

// BatchSize is the number of generation requests issued concurrently.
// Batches are strictly sequential; requests within a batch race.
const BatchSize = 3

// ProgressFunc is invoked once per batch boundary with the number of images
// processed so far and the total to process.
type ProgressFunc func(processed, total int)

// GenerationError records one failed generation. Index is the element's
// global processing order across the whole pass.
type GenerationError struct {
	Index  int    `json:"index"`
	Prompt string `json:"prompt"`
	Err    error  `json:"-"`
}

func (e GenerationError) Error() string {
	return fmt.Sprintf("image %d (%q): %v", e.Index, e.Prompt, e.Err)
}

// Result is the outcome of a resolution pass. The pass follows a
// partial-success contract: a document with N-of-M images injected is a
// valid result, with the misses listed in Errors.
type Result struct {
	Document        *schema.Document
	ImagesGenerated int
	Errors          []GenerationError
}

// Resolver fills pending image placeholders in a document schema.
type Resolver struct {
	provider Provider
	style    string
}

// NewResolver creates a resolver backed by the given provider.
func NewResolver(p Provider) *Resolver {
	return &Resolver{provider: p}
}

// WithStyle sets a style hint forwarded on every generation request.
func (r *Resolver) WithStyle(style string) *Resolver {
	r.style = style
	return r
}

// slot addresses one pending image inside the cloned document. Each
// concurrent task owns exactly one slot, so writes need no locking.
type slot struct {
	section int
	element int
	prompt  string
}

func pendingSlots(doc *schema.Document) []slot {
	var slots []slot
	for si := range doc.Sections {
		for ei := range doc.Sections[si].Elements {
			el := &doc.Sections[si].Elements[ei]
			if el.Type == schema.ElementImage && el.Image != nil && el.Image.Pending() {
				slots = append(slots, slot{section: si, element: ei, prompt: el.Image.AIPrompt})
			}
		}
	}
	return slots
}

// HasPendingImages reports whether any image element still awaits
// generation.
func HasPendingImages(doc *schema.Document) bool {
	return len(pendingSlots(doc)) > 0
}

// ImageCount summarizes the image elements of a document.
type ImageCount struct {
	Total    int `json:"total"`
	Resolved int `json:"resolved"`
	Pending  int `json:"pending"`
}

// CountImages tallies resolved and pending image elements.
func CountImages(doc *schema.Document) ImageCount {
	var c ImageCount
	for si := range doc.Sections {
		for _, el := range doc.Sections[si].Elements {
			if el.Type != schema.ElementImage || el.Image == nil {
				continue
			}
			c.Total++
			if el.Image.Pending() {
				c.Pending++
			} else {
				c.Resolved++
			}
		}
	}
	return c
}

// Resolve walks the document, generates every pending image and returns a
// new document with URLs filled in. The input document is never mutated,
// even on partial failure. Per-element failures are collected in the result
// rather than aborting the pass; only a failed clone is a hard error.
func (r *Resolver) Resolve(ctx context.Context, doc *schema.Document, onProgress ProgressFunc, callerID string) (*Result, error) {
	slots := pendingSlots(doc)
	if len(slots) == 0 {
		// Fast path: nothing to do, hand the input back untouched.
		return &Result{Document: doc}, nil
	}

	out, err := schema.CloneDocument(doc)
	if err != nil {
		return nil, err
	}

	result := &Result{Document: out}
	total := len(slots)

	type outcome struct {
		index int
		url   string
		err   error
	}

	for start := 0; start < total; start += BatchSize {
		if err := ctx.Err(); err != nil {
			// Cancellation is honored only between batches; in-flight
			// requests always settle.
			return result, err
		}

		end := start + BatchSize
		if end > total {
			end = total
		}
		batch := slots[start:end]
		outcomes := make([]outcome, len(batch))

		var wg sync.WaitGroup
		for i, sl := range batch {
			wg.Add(1)
			go func(i, index int, sl slot) {
				defer wg.Done()
				url, err := r.provider.Generate(ctx, Request{
					Prompt:   sl.prompt,
					Style:    r.style,
					CallerID: callerID,
				})
				outcomes[i] = outcome{index: index, url: url, err: err}
			}(i, start+i, sl)
		}
		wg.Wait()

		for i, oc := range outcomes {
			sl := batch[i]
			if oc.err != nil {
				result.Errors = append(result.Errors, GenerationError{
					Index:  oc.index,
					Prompt: sl.prompt,
					Err:    oc.err,
				})
				continue
			}
			// Disjoint write slot. The element flips from prompt to URL
			// so it carries exactly one of the two at rest; failed
			// elements keep the prompt for a retry.
			img := out.Sections[sl.section].Elements[sl.element].Image
			img.URL = oc.url
			img.AIPrompt = ""
			result.ImagesGenerated++
		}

		if onProgress != nil {
			onProgress(end, total)
		}
	}

	return result, nil
}
