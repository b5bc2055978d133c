// Package mock provides a test double for the analyze.Provider interface.
package mock

import (
	"context"
	"sync"

	"github.com/awaaz-ai/awaaz/pkg/provider/analyze"
)

// AnalyzeCall records a single invocation of Analyze.
type AnalyzeCall struct {
	// Ctx is the context passed to Analyze.
	Ctx context.Context
	// Files is the file list passed to Analyze.
	Files []analyze.File
}

// Provider is a mock implementation of analyze.Provider.
type Provider struct {
	mu sync.Mutex

	// AnalyzeResult is returned by Analyze when AnalyzeErr is nil.
	AnalyzeResult analyze.Result

	// AnalyzeErr, if non-nil, is returned as the error from Analyze.
	AnalyzeErr error

	// AnalyzeCalls records every call to Analyze in order.
	AnalyzeCalls []AnalyzeCall
}

// Analyze records the call and returns AnalyzeResult, AnalyzeErr.
func (p *Provider) Analyze(ctx context.Context, files []analyze.File) (analyze.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.AnalyzeCalls = append(p.AnalyzeCalls, AnalyzeCall{Ctx: ctx, Files: files})
	return p.AnalyzeResult, p.AnalyzeErr
}

// Reset clears all recorded calls. Thread-safe.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.AnalyzeCalls = nil
}

// Ensure Provider implements analyze.Provider at compile time.
var _ analyze.Provider = (*Provider)(nil)
