package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexica-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lexica-cli/internal/core/domain"
	"github.com/custodia-labs/lexica-cli/internal/core/ports/driven"
)

// --- Mock implementations for build testing ---

// mockPageSource implements driven.PageSource for testing.
type mockPageSource struct {
	sourceID     string
	srcType      string
	capabilities driven.SourceCapabilities
	pages        []domain.RawPage
	pageErrs     []error
	changes      []domain.RawPageChange
	watchErr     error
	validateErr  error
	closed       bool
}

func (m *mockPageSource) Type() string     { return m.srcType }
func (m *mockPageSource) SourceID() string { return m.sourceID }
func (m *mockPageSource) Capabilities() driven.SourceCapabilities {
	return m.capabilities
}

func (m *mockPageSource) Validate(_ context.Context) error {
	return m.validateErr
}

func (m *mockPageSource) FullSync(ctx context.Context) (<-chan domain.RawPage, <-chan error) {
	pages := make(chan domain.RawPage)
	errs := make(chan error, len(m.pageErrs)+1)

	go func() {
		defer close(pages)
		defer close(errs)

		for _, err := range m.pageErrs {
			errs <- err
		}
		for _, page := range m.pages {
			select {
			case <-ctx.Done():
				return
			case pages <- page:
			}
		}
	}()

	return pages, errs
}

func (m *mockPageSource) Watch(ctx context.Context) (<-chan domain.RawPageChange, error) {
	if m.watchErr != nil {
		return nil, m.watchErr
	}

	changes := make(chan domain.RawPageChange)
	go func() {
		defer close(changes)
		for _, change := range m.changes {
			select {
			case <-ctx.Done():
				return
			case changes <- change:
			}
		}
	}()
	return changes, nil
}

func (m *mockPageSource) Close() error {
	m.closed = true
	return nil
}

func page(uri, content string) domain.RawPage {
	return domain.RawPage{
		SourceID: "test-source",
		URI:      uri,
		Content:  []byte(content),
	}
}

// --- Tests ---

func TestBuilder_Build_EmptyCorpus(t *testing.T) {
	source := &mockPageSource{sourceID: "test-source", srcType: "filesystem"}
	store := memory.NewLexiconStore()
	builder := NewBuilder(source, store)

	result, err := builder.Build(context.Background())
	require.NoError(t, err)

	// With no pages, the output is exactly the seed set.
	assert.Equal(t, 0, result.PagesScanned)
	assert.Equal(t, 0, result.CandidateWords)
	assert.Equal(t, len(domain.SeedWords()), result.LexiconSize)

	lex, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(domain.SeedWords()), lex.Len())
	assert.True(t, lex.Contains("the"))
}

func TestBuilder_Build_ExtractsWords(t *testing.T) {
	source := &mockPageSource{
		sourceID: "test-source",
		srcType:  "filesystem",
		pages: []domain.RawPage{
			page("a.html", "<html><body>The zebra wandered across the savannah</body></html>"),
			page("b.html", "<p>Another zebra appeared</p>"),
		},
	}
	store := memory.NewLexiconStore()
	builder := NewBuilder(source, store)

	result, err := builder.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.PagesScanned)
	// the, zebra, wandered, across, the, savannah, another, zebra, appeared
	assert.Equal(t, 9, result.CandidateWords)
	// Everything except the two occurrences of "the", which is too short.
	assert.Equal(t, 7, result.AcceptedWords)

	lex, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, lex.Contains("zebra"))
	assert.True(t, lex.Contains("savannah"))
	assert.True(t, lex.Contains("another"))
	assert.False(t, lex.Contains("giraffe"))
}

func TestBuilder_Build_Idempotent(t *testing.T) {
	source := &mockPageSource{
		sourceID: "test-source",
		srcType:  "filesystem",
		pages: []domain.RawPage{
			page("a.html", "<p>identical content every time</p>"),
		},
	}
	store := memory.NewLexiconStore()
	builder := NewBuilder(source, store)

	first, err := builder.Build(context.Background())
	require.NoError(t, err)
	second, err := builder.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.LexiconSize, second.LexiconSize)

	lex, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.LexiconSize, lex.Len())
}

func TestBuilder_Build_SkipsUnreadablePages(t *testing.T) {
	source := &mockPageSource{
		sourceID: "test-source",
		srcType:  "filesystem",
		pages: []domain.RawPage{
			page("ok.html", "<p>readable content here</p>"),
		},
		pageErrs: []error{
			errors.New("read broken.html: permission denied"),
		},
	}
	store := memory.NewLexiconStore()
	builder := NewBuilder(source, store)

	result, err := builder.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.PagesScanned)

	status, err := builder.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, status.ErrorCount)
	assert.False(t, status.Running)
}

func TestBuilder_Build_ValidateFailure(t *testing.T) {
	source := &mockPageSource{
		sourceID:     "test-source",
		srcType:      "filesystem",
		capabilities: driven.SourceCapabilities{SupportsValidation: true},
		validateErr:  errors.New("corpus dir does not exist"),
	}
	builder := NewBuilder(source, memory.NewLexiconStore())

	_, err := builder.Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate source")
}

func TestBuilder_Build_AlreadyRunning(t *testing.T) {
	source := &mockPageSource{sourceID: "test-source", srcType: "filesystem"}
	builder := NewBuilder(source, memory.NewLexiconStore())

	require.True(t, builder.setRunning(true))
	defer builder.setRunning(false)

	_, err := builder.Build(context.Background())
	assert.ErrorIs(t, err, domain.ErrBuildInProgress)
}

func TestBuilder_Build_ContextCancelled(t *testing.T) {
	source := &mockPageSource{sourceID: "test-source", srcType: "filesystem"}
	builder := NewBuilder(source, memory.NewLexiconStore())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := builder.Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuilder_Watch_UnsupportedSource(t *testing.T) {
	source := &mockPageSource{sourceID: "test-source", srcType: "filesystem"}
	builder := NewBuilder(source, memory.NewLexiconStore())

	err := builder.Watch(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestBuilder_Watch_ExtendsLexicon(t *testing.T) {
	source := &mockPageSource{
		sourceID:     "test-source",
		srcType:      "filesystem",
		capabilities: driven.SourceCapabilities{SupportsWatch: true},
		changes: []domain.RawPageChange{
			{Type: domain.ChangeCreated, Page: page("new.html", "<p>a freshly crawled xylophone</p>")},
			{Type: domain.ChangeDeleted, Page: page("old.html", "")},
		},
	}
	store := memory.NewLexiconStore()
	builder := NewBuilder(source, store)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// The change channel closes after draining, so Watch returns nil.
	err := builder.Watch(ctx)
	require.NoError(t, err)

	lex, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, lex.Contains("xylophone"))
	assert.True(t, lex.Contains("freshly"))
}
