package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"texsync/internal/domain"
	"texsync/internal/logger"
	"texsync/internal/pipeline"
)

const shareURL = "https://www.overleaf.com/read/abcdef123456"

// fakeFetcher implements pipeline.Fetcher with a canned result.
type fakeFetcher struct {
	doc *domain.Document
	err error

	urls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, shareURL string) (*domain.Document, error) {
	f.urls = append(f.urls, shareURL)
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

// fakeUploader implements pipeline.Uploader and records received documents.
type fakeUploader struct {
	err error

	docs []*domain.Document
}

func (u *fakeUploader) Upload(_ context.Context, doc *domain.Document) error {
	u.docs = append(u.docs, doc)
	return u.err
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	doc := &domain.Document{Name: "proj.pdf", Data: []byte("%PDF-1.7")}
	fetcher := &fakeFetcher{doc: doc}
	uploader := &fakeUploader{}

	p := pipeline.New(fetcher, uploader, shareURL, logger.NewNoOp())

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{shareURL}, fetcher.urls)

	// The fetched payload flows to the uploader in memory, untouched.
	require.Len(t, uploader.docs, 1)
	assert.Same(t, doc, uploader.docs[0])

	assert.NotEmpty(t, result.RunID)
	assert.True(t, result.Fetched)
	assert.True(t, result.Uploaded)
	assert.Same(t, doc, result.Document)
}

func TestPipeline_RunFetchFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("render canvas never appeared")
	fetcher := &fakeFetcher{err: cause}
	uploader := &fakeUploader{}

	p := pipeline.New(fetcher, uploader, shareURL, logger.NewNoOp())

	result, err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))

	// The upload stage never runs when the fetch fails.
	assert.Empty(t, uploader.docs)

	require.NotNil(t, result)
	assert.False(t, result.Fetched)
	assert.False(t, result.Uploaded)
	assert.Nil(t, result.Document)
}

func TestPipeline_RunUploadFailure(t *testing.T) {
	t.Parallel()

	doc := &domain.Document{Name: "proj.pdf", Data: []byte("%PDF-1.7")}
	cause := errors.New("session expired")
	fetcher := &fakeFetcher{doc: doc}
	uploader := &fakeUploader{err: cause}

	p := pipeline.New(fetcher, uploader, shareURL, logger.NewNoOp())

	result, err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))

	// Partial progress stays observable: fetched, not uploaded, document kept.
	require.NotNil(t, result)
	assert.True(t, result.Fetched)
	assert.False(t, result.Uploaded)
	assert.Same(t, doc, result.Document)
}

func TestPipeline_RunIDsAreUnique(t *testing.T) {
	t.Parallel()

	doc := &domain.Document{Name: "proj.pdf"}
	p := pipeline.New(&fakeFetcher{doc: doc}, &fakeUploader{}, shareURL, logger.NewNoOp())

	first, err := p.Run(context.Background())
	require.NoError(t, err)
	second, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
}
