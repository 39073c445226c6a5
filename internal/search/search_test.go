package search

import (
	"context"
	"errors"
	"testing"

	"github.com/mmcdole/tvshelf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	domain.MetadataClient

	results  []*domain.Show
	trending []*domain.Show
	err      error
	queries  []string
}

func (f *fakeClient) SearchShows(_ context.Context, query string) ([]*domain.Show, error) {
	f.queries = append(f.queries, query)
	return f.results, f.err
}

func (f *fakeClient) TrendingShows(context.Context) ([]*domain.Show, error) {
	return f.trending, f.err
}

func shows(names ...string) []*domain.Show {
	out := make([]*domain.Show, len(names))
	for i, n := range names {
		out[i] = &domain.Show{ID: i + 1, Name: n}
	}
	return out
}

func names(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Show.Name
	}
	return out
}

func TestSearchEmptyQuerySkipsRemote(t *testing.T) {
	client := &fakeClient{}
	svc := NewService(client, nil)

	got, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, client.queries)
}

func TestSearchRanksMatchesFirst(t *testing.T) {
	client := &fakeClient{results: shows("Dark Matter", "The Office", "Office Space Live", "Parks and Recreation")}
	svc := NewService(client, nil)

	got, err := svc.Search(context.Background(), " office ")
	require.NoError(t, err)
	assert.Equal(t, []string{"office"}, client.queries)
	assert.Equal(t, []string{"The Office", "Office Space Live", "Dark Matter", "Parks and Recreation"}, names(got))
	assert.True(t, got[0].Matched)
	assert.False(t, got[2].Matched)
}

func TestSearchRemoteError(t *testing.T) {
	client := &fakeClient{err: domain.ErrServiceUnavailable}
	svc := NewService(client, nil)

	_, err := svc.Search(context.Background(), "lost")
	require.True(t, errors.Is(err, domain.ErrServiceUnavailable))
}

func TestTrending(t *testing.T) {
	client := &fakeClient{trending: shows("Severance", "Andor")}
	svc := NewService(client, nil)

	got, err := svc.Trending(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestFilterRecent(t *testing.T) {
	recent := []domain.RecentShow{
		{Show: domain.Show{ID: 1, Name: "Breaking Bad"}},
		{Show: domain.Show{ID: 2, Name: "Better Call Saul"}},
		{Show: domain.Show{ID: 3, Name: "Dark"}},
	}

	assert.Len(t, FilterRecent("", recent), 3)

	got := FilterRecent("bcs", recent)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)

	got = FilterRecent("BA", recent)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)
}
