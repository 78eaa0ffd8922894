package aggregate_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/localready/readykit"
	"github.com/localready/readykit/aggregate"
	"github.com/localready/readykit/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLocation = readykit.Location{
	Latitude:  37.6872,
	Longitude: -97.3301,
	ZIPCode:   "67205",
	City:      "Wichita",
	State:     "KS",
	Country:   "US",
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// namedProvider returns a mock provider emitting count documents tagged with
// the provider name, so tests can assert output ordering.
func namedProvider(name string, count int) *mock.Provider {
	return &mock.Provider{
		NameFn: func() string { return name },
		FetchFn: func(_ context.Context, loc readykit.Location) ([]*readykit.Document, error) {
			docs := make([]*readykit.Document, 0, count)
			for i := 0; i < count; i++ {
				docs = append(docs, readykit.NewDocument(
					fmt.Sprintf("%s doc %d", name, i),
					"Some text.",
					readykit.CategoryLocalInfo,
					readykit.PriorityLow,
					name,
					loc,
				))
			}
			return docs, nil
		},
	}
}

func failingProvider(name string, err error) *mock.Provider {
	return &mock.Provider{
		NameFn: func() string { return name },
		FetchFn: func(_ context.Context, _ readykit.Location) ([]*readykit.Document, error) {
			return nil, err
		},
	}
}

func TestNew_RequiresProviders(t *testing.T) {
	t.Parallel()

	_, err := aggregate.New(nil)
	require.Error(t, err)
	assert.Equal(t, readykit.EINVALID, readykit.ErrorCode(err))
}

func TestAggregator_Collect(t *testing.T) {
	t.Parallel()

	t.Run("concatenates documents in declared provider order", func(t *testing.T) {
		t.Parallel()

		// The first provider is slow, so completion order is the reverse of
		// declaration order; output order must not change.
		slow := &mock.Provider{
			NameFn: func() string { return "slow" },
			FetchFn: func(ctx context.Context, loc readykit.Location) ([]*readykit.Document, error) {
				select {
				case <-time.After(50 * time.Millisecond):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
				return []*readykit.Document{
					readykit.NewDocument("slow doc", "Text.", readykit.CategoryWeather, readykit.PriorityMedium, "slow", loc),
				}, nil
			},
		}

		a, err := aggregate.New(
			[]readykit.Provider{slow, namedProvider("fast", 2)},
			aggregate.WithLogger(discardLogger()),
		)
		require.NoError(t, err)

		result, err := a.Collect(context.Background(), testLocation)
		require.NoError(t, err)
		require.Len(t, result.Documents, 3)
		assert.Equal(t, "slow doc", result.Documents[0].Title)
		assert.Equal(t, "fast doc 0", result.Documents[1].Title)
		assert.Equal(t, "fast doc 1", result.Documents[2].Title)
	})

	t.Run("failed providers contribute zero documents without failing the pass", func(t *testing.T) {
		t.Parallel()

		a, err := aggregate.New(
			[]readykit.Provider{
				namedProvider("a", 1),
				failingProvider("b", errors.New("network down")),
				namedProvider("c", 2),
			},
			aggregate.WithLogger(discardLogger()),
		)
		require.NoError(t, err)

		result, err := a.Collect(context.Background(), testLocation)
		require.NoError(t, err)

		require.Len(t, result.Documents, 3)
		assert.Equal(t, "a doc 0", result.Documents[0].Title)
		assert.Equal(t, "c doc 0", result.Documents[1].Title)
		assert.Equal(t, "c doc 1", result.Documents[2].Title)

		require.Len(t, result.Failures, 1)
		assert.Equal(t, "b", result.Failures[0].Provider)
	})

	t.Run("all providers failing yields empty result, not an error", func(t *testing.T) {
		t.Parallel()

		a, err := aggregate.New(
			[]readykit.Provider{
				failingProvider("a", errors.New("boom")),
				failingProvider("b", errors.New("boom")),
			},
			aggregate.WithLogger(discardLogger()),
		)
		require.NoError(t, err)

		result, err := a.Collect(context.Background(), testLocation)
		require.NoError(t, err)
		assert.Empty(t, result.Documents)
		assert.Len(t, result.Failures, 2)
	})

	t.Run("a panicking provider is caught as its own failure", func(t *testing.T) {
		t.Parallel()

		panicking := &mock.Provider{
			NameFn: func() string { return "panicky" },
			FetchFn: func(_ context.Context, _ readykit.Location) ([]*readykit.Document, error) {
				panic("index out of range")
			},
		}

		a, err := aggregate.New(
			[]readykit.Provider{panicking, namedProvider("ok", 1)},
			aggregate.WithLogger(discardLogger()),
		)
		require.NoError(t, err)

		result, err := a.Collect(context.Background(), testLocation)
		require.NoError(t, err)
		require.Len(t, result.Documents, 1)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "panicky", result.Failures[0].Provider)
		assert.Contains(t, result.Failures[0].Err.Error(), "panic")
	})

	t.Run("a timed-out provider is treated like any other failure", func(t *testing.T) {
		t.Parallel()

		hanging := &mock.Provider{
			NameFn: func() string { return "hanging" },
			FetchFn: func(ctx context.Context, _ readykit.Location) ([]*readykit.Document, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
		}

		a, err := aggregate.New(
			[]readykit.Provider{hanging, namedProvider("ok", 1)},
			aggregate.WithProviderTimeout(20*time.Millisecond),
			aggregate.WithLogger(discardLogger()),
		)
		require.NoError(t, err)

		result, err := a.Collect(context.Background(), testLocation)
		require.NoError(t, err)
		require.Len(t, result.Documents, 1)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "hanging", result.Failures[0].Provider)
	})

	t.Run("caller cancellation aborts the pass", func(t *testing.T) {
		t.Parallel()

		blocked := &mock.Provider{
			NameFn: func() string { return "blocked" },
			FetchFn: func(ctx context.Context, _ readykit.Location) ([]*readykit.Document, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
		}

		a, err := aggregate.New(
			[]readykit.Provider{blocked},
			aggregate.WithLogger(discardLogger()),
		)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()

		_, err = a.Collect(ctx, testLocation)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rejects invalid location", func(t *testing.T) {
		t.Parallel()

		a, err := aggregate.New(
			[]readykit.Provider{namedProvider("ok", 1)},
			aggregate.WithLogger(discardLogger()),
		)
		require.NoError(t, err)

		_, err = a.Collect(context.Background(), readykit.Location{})
		require.Error(t, err)
		assert.Equal(t, readykit.EINVALID, readykit.ErrorCode(err))
	})

	t.Run("identical inputs yield structurally identical results", func(t *testing.T) {
		t.Parallel()

		providers := []readykit.Provider{
			namedProvider("weather", 1),
			namedProvider("alerts", 3),
			namedProvider("business", 5),
		}

		a, err := aggregate.New(providers, aggregate.WithLogger(discardLogger()))
		require.NoError(t, err)

		first, err := a.Collect(context.Background(), testLocation)
		require.NoError(t, err)
		second, err := a.Collect(context.Background(), testLocation)
		require.NoError(t, err)

		assert.Equal(t, first.Documents, second.Documents)
		assert.Equal(t, first.Failures, second.Failures)
	})
}
