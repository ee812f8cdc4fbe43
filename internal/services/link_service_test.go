package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aphex18/URL-SHORTENER/internal/shortcode"
)

func TestShortenGeneratesCode(t *testing.T) {
	users, links, _ := newTestServices(t)
	user := mustCreateUser(t, users, "jane@example.com")

	link, err := links.Shorten(context.Background(), user.ID, "https://example.com/a/b", "")
	require.NoError(t, err)

	assert.NotEmpty(t, link.ID)
	assert.Len(t, link.ShortCode, shortcode.Length)
	assert.True(t, shortcode.Valid(link.ShortCode))
	assert.Equal(t, "https://example.com/a/b", link.TargetURL)
	assert.Equal(t, user.ID, link.UserID)
}

func TestShortenTwiceProducesDistinctCodes(t *testing.T) {
	users, links, _ := newTestServices(t)
	user := mustCreateUser(t, users, "jane@example.com")

	first, err := links.Shorten(context.Background(), user.ID, "https://example.com", "")
	require.NoError(t, err)
	second, err := links.Shorten(context.Background(), user.ID, "https://example.com", "")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.ShortCode, second.ShortCode)
}

func TestShortenCustomCode(t *testing.T) {
	users, links, _ := newTestServices(t)
	user := mustCreateUser(t, users, "jane@example.com")

	link, err := links.Shorten(context.Background(), user.ID, "https://x.test", "my-link")
	require.NoError(t, err)
	assert.Equal(t, "my-link", link.ShortCode)
}

func TestShortenCustomCodeTaken(t *testing.T) {
	users, links, _ := newTestServices(t)
	user := mustCreateUser(t, users, "jane@example.com")
	other := mustCreateUser(t, users, "john@example.com")

	_, err := links.Shorten(context.Background(), user.ID, "https://x.test", "my-link")
	require.NoError(t, err)

	// Same code, different URL and different owner: still a conflict, the
	// namespace is global.
	_, err = links.Shorten(context.Background(), other.ID, "https://y.test", "my-link")
	assert.ErrorIs(t, err, ErrCodeTaken)

	// The original mapping is untouched.
	target, err := links.Resolve(context.Background(), "my-link")
	require.NoError(t, err)
	assert.Equal(t, "https://x.test", target)
}

func TestShortenValidation(t *testing.T) {
	users, links, _ := newTestServices(t)
	user := mustCreateUser(t, users, "jane@example.com")

	tests := []struct {
		name string
		url  string
		code string
		want error
	}{
		{"empty URL", "", "", ErrInvalidURL},
		{"relative URL", "/just/a/path", "", ErrInvalidURL},
		{"no scheme", "example.com/x", "", ErrInvalidURL},
		{"ftp scheme", "ftp://example.com/x", "", ErrInvalidURL},
		{"code with space", "https://example.com", "my link", ErrInvalidCode},
		{"code with slash", "https://example.com", "a/b", ErrInvalidCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := links.Shorten(context.Background(), user.ID, tt.url, tt.code)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// Nothing was persisted for the rejected requests.
	owned, err := links.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, owned)
}

func TestShortenRetriesCollidingGeneratedCode(t *testing.T) {
	users, links, _ := newTestServices(t)
	user := mustCreateUser(t, users, "jane@example.com")

	taken, err := links.Shorten(context.Background(), user.ID, "https://taken.test", "")
	require.NoError(t, err)

	// First two draws collide with the existing code, the third is fresh.
	calls := 0
	links.generate = func() (string, error) {
		calls++
		if calls <= 2 {
			return taken.ShortCode, nil
		}
		return "fresh1", nil
	}

	link, err := links.Shorten(context.Background(), user.ID, "https://example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "fresh1", link.ShortCode)
	assert.Equal(t, 3, calls)

	// The colliding link is untouched.
	target, err := links.Resolve(context.Background(), taken.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, "https://taken.test", target)
}

func TestShortenExhaustsGenerateRetries(t *testing.T) {
	users, links, _ := newTestServices(t)
	user := mustCreateUser(t, users, "jane@example.com")

	taken, err := links.Shorten(context.Background(), user.ID, "https://taken.test", "")
	require.NoError(t, err)

	// Every draw collides.
	calls := 0
	links.generate = func() (string, error) {
		calls++
		return taken.ShortCode, nil
	}

	_, err = links.Shorten(context.Background(), user.ID, "https://example.com", "")
	assert.ErrorIs(t, err, ErrCodeSpaceExhausted)
	assert.Equal(t, generateRetries, calls)

	// Only the original link exists.
	owned, err := links.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}

func TestResolveRoundTrip(t *testing.T) {
	users, links, _ := newTestServices(t)
	user := mustCreateUser(t, users, "jane@example.com")

	link, err := links.Shorten(context.Background(), user.ID, "https://example.com/a/b?q=1", "")
	require.NoError(t, err)

	target, err := links.Resolve(context.Background(), link.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a/b?q=1", target)
}

func TestResolveUnknownCode(t *testing.T) {
	_, links, _ := newTestServices(t)

	_, err := links.Resolve(context.Background(), "nosuch")
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestListByUserScoping(t *testing.T) {
	users, links, _ := newTestServices(t)
	jane := mustCreateUser(t, users, "jane@example.com")
	john := mustCreateUser(t, users, "john@example.com")

	created := map[string]string{}
	for _, target := range []string{"https://a.test", "https://b.test", "https://c.test"} {
		link, err := links.Shorten(context.Background(), jane.ID, target, "")
		require.NoError(t, err)
		created[link.ShortCode] = target
	}
	_, err := links.Shorten(context.Background(), john.ID, "https://other.test", "")
	require.NoError(t, err)

	owned, err := links.ListByUser(context.Background(), jane.ID)
	require.NoError(t, err)
	require.Len(t, owned, 3)
	for _, link := range owned {
		assert.Equal(t, created[link.ShortCode], link.TargetURL)
		assert.Equal(t, jane.ID, link.UserID)
	}
}

func TestDeleteOwnLink(t *testing.T) {
	users, links, _ := newTestServices(t)
	user := mustCreateUser(t, users, "jane@example.com")

	link, err := links.Shorten(context.Background(), user.ID, "https://example.com", "")
	require.NoError(t, err)

	require.NoError(t, links.Delete(context.Background(), user.ID, link.ID))

	_, err = links.Resolve(context.Background(), link.ShortCode)
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestDeleteForeignLink(t *testing.T) {
	users, links, _ := newTestServices(t)
	jane := mustCreateUser(t, users, "jane@example.com")
	john := mustCreateUser(t, users, "john@example.com")

	link, err := links.Shorten(context.Background(), jane.ID, "https://example.com", "")
	require.NoError(t, err)

	err = links.Delete(context.Background(), john.ID, link.ID)
	assert.ErrorIs(t, err, ErrLinkNotFound)

	// The row survives the foreign delete attempt.
	target, err := links.Resolve(context.Background(), link.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", target)
}

func TestDeleteMissingLink(t *testing.T) {
	users, links, _ := newTestServices(t)
	user := mustCreateUser(t, users, "jane@example.com")

	err := links.Delete(context.Background(), user.ID, "no-such-id")
	assert.ErrorIs(t, err, ErrLinkNotFound)
}
