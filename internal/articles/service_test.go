package articles

import (
	"context"
	"testing"
	"time"

	"blog-platform/internal/auth"
	"blog-platform/internal/rbac"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Unix(1700000000, 0).UTC()

func as(email string) context.Context {
	return auth.WithPrincipal(context.Background(), auth.Principal{UserID: 1, Email: email, Authorities: []string{auth.AuthorityUser}}, "tok")
}

func newTestService() (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	return NewService(repo, func() time.Time { return fixedNow }), repo
}

func TestService_CreateUsesPrincipalAsAuthor(t *testing.T) {
	svc, _ := newTestService()

	a, err := svc.Create(as("alice@x"), CreateRequest{Title: "t", Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, "alice@x", a.Author)
	assert.Equal(t, fixedNow, a.CreatedAt)

	_, err = svc.Create(context.Background(), CreateRequest{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, rbac.ErrNotAuthenticated)

	_, err = svc.Create(as("alice@x"), CreateRequest{Title: " ", Content: "c"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestService_UpdateByAuthor(t *testing.T) {
	svc, _ := newTestService()
	a, err := svc.Create(as("alice@x"), CreateRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	got, err := svc.Update(as("alice@x"), a.ID, UpdateRequest{Title: "t2", Content: "c2"})
	require.NoError(t, err)
	assert.Equal(t, "t2", got.Title)
	assert.Equal(t, "c2", got.Content)
	assert.Equal(t, "alice@x", got.Author)
}

func TestService_UpdateByOtherUserLeavesArticleUnchanged(t *testing.T) {
	svc, repo := newTestService()
	a, err := svc.Create(as("alice@x"), CreateRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = svc.Update(as("bob@x"), a.ID, UpdateRequest{Title: "hacked", Content: "hacked"})
	assert.ErrorIs(t, err, rbac.ErrNotAuthorized)

	_, err = svc.Update(context.Background(), a.ID, UpdateRequest{Title: "hacked", Content: "hacked"})
	assert.ErrorIs(t, err, rbac.ErrNotAuthenticated)

	stored, err := repo.FindByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, stored)
}

func TestService_DeleteAuthorOnly(t *testing.T) {
	svc, _ := newTestService()
	a, err := svc.Create(as("alice@x"), CreateRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(as("bob@x"), a.ID), rbac.ErrNotAuthorized)
	_, err = svc.Get(context.Background(), a.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(as("alice@x"), a.ID))
	_, err = svc.Get(context.Background(), a.ID)
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestService_MutationsSucceedIffPrincipalIsAuthor(t *testing.T) {
	emails := []string{"alice@x", "bob@x", "carol@x"}
	for _, author := range emails {
		for _, caller := range emails {
			svc, _ := newTestService()
			a, err := svc.Create(as(author), CreateRequest{Title: "t", Content: "c"})
			require.NoError(t, err)

			_, updErr := svc.Update(as(caller), a.ID, UpdateRequest{Title: "n", Content: "n"})
			delErr := svc.Delete(as(caller), a.ID)
			if caller == author {
				assert.NoError(t, updErr)
				assert.NoError(t, delErr)
			} else {
				assert.ErrorIs(t, updErr, rbac.ErrNotAuthorized)
				assert.ErrorIs(t, delErr, rbac.ErrNotAuthorized)
			}
		}
	}
}

func TestService_MissingArticle(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Update(as("alice@x"), 42, UpdateRequest{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrArticleNotFound)
	assert.ErrorIs(t, svc.Delete(as("alice@x"), 42), ErrArticleNotFound)
}

func TestService_ListOrdered(t *testing.T) {
	svc, _ := newTestService()
	for _, title := range []string{"a", "b", "c"} {
		_, err := svc.Create(as("alice@x"), CreateRequest{Title: title, Content: "c"})
		require.NoError(t, err)
	}
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].Title)
	assert.Equal(t, "c", list[2].Title)
}

func TestService_DefaultClockIsSystemClock(t *testing.T) {
	svc := NewService(NewMemoryRepo(), nil)

	a, err := svc.Create(as("alice@x"), CreateRequest{Title: "t", Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, a.CreatedAt.Location())
	assert.True(t, a.CreatedAt.Equal(a.CreatedAt.Truncate(time.Millisecond)))
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
}
