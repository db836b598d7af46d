package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avcve/yakawa-sKitchen/internal/auth"
	"github.com/avcve/yakawa-sKitchen/internal/review/application"
	"github.com/avcve/yakawa-sKitchen/internal/review/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleMonth(id domain.MonthID, status domain.MonthStatus, createdAt time.Time) domain.Month {
	return domain.Month{
		ID:        id,
		Name:      "Month " + id.String(),
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestMonthRepositoryRoundTrip(t *testing.T) {
	store := openTestStore(t)
	repo := NewMonthRepository(store)
	ctx := context.Background()

	now := time.Now().UTC()
	first := sampleMonth("jan-2026", domain.MonthStatusClosed, now.Add(-time.Hour))
	second := sampleMonth("feb-2026", domain.MonthStatusActive, now)
	second.Description = "2月のメニュー"
	second.Images = domain.ImageURLList{"https://example.com/a.jpg"}

	require.NoError(t, repo.Insert(ctx, &first))
	require.NoError(t, repo.Insert(ctx, &second))

	months, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, months, 2)

	assert.Equal(t, domain.MonthID("jan-2026"), months[0].ID)
	assert.Equal(t, domain.MonthID("feb-2026"), months[1].ID)
	assert.Equal(t, "2月のメニュー", months[1].Description)
	assert.Equal(t, []string{"https://example.com/a.jpg"}, months[1].Images.Strings())
	assert.Equal(t, domain.MonthStatusActive, months[1].Status)
}

func TestMonthRepositoryUpdateStatus(t *testing.T) {
	store := openTestStore(t)
	repo := NewMonthRepository(store)
	ctx := context.Background()

	month := sampleMonth("jan-2026", domain.MonthStatusUpcoming, time.Now().UTC())
	require.NoError(t, repo.Insert(ctx, &month))

	require.NoError(t, repo.UpdateStatus(ctx, "jan-2026", domain.MonthStatusActive))

	months, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, months, 1)
	assert.Equal(t, domain.MonthStatusActive, months[0].Status)

	err = repo.UpdateStatus(ctx, "missing", domain.MonthStatusClosed)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestMonthRepositoryUpdateDetails(t *testing.T) {
	store := openTestStore(t)
	repo := NewMonthRepository(store)
	ctx := context.Background()

	month := sampleMonth("feb-2026", domain.MonthStatusActive, time.Now().UTC())
	require.NoError(t, repo.Insert(ctx, &month))

	month.Description = "新しい説明"
	month.Images = domain.ImageURLList{"https://example.com/b.jpg", "https://example.com/c.jpg"}
	month.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.UpdateDetails(ctx, month))

	months, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, months, 1)
	assert.Equal(t, "新しい説明", months[0].Description)
	assert.Len(t, months[0].Images, 2)

	missing := sampleMonth("missing", domain.MonthStatusClosed, time.Now().UTC())
	assert.ErrorIs(t, repo.UpdateDetails(ctx, missing), application.ErrNotFound)
}

func sampleReview(monthID domain.MonthID, createdAt time.Time) domain.Review {
	rating, _ := domain.NewRating(4)
	specifics, _ := domain.NewSpecifics(5, 3, 4)
	return domain.Review{
		MonthID:   monthID,
		Nickname:  domain.NewNickname("たろう"),
		Rating:    rating,
		Specifics: specifics,
		Love:      "スープが最高でした",
		CreatedAt: createdAt,
	}
}

func TestReviewRepositoryRoundTrip(t *testing.T) {
	store := openTestStore(t)
	repo := NewReviewRepository(store)
	ctx := context.Background()

	now := time.Now().UTC()
	older := sampleReview("feb-2026", now.Add(-time.Minute))
	newer := sampleReview("feb-2026", now)
	newer.Images = domain.ImageURLList{"https://example.com/photo.jpg"}

	require.NoError(t, repo.Insert(ctx, &older))
	require.NoError(t, repo.Insert(ctx, &newer))
	assert.NotEmpty(t, older.ID)
	assert.NotEmpty(t, newer.ID)
	assert.NotEqual(t, older.ID, newer.ID)

	reviews, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	assert.Equal(t, newer.ID, reviews[0].ID)
	assert.Equal(t, older.ID, reviews[1].ID)
	assert.Equal(t, "たろう", reviews[0].Nickname.String())
	assert.Equal(t, 4, reviews[0].Rating.Int())
	assert.Equal(t, 5, reviews[0].Specifics.Taste.Int())
	assert.Equal(t, []string{"https://example.com/photo.jpg"}, reviews[0].Images.Strings())
	assert.False(t, reviews[0].IsFeatured)
}

func TestReviewRepositorySetFeaturedAndDelete(t *testing.T) {
	store := openTestStore(t)
	repo := NewReviewRepository(store)
	ctx := context.Background()

	review := sampleReview("feb-2026", time.Now().UTC())
	require.NoError(t, repo.Insert(ctx, &review))

	require.NoError(t, repo.SetFeatured(ctx, review.ID, true))
	reviews, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.True(t, reviews[0].IsFeatured)

	assert.ErrorIs(t, repo.SetFeatured(ctx, "missing", true), application.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, review.ID))
	reviews, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	assert.ErrorIs(t, repo.Delete(ctx, review.ID), application.ErrNotFound)
}

func TestCredentialRepositoryRoundTrip(t *testing.T) {
	store := openTestStore(t)
	repo := NewCredentialRepository(store)
	ctx := context.Background()

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)

	require.NoError(t, repo.Save(ctx, auth.Credentials{Username: "owner", Password: "rotated-pass"}))

	stored, err = repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "owner", stored.Username)
	assert.Equal(t, "rotated-pass", stored.Password)

	require.NoError(t, repo.Save(ctx, auth.Credentials{Username: "owner", Password: "rotated-again"}))
	stored, err = repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "rotated-again", stored.Password)
}
