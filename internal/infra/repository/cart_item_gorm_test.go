package repository

import (
	"context"
	"testing"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
	"github.com/appdotbuilder/souvia-ecommerce/internal/infra/db/dbtest"
	repo "github.com/appdotbuilder/souvia-ecommerce/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartItemGorm_UpsertMergesSameVariation(t *testing.T) {
	conn := dbtest.Open(t)
	ctx := context.Background()
	cat := dbtest.MustCategory(t, conn, "Dress", "dress")
	p := dbtest.MustProduct(t, conn, cat.ID, "linen-dress", "100000")
	r := NewCartItemGormRepository(conn)

	first, err := r.UpsertBySessionAndProduct(ctx, "s1", p.ID, model.Variation{"size": "M", "color": "Red"}, 2)
	require.NoError(t, err)

	// キー順が違っても同じ選択
	second, err := r.UpsertBySessionAndProduct(ctx, "s1", p.ID, model.Variation{"color": "Red", "size": "M"}, 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(5), second.Quantity)

	items, err := r.ListBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(5), items[0].Quantity)
	require.NotNil(t, items[0].Product)
	require.NotNil(t, items[0].Product.Category)
	assert.Equal(t, "dress", items[0].Product.Category.Slug)
}

func TestCartItemGorm_UpsertDifferentVariationInsertsNewRow(t *testing.T) {
	conn := dbtest.Open(t)
	ctx := context.Background()
	cat := dbtest.MustCategory(t, conn, "Dress", "dress")
	p := dbtest.MustProduct(t, conn, cat.ID, "linen-dress", "100000")
	r := NewCartItemGormRepository(conn)

	_, err := r.UpsertBySessionAndProduct(ctx, "s1", p.ID, model.Variation{"size": "M"}, 1)
	require.NoError(t, err)
	_, err = r.UpsertBySessionAndProduct(ctx, "s1", p.ID, model.Variation{"size": "L"}, 1)
	require.NoError(t, err)

	items, err := r.ListBySession(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCartItemGorm_UpsertNilAndEmptyVariationAreTheSame(t *testing.T) {
	conn := dbtest.Open(t)
	ctx := context.Background()
	cat := dbtest.MustCategory(t, conn, "Dress", "dress")
	p := dbtest.MustProduct(t, conn, cat.ID, "linen-dress", "100000")
	r := NewCartItemGormRepository(conn)

	_, err := r.UpsertBySessionAndProduct(ctx, "s1", p.ID, nil, 1)
	require.NoError(t, err)
	out, err := r.UpsertBySessionAndProduct(ctx, "s1", p.ID, model.Variation{}, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Quantity)

	// 別セッションとは混ざらない
	_, err = r.UpsertBySessionAndProduct(ctx, "s2", p.ID, nil, 1)
	require.NoError(t, err)

	items, err := r.ListBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].ProductVariation)
}

func TestCartItemGorm_ScopedToSession(t *testing.T) {
	conn := dbtest.Open(t)
	ctx := context.Background()
	cat := dbtest.MustCategory(t, conn, "Dress", "dress")
	p := dbtest.MustProduct(t, conn, cat.ID, "linen-dress", "100000")
	r := NewCartItemGormRepository(conn)

	item, err := r.UpsertBySessionAndProduct(ctx, "owner", p.ID, nil, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, r.UpdateQuantity(ctx, "other", item.ID, 9), repo.ErrNotFound)
	assert.ErrorIs(t, r.DeleteByID(ctx, "other", item.ID), repo.ErrNotFound)
	_, err = r.FindByID(ctx, "other", item.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	require.NoError(t, r.UpdateQuantity(ctx, "owner", item.ID, 4))
	got, err := r.FindByID(ctx, "owner", item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Quantity)

	require.NoError(t, r.DeleteByID(ctx, "owner", item.ID))
	assert.ErrorIs(t, r.DeleteByID(ctx, "owner", item.ID), repo.ErrNotFound)
}

func TestCartItemGorm_DeleteBySession(t *testing.T) {
	conn := dbtest.Open(t)
	ctx := context.Background()
	cat := dbtest.MustCategory(t, conn, "Dress", "dress")
	p1 := dbtest.MustProduct(t, conn, cat.ID, "a", "10")
	p2 := dbtest.MustProduct(t, conn, cat.ID, "b", "20")
	r := NewCartItemGormRepository(conn)

	_, err := r.UpsertBySessionAndProduct(ctx, "s1", p1.ID, nil, 1)
	require.NoError(t, err)
	_, err = r.UpsertBySessionAndProduct(ctx, "s1", p2.ID, nil, 1)
	require.NoError(t, err)
	_, err = r.UpsertBySessionAndProduct(ctx, "s2", p1.ID, nil, 1)
	require.NoError(t, err)

	n, err := r.DeleteBySession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := r.ListBySession(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

func TestCartItemGorm_DeleteByProduct(t *testing.T) {
	conn := dbtest.Open(t)
	ctx := context.Background()
	cat := dbtest.MustCategory(t, conn, "Dress", "dress")
	gone := dbtest.MustProduct(t, conn, cat.ID, "gone", "10")
	kept := dbtest.MustProduct(t, conn, cat.ID, "kept", "10")
	r := NewCartItemGormRepository(conn)

	for _, sess := range []string{"s1", "s2"} {
		_, err := r.UpsertBySessionAndProduct(ctx, sess, gone.ID, nil, 1)
		require.NoError(t, err)
	}
	_, err := r.UpsertBySessionAndProduct(ctx, "s1", kept.ID, nil, 1)
	require.NoError(t, err)

	n, err := r.DeleteByProduct(ctx, gone.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	items, err := r.ListBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, kept.ID, items[0].ProductID)

	items, err = r.ListBySession(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, items)
}
