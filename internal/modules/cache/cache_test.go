package cache

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/careermap-backend/internal/data/repos"
	"github.com/yungbote/careermap-backend/internal/data/repos/testutil"
	types "github.com/yungbote/careermap-backend/internal/domain/cache"
	"github.com/yungbote/careermap-backend/internal/domain/content"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

type memStore struct {
	mu      sync.Mutex
	data    map[Key][]byte
	failGet error
	failPut error
	deleted []Key
}

func newMemStore() *memStore { return &memStore{data: map[Key][]byte{}} }

func (m *memStore) Get(_ context.Context, key Key) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, false, m.failGet
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Put(_ context.Context, key Key, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut != nil {
		return m.failPut
	}
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *memStore) Delete(_ context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, key)
	delete(m.data, key)
	return nil
}

func sampleCareer() content.CareerContent {
	c := content.CareerContent{
		Description:      "Builds software.",
		Pathway:          []string{"Learn to code", "Ship projects"},
		DescriptionLinks: []content.Link{{Text: "BLS", URL: "https://bls.gov"}},
		PathwayLinks:     [][]content.Link{{}, {{Text: "GitHub", URL: "https://github.com"}}},
		Income:           content.Income{Average: "$120,000"},
		GeneratedAt:      time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	c.Normalize()
	return c
}

func TestContentCache_CareerRoundTrip(t *testing.T) {
	c := New(logger.Nop(), newMemStore())
	key := NewKey(uuid.New(), "Software Engineer", types.KindCareer)
	ctx := context.Background()

	_, ok := c.GetCareer(ctx, key)
	require.False(t, ok)

	want := sampleCareer()
	require.NoError(t, c.PutCareer(ctx, key, want))

	got, ok := c.GetCareer(ctx, key)
	require.True(t, ok)
	require.Equal(t, want.Description, got.Description)
	require.Equal(t, want.Pathway, got.Pathway)
	require.Equal(t, want.DescriptionLinks, got.DescriptionLinks)
	require.Equal(t, want.PathwayLinks, got.PathwayLinks)
	require.Equal(t, want.Income, got.Income)
	require.True(t, want.GeneratedAt.Equal(got.GeneratedAt))
}

func TestContentCache_InvalidPayloadIsMiss(t *testing.T) {
	store := newMemStore()
	c := New(logger.Nop(), store)
	ctx := context.Background()
	key := NewKey(uuid.New(), "n", types.KindCareer)

	empty := sampleCareer()
	empty.Description = "  "
	require.NoError(t, c.PutCareer(ctx, key, empty))
	_, ok := c.GetCareer(ctx, key)
	require.False(t, ok)

	noPath := sampleCareer()
	noPath.Pathway = nil
	require.NoError(t, c.PutCareer(ctx, key, noPath))
	_, ok = c.GetCareer(ctx, key)
	require.False(t, ok)

	store.data[key] = []byte(`{"description": 42}`)
	_, ok = c.GetCareer(ctx, key)
	require.False(t, ok)

	skillKey := NewKey(key.UserID, "n", types.KindSkill)
	store.data[skillKey] = []byte(`{"university": null}`)
	_, ok = c.GetSkill(ctx, skillKey)
	require.False(t, ok)
}

func TestContentCache_PerUserIsolation(t *testing.T) {
	c := New(logger.Nop(), newMemStore())
	ctx := context.Background()
	alice := NewKey(uuid.New(), "swe", types.KindCareer)
	bob := NewKey(uuid.New(), "swe", types.KindCareer)

	require.NoError(t, c.PutCareer(ctx, alice, sampleCareer()))
	_, ok := c.GetCareer(ctx, bob)
	require.False(t, ok)

	_, ok = c.GetSkill(ctx, NewKey(alice.UserID, "swe", types.KindSkill))
	require.False(t, ok)
}

func TestContentCache_KindMismatchAndInvalidKey(t *testing.T) {
	c := New(logger.Nop(), newMemStore())
	ctx := context.Background()

	require.ErrorIs(t, c.PutCareer(ctx, NewKey(uuid.New(), "x", types.KindSkill), sampleCareer()), ErrInvalidKey)
	require.ErrorIs(t, c.PutSkill(ctx, NewKey(uuid.New(), "x", types.KindCareer), content.SkillContent{}), ErrInvalidKey)
	require.ErrorIs(t, c.PutCareer(ctx, NewKey(uuid.Nil, "x", types.KindCareer), sampleCareer()), ErrInvalidKey)
}

func TestContentCache_StorageErrorsDegrade(t *testing.T) {
	store := newMemStore()
	store.failGet = errors.New("db down")
	c := New(logger.Nop(), store)

	_, ok := c.GetCareer(context.Background(), NewKey(uuid.New(), "x", types.KindCareer))
	require.False(t, ok)

	disabled := New(logger.Nop(), nil)
	require.False(t, disabled.Enabled())
	require.NoError(t, disabled.PutCareer(context.Background(), NewKey(uuid.New(), "x", types.KindCareer), sampleCareer()))
}

func TestContentCache_SkillRoundTrip(t *testing.T) {
	c := New(logger.Nop(), newMemStore())
	ctx := context.Background()
	key := NewKey(uuid.New(), "Python", types.KindSkill)
	u := "UC Berkeley"

	want := content.SkillContent{
		Classes:    []content.Resource{{Title: "COMPSCI 61A"}},
		Clubs:      []content.Resource{{Title: "Python Club", URL: "https://py.club"}},
		University: &u,
	}
	require.NoError(t, c.PutSkill(ctx, key, want))
	got, ok := c.GetSkill(ctx, key)
	require.True(t, ok)
	require.Equal(t, want, *got)
}

func TestTieredStore_BackfillsHot(t *testing.T) {
	hot, cold := newMemStore(), newMemStore()
	s := NewTieredStore(logger.Nop(), hot, cold)
	ctx := context.Background()
	key := NewKey(uuid.New(), "n", types.KindCareer)

	require.NoError(t, cold.Put(ctx, key, []byte(`{"a":1}`)))
	data, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"a":1}`, string(data))
	require.Contains(t, hot.data, key)

	hot.failPut = errors.New("redis down")
	require.NoError(t, s.Put(ctx, key, []byte(`{"a":2}`)))
	require.JSONEq(t, `{"a":2}`, string(cold.data[key]))

	require.Equal(t, cold, NewTieredStore(logger.Nop(), nil, cold))
}

func TestTieredStore_FailedHotWriteEvictsStaleEntry(t *testing.T) {
	hot, cold := newMemStore(), newMemStore()
	s := NewTieredStore(logger.Nop(), hot, cold)
	ctx := context.Background()
	key := NewKey(uuid.New(), "n", types.KindCareer)

	require.NoError(t, s.Put(ctx, key, []byte(`{"v":"old"}`)))
	require.JSONEq(t, `{"v":"old"}`, string(hot.data[key]))

	hot.failPut = errors.New("redis down")
	require.NoError(t, s.Put(ctx, key, []byte(`{"v":"new"}`)))
	require.Equal(t, []Key{key}, hot.deleted)
	require.NotContains(t, hot.data, key)

	data, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"v":"new"}`, string(data))
}

func TestGormStore_RoundTrip(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	c := New(log, NewGormStore(repos.NewUserNodeCacheRepo(db, log)))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, db, "cacheuser-"+uuid.NewString())
	key := NewKey(u.ID, "Software Engineer", types.KindCareer)

	require.NoError(t, c.PutCareer(ctx, key, sampleCareer()))
	second := sampleCareer()
	second.Description = "Regenerated."
	require.NoError(t, c.PutCareer(ctx, key, second))

	got, ok := c.GetCareer(ctx, key)
	require.True(t, ok)
	require.Equal(t, "Regenerated.", got.Description)
}

func TestRedisStore_RoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis cache tests")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	defer rdb.Close()

	s := NewRedisStore(rdb, time.Minute)
	ctx := context.Background()
	key := NewKey(uuid.New(), "n", types.KindSkill)
	defer rdb.Del(ctx, key.String())

	_, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Put(ctx, key, []byte(`{"classes":[],"clubs":[]}`)))
	data, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"classes":[],"clubs":[]}`, string(data))

	require.NoError(t, s.(evicter).Delete(ctx, key))
	_, ok, err = s.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestKey(t *testing.T) {
	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	k := NewKey(id, " swe ", types.KindCareer)
	require.True(t, k.Valid())
	require.Equal(t, "careermap:content:11111111-1111-1111-1111-111111111111:career:swe", k.String())
	require.False(t, NewKey(id, "", types.KindCareer).Valid())
	require.False(t, NewKey(id, "x", types.Kind("other")).Valid())
}
