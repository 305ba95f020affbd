package dungeons_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/clock"
	"github.com/KirkDiggler/dungeon-api/internal/repositories/dungeons"
	"github.com/KirkDiggler/dungeon-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    dungeons.Repository
	now     time.Time
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	s.ctx = context.Background()

	repo, err := dungeons.NewRedisRepository(&dungeons.Config{
		Client: client,
		Clock:  clock.NewFixed(s.now),
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) record(id string) *dungeons.DungeonRecord {
	return &dungeons.DungeonRecord{
		ID:         id,
		TemplateID: "crypt",
		ModifierID: "elite",
		Seed:       42,
		Stats: entities.DungeonStats{
			RoomCount:  8,
			EnemyCount: 17,
			ChestCount: 4,
		},
	}
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	created, err := s.repo.Create(s.ctx, dungeons.CreateInput{Record: s.record("dungeon-1")})
	s.Require().NoError(err)
	s.Equal(s.now, created.Record.CreatedAt)
	s.Equal(s.now.Add(6*time.Hour), created.Record.ExpiresAt)

	got, err := s.repo.Get(s.ctx, dungeons.GetInput{ID: "dungeon-1"})
	s.Require().NoError(err)
	s.Equal("crypt", got.Record.TemplateID)
	s.Equal("elite", got.Record.ModifierID)
	s.Equal(int64(42), got.Record.Seed)
	s.Equal(8, got.Record.Stats.RoomCount)
}

func (s *RedisRepositoryTestSuite) TestCreateCustomTTL() {
	created, err := s.repo.Create(s.ctx, dungeons.CreateInput{
		Record: s.record("dungeon-short"),
		TTL:    30 * time.Minute,
	})
	s.Require().NoError(err)
	s.Equal(s.now.Add(30*time.Minute), created.Record.ExpiresAt)
}

func (s *RedisRepositoryTestSuite) TestCreateNilRecord() {
	_, err := s.repo.Create(s.ctx, dungeons.CreateInput{})
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestCreateEmptyID() {
	_, err := s.repo.Create(s.ctx, dungeons.CreateInput{Record: s.record("")})
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, dungeons.GetInput{ID: "never-stored"})
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGetEmptyID() {
	_, err := s.repo.Get(s.ctx, dungeons.GetInput{})
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, dungeons.CreateInput{Record: s.record("dungeon-del")})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, dungeons.DeleteInput{ID: "dungeon-del"})
	s.Require().NoError(err)
	s.True(out.Deleted)

	_, err = s.repo.Get(s.ctx, dungeons.GetInput{ID: "dungeon-del"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDeleteMissing() {
	out, err := s.repo.Delete(s.ctx, dungeons.DeleteInput{ID: "never-stored"})
	s.Require().NoError(err)
	s.False(out.Deleted)
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

// Expiration uses wall-clock comparison against the stored record, so a
// repository whose clock has moved past ExpiresAt treats the record as
// gone even before Redis evicts the key.
func TestGetExpiredRecord(t *testing.T) {
	mr, client, cleanup := testutils.CreateTestRedisServer(t)
	defer cleanup()

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	writer, err := dungeons.NewRedisRepository(&dungeons.Config{
		Client: client,
		Clock:  clock.NewFixed(now),
	})
	if err != nil {
		t.Fatal(err)
	}

	record := &dungeons.DungeonRecord{ID: "dungeon-exp", TemplateID: "crypt", Seed: 7}
	if _, err := writer.Create(context.Background(), dungeons.CreateInput{
		Record: record,
		TTL:    time.Hour,
	}); err != nil {
		t.Fatal(err)
	}

	reader, err := dungeons.NewRedisRepository(&dungeons.Config{
		Client: client,
		Clock:  clock.NewFixed(now.Add(2 * time.Hour)),
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = reader.Get(context.Background(), dungeons.GetInput{ID: "dungeon-exp"})
	if !errors.IsNotFound(err) {
		t.Fatalf("expected not found for expired record, got %v", err)
	}

	// Redis-side eviction reports the same way once the TTL elapses.
	mr.FastForward(2 * time.Hour)
	_, err = writer.Get(context.Background(), dungeons.GetInput{ID: "dungeon-exp"})
	if !errors.IsNotFound(err) {
		t.Fatalf("expected not found after TTL eviction, got %v", err)
	}
}
