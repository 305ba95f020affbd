package dungeon_test

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
	"github.com/KirkDiggler/dungeon-api/internal/orchestrators/dungeon"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/clock"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/idgen"
	"github.com/KirkDiggler/dungeon-api/internal/repositories/dungeons"
	dungeonsmock "github.com/KirkDiggler/dungeon-api/internal/repositories/dungeons/mock"
	"github.com/KirkDiggler/dungeon-api/internal/templates"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockRepo     *dungeonsmock.MockRepository
	registry     *templates.Registry
	fixedNow     time.Time
	orchestrator dungeon.Service
	ctx          context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = dungeonsmock.NewMockRepository(s.ctrl)
	s.registry = templates.NewDefaultRegistry()
	s.fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	s.ctx = context.Background()

	orchestrator, err := dungeon.NewOrchestrator(&dungeon.Config{
		DungeonRepo: s.mockRepo,
		Registry:    s.registry,
		IDGenerator: idgen.NewSequential("dungeon"),
		EventBus:    events.NewBus(),
		Clock:       clock.NewFixed(s.fixedNow),
	})
	s.Require().NoError(err)
	s.orchestrator = orchestrator
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) TestGenerateDungeon_Success() {
	var storedRecord *dungeons.DungeonRecord

	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input dungeons.CreateInput) (*dungeons.CreateOutput, error) {
			storedRecord = input.Record
			return &dungeons.CreateOutput{Record: input.Record}, nil
		})

	output, err := s.orchestrator.GenerateDungeon(s.ctx, &dungeon.GenerateDungeonInput{
		TemplateID: "crypt",
		Seed:       42,
	})

	s.Require().NoError(err)
	s.Require().NotNil(output)
	s.Require().NotNil(output.Instance)
	s.Require().NotNil(storedRecord)

	s.Equal("dungeon_1", storedRecord.ID)
	s.Equal("crypt", storedRecord.TemplateID)
	s.Equal(int64(42), storedRecord.Seed)
	s.Equal(output.Instance.Stats, storedRecord.Stats)
	s.NotEmpty(output.Instance.Rooms)
	s.NotNil(output.Instance.Entrance())
	s.NotNil(output.Instance.Boss())
}

func (s *OrchestratorTestSuite) TestGenerateDungeon_SeedFromClock() {
	var storedRecord *dungeons.DungeonRecord

	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input dungeons.CreateInput) (*dungeons.CreateOutput, error) {
			storedRecord = input.Record
			return &dungeons.CreateOutput{Record: input.Record}, nil
		})

	output, err := s.orchestrator.GenerateDungeon(s.ctx, &dungeon.GenerateDungeonInput{
		TemplateID: "crypt",
	})

	s.Require().NoError(err)
	s.NotNil(output)
	s.Equal(s.fixedNow.UnixNano(), storedRecord.Seed)
}

func (s *OrchestratorTestSuite) TestGenerateDungeon_WithModifier() {
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input dungeons.CreateInput) (*dungeons.CreateOutput, error) {
			return &dungeons.CreateOutput{Record: input.Record}, nil
		})

	base, err := s.orchestrator.GenerateDungeon(s.ctx, &dungeon.GenerateDungeonInput{
		TemplateID: "crypt",
		Seed:       42,
	})
	s.Require().NoError(err)

	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input dungeons.CreateInput) (*dungeons.CreateOutput, error) {
			return &dungeons.CreateOutput{Record: input.Record}, nil
		})

	swarm, err := s.orchestrator.GenerateDungeon(s.ctx, &dungeon.GenerateDungeonInput{
		TemplateID: "crypt",
		ModifierID: "swarm",
		Seed:       42,
	})
	s.Require().NoError(err)

	s.Greater(swarm.Instance.Stats.EnemyCount, base.Instance.Stats.EnemyCount)
}

func (s *OrchestratorTestSuite) TestGenerateDungeon_EmptyTemplateID() {
	output, err := s.orchestrator.GenerateDungeon(s.ctx, &dungeon.GenerateDungeonInput{})

	s.Error(err)
	s.Nil(output)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "template ID is required")
}

func (s *OrchestratorTestSuite) TestGenerateDungeon_UnknownTemplate() {
	output, err := s.orchestrator.GenerateDungeon(s.ctx, &dungeon.GenerateDungeonInput{
		TemplateID: "sky-fortress",
		Seed:       42,
	})

	s.Error(err)
	s.Nil(output)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestGenerateDungeon_UnknownModifier() {
	output, err := s.orchestrator.GenerateDungeon(s.ctx, &dungeon.GenerateDungeonInput{
		TemplateID: "crypt",
		ModifierID: "impossible",
		Seed:       42,
	})

	s.Error(err)
	s.Nil(output)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestGenerateDungeon_RepoError() {
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		Return(nil, errors.Internal("redis unavailable"))

	output, err := s.orchestrator.GenerateDungeon(s.ctx, &dungeon.GenerateDungeonInput{
		TemplateID: "crypt",
		Seed:       42,
	})

	s.Error(err)
	s.Nil(output)
	s.Contains(err.Error(), "failed to store dungeon record")
}

func (s *OrchestratorTestSuite) TestGetDungeon_RegeneratesSameInstance() {
	var storedRecord *dungeons.DungeonRecord

	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input dungeons.CreateInput) (*dungeons.CreateOutput, error) {
			storedRecord = input.Record
			return &dungeons.CreateOutput{Record: input.Record}, nil
		})

	generated, err := s.orchestrator.GenerateDungeon(s.ctx, &dungeon.GenerateDungeonInput{
		TemplateID: "crypt",
		ModifierID: "elite",
		Seed:       99,
	})
	s.Require().NoError(err)

	s.mockRepo.EXPECT().
		Get(s.ctx, dungeons.GetInput{ID: storedRecord.ID}).
		Return(&dungeons.GetOutput{Record: storedRecord}, nil)

	loaded, err := s.orchestrator.GetDungeon(s.ctx, &dungeon.GetDungeonInput{
		DungeonID: storedRecord.ID,
	})

	s.Require().NoError(err)
	s.Equal(generated.Instance, loaded.Instance)
}

func (s *OrchestratorTestSuite) TestGetDungeon_EmptyID() {
	output, err := s.orchestrator.GetDungeon(s.ctx, &dungeon.GetDungeonInput{})

	s.Error(err)
	s.Nil(output)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGetDungeon_NotFound() {
	s.mockRepo.EXPECT().
		Get(s.ctx, dungeons.GetInput{ID: "dungeon-gone"}).
		Return(nil, errors.NotFound("dungeon record not found"))

	output, err := s.orchestrator.GetDungeon(s.ctx, &dungeon.GetDungeonInput{
		DungeonID: "dungeon-gone",
	})

	s.Error(err)
	s.Nil(output)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestGetDungeon_UnknownStoredTemplate() {
	s.mockRepo.EXPECT().
		Get(s.ctx, dungeons.GetInput{ID: "dungeon-stale"}).
		Return(&dungeons.GetOutput{Record: &dungeons.DungeonRecord{
			ID:         "dungeon-stale",
			TemplateID: "removed-template",
			Seed:       7,
			CreatedAt:  s.fixedNow,
		}}, nil)

	output, err := s.orchestrator.GetDungeon(s.ctx, &dungeon.GetDungeonInput{
		DungeonID: "dungeon-stale",
	})

	s.Error(err)
	s.Nil(output)
	s.Contains(err.Error(), "unknown template")
}

func (s *OrchestratorTestSuite) TestResumeDungeon_MatchesGeneratedInstance() {
	var storedRecord *dungeons.DungeonRecord

	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input dungeons.CreateInput) (*dungeons.CreateOutput, error) {
			storedRecord = input.Record
			return &dungeons.CreateOutput{Record: input.Record}, nil
		})

	generated, err := s.orchestrator.GenerateDungeon(s.ctx, &dungeon.GenerateDungeonInput{
		TemplateID: "crypt",
		Seed:       99,
	})
	s.Require().NoError(err)

	s.mockRepo.EXPECT().
		Get(s.ctx, dungeons.GetInput{ID: storedRecord.ID}).
		Return(&dungeons.GetOutput{Record: storedRecord}, nil)

	resumed, err := s.orchestrator.ResumeDungeon(s.ctx, &dungeon.ResumeDungeonInput{
		DungeonID: storedRecord.ID,
	})

	s.Require().NoError(err)
	s.Equal(generated.Instance, resumed.Instance)
	s.Equal(storedRecord, resumed.Record)
}

func (s *OrchestratorTestSuite) TestResumeDungeon_EmptyID() {
	output, err := s.orchestrator.ResumeDungeon(s.ctx, &dungeon.ResumeDungeonInput{})

	s.Error(err)
	s.Nil(output)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGetDungeonStats_ReadsStoredSnapshot() {
	record := &dungeons.DungeonRecord{
		ID:         "dungeon-7",
		TemplateID: "crypt",
		ModifierID: "elite",
		Seed:       7,
		Stats: entities.DungeonStats{
			RoomCount:   9,
			EnemyCount:  21,
			TrapCount:   4,
			ChestCount:  5,
			PuzzleCount: 1,
		},
		CreatedAt: s.fixedNow,
	}

	s.mockRepo.EXPECT().
		Get(s.ctx, dungeons.GetInput{ID: "dungeon-7"}).
		Return(&dungeons.GetOutput{Record: record}, nil)

	output, err := s.orchestrator.GetDungeonStats(s.ctx, &dungeon.GetDungeonStatsInput{
		DungeonID: "dungeon-7",
	})

	s.Require().NoError(err)
	s.Equal("dungeon-7", output.DungeonID)
	s.Equal("crypt", output.TemplateID)
	s.Equal("elite", output.ModifierID)
	s.Equal(record.Stats, output.Stats)
}

func (s *OrchestratorTestSuite) TestGetDungeonStats_UnregisteredTemplate() {
	// The stats read never touches the registry, so a record whose
	// template has since been removed is still readable.
	s.mockRepo.EXPECT().
		Get(s.ctx, dungeons.GetInput{ID: "dungeon-stale"}).
		Return(&dungeons.GetOutput{Record: &dungeons.DungeonRecord{
			ID:         "dungeon-stale",
			TemplateID: "removed-template",
			Seed:       7,
			Stats:      entities.DungeonStats{RoomCount: 8, EnemyCount: 17},
		}}, nil)

	output, err := s.orchestrator.GetDungeonStats(s.ctx, &dungeon.GetDungeonStatsInput{
		DungeonID: "dungeon-stale",
	})

	s.Require().NoError(err)
	s.Equal(8, output.Stats.RoomCount)
	s.Equal(17, output.Stats.EnemyCount)
}

func (s *OrchestratorTestSuite) TestGetDungeonStats_NotFound() {
	s.mockRepo.EXPECT().
		Get(s.ctx, dungeons.GetInput{ID: "dungeon-gone"}).
		Return(nil, errors.NotFound("dungeon record not found"))

	output, err := s.orchestrator.GetDungeonStats(s.ctx, &dungeon.GetDungeonStatsInput{
		DungeonID: "dungeon-gone",
	})

	s.Error(err)
	s.Nil(output)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestGetDungeonStats_EmptyID() {
	output, err := s.orchestrator.GetDungeonStats(s.ctx, &dungeon.GetDungeonStatsInput{})

	s.Error(err)
	s.Nil(output)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestExpireDungeon_Success() {
	s.mockRepo.EXPECT().
		Delete(s.ctx, dungeons.DeleteInput{ID: "dungeon-1"}).
		Return(&dungeons.DeleteOutput{Deleted: true}, nil)

	output, err := s.orchestrator.ExpireDungeon(s.ctx, &dungeon.ExpireDungeonInput{
		DungeonID: "dungeon-1",
	})

	s.Require().NoError(err)
	s.True(output.Deleted)
}

func (s *OrchestratorTestSuite) TestExpireDungeon_AlreadyGone() {
	s.mockRepo.EXPECT().
		Delete(s.ctx, dungeons.DeleteInput{ID: "dungeon-gone"}).
		Return(&dungeons.DeleteOutput{Deleted: false}, nil)

	output, err := s.orchestrator.ExpireDungeon(s.ctx, &dungeon.ExpireDungeonInput{
		DungeonID: "dungeon-gone",
	})

	s.Require().NoError(err)
	s.False(output.Deleted)
}

func (s *OrchestratorTestSuite) TestExpireDungeon_EmptyID() {
	output, err := s.orchestrator.ExpireDungeon(s.ctx, &dungeon.ExpireDungeonInput{})

	s.Error(err)
	s.Nil(output)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestListTemplates() {
	output, err := s.orchestrator.ListTemplates(s.ctx, &dungeon.ListTemplatesInput{})

	s.Require().NoError(err)
	s.Equal([]string{"cavern", "crypt"}, output.TemplateIDs)
}

func (s *OrchestratorTestSuite) TestNewOrchestrator_MissingDependencies() {
	_, err := dungeon.NewOrchestrator(&dungeon.Config{})

	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
