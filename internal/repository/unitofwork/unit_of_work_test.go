package unitofwork

import (
	"context"
	"path/filepath"
	"testing"

	"jarvina-be/internal/entity"
	"jarvina-be/internal/model"
	"jarvina-be/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFactory(t *testing.T) RepositoryFactory {
	t.Helper()
	db, err := database.NewQuietGormDB(database.DriverSQLite, filepath.Join(t.TempDir(), "uow.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, model.All()...))
	return NewRepositoryFactory(db)
}

func TestUnitOfWorkCommit(t *testing.T) {
	ctx := context.Background()
	factory := newFactory(t)

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.NoteRepository().Create(ctx, &entity.Note{Content: "committed"}))
	require.NoError(t, uow.Commit())

	count, err := factory.NewUnitOfWork(ctx).NoteRepository().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUnitOfWorkRollback(t *testing.T) {
	ctx := context.Background()
	factory := newFactory(t)

	seed := factory.NewUnitOfWork(ctx)
	require.NoError(t, seed.ConversationRepository().Create(ctx, &entity.ConversationEntry{Role: "user", Content: "keep me"}))

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.ConversationRepository().Truncate(ctx))
	require.NoError(t, uow.Rollback())

	count, err := factory.NewUnitOfWork(ctx).ConversationRepository().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUnitOfWorkStateErrors(t *testing.T) {
	ctx := context.Background()
	uow := newFactory(t).NewUnitOfWork(ctx)

	assert.Error(t, uow.Commit())
	assert.Error(t, uow.Rollback())

	require.NoError(t, uow.Begin(ctx))
	assert.Error(t, uow.Begin(ctx))
	require.NoError(t, uow.Rollback())
}
