package tasks

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/models"
	"github.com/dmitrijs2005/tasktracker/internal/repositories/sessionstate"
	"github.com/dmitrijs2005/tasktracker/internal/repositories/users"
	"github.com/dmitrijs2005/tasktracker/internal/session"
	"github.com/dmitrijs2005/tasktracker/internal/storage"
)

type fixture struct {
	service *Service
	manager *session.Manager
	admin   *models.User
	member  *models.User
	other   *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	userRepo := users.NewSQLiteRepository(db)
	admin, err := userRepo.Insert(ctx, &models.User{Username: "admin", PasswordHash: "x", IsAdmin: true})
	require.NoError(t, err)
	member, err := userRepo.Insert(ctx, &models.User{Username: "alice", PasswordHash: "x"})
	require.NoError(t, err)
	other, err := userRepo.Insert(ctx, &models.User{Username: "bob", PasswordHash: "x"})
	require.NoError(t, err)

	manager := session.NewManager(sessionstate.NewSQLiteRepository(db), logger, 0)

	return &fixture{
		service: NewService(db, manager, logger),
		manager: manager,
		admin:   admin,
		member:  member,
		other:   other,
	}
}

func (f *fixture) loginAs(t *testing.T, user *models.User) {
	t.Helper()
	_, err := f.manager.Create(context.Background(), user)
	require.NoError(t, err)
}

func TestService_RequiresSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.List(ctx)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = f.service.Create(ctx, "orphan", "", 0)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestService_CreateAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.loginAs(t, f.member)

	task, err := f.service.Create(ctx, "write report", "quarterly numbers", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, models.TaskStatusOpen, task.Status)
	assert.Equal(t, f.member.ID, task.AssignedUserID)

	list, err := f.service.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, task.ID, list[0].ID)
}

func TestService_CreateRejectsEmptyTitle(t *testing.T) {
	f := newFixture(t)
	f.loginAs(t, f.member)

	_, err := f.service.Create(context.Background(), "", "", 0)
	assert.Error(t, err)
}

func TestService_MemberCannotAssignToOthers(t *testing.T) {
	f := newFixture(t)
	f.loginAs(t, f.member)

	_, err := f.service.Create(context.Background(), "not mine", "", f.other.ID)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestService_AdminSeesAllMemberSeesOwn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.loginAs(t, f.admin)
	_, err := f.service.Create(ctx, "alice task", "", f.member.ID)
	require.NoError(t, err)
	_, err = f.service.Create(ctx, "bob task", "", f.other.ID)
	require.NoError(t, err)

	all, err := f.service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	f.loginAs(t, f.member)
	mine, err := f.service.List(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "alice task", mine[0].Title)
}

func TestService_UpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.loginAs(t, f.member)

	task, err := f.service.Create(ctx, "flaky build", "", 0)
	require.NoError(t, err)

	updated, err := f.service.UpdateStatus(ctx, task.ID, models.TaskStatusDone)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusDone, updated.Status)

	done, err := f.service.ListByStatus(ctx, models.TaskStatusDone)
	require.NoError(t, err)
	assert.Len(t, done, 1)

	_, err = f.service.UpdateStatus(ctx, task.ID, "archived")
	assert.Error(t, err)
}

func TestService_ListByStatusAcrossAssignees(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.loginAs(t, f.admin)
	aliceTask, err := f.service.Create(ctx, "alice task", "", f.member.ID)
	require.NoError(t, err)
	bobTask, err := f.service.Create(ctx, "bob task", "", f.other.ID)
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(ctx, aliceTask.ID, models.TaskStatusDone)
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(ctx, bobTask.ID, models.TaskStatusDone)
	require.NoError(t, err)

	// An administrator reads the status index over every assignee.
	done, err := f.service.ListByStatus(ctx, models.TaskStatusDone)
	require.NoError(t, err)
	assert.Len(t, done, 2)

	open, err := f.service.ListByStatus(ctx, models.TaskStatusOpen)
	require.NoError(t, err)
	assert.Empty(t, open)

	// A member only sees their own tasks in the status.
	f.loginAs(t, f.member)
	done, err = f.service.ListByStatus(ctx, models.TaskStatusDone)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, aliceTask.ID, done[0].ID)
}

func TestService_Edit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.loginAs(t, f.member)

	task, err := f.service.Create(ctx, "draft", "first version", 0)
	require.NoError(t, err)

	updated, err := f.service.Edit(ctx, task.ID, "final", "")
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, "first version", updated.Description, "empty field keeps the stored value")

	updated, err = f.service.Edit(ctx, task.ID, "", "second version")
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, "second version", updated.Description)

	_, err = f.service.Edit(ctx, task.ID, "", "")
	assert.Error(t, err)
}

func TestService_EditForeignTaskForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.loginAs(t, f.admin)
	task, err := f.service.Create(ctx, "bob task", "", f.other.ID)
	require.NoError(t, err)

	f.loginAs(t, f.member)
	_, err = f.service.Edit(ctx, task.ID, "hijacked", "")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestService_UpdateStatusForeignTaskForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.loginAs(t, f.admin)
	task, err := f.service.Create(ctx, "bob task", "", f.other.ID)
	require.NoError(t, err)

	f.loginAs(t, f.member)
	_, err = f.service.UpdateStatus(ctx, task.ID, models.TaskStatusDone)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestService_UpdateStatusUnknownTask(t *testing.T) {
	f := newFixture(t)
	f.loginAs(t, f.member)

	_, err := f.service.UpdateStatus(context.Background(), "no-such-id", models.TaskStatusDone)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestService_DeleteRemovesComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.loginAs(t, f.member)

	task, err := f.service.Create(ctx, "doomed", "", 0)
	require.NoError(t, err)
	_, err = f.service.AddComment(ctx, task.ID, "first")
	require.NoError(t, err)
	_, err = f.service.AddComment(ctx, task.ID, "second")
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, task.ID))

	_, err = f.service.Comments(ctx, task.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	list, err := f.service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_Comments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.loginAs(t, f.member)

	task, err := f.service.Create(ctx, "discuss", "", 0)
	require.NoError(t, err)

	first, err := f.service.AddComment(ctx, task.ID, "looks odd")
	require.NoError(t, err)
	assert.Equal(t, f.member.ID, first.AuthorID)
	_, err = f.service.AddComment(ctx, task.ID, "fixed now")
	require.NoError(t, err)

	comments, err := f.service.Comments(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "looks odd", comments[0].Text)
	assert.Equal(t, "fixed now", comments[1].Text)

	_, err = f.service.AddComment(ctx, task.ID, "")
	assert.Error(t, err)
}

func TestService_Search(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.loginAs(t, f.admin)
	_, err := f.service.Create(ctx, "deploy staging", "", f.member.ID)
	require.NoError(t, err)
	_, err = f.service.Create(ctx, "deploy production", "", f.other.ID)
	require.NoError(t, err)

	found, err := f.service.Search(ctx, "deploy")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	f.loginAs(t, f.member)
	found, err = f.service.Search(ctx, "deploy")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "deploy staging", found[0].Title)
}
