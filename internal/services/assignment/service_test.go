package assignment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tandem/internal/database"
	"github.com/thenoetrevino/tandem/internal/models"
	"github.com/thenoetrevino/tandem/internal/policy"
	"github.com/thenoetrevino/tandem/internal/testutil"
	"github.com/thenoetrevino/tandem/internal/types"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func newTestService(t *testing.T, opts ...database.Option) (Service, *database.Repository) {
	t.Helper()
	repo := testutil.NewTestRepository(t, opts...)
	return NewService(repo, nil), repo
}

func namesOf(users []*models.User) []string {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Name)
	}
	return names
}

func titlesOf(todos []*models.Todo) []string {
	titles := make([]string, 0, len(todos))
	for _, t := range todos {
		titles = append(titles, t.Title)
	}
	return titles
}

// countingRepo records whether AssignUsers reached the datastore
type countingRepo struct {
	*database.Repository
	assignCalls int
}

func (r *countingRepo) AssignUsers(ctx context.Context, todoID string, userIDs []string) error {
	r.assignCalls++
	return r.Repository.AssignUsers(ctx, todoID, userIDs)
}

// ============================================================================
// ASSIGN
// ============================================================================

func TestAssignUsers_AliceAndBob(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService(t)
	ctx := context.Background()

	p := testutil.CreateTestProject(t, repo, "Launch")
	alice := testutil.CreateTestUser(t, repo, "alice")
	bob := testutil.CreateTestUser(t, repo, "bob")
	todo := testutil.CreateTestTodo(t, repo, p.ID, "Write docs")

	view, err := svc.AssignUsers(ctx, AssignUsersRequest{TodoID: todo.ID, UserIDs: []string{alice.ID, bob.ID}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, namesOf(view.AssignedUsers))
	assert.Len(t, view.Assignments, 2)

	view, err = svc.AssignUsers(ctx, AssignUsersRequest{TodoID: todo.ID, UserIDs: []string{bob.ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, namesOf(view.AssignedUsers))

	users, err := svc.GetUsersWithTodos(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		switch u.ID {
		case alice.ID:
			assert.Empty(t, u.Todos, "alice should no longer reach the todo")
		case bob.ID:
			assert.Equal(t, []string{"Write docs"}, titlesOf(u.Todos))
		}
	}
}

func TestAssignUsers_EmptyClears(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService(t)
	ctx := context.Background()

	p := testutil.CreateTestProject(t, repo, "P")
	u := testutil.CreateTestUser(t, repo, "erin")
	todo := testutil.CreateTestTodo(t, repo, p.ID, "t")

	_, err := svc.AssignUsers(ctx, AssignUsersRequest{TodoID: todo.ID, UserIDs: []string{u.ID}})
	require.NoError(t, err)

	view, err := svc.AssignUsers(ctx, AssignUsersRequest{TodoID: todo.ID})
	require.NoError(t, err)
	assert.NotNil(t, view.AssignedUsers)
	assert.Empty(t, view.AssignedUsers)
	assert.Empty(t, view.Assignments)
}

func TestAssignUsers_DuplicatesIgnored(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService(t)
	ctx := context.Background()

	p := testutil.CreateTestProject(t, repo, "P")
	u := testutil.CreateTestUser(t, repo, "frank")
	todo := testutil.CreateTestTodo(t, repo, p.ID, "t")

	view, err := svc.AssignUsers(ctx, AssignUsersRequest{TodoID: todo.ID, UserIDs: []string{u.ID, " " + u.ID + " ", ""}})
	require.NoError(t, err)
	assert.Len(t, view.AssignedUsers, 1)
}

func TestAssignUsers_TodoNotFoundSkipsWrite(t *testing.T) {
	t.Parallel()
	repo := &countingRepo{Repository: testutil.NewTestRepository(t)}
	svc := NewService(repo, nil)

	_, err := svc.AssignUsers(context.Background(), AssignUsersRequest{TodoID: "ghost", UserIDs: []string{types.NewID()}})
	require.ErrorIs(t, err, ErrTodoNotFound)
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.Zero(t, repo.assignCalls)

	_, err = svc.AssignUsers(context.Background(), AssignUsersRequest{})
	assert.ErrorIs(t, err, ErrInvalidTodoID)
}

func TestAssignUsers_UnknownUserLeavesSetUnchanged(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService(t)
	ctx := context.Background()

	p := testutil.CreateTestProject(t, repo, "P")
	u := testutil.CreateTestUser(t, repo, "gina")
	todo := testutil.CreateTestTodo(t, repo, p.ID, "t")
	_, err := svc.AssignUsers(ctx, AssignUsersRequest{TodoID: todo.ID, UserIDs: []string{u.ID}})
	require.NoError(t, err)

	_, err = svc.AssignUsers(ctx, AssignUsersRequest{TodoID: todo.ID, UserIDs: []string{u.ID, types.NewID()}})
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrRelationshipWrite)
	assert.ErrorIs(t, err, database.ErrForeignKey)

	var aerr *database.AssignmentError
	require.True(t, errors.As(err, &aerr))
	assert.True(t, aerr.RolledBack)

	view, err := svc.GetTodoWithAssignments(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"gina"}, namesOf(view.AssignedUsers))
}

func TestAssignUsers_ReadOnlyPolicy(t *testing.T) {
	t.Parallel()
	repo := testutil.NewTestRepository(t)
	p := testutil.CreateTestProject(t, repo, "P")
	todo := testutil.CreateTestTodo(t, repo, p.ID, "t")
	svc := NewService(repo, policy.ReadOnly())

	_, err := svc.AssignUsers(context.Background(), AssignUsersRequest{TodoID: todo.ID})
	assert.ErrorIs(t, err, policy.ErrForbidden)

	_, err = svc.GetTodoWithAssignments(context.Background(), todo.ID)
	assert.NoError(t, err)
}

// ============================================================================
// VIEWS
// ============================================================================

func TestGetTodosWithAssignments_ByProject(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService(t)
	ctx := context.Background()

	a := testutil.CreateTestProject(t, repo, "A")
	b := testutil.CreateTestProject(t, repo, "B")
	testutil.CreateTestTodo(t, repo, a.ID, "a1")
	testutil.CreateTestTodo(t, repo, b.ID, "b1")

	all, err := svc.GetTodosWithAssignments(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyA, err := svc.GetTodosWithAssignments(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, onlyA, 1)
	assert.Equal(t, "a1", onlyA[0].Title)

	_, err = svc.GetTodosWithAssignments(ctx, "ghost")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestGetTodoAssignments(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService(t)
	ctx := context.Background()

	p := testutil.CreateTestProject(t, repo, "P")
	u := testutil.CreateTestUser(t, repo, "hank")
	todo := testutil.CreateTestTodo(t, repo, p.ID, "t")
	_, err := svc.AssignUsers(ctx, AssignUsersRequest{TodoID: todo.ID, UserIDs: []string{u.ID}})
	require.NoError(t, err)

	rows, err := svc.GetTodoAssignments(ctx, todo.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, u.ID, rows[0].UserID)
	assert.Equal(t, todo.ID, rows[0].TodoID)

	_, err = svc.GetTodoAssignments(ctx, "ghost")
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestGetUserWorkloads_CarolWithNoTodos(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService(t)
	ctx := context.Background()

	p := testutil.CreateTestProject(t, repo, "P")
	carol := testutil.CreateTestUser(t, repo, "carol")
	dan := testutil.CreateTestUser(t, repo, "dan")
	open := testutil.CreateTestTodo(t, repo, p.ID, "open")
	done := testutil.CreateTestTodo(t, repo, p.ID, "done")
	completed := models.StatusCompleted
	_, err := repo.UpdateTodo(ctx, done.ID, database.TodoPatch{Status: &completed})
	require.NoError(t, err)

	for _, id := range []string{open.ID, done.ID} {
		_, err := svc.AssignUsers(ctx, AssignUsersRequest{TodoID: id, UserIDs: []string{dan.ID}})
		require.NoError(t, err)
	}

	workloads, err := svc.GetUserWorkloads(ctx)
	require.NoError(t, err)
	require.Len(t, workloads, 2)

	byID := map[string]*models.UserWorkload{}
	for _, w := range workloads {
		byID[w.User.ID] = w
	}
	assert.Zero(t, byID[carol.ID].Total())
	assert.NotNil(t, byID[carol.ID].Pending)
	assert.Len(t, byID[dan.ID].Pending, 1)
	assert.Len(t, byID[dan.ID].Completed, 1)
	assert.Empty(t, byID[dan.ID].InProgress)
}

func TestAssignUsers_SequentialMode(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService(t, database.WithAtomicAssignments(false))
	ctx := context.Background()

	p := testutil.CreateTestProject(t, repo, "P")
	u := testutil.CreateTestUser(t, repo, "ivy")
	todo := testutil.CreateTestTodo(t, repo, p.ID, "t")

	_, err := svc.AssignUsers(ctx, AssignUsersRequest{TodoID: todo.ID, UserIDs: []string{u.ID}})
	require.NoError(t, err)

	_, err = svc.AssignUsers(ctx, AssignUsersRequest{TodoID: todo.ID, UserIDs: []string{types.NewID()}})
	var aerr *database.AssignmentError
	require.True(t, errors.As(err, &aerr))
	assert.False(t, aerr.RolledBack)

	view, err := svc.GetTodoWithAssignments(ctx, todo.ID)
	require.NoError(t, err)
	assert.Empty(t, view.AssignedUsers, "sequential mode leaves the todo unassigned after a failed insert")
}

func TestAssignUsers_MalformedUserIDSkipsWrite(t *testing.T) {
	t.Parallel()
	repo := &countingRepo{Repository: testutil.NewTestRepository(t)}
	svc := NewService(repo, nil)
	ctx := context.Background()

	p := testutil.CreateTestProject(t, repo.Repository, "P")
	u := testutil.CreateTestUser(t, repo.Repository, "hank")
	todo := testutil.CreateTestTodo(t, repo.Repository, p.ID, "t")

	_, err := svc.AssignUsers(ctx, AssignUsersRequest{TodoID: todo.ID, UserIDs: []string{u.ID, "alice"}})
	require.ErrorIs(t, err, ErrInvalidUserID)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.NotErrorIs(t, err, database.ErrRelationshipWrite)
	assert.Zero(t, repo.assignCalls)
}
