package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roksva123/go-taskboard-backend/internal/model"
	"github.com/roksva123/go-taskboard-backend/internal/repository"
)

func TestLeaderService_AssignKeepsHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.store.AddProject(10, "Apollo")
	f.store.AddEmployee("111", "Ann", "Lee")
	f.store.AddEmployee("222", "Bo", "Kim")
	f.store.AddLeader("111", 10, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	f.store.AddUser("bo", "pw", model.RoleEmployee)

	l, err := f.leaders.Assign(ctx, 10, model.AssignLeaderRequest{LeaderSSN: "222", Username: "bo"})
	require.NoError(t, err)
	assert.Equal(t, "Bo Kim", l.FullName)
	assert.Equal(t, fixedNow, *l.StartDate)

	current, err := f.leaders.Current(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "222", current.LeaderSSN)

	all, err := f.leaders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, model.RoleLeader, f.store.Users["bo"].Role)
}

func TestLeaderService_AssignDoesNotDemoteAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.store.AddProject(10, "Apollo")
	f.store.AddEmployee("111", "Ann", "Lee")
	f.store.AddUser("ann", "pw", model.RoleAdmin)

	_, err := f.leaders.Assign(ctx, 10, model.AssignLeaderRequest{LeaderSSN: "111", Username: "ann"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, f.store.Users["ann"].Role)
}

func TestLeaderService_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.store.AddProject(10, "Apollo")
	f.store.AddEmployee("111", "Ann", "Lee")

	_, err := f.leaders.Assign(ctx, 10, model.AssignLeaderRequest{LeaderSSN: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.leaders.Assign(ctx, 99, model.AssignLeaderRequest{LeaderSSN: "111"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.leaders.Assign(ctx, 10, model.AssignLeaderRequest{LeaderSSN: "999"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.leaders.Assign(ctx, 10, model.AssignLeaderRequest{LeaderSSN: "111", Username: "ghost"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, f.store.Leaders)

	_, err = f.leaders.Current(ctx, 10)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, f.leaders.Delete(ctx, 1), repository.ErrNotFound)
}

func TestLeaderService_GetAndUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.store.AddProject(10, "Apollo")
	f.store.AddProject(20, "Gemini")
	f.store.AddEmployee("111", "Ann", "Lee")
	f.store.AddEmployee("222", "Bo", "Kim")
	f.store.AddLeader("111", 10, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))

	l, err := f.leaders.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", l.FullName)

	start := time.Date(2024, 2, 1, 9, 0, 0, 0, time.FixedZone("UTC+2", 2*60*60))
	l, err = f.leaders.Update(ctx, 1, model.ProjectLeader{LeaderSSN: "222", Pnumber: 20, StartDate: &start})
	require.NoError(t, err)
	assert.Equal(t, "Bo Kim", l.FullName)
	assert.Equal(t, 20, l.Pnumber)
	assert.Equal(t, time.Date(2024, 2, 1, 7, 0, 0, 0, time.UTC), *l.StartDate)

	_, err = f.leaders.Update(ctx, 1, model.ProjectLeader{ID: 2, LeaderSSN: "222", Pnumber: 20})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.leaders.Update(ctx, 1, model.ProjectLeader{Pnumber: 20})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.leaders.Update(ctx, 1, model.ProjectLeader{LeaderSSN: "999", Pnumber: 20})
	assert.ErrorIs(t, err, repository.ErrInvalidReference)
	_, err = f.leaders.Update(ctx, 5, model.ProjectLeader{LeaderSSN: "222", Pnumber: 20})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.leaders.Get(ctx, 5)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
