// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package memstore implements every repository in memory, for development
without a database and for tests.

All views share one [DB] and one lock, so deleting a user removes their
projects, the tasks of those projects and every link, like the foreign keys
of the Postgres schema do. Entities are copied in and out.
*/
package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/taibuivan/taakbeheer/internal/core/project"
	"github.com/taibuivan/taakbeheer/internal/core/tag"
	"github.com/taibuivan/taakbeheer/internal/core/task"
	"github.com/taibuivan/taakbeheer/internal/platform/apperr"
	"github.com/taibuivan/taakbeheer/internal/platform/dberr"
	"github.com/taibuivan/taakbeheer/internal/users/auth"
)

type link struct {
	taskID  int64
	otherID int64
}

// DB holds all tables.
type DB struct {
	mu sync.Mutex

	users     map[int64]auth.User
	projects  map[int64]project.Project
	tasks     map[int64]task.Task
	tags      map[int64]tag.Tag
	taskTags  map[link]struct{}
	assignees map[link]struct{}

	lastID int64
}

// New creates an empty database.
func New() *DB {
	return &DB{
		users:     make(map[int64]auth.User),
		projects:  make(map[int64]project.Project),
		tasks:     make(map[int64]task.Task),
		tags:      make(map[int64]tag.Tag),
		taskTags:  make(map[link]struct{}),
		assignees: make(map[link]struct{}),
	}
}

// Ensure interfaces are met.
var (
	_ auth.UserRepository = (*UserStore)(nil)
	_ project.Repository  = (*ProjectStore)(nil)
	_ task.Repository     = (*TaskStore)(nil)
	_ tag.Repository      = (*TagStore)(nil)
)

// Users returns the user repository view.
func (db *DB) Users() *UserStore { return &UserStore{db: db} }

// Projects returns the project repository view.
func (db *DB) Projects() *ProjectStore { return &ProjectStore{db: db} }

// Tasks returns the task repository view.
func (db *DB) Tasks() *TaskStore { return &TaskStore{db: db} }

// Tags returns the tag repository view.
func (db *DB) Tags() *TagStore { return &TagStore{db: db} }

// nextID hands out ids from one sequence shared by all tables.
func (db *DB) nextID() int64 {
	db.lastID++
	return db.lastID
}

func sortedValues[T any](table map[int64]T, keep func(T) bool) []*T {
	ids := make([]int64, 0, len(table))
	for id, value := range table {
		if keep == nil || keep(value) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	values := make([]*T, 0, len(ids))
	for _, id := range ids {
		value := table[id]
		values = append(values, &value)
	}
	return values
}

// # Cascades

func (db *DB) deleteUser(id int64) {
	delete(db.users, id)
	for projectID, stored := range db.projects {
		if stored.OwnerID == id {
			db.deleteProject(projectID)
		}
	}
	for key := range db.assignees {
		if key.otherID == id {
			delete(db.assignees, key)
		}
	}
}

func (db *DB) deleteProject(id int64) {
	delete(db.projects, id)
	for taskID, stored := range db.tasks {
		if stored.ProjectID == id {
			db.deleteTask(taskID)
		}
	}
}

func (db *DB) deleteTask(id int64) {
	delete(db.tasks, id)
	for key := range db.taskTags {
		if key.taskID == id {
			delete(db.taskTags, key)
		}
	}
	for key := range db.assignees {
		if key.taskID == id {
			delete(db.assignees, key)
		}
	}
}

func (db *DB) deleteTag(id int64) {
	delete(db.tags, id)
	for key := range db.taskTags {
		if key.otherID == id {
			delete(db.taskTags, key)
		}
	}
}

// # Users

// UserStore implements [auth.UserRepository].
type UserStore struct {
	db *DB
}

func (store *UserStore) List(_ context.Context) ([]*auth.User, error) {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()
	return sortedValues(store.db.users, nil), nil
}

func (store *UserStore) FindByID(_ context.Context, id int64) (*auth.User, error) {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	user, ok := store.db.users[id]
	if !ok {
		return nil, dberr.Wrap(dberr.ErrNoRows, "find_user", auth.StoreErrors)
	}
	return &user, nil
}

func (store *UserStore) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	for _, user := range store.db.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, dberr.Wrap(dberr.ErrNoRows, "find_user_by_email", auth.StoreErrors)
}

func (store *UserStore) emailTaken(email string, except int64) bool {
	for id, user := range store.db.users {
		if id != except && user.Email == email {
			return true
		}
	}
	return false
}

func (store *UserStore) Create(_ context.Context, user *auth.User) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	if store.emailTaken(user.Email, 0) {
		return dberr.Wrap(&dberr.ConstraintError{Constraint: auth.ConstraintUserEmail}, "create_user", auth.StoreErrors)
	}
	user.ID = store.db.nextID()
	store.db.users[user.ID] = *user
	return nil
}

func (store *UserStore) Update(_ context.Context, user *auth.User) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	if _, ok := store.db.users[user.ID]; !ok {
		return dberr.Wrap(dberr.ErrNoRows, "update_user", auth.StoreErrors)
	}
	if store.emailTaken(user.Email, user.ID) {
		return dberr.Wrap(&dberr.ConstraintError{Constraint: auth.ConstraintUserEmail}, "update_user", auth.StoreErrors)
	}
	store.db.users[user.ID] = *user
	return nil
}

func (store *UserStore) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	user, ok := store.db.users[id]
	if !ok {
		return dberr.Wrap(dberr.ErrNoRows, "update_password_hash", auth.StoreErrors)
	}
	user.PasswordHash = hash
	store.db.users[id] = user
	return nil
}

func (store *UserStore) Delete(_ context.Context, id int64) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	if _, ok := store.db.users[id]; !ok {
		return dberr.Wrap(dberr.ErrNoRows, "delete_user", auth.StoreErrors)
	}
	store.db.deleteUser(id)
	return nil
}

// # Projects

// ProjectStore implements [project.Repository].
type ProjectStore struct {
	db *DB
}

func (store *ProjectStore) List(_ context.Context, owner *int64) ([]*project.Project, error) {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	var keep func(project.Project) bool
	if owner != nil {
		keep = func(stored project.Project) bool { return stored.OwnerID == *owner }
	}
	return sortedValues(store.db.projects, keep), nil
}

func (store *ProjectStore) FindByID(_ context.Context, id int64) (*project.Project, error) {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	stored, ok := store.db.projects[id]
	if !ok {
		return nil, dberr.Wrap(dberr.ErrNoRows, "find_project", project.StoreErrors)
	}
	return &stored, nil
}

func (store *ProjectStore) Create(_ context.Context, created *project.Project) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	if _, ok := store.db.users[created.OwnerID]; !ok {
		return dberr.Wrap(&dberr.ConstraintError{Constraint: "projects_owner_id_fkey", Reference: true}, "create_project", project.StoreErrors)
	}
	created.ID = store.db.nextID()
	store.db.projects[created.ID] = *created
	return nil
}

func (store *ProjectStore) Update(_ context.Context, updated *project.Project) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	stored, ok := store.db.projects[updated.ID]
	if !ok {
		return dberr.Wrap(dberr.ErrNoRows, "update_project", project.StoreErrors)
	}
	stored.Name = updated.Name
	stored.Description = updated.Description
	store.db.projects[updated.ID] = stored
	return nil
}

func (store *ProjectStore) Delete(_ context.Context, id int64) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	if _, ok := store.db.projects[id]; !ok {
		return dberr.Wrap(dberr.ErrNoRows, "delete_project", project.StoreErrors)
	}
	store.db.deleteProject(id)
	return nil
}

// # Tasks

// TaskStore implements [task.Repository].
type TaskStore struct {
	db *DB
}

func (store *TaskStore) ListByProject(_ context.Context, projectID int64) ([]*task.Task, error) {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	return sortedValues(store.db.tasks, func(stored task.Task) bool { return stored.ProjectID == projectID }), nil
}

func (store *TaskStore) ListByOwner(_ context.Context, owner int64) ([]*task.Task, error) {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	return sortedValues(store.db.tasks, func(stored task.Task) bool {
		return store.db.projects[stored.ProjectID].OwnerID == owner
	}), nil
}

func (store *TaskStore) FindByID(_ context.Context, id int64) (*task.Task, error) {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	stored, ok := store.db.tasks[id]
	if !ok {
		return nil, dberr.Wrap(dberr.ErrNoRows, "find_task", task.StoreErrors)
	}
	return &stored, nil
}

func (store *TaskStore) Create(_ context.Context, created *task.Task) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	if _, ok := store.db.projects[created.ProjectID]; !ok {
		return dberr.Wrap(&dberr.ConstraintError{Constraint: "tasks_project_id_fkey", Reference: true}, "create_task", task.StoreErrors)
	}
	created.ID = store.db.nextID()
	store.db.tasks[created.ID] = *created
	return nil
}

func (store *TaskStore) Update(_ context.Context, updated *task.Task) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	stored, ok := store.db.tasks[updated.ID]
	if !ok {
		return dberr.Wrap(dberr.ErrNoRows, "update_task", task.StoreErrors)
	}
	updated.ProjectID = stored.ProjectID
	store.db.tasks[updated.ID] = *updated
	return nil
}

func (store *TaskStore) Delete(_ context.Context, id int64) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	if _, ok := store.db.tasks[id]; !ok {
		return dberr.Wrap(dberr.ErrNoRows, "delete_task", task.StoreErrors)
	}
	store.db.deleteTask(id)
	return nil
}

func (store *TaskStore) AddTag(_ context.Context, taskID, tagID int64) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	if _, ok := store.db.tasks[taskID]; !ok {
		return dberr.Wrap(&dberr.ConstraintError{Constraint: "task_tags_task_id_fkey", Reference: true}, "add_task_tag", task.StoreErrors)
	}
	if _, ok := store.db.tags[tagID]; !ok {
		return dberr.Wrap(&dberr.ConstraintError{Constraint: "task_tags_tag_id_fkey", Reference: true}, "add_task_tag", task.StoreErrors)
	}
	key := link{taskID: taskID, otherID: tagID}
	if _, ok := store.db.taskTags[key]; ok {
		return dberr.Wrap(&dberr.ConstraintError{Constraint: "task_tags_pkey"}, "add_task_tag", task.StoreErrors)
	}
	store.db.taskTags[key] = struct{}{}
	return nil
}

func (store *TaskStore) RemoveTag(_ context.Context, taskID, tagID int64) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	key := link{taskID: taskID, otherID: tagID}
	if _, ok := store.db.taskTags[key]; !ok {
		return apperr.NotFoundf(task.MsgTagNotAttached)
	}
	delete(store.db.taskTags, key)
	return nil
}

func (store *TaskStore) AddAssignee(_ context.Context, taskID, userID int64) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	if _, ok := store.db.tasks[taskID]; !ok {
		return dberr.Wrap(&dberr.ConstraintError{Constraint: "task_assignees_task_id_fkey", Reference: true}, "add_task_assignee", task.StoreErrors)
	}
	if _, ok := store.db.users[userID]; !ok {
		return dberr.Wrap(&dberr.ConstraintError{Constraint: "task_assignees_user_id_fkey", Reference: true}, "add_task_assignee", task.StoreErrors)
	}
	key := link{taskID: taskID, otherID: userID}
	if _, ok := store.db.assignees[key]; ok {
		return dberr.Wrap(&dberr.ConstraintError{Constraint: "task_assignees_pkey"}, "add_task_assignee", task.StoreErrors)
	}
	store.db.assignees[key] = struct{}{}
	return nil
}

func (store *TaskStore) RemoveAssignee(_ context.Context, taskID, userID int64) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	key := link{taskID: taskID, otherID: userID}
	if _, ok := store.db.assignees[key]; !ok {
		return apperr.NotFoundf(task.MsgUserNotAssigned)
	}
	delete(store.db.assignees, key)
	return nil
}

// # Tags

// TagStore implements [tag.Repository].
type TagStore struct {
	db *DB
}

func (store *TagStore) List(_ context.Context) ([]*tag.Tag, error) {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()
	return sortedValues(store.db.tags, nil), nil
}

func (store *TagStore) FindByID(_ context.Context, id int64) (*tag.Tag, error) {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	stored, ok := store.db.tags[id]
	if !ok {
		return nil, dberr.Wrap(dberr.ErrNoRows, "find_tag", tag.StoreErrors)
	}
	return &stored, nil
}

func (store *TagStore) nameTaken(name string, except int64) bool {
	for id, stored := range store.db.tags {
		if id != except && stored.Name == name {
			return true
		}
	}
	return false
}

func (store *TagStore) Create(_ context.Context, created *tag.Tag) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	if store.nameTaken(created.Name, 0) {
		return dberr.Wrap(&dberr.ConstraintError{Constraint: "tags_name_key"}, "create_tag", tag.StoreErrors)
	}
	created.ID = store.db.nextID()
	store.db.tags[created.ID] = *created
	return nil
}

func (store *TagStore) Update(_ context.Context, updated *tag.Tag) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	if _, ok := store.db.tags[updated.ID]; !ok {
		return dberr.Wrap(dberr.ErrNoRows, "update_tag", tag.StoreErrors)
	}
	if store.nameTaken(updated.Name, updated.ID) {
		return dberr.Wrap(&dberr.ConstraintError{Constraint: "tags_name_key"}, "update_tag", tag.StoreErrors)
	}
	store.db.tags[updated.ID] = *updated
	return nil
}

func (store *TagStore) Delete(_ context.Context, id int64) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	if _, ok := store.db.tags[id]; !ok {
		return dberr.Wrap(dberr.ErrNoRows, "delete_tag", tag.StoreErrors)
	}
	store.db.deleteTag(id)
	return nil
}
