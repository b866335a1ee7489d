package service

import (
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/genba/internal/db"
	"github.com/alexanderramin/genba/internal/repository"
	"github.com/alexanderramin/genba/internal/testutil"
)

type fixture struct {
	db          *sql.DB
	projects    *repository.SQLiteProjectRepo
	tasks       *repository.SQLiteTaskRepo
	workers     *repository.SQLiteWorkerRepo
	assignments *repository.SQLiteAssignmentRepo
	uow         db.UnitOfWork
	feed        *Feed
	changes     *changeLog
}

func setup(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	f := &fixture{
		db:          database,
		projects:    repository.NewSQLiteProjectRepo(database),
		tasks:       repository.NewSQLiteTaskRepo(database),
		workers:     repository.NewSQLiteWorkerRepo(database),
		assignments: repository.NewSQLiteAssignmentRepo(database),
		uow:         testutil.NewTestUoW(database),
		feed:        NewFeed(),
		changes:     &changeLog{},
	}
	for _, c := range Collections {
		f.feed.Subscribe(c, f.changes.add)
	}
	return f
}

type changeLog struct {
	mu  sync.Mutex
	all []Change
}

func (l *changeLog) add(c Change) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.all = append(l.all, c)
}

func (l *changeLog) list() []Change {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Change(nil), l.all...)
}
