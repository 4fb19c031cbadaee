package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/pinboard/internal/repository"
	"github.com/alexanderramin/pinboard/internal/testutil"
)

func newBoardService(t *testing.T) (BoardService, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	svc := NewBoardService(
		repository.NewSQLiteBoardRepo(database),
		repository.NewSQLiteCardRepo(database),
		repository.NewSQLiteConnectionRepo(database),
		repository.NewSQLiteHintRepo(database),
		testutil.NewTestUoW(database),
	)
	return svc, database
}

type recordingUseCaseObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingUseCaseObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingUseCaseObserver) names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.events))
	for i, e := range o.events {
		out[i] = e.Name
	}
	return out
}
