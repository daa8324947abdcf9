package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/expensekeeper/internal/common"
	"github.com/dmitrijs2005/expensekeeper/internal/dbx"
	"github.com/dmitrijs2005/expensekeeper/internal/logging"
	"github.com/dmitrijs2005/expensekeeper/internal/server/models"
	"github.com/dmitrijs2005/expensekeeper/internal/server/repositories/entries"
	"github.com/dmitrijs2005/expensekeeper/internal/server/repositories/repomanager"
)

type fakeEntriesRepo struct {
	entries.Repository

	gotFilter models.EntryFilter
	gotID     int64
	gotFields *models.EntryFields

	out  *models.Entry
	list []*models.Entry
	err  error
}

func (f *fakeEntriesRepo) FindByID(_ context.Context, id int64) (*models.Entry, error) {
	f.gotID = id
	return f.out, f.err
}

func (f *fakeEntriesRepo) FindAll(_ context.Context, filter models.EntryFilter) ([]*models.Entry, error) {
	f.gotFilter = filter
	return f.list, f.err
}

func (f *fakeEntriesRepo) Insert(_ context.Context, fields *models.EntryFields) (*models.Entry, error) {
	f.gotFields = fields
	if f.err != nil {
		return nil, f.err
	}
	return &models.Entry{ID: 1, EntryFields: *fields}, nil
}

func (f *fakeEntriesRepo) Update(_ context.Context, id int64, fields *models.EntryFields) (*models.Entry, error) {
	f.gotID = id
	f.gotFields = fields
	if f.err != nil {
		return nil, f.err
	}
	return &models.Entry{ID: id, EntryFields: *fields}, nil
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	repo *fakeEntriesRepo
}

func (m *fakeRepoManager) Entries(dbx.DBTX) entries.Repository { return m.repo }

func newEntryService(t *testing.T, repo *fakeEntriesRepo) *EntryService {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewEntryService(db, &fakeRepoManager{repo: repo}, logging.Nop())
}

func strPtr(s string) *string { return &s }

func TestEntryService_List_PassesFilterThrough(t *testing.T) {
	approved := true
	repo := &fakeEntriesRepo{list: []*models.Entry{{ID: 7}, {ID: 3}}}
	svc := newEntryService(t, repo)

	filter := models.EntryFilter{StoreName: "cost", Approved: &approved}
	got, err := svc.List(context.Background(), filter)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "cost", repo.gotFilter.StoreName)
	require.NotNil(t, repo.gotFilter.Approved)
	assert.True(t, *repo.gotFilter.Approved)
}

func TestEntryService_List_Error(t *testing.T) {
	repo := &fakeEntriesRepo{err: common.ErrPersistence}
	svc := newEntryService(t, repo)

	_, err := svc.List(context.Background(), models.EntryFilter{})
	assert.ErrorIs(t, err, common.ErrPersistence)
}

func TestEntryService_Get(t *testing.T) {
	repo := &fakeEntriesRepo{out: &models.Entry{ID: 42}}
	svc := newEntryService(t, repo)

	got, err := svc.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, int64(42), repo.gotID)
}

func TestEntryService_Get_NotFound(t *testing.T) {
	repo := &fakeEntriesRepo{err: common.ErrNotFound}
	svc := newEntryService(t, repo)

	_, err := svc.Get(context.Background(), 999999)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestEntryService_Create(t *testing.T) {
	repo := &fakeEntriesRepo{}
	svc := newEntryService(t, repo)

	fields := &models.EntryFields{
		StoreName: strPtr("Costco"),
		Total:     decimal.RequireFromString("54.32"),
	}
	got, err := svc.Create(context.Background(), fields)

	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Costco", *got.StoreName)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("54.32")))
	assert.False(t, got.Approved)
}

func TestEntryService_Create_NilFieldsAndMissingStoreName(t *testing.T) {
	repo := &fakeEntriesRepo{}
	svc := newEntryService(t, repo)

	got, err := svc.Create(context.Background(), nil)

	require.NoError(t, err)
	require.NotNil(t, repo.gotFields)
	assert.Nil(t, got.StoreName)
	assert.Nil(t, got.LineItems)
}

func TestEntryService_Create_Error(t *testing.T) {
	cause := errors.New("connection refused")
	repo := &fakeEntriesRepo{err: errors.Join(common.ErrPersistence, cause)}
	svc := newEntryService(t, repo)

	_, err := svc.Create(context.Background(), &models.EntryFields{})
	assert.ErrorIs(t, err, common.ErrPersistence)
	assert.ErrorIs(t, err, cause)
}

func TestEntryService_Update(t *testing.T) {
	repo := &fakeEntriesRepo{}
	svc := newEntryService(t, repo)

	got, err := svc.Update(context.Background(), 42, &models.EntryFields{Approved: true})

	require.NoError(t, err)
	assert.Equal(t, int64(42), repo.gotID)
	assert.True(t, got.Approved)
}

func TestEntryService_Update_NotFound(t *testing.T) {
	repo := &fakeEntriesRepo{err: common.ErrNotFound}
	svc := newEntryService(t, repo)

	_, err := svc.Update(context.Background(), 999999, nil)
	assert.ErrorIs(t, err, common.ErrNotFound)
	require.NotNil(t, repo.gotFields)
}

func TestEntryService_UsesInjectedHandle(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var got dbx.DBTX
	rm := &capturingRepoManager{onEntries: func(h dbx.DBTX) { got = h }}
	svc := NewEntryService(db, rm, logging.Nop())

	_, _ = svc.Get(context.Background(), 1)
	assert.Same(t, db, got)
}

type capturingRepoManager struct {
	repomanager.RepositoryManager
	onEntries func(dbx.DBTX)
}

func (m *capturingRepoManager) Entries(h dbx.DBTX) entries.Repository {
	m.onEntries(h)
	return &fakeEntriesRepo{out: &models.Entry{ID: 1}}
}
