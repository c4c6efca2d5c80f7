package report

import (
	"context"
	"sort"
	"time"

	domainReport "lost-and-found/internal/domain/report"
)

// memStore is an in-memory report.Store. Atomic snapshots both tables and
// restores them when fn fails.
type memStore struct {
	lost      map[uint]domainReport.LostReport
	found     map[uint]domainReport.FoundReport
	nextID    uint
	atomicRun int
	failOn    string // "lost.SetStatus", "found.SetStatus", "found.Create"
}

func newMemStore() *memStore {
	return &memStore{
		lost:  make(map[uint]domainReport.LostReport),
		found: make(map[uint]domainReport.FoundReport),
	}
}

func (m *memStore) Lost() domainReport.LostRepository   { return memLost{m} }
func (m *memStore) Found() domainReport.FoundRepository { return memFound{m} }

func (m *memStore) Atomic(_ context.Context, fn func(domainReport.Store) error) error {
	m.atomicRun++
	lostSnap := make(map[uint]domainReport.LostReport, len(m.lost))
	for k, v := range m.lost {
		lostSnap[k] = v
	}
	foundSnap := make(map[uint]domainReport.FoundReport, len(m.found))
	for k, v := range m.found {
		foundSnap[k] = v
	}
	nextSnap := m.nextID

	if err := fn(m); err != nil {
		m.lost, m.found, m.nextID = lostSnap, foundSnap, nextSnap
		return err
	}
	return nil
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) addLost(userID uint, status domainReport.LostStatus) uint {
	id := m.id()
	m.lost[id] = domainReport.LostReport{
		ID: id, UserID: userID, ItemName: "Wallet", Description: "Brown leather",
		Location: "Library", Status: status, CreatedAt: time.Now(),
	}
	return id
}

func (m *memStore) addFound(status domainReport.FoundStatus, lostID *uint) uint {
	id := m.id()
	m.found[id] = domainReport.FoundReport{
		ID: id, ItemName: "Wallet", Location: "Front desk", Status: status,
		LostReportID: lostID, CreatedAt: time.Now(),
	}
	return id
}

type memLost struct{ m *memStore }

func (r memLost) Create(_ context.Context, l *domainReport.LostReport) error {
	l.ID = r.m.id()
	l.CreatedAt = time.Now()
	r.m.lost[l.ID] = *l
	return nil
}

func (r memLost) GetByID(_ context.Context, id uint) (*domainReport.LostReport, error) {
	l, ok := r.m.lost[id]
	if !ok {
		return nil, domainReport.ErrLostReportNotFound
	}
	return &l, nil
}

func (r memLost) List(_ context.Context) ([]*domainReport.LostReport, error) {
	return r.filter(func(domainReport.LostReport) bool { return true }), nil
}

func (r memLost) ListByUser(_ context.Context, userID uint) ([]*domainReport.LostReport, error) {
	return r.filter(func(l domainReport.LostReport) bool { return l.UserID == userID }), nil
}

func (r memLost) filter(keep func(domainReport.LostReport) bool) []*domainReport.LostReport {
	var out []*domainReport.LostReport
	for _, l := range r.m.lost {
		if keep(l) {
			l := l
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r memLost) Update(_ context.Context, id uint, f domainReport.LostFields) error {
	l, ok := r.m.lost[id]
	if !ok {
		return domainReport.ErrLostReportNotFound
	}
	if f.ItemName != nil {
		l.ItemName = *f.ItemName
	}
	if f.Description != nil {
		l.Description = *f.Description
	}
	if f.Location != nil {
		l.Location = *f.Location
	}
	if f.LostDate != nil {
		l.LostDate = f.LostDate
	}
	r.m.lost[id] = l
	return nil
}

func (r memLost) SetStatus(_ context.Context, id uint, status domainReport.LostStatus) error {
	if r.m.failOn == "lost.SetStatus" {
		return errStoreFailure
	}
	l, ok := r.m.lost[id]
	if !ok {
		return domainReport.ErrLostReportNotFound
	}
	l.Status = status
	r.m.lost[id] = l
	return nil
}

func (r memLost) SetImage(_ context.Context, id uint, url string) error {
	l, ok := r.m.lost[id]
	if !ok {
		return domainReport.ErrLostReportNotFound
	}
	l.ImageURL = &url
	r.m.lost[id] = l
	return nil
}

func (r memLost) Delete(_ context.Context, id uint) error {
	if _, ok := r.m.lost[id]; !ok {
		return domainReport.ErrLostReportNotFound
	}
	delete(r.m.lost, id)
	for fid, f := range r.m.found {
		if f.LostReportID != nil && *f.LostReportID == id {
			f.LostReportID = nil
			r.m.found[fid] = f
		}
	}
	return nil
}

func (r memLost) Count(_ context.Context) (int64, error) {
	return int64(len(r.m.lost)), nil
}

func (r memLost) CountByUser(ctx context.Context, userID uint) (int64, error) {
	mine, _ := r.ListByUser(ctx, userID)
	return int64(len(mine)), nil
}

type memFound struct{ m *memStore }

func (r memFound) Create(_ context.Context, f *domainReport.FoundReport) error {
	if r.m.failOn == "found.Create" {
		return errStoreFailure
	}
	if f.LostReportID != nil {
		for _, other := range r.m.found {
			if other.LostReportID != nil && *other.LostReportID == *f.LostReportID {
				return domainReport.ErrAlreadyMatched
			}
		}
	}
	f.ID = r.m.id()
	f.CreatedAt = time.Now()
	r.m.found[f.ID] = *f
	return nil
}

func (r memFound) GetByID(_ context.Context, id uint) (*domainReport.FoundReport, error) {
	f, ok := r.m.found[id]
	if !ok {
		return nil, domainReport.ErrFoundReportNotFound
	}
	return &f, nil
}

func (r memFound) GetByLostID(_ context.Context, lostID uint) (*domainReport.FoundReport, error) {
	for _, f := range r.m.found {
		if f.LostReportID != nil && *f.LostReportID == lostID {
			f := f
			return &f, nil
		}
	}
	return nil, domainReport.ErrFoundReportNotFound
}

func (r memFound) List(_ context.Context, filter domainReport.FoundFilter) ([]*domainReport.FoundReport, error) {
	var out []*domainReport.FoundReport
	for _, f := range r.m.found {
		if filter.Status != nil && f.Status != *filter.Status {
			continue
		}
		if filter.CreatedByAdmin != nil && f.CreatedByAdmin != *filter.CreatedByAdmin {
			continue
		}
		f := f
		out = append(out, &f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memFound) Update(_ context.Context, id uint, fields domainReport.FoundFields) error {
	f, ok := r.m.found[id]
	if !ok {
		return domainReport.ErrFoundReportNotFound
	}
	if fields.ItemName != nil {
		f.ItemName = *fields.ItemName
	}
	if fields.Description != nil {
		f.Description = *fields.Description
	}
	if fields.Location != nil {
		f.Location = *fields.Location
	}
	if fields.FoundDate != nil {
		f.FoundDate = fields.FoundDate
	}
	r.m.found[id] = f
	return nil
}

func (r memFound) SetLink(_ context.Context, id uint, lostID *uint) error {
	f, ok := r.m.found[id]
	if !ok {
		return domainReport.ErrFoundReportNotFound
	}
	if lostID != nil {
		for oid, other := range r.m.found {
			if oid != id && other.LostReportID != nil && *other.LostReportID == *lostID {
				return domainReport.ErrAlreadyMatched
			}
		}
		v := *lostID
		lostID = &v
	}
	f.LostReportID = lostID
	r.m.found[id] = f
	return nil
}

func (r memFound) SetStatus(_ context.Context, id uint, status domainReport.FoundStatus) error {
	if r.m.failOn == "found.SetStatus" {
		return errStoreFailure
	}
	f, ok := r.m.found[id]
	if !ok {
		return domainReport.ErrFoundReportNotFound
	}
	f.Status = status
	r.m.found[id] = f
	return nil
}

func (r memFound) SetImage(_ context.Context, id uint, url string) error {
	f, ok := r.m.found[id]
	if !ok {
		return domainReport.ErrFoundReportNotFound
	}
	f.ImageURL = &url
	r.m.found[id] = f
	return nil
}

func (r memFound) Delete(_ context.Context, id uint) error {
	if _, ok := r.m.found[id]; !ok {
		return domainReport.ErrFoundReportNotFound
	}
	delete(r.m.found, id)
	return nil
}

func (r memFound) Count(_ context.Context) (int64, error) {
	return int64(len(r.m.found)), nil
}
