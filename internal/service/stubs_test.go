package service

// In-memory repository stubs shared by the service tests. DB() returns nil,
// which makes runTx execute the callback directly — transactional grouping is
// exercised by the integration tests against real Postgres.

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"santripay/internal/dto"
	"santripay/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errStubNotFound = errors.New("not found")

// ── Users ─────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) DB() *gorm.DB { return nil }

func (r *stubUserRepo) Create(_ context.Context, _ *gorm.DB, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errStubNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) SetSantriID(_ context.Context, _ *gorm.DB, userID, santriID uuid.UUID) error {
	u, ok := r.users[userID]
	if !ok {
		return errStubNotFound
	}
	id := santriID
	u.SantriID = &id
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

// ── Accounts ──────────────────────────────────────────────────────────────────

type stubAccountRepo struct {
	accounts map[uuid.UUID][]model.Account // keyed by UserID
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[uuid.UUID][]model.Account)}
}

func (r *stubAccountRepo) Create(_ context.Context, _ *gorm.DB, a *model.Account) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.accounts[a.UserID] = append(r.accounts[a.UserID], *a)
	return nil
}

func (r *stubAccountRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]model.Account, error) {
	return r.accounts[userID], nil
}

func (r *stubAccountRepo) UpdatePasswordByUser(_ context.Context, userID uuid.UUID, hash string) error {
	accs := r.accounts[userID]
	for i := range accs {
		accs[i].Password = hash
	}
	return nil
}

func (r *stubAccountRepo) DeleteByUser(_ context.Context, _ *gorm.DB, userID uuid.UUID) error {
	delete(r.accounts, userID)
	return nil
}

// ── Sessions ──────────────────────────────────────────────────────────────────

type stubSessionRepo struct {
	sessions map[string]*model.Session // keyed by Token (jti)
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]*model.Session)}
}

func (r *stubSessionRepo) Create(_ context.Context, s *model.Session) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions[s.Token] = s
	return nil
}

func (r *stubSessionRepo) FindByToken(_ context.Context, token string) (*model.Session, error) {
	s, ok := r.sessions[token]
	if !ok {
		return nil, errStubNotFound
	}
	return s, nil
}

func (r *stubSessionRepo) DeleteByToken(_ context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}

func (r *stubSessionRepo) DeleteByUser(_ context.Context, _ *gorm.DB, userID uuid.UUID) error {
	for token, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, token)
		}
	}
	return nil
}

func (r *stubSessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for token, s := range r.sessions {
		if s.ExpiresAt.Before(now) {
			delete(r.sessions, token)
			n++
		}
	}
	return n, nil
}

// ── Santri ────────────────────────────────────────────────────────────────────

type stubSantriRepo struct {
	santri map[uuid.UUID]*model.Santri
}

func newStubSantriRepo() *stubSantriRepo {
	return &stubSantriRepo{santri: make(map[uuid.UUID]*model.Santri)}
}

func (r *stubSantriRepo) DB() *gorm.DB { return nil }

func (r *stubSantriRepo) Create(_ context.Context, _ *gorm.DB, s *model.Santri) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	r.santri[s.ID] = s
	return nil
}

// Find methods hand out copies, like a real query would — callers mutating the
// result must go through Update for the change to stick.
func (r *stubSantriRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Santri, error) {
	s, ok := r.santri[id]
	if !ok {
		return nil, errStubNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSantriRepo) FindByNIS(_ context.Context, nis string) (*model.Santri, error) {
	for _, s := range r.santri {
		if s.NIS == nis {
			cp := *s
			return &cp, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubSantriRepo) List(_ context.Context) ([]model.Santri, error) {
	out := make([]model.Santri, 0, len(r.santri))
	for _, s := range r.santri {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSantriRepo) Update(_ context.Context, s *model.Santri) error {
	r.santri[s.ID] = s
	return nil
}

func (r *stubSantriRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(r.santri, id)
	return nil
}

func (r *stubSantriRepo) UnlinkUser(_ context.Context, _ *gorm.DB, userID uuid.UUID) error {
	for _, s := range r.santri {
		if s.UserID != nil && *s.UserID == userID {
			s.UserID = nil
		}
	}
	return nil
}

func (r *stubSantriRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, s := range r.santri {
		if s.Status == status {
			n++
		}
	}
	return n, nil
}

// ── Transaksi ─────────────────────────────────────────────────────────────────

type stubTransaksiRepo struct {
	rows     []*model.Transaksi
	nextKode int
}

func newStubTransaksiRepo() *stubTransaksiRepo {
	return &stubTransaksiRepo{}
}

func (r *stubTransaksiRepo) DB() *gorm.DB { return nil }

func (r *stubTransaksiRepo) Create(_ context.Context, _ *gorm.DB, t *model.Transaksi) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	r.rows = append(r.rows, t)
	return nil
}

func (r *stubTransaksiRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Transaksi, error) {
	for _, t := range r.rows {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubTransaksiRepo) List(_ context.Context, filter dto.TransaksiFilter) ([]model.Transaksi, error) {
	var out []model.Transaksi
	for _, t := range r.rows {
		if filter.Jenis != "" && t.Jenis != filter.Jenis {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTransaksiRepo) Recent(_ context.Context, limit int) ([]model.Transaksi, error) {
	sorted := make([]*model.Transaksi, len(r.rows))
	copy(sorted, r.rows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]model.Transaksi, len(sorted))
	for i, t := range sorted {
		out[i] = *t
	}
	return out, nil
}

func (r *stubTransaksiRepo) NextKodeNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.nextKode++
	return r.nextKode, nil
}

func (r *stubTransaksiRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, t := range r.rows {
		if t.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubTransaksiRepo) CountBySantri(_ context.Context, santriID uuid.UUID) (int64, error) {
	var n int64
	for _, t := range r.rows {
		if t.SantriID == santriID {
			n++
		}
	}
	return n, nil
}

func (r *stubTransaksiRepo) DeleteBySantri(_ context.Context, _ *gorm.DB, santriID uuid.UUID) error {
	kept := r.rows[:0]
	for _, t := range r.rows {
		if t.SantriID != santriID {
			kept = append(kept, t)
		}
	}
	r.rows = kept
	return nil
}

func (r *stubTransaksiRepo) SumPaidSince(_ context.Context, since time.Time) (int64, error) {
	var sum int64
	for _, t := range r.rows {
		if t.Status == model.StatusLunas && !t.CreatedAt.Before(since) {
			sum += t.Jumlah
		}
	}
	return sum, nil
}

func (r *stubTransaksiRepo) MonthlyPaidTotals(_ context.Context, since time.Time) ([]dto.MonthlyIncome, error) {
	buckets := make(map[string]int64)
	for _, t := range r.rows {
		if t.Status == model.StatusLunas && !t.CreatedAt.Before(since) {
			buckets[t.CreatedAt.Format("2006-01")] += t.Jumlah
		}
	}
	months := make([]string, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Strings(months)
	out := make([]dto.MonthlyIncome, 0, len(months))
	for _, m := range months {
		out = append(out, dto.MonthlyIncome{Month: m, Income: buckets[m]})
	}
	return out, nil
}

func (r *stubTransaksiRepo) PaidTotalsByJenis(_ context.Context, since time.Time) ([]dto.JenisBreakdown, error) {
	type agg struct {
		count int64
		total int64
	}
	buckets := make(map[string]*agg)
	for _, t := range r.rows {
		if t.Status == model.StatusLunas && !t.CreatedAt.Before(since) {
			a, ok := buckets[t.Jenis]
			if !ok {
				a = &agg{}
				buckets[t.Jenis] = a
			}
			a.count++
			a.total += t.Jumlah
		}
	}
	jenis := make([]string, 0, len(buckets))
	for j := range buckets {
		jenis = append(jenis, j)
	}
	sort.Strings(jenis)
	out := make([]dto.JenisBreakdown, 0, len(jenis))
	for _, j := range jenis {
		out = append(out, dto.JenisBreakdown{Jenis: j, Count: buckets[j].count, Total: buckets[j].total})
	}
	return out, nil
}
