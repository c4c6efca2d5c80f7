package report

import "context"

type LostRepository interface {
	Create(ctx context.Context, r *LostReport) error
	GetByID(ctx context.Context, id uint) (*LostReport, error)
	List(ctx context.Context) ([]*LostReport, error)
	ListByUser(ctx context.Context, userID uint) ([]*LostReport, error)
	Update(ctx context.Context, id uint, fields LostFields) error
	SetStatus(ctx context.Context, id uint, status LostStatus) error
	SetImage(ctx context.Context, id uint, url string) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

type FoundRepository interface {
	Create(ctx context.Context, r *FoundReport) error
	GetByID(ctx context.Context, id uint) (*FoundReport, error)
	GetByLostID(ctx context.Context, lostID uint) (*FoundReport, error)
	List(ctx context.Context, filter FoundFilter) ([]*FoundReport, error)
	Update(ctx context.Context, id uint, fields FoundFields) error
	SetLink(ctx context.Context, id uint, lostID *uint) error
	SetStatus(ctx context.Context, id uint, status FoundStatus) error
	SetImage(ctx context.Context, id uint, url string) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// Store groups both report repositories. Atomic runs fn against a Store
// bound to a single transaction; a returned error rolls everything back.
type Store interface {
	Lost() LostRepository
	Found() FoundRepository
	Atomic(ctx context.Context, fn func(Store) error) error
}
