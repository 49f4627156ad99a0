package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dbtx is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx, so
// every sub-store works unchanged inside and outside a transaction.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Provider hands out entity stores sharing one underlying connection scope,
// either the pool or a single transaction.
type Provider interface {
	Users() UserStore
	Organizations() OrganizationStore
	Memberships() MembershipStore
	Invitations() InvitationStore
	Jobs() JobStore
	Resumes() ResumeStore
	Subscriptions() SubscriptionStore
	SystemConfig() SystemConfigStore
}

// Store is the pool-backed Provider; WithTx yields a transaction-backed one.
type Store struct {
	pool *pgxpool.Pool
	db   dbtx
}

var _ Provider = &Store{}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, db: pool}
}

func (s *Store) Users() UserStore                 { return &userStore{db: s.db} }
func (s *Store) Organizations() OrganizationStore { return &organizationStore{db: s.db} }
func (s *Store) Memberships() MembershipStore     { return &membershipStore{db: s.db} }
func (s *Store) Invitations() InvitationStore     { return &invitationStore{db: s.db} }
func (s *Store) Jobs() JobStore                   { return &jobStore{db: s.db} }
func (s *Store) Resumes() ResumeStore             { return &resumeStore{db: s.db} }
func (s *Store) Subscriptions() SubscriptionStore { return &subscriptionStore{db: s.db} }
func (s *Store) SystemConfig() SystemConfigStore  { return &systemConfigStore{db: s.db} }

// WithTx runs fn with stores bound to a single transaction; any error rolls
// the whole transaction back.
func (s *Store) WithTx(ctx context.Context, fn func(provider Provider) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(&Store{pool: s.pool, db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
