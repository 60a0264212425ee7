package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"recruit/internal/submission/models"
	id "recruit/pkg/domain"
	"recruit/pkg/platform/sentinel"
	"recruit/pkg/requestcontext"
)

// dialect isolates the placeholder and timestamp differences between
// PostgreSQL and SQLite. Query shapes are shared.
type dialect struct {
	// bind rewrites $n placeholders when the driver needs something else.
	bind func(query string) string
	// encodeTime and decodeTime convert between time.Time and the column type.
	encodeTime func(t time.Time) any
	decodeTime func(v any) (time.Time, error)
	// statusFilter renders the status IN clause argument.
	statusFilter func(statuses []string) (clause string, args []any)
}

type sqlStore struct {
	db      *sql.DB
	dialect dialect
}

const submissionColumns = `id, applicant_id, applicant_handle, name, age, birth_date, city, nickname, game_id, category, status, decided_by_id, decided_by_name, decided_at, created_at`

func (s *sqlStore) Create(ctx context.Context, n models.NewSubmission) (id.SubmissionID, error) {
	if err := n.Validate(); err != nil {
		return 0, fmt.Errorf("create submission: %w", err)
	}
	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = requestcontext.Now(ctx)
	}
	query := s.dialect.bind(`
		INSERT INTO submissions (applicant_id, applicant_handle, name, age, birth_date, city, nickname, game_id, category, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'pending', $10)
		RETURNING id
	`)
	var newID int64
	err := s.db.QueryRowContext(ctx, query,
		int64(n.ApplicantID),
		n.ApplicantHandle,
		n.Name,
		n.Age,
		n.BirthDate,
		n.City,
		n.Nickname,
		n.GameID,
		n.Category,
		s.dialect.encodeTime(createdAt),
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("insert submission: %w", err)
	}
	return id.SubmissionID(newID), nil
}

func (s *sqlStore) Get(ctx context.Context, subID id.SubmissionID) (*models.Submission, error) {
	query := s.dialect.bind(`SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`)
	sub, err := s.scan(s.db.QueryRowContext(ctx, query, int64(subID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return sub, nil
}

// Transition applies the decision with a single conditional UPDATE, so two
// concurrent callers cannot both observe the pending row.
func (s *sqlStore) Transition(ctx context.Context, subID id.SubmissionID, status models.Status, decidedBy models.Moderator, decidedAt time.Time) (*models.Submission, error) {
	if !status.IsTerminal() {
		return nil, fmt.Errorf("transition to %q: %w", status, sentinel.ErrInvalidState)
	}
	query := s.dialect.bind(`
		UPDATE submissions
		SET status = $2, decided_by_id = $3, decided_by_name = $4, decided_at = $5
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + submissionColumns)
	sub, err := s.scan(s.db.QueryRowContext(ctx, query,
		int64(subID),
		string(status),
		int64(decidedBy.ID),
		decidedBy.Display,
		s.dialect.encodeTime(decidedAt),
	))
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transition submission: %w", err)
	}

	// No pending row matched: either it never existed or it was decided first.
	var exists bool
	existsQuery := s.dialect.bind(`SELECT EXISTS (SELECT 1 FROM submissions WHERE id = $1)`)
	if err := s.db.QueryRowContext(ctx, existsQuery, int64(subID)).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check submission exists: %w", err)
	}
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	return nil, sentinel.ErrAlreadyDecided
}

func (s *sqlStore) CountsByStatus(ctx context.Context) (models.Counts, error) {
	clause, args := s.dialect.statusFilter([]string{
		string(models.StatusPending),
		string(models.StatusAccepted),
		string(models.StatusRejected),
	})
	query := `SELECT status, COUNT(*) FROM submissions WHERE ` + clause + ` GROUP BY status`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return models.Counts{}, fmt.Errorf("count submissions: %w", err)
	}
	defer rows.Close()

	var counts models.Counts
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return models.Counts{}, fmt.Errorf("scan submission count: %w", err)
		}
		counts.Add(models.Status(status), n)
	}
	if err := rows.Err(); err != nil {
		return models.Counts{}, fmt.Errorf("iterate submission counts: %w", err)
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *sqlStore) scan(row rowScanner) (*models.Submission, error) {
	var (
		sub           models.Submission
		subID         int64
		applicantID   int64
		status        string
		decidedByID   sql.NullInt64
		decidedByName sql.NullString
		decidedAt     any
		createdAt     any
	)
	err := row.Scan(
		&subID,
		&applicantID,
		&sub.ApplicantHandle,
		&sub.Name,
		&sub.Age,
		&sub.BirthDate,
		&sub.City,
		&sub.Nickname,
		&sub.GameID,
		&sub.Category,
		&status,
		&decidedByID,
		&decidedByName,
		&decidedAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	sub.ID = id.SubmissionID(subID)
	sub.ApplicantID = id.UserID(applicantID)
	sub.Status = models.Status(status)

	if sub.CreatedAt, err = s.dialect.decodeTime(createdAt); err != nil {
		return nil, fmt.Errorf("decode created_at: %w", err)
	}
	if decidedByID.Valid {
		sub.DecidedBy = &models.Moderator{ID: id.UserID(decidedByID.Int64), Display: decidedByName.String}
	}
	if decidedAt != nil {
		at, err := s.dialect.decodeTime(decidedAt)
		if err != nil {
			return nil, fmt.Errorf("decode decided_at: %w", err)
		}
		sub.DecidedAt = &at
	}
	return &sub, nil
}

// postgresStatusFilter binds all statuses as one array parameter.
func postgresStatusFilter(statuses []string) (string, []any) {
	return "status = ANY($1)", []any{pq.Array(statuses)}
}
