package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/littlemaker/configurador/internal/proposal"
)

type proposalRow struct {
	ID         string
	UserID     string
	UserEmail  string
	SchoolName string
	DataJSON   string
	CreatedAt  string
	UpdatedAt  string
}

// ProposalRepository persists proposals in the proposals table.
type ProposalRepository struct {
	db *sql.DB
}

var _ proposal.Repository = (*ProposalRepository)(nil)

func NewProposalRepository(db *sql.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

func toProposalRow(p proposal.Proposal) (proposalRow, error) {
	data, err := json.Marshal(p.State)
	if err != nil {
		return proposalRow{}, fmt.Errorf("encode proposal %s: %w", p.ID, err)
	}
	return proposalRow{
		ID:         p.ID,
		UserID:     p.OwnerID,
		UserEmail:  p.OwnerEmail,
		SchoolName: p.SchoolName,
		DataJSON:   string(data),
		CreatedAt:  FormatTime(p.CreatedAt),
		UpdatedAt:  FormatTime(p.UpdatedAt),
	}, nil
}

func (r proposalRow) toProposal() (proposal.Proposal, error) {
	p := proposal.Proposal{
		ID:         r.ID,
		OwnerID:    r.UserID,
		OwnerEmail: r.UserEmail,
		SchoolName: r.SchoolName,
	}
	if err := json.Unmarshal([]byte(r.DataJSON), &p.State); err != nil {
		return proposal.Proposal{}, fmt.Errorf("decode proposal %s: %w", r.ID, err)
	}
	var err error
	if p.CreatedAt, err = parseTime(r.CreatedAt); err != nil {
		return proposal.Proposal{}, err
	}
	if p.UpdatedAt, err = parseTime(r.UpdatedAt); err != nil {
		return proposal.Proposal{}, err
	}
	return p, nil
}

func (r *ProposalRepository) Create(ctx context.Context, p proposal.Proposal) (proposal.Proposal, error) {
	row, err := toProposalRow(p)
	if err != nil {
		return proposal.Proposal{}, err
	}
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO proposals (id, user_id, user_email, school_name, data_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, row.ID, row.UserID, row.UserEmail, row.SchoolName, row.DataJSON, row.CreatedAt, row.UpdatedAt); err != nil {
		return proposal.Proposal{}, fmt.Errorf("insert proposal: %w", err)
	}
	return p, nil
}

func (r *ProposalRepository) Update(ctx context.Context, p proposal.Proposal) (proposal.Proposal, error) {
	row, err := toProposalRow(p)
	if err != nil {
		return proposal.Proposal{}, err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE proposals
		SET school_name = ?, data_json = ?, updated_at = ?
		WHERE id = ?
	`, row.SchoolName, row.DataJSON, row.UpdatedAt, row.ID)
	if err != nil {
		return proposal.Proposal{}, fmt.Errorf("update proposal: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return proposal.Proposal{}, fmt.Errorf("update proposal rows affected: %w", err)
	} else if n == 0 {
		return proposal.Proposal{}, proposal.ErrProposalNotFound
	}
	return p, nil
}

func (r *ProposalRepository) GetByID(ctx context.Context, id string) (proposal.Proposal, error) {
	var row proposalRow
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, user_email, school_name, data_json, created_at, updated_at
		FROM proposals
		WHERE id = ?
	`, id).Scan(&row.ID, &row.UserID, &row.UserEmail, &row.SchoolName, &row.DataJSON, &row.CreatedAt, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return proposal.Proposal{}, proposal.ErrProposalNotFound
	}
	if err != nil {
		return proposal.Proposal{}, fmt.Errorf("get proposal: %w", err)
	}
	return row.toProposal()
}

func (r *ProposalRepository) List(ctx context.Context) ([]proposal.Proposal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, user_email, school_name, data_json, created_at, updated_at
		FROM proposals
		ORDER BY updated_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	defer rows.Close()

	out := []proposal.Proposal{}
	for rows.Next() {
		var row proposalRow
		if err := rows.Scan(&row.ID, &row.UserID, &row.UserEmail, &row.SchoolName, &row.DataJSON, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan proposal: %w", err)
		}
		p, err := row.toProposal()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate proposals: %w", err)
	}
	return out, nil
}

func (r *ProposalRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM proposals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete proposal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete proposal rows affected: %w", err)
	}
	if n == 0 {
		return proposal.ErrProposalNotFound
	}
	return nil
}
