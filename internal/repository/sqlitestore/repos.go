package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"leadstyle/internal/model"
)

type respondentRepo struct {
	db *sql.DB
}

func (r *respondentRepo) Create(ctx context.Context, respondent *model.Respondent) error {
	if respondent.CreatedAt.IsZero() {
		respondent.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO respondents (id, first_name, last_name, email, created_at) VALUES (?, ?, ?, ?, ?)`,
		respondent.ID, respondent.FirstName, respondent.LastName, respondent.Email, formatTime(respondent.CreatedAt),
	)
	return err
}

func (r *respondentRepo) GetByID(ctx context.Context, id string) (*model.Respondent, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, created_at FROM respondents WHERE id = ?`, id)
	respondent, err := scanRespondent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return respondent, err
}

func (r *respondentRepo) List(ctx context.Context) ([]*model.Respondent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, first_name, last_name, email, created_at FROM respondents ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Respondent
	for rows.Next() {
		respondent, err := scanRespondent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, respondent)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRespondent(row scanner) (*model.Respondent, error) {
	var (
		respondent model.Respondent
		created    string
	)
	if err := row.Scan(&respondent.ID, &respondent.FirstName, &respondent.LastName, &respondent.Email, &created); err != nil {
		return nil, err
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	respondent.CreatedAt = t
	return &respondent, nil
}

type responseRepo struct {
	db *sql.DB
}

func (r *responseRepo) Save(ctx context.Context, response *model.Response) error {
	if response.AnsweredAt.IsZero() {
		response.AnsweredAt = time.Now().UTC()
	}
	id := uuid.NewString()
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO responses (id, respondent_id, question_id, answer, answered_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (respondent_id, question_id)
		DO UPDATE SET answer = excluded.answer, answered_at = excluded.answered_at
		RETURNING id`,
		id, response.RespondentID, response.QuestionID, string(response.Answer), formatTime(response.AnsweredAt),
	)
	return row.Scan(&response.ID)
}

func (r *responseRepo) GetByRespondent(ctx context.Context, respondentID string) ([]*model.Response, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, respondent_id, question_id, answer, answered_at
		FROM responses WHERE respondent_id = ? ORDER BY question_id`, respondentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Response
	for rows.Next() {
		var (
			resp     model.Response
			answer   string
			answered string
		)
		if err := rows.Scan(&resp.ID, &resp.RespondentID, &resp.QuestionID, &answer, &answered); err != nil {
			return nil, err
		}
		resp.Answer = model.OptionLabel(answer)
		if resp.AnsweredAt, err = parseTime(answered); err != nil {
			return nil, err
		}
		out = append(out, &resp)
	}
	return out, rows.Err()
}

type resultRepo struct {
	db *sql.DB
}

const resultColumns = `id, respondent_id, primary_style, secondary_style,
	directive_score, informative_score, participative_score, delegative_score,
	adequacy_score, adequacy_level, adaptability, created_at`

func (r *resultRepo) SaveOnce(ctx context.Context, result *model.StoredResult) (*model.StoredResult, bool, error) {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now().UTC()
	}
	tally := result.StyleTally
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO results (`+resultColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (respondent_id) DO NOTHING`,
		result.ID, result.RespondentID, string(result.PrimaryStyle), string(result.SecondaryStyle),
		tally[model.StyleDirective], tally[model.StyleInformative],
		tally[model.StyleParticipative], tally[model.StyleDelegative],
		result.AdequacyScore, result.AdequacyLevel, result.Adaptability, formatTime(result.CreatedAt),
	)
	if err != nil && !isUniqueViolation(err) {
		return nil, false, err
	}
	if err == nil {
		if n, _ := res.RowsAffected(); n == 1 {
			return result, true, nil
		}
	}
	existing, err := r.GetByRespondent(ctx, result.RespondentID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *resultRepo) GetByRespondent(ctx context.Context, respondentID string) (*model.StoredResult, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+resultColumns+` FROM results WHERE respondent_id = ?`, respondentID)
	result, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return result, err
}

func (r *resultRepo) List(ctx context.Context) ([]*model.StoredResult, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+resultColumns+` FROM results ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.StoredResult
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, rows.Err()
}

func scanResult(row scanner) (*model.StoredResult, error) {
	var (
		result              model.StoredResult
		primary, secondary  string
		dir, inf, part, del int
		created             string
	)
	err := row.Scan(&result.ID, &result.RespondentID, &primary, &secondary,
		&dir, &inf, &part, &del,
		&result.AdequacyScore, &result.AdequacyLevel, &result.Adaptability, &created)
	if err != nil {
		return nil, err
	}
	result.PrimaryStyle = model.StyleCategory(primary)
	result.SecondaryStyle = model.StyleCategory(secondary)
	result.StyleTally = map[model.StyleCategory]int{
		model.StyleDirective:     dir,
		model.StyleInformative:   inf,
		model.StyleParticipative: part,
		model.StyleDelegative:    del,
	}
	if result.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &result, nil
}
