package tickets

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

const ticketColumns = `
  id,
  ticket_id,
  status,
  amount_minor,
  token_type,
  facebook_name,
  game,
  game_id,
  payment_method,
  payment_tag,
  account_name,
  image_path,
  completion_images,
  payment_details,
  domain_id,
  chat_group_id,
  fulfiller_id,
  report_reason,
  created_at,
  completed_at
`

type Repository struct {
	db *sql.DB
}

var _ portsout.TicketRepository = (*Repository)(nil)

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, ticket entities.Ticket) (entities.Ticket, *apperrors.AppError) {
	const insertSQL = `
INSERT INTO app.tickets (
  ticket_id,
  status,
  amount_minor,
  token_type,
  facebook_name,
  game,
  game_id,
  payment_method,
  payment_tag,
  account_name,
  image_path,
  completion_images,
  payment_details,
  domain_id,
  chat_group_id,
  created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
RETURNING ` + ticketColumns

	completionImages, appErr := encodeStringList(ticket.CompletionImages)
	if appErr != nil {
		return entities.Ticket{}, appErr
	}
	paymentDetails, appErr := encodePaymentDetails(ticket.PaymentDetails)
	if appErr != nil {
		return entities.Ticket{}, appErr
	}

	row := r.db.QueryRowContext(
		ctx,
		insertSQL,
		nullString(ticket.TicketID),
		ticket.Status.String(),
		ticket.AmountMinor,
		string(ticket.TokenType),
		ticket.FacebookName,
		ticket.Game,
		ticket.GameID,
		ticket.PaymentMethod,
		ticket.PaymentTag,
		ticket.AccountName,
		ticket.ImagePath,
		completionImages,
		paymentDetails,
		ticket.DomainID,
		ticket.ChatGroupID,
		ticket.CreatedAt.UTC(),
	)

	created, appErr := scanTicket(row)
	if appErr != nil {
		return entities.Ticket{}, apperrors.NewInternal(
			"ticket_insert_failed",
			"failed to insert ticket",
			appErr.Details,
		)
	}

	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (entities.Ticket, *apperrors.AppError) {
	query := `SELECT ` + ticketColumns + ` FROM app.tickets WHERE id = $1`

	ticket, appErr := scanTicket(r.db.QueryRowContext(ctx, query, id))
	if appErr != nil {
		if appErr.Type == apperrors.TypeNotFound {
			return entities.Ticket{}, apperrors.NewNotFound(
				"ticket_not_found",
				"ticket not found",
				map[string]any{"ticket_id": id},
			)
		}
		return entities.Ticket{}, appErr
	}

	return ticket, nil
}

func (r *Repository) List(ctx context.Context, status string, page, limit int) ([]entities.Ticket, int64, *apperrors.AppError) {
	if page < 1 {
		page = 1
	}

	filter := strings.TrimSpace(status)
	countQuery := `SELECT count(*) FROM app.tickets WHERE ($1 = '' OR status = $1)`

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, filter).Scan(&total); err != nil {
		return nil, 0, apperrors.NewInternal(
			"ticket_query_failed",
			"failed to count tickets",
			map[string]any{"error": err.Error()},
		)
	}

	listQuery := `
SELECT ` + ticketColumns + `
FROM app.tickets
WHERE ($1 = '' OR status = $1)
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`

	rows, err := r.db.QueryContext(ctx, listQuery, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, apperrors.NewInternal(
			"ticket_query_failed",
			"failed to list tickets",
			map[string]any{"error": err.Error()},
		)
	}
	defer rows.Close()

	items, appErr := collectTickets(rows, limit)
	if appErr != nil {
		return nil, 0, appErr
	}

	return items, total, nil
}

func (r *Repository) ListByStatuses(ctx context.Context, statuses []string) ([]entities.Ticket, *apperrors.AppError) {
	if len(statuses) == 0 {
		return []entities.Ticket{}, nil
	}

	placeholders := make([]string, 0, len(statuses))
	args := make([]any, 0, len(statuses))
	for i, status := range statuses {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, strings.TrimSpace(status))
	}

	query := `
SELECT ` + ticketColumns + `
FROM app.tickets
WHERE status IN (` + strings.Join(placeholders, ", ") + `)
ORDER BY created_at ASC, id ASC
`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternal(
			"ticket_query_failed",
			"failed to list tickets by status",
			map[string]any{"error": err.Error()},
		)
	}
	defer rows.Close()

	return collectTickets(rows, 64)
}

func (r *Repository) TransitionStatus(
	ctx context.Context,
	id int64,
	from, to valueobjects.TicketStatus,
) (entities.Ticket, *apperrors.AppError) {
	query := `
UPDATE app.tickets
SET status = $3
WHERE id = $1 AND status = $2
RETURNING ` + ticketColumns

	ticket, appErr := scanTicket(r.db.QueryRowContext(ctx, query, id, from.String(), to.String()))
	if appErr != nil {
		if appErr.Type == apperrors.TypeNotFound {
			return entities.Ticket{}, r.statusConflict(ctx, id, from.String())
		}
		return entities.Ticket{}, appErr
	}

	return ticket, nil
}

func (r *Repository) Claim(ctx context.Context, id, fulfillerID int64) (entities.Ticket, *apperrors.AppError) {
	query := `
UPDATE app.tickets
SET status = 'processing',
    fulfiller_id = $2
WHERE id = $1
  AND status = 'validated'
  AND fulfiller_id IS NULL
RETURNING ` + ticketColumns

	ticket, appErr := scanTicket(r.db.QueryRowContext(ctx, query, id, fulfillerID))
	if appErr != nil {
		if appErr.Type == apperrors.TypeNotFound {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return entities.Ticket{}, getErr
			}
			return entities.Ticket{}, apperrors.NewConflict(
				"ticket_already_assigned",
				"This ticket is already assigned",
				map[string]any{"ticket_id": id},
			)
		}
		return entities.Ticket{}, appErr
	}

	return ticket, nil
}

func (r *Repository) Complete(
	ctx context.Context,
	id int64,
	imageURLs []string,
	completedAt time.Time,
) (entities.Ticket, *apperrors.AppError) {
	query := `
UPDATE app.tickets
SET status = 'completed',
    completion_images = $2,
    completed_at = $3
WHERE id = $1 AND status = 'processing'
RETURNING ` + ticketColumns

	encoded, appErr := encodeStringList(imageURLs)
	if appErr != nil {
		return entities.Ticket{}, appErr
	}

	ticket, appErr := scanTicket(r.db.QueryRowContext(ctx, query, id, encoded, completedAt.UTC()))
	if appErr != nil {
		if appErr.Type == apperrors.TypeNotFound {
			return entities.Ticket{}, r.statusConflict(ctx, id, "processing")
		}
		return entities.Ticket{}, appErr
	}

	return ticket, nil
}

func (r *Repository) Report(
	ctx context.Context,
	id int64,
	reason valueobjects.ReportReason,
	screenshotURL string,
) (entities.Ticket, *apperrors.AppError) {
	query := `
UPDATE app.tickets
SET status = 'error',
    report_reason = $2,
    report_screenshot = NULLIF($3, '')
WHERE id = $1 AND status = 'processing'
RETURNING ` + ticketColumns

	ticket, appErr := scanTicket(r.db.QueryRowContext(ctx, query, id, reason.String(), strings.TrimSpace(screenshotURL)))
	if appErr != nil {
		if appErr.Type == apperrors.TypeNotFound {
			return entities.Ticket{}, r.statusConflict(ctx, id, "processing")
		}
		return entities.Ticket{}, appErr
	}

	return ticket, nil
}

// statusConflict disambiguates a guarded update that matched no rows:
// a missing ticket is not_found, an existing one lost a status race.
func (r *Repository) statusConflict(ctx context.Context, id int64, expected string) *apperrors.AppError {
	current, appErr := r.GetByID(ctx, id)
	if appErr != nil {
		return appErr
	}

	return apperrors.NewConflict(
		"ticket_status_conflict",
		fmt.Sprintf("ticket is no longer %s", expected),
		map[string]any{
			"ticket_id": id,
			"expected":  expected,
			"actual":    current.Status.String(),
		},
	)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (entities.Ticket, *apperrors.AppError) {
	var (
		ticket           entities.Ticket
		ticketID         sql.NullString
		status           string
		tokenType        string
		completionImages []byte
		paymentDetails   []byte
		fulfillerID      sql.NullInt64
		reportReason     sql.NullString
		completedAt      sql.NullTime
	)

	err := row.Scan(
		&ticket.ID,
		&ticketID,
		&status,
		&ticket.AmountMinor,
		&tokenType,
		&ticket.FacebookName,
		&ticket.Game,
		&ticket.GameID,
		&ticket.PaymentMethod,
		&ticket.PaymentTag,
		&ticket.AccountName,
		&ticket.ImagePath,
		&completionImages,
		&paymentDetails,
		&ticket.DomainID,
		&ticket.ChatGroupID,
		&fulfillerID,
		&reportReason,
		&ticket.CreatedAt,
		&completedAt,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return entities.Ticket{}, apperrors.NewNotFound(
			"ticket_not_found",
			"ticket not found",
			nil,
		)
	}
	if err != nil {
		return entities.Ticket{}, apperrors.NewInternal(
			"ticket_query_failed",
			"failed to parse ticket row",
			map[string]any{"error": err.Error()},
		)
	}

	ticket.TicketID = ticketID.String
	parsedStatus, appErr := valueobjects.ParseTicketStatus(status)
	if appErr != nil {
		return entities.Ticket{}, appErr
	}
	ticket.Status = parsedStatus
	ticket.TokenType = valueobjects.TokenType(tokenType)

	if len(completionImages) > 0 {
		if err := json.Unmarshal(completionImages, &ticket.CompletionImages); err != nil {
			return entities.Ticket{}, apperrors.NewInternal(
				"ticket_query_failed",
				"stored completion images are invalid",
				map[string]any{"error": err.Error()},
			)
		}
	}
	if len(paymentDetails) > 0 {
		if err := json.Unmarshal(paymentDetails, &ticket.PaymentDetails); err != nil {
			return entities.Ticket{}, apperrors.NewInternal(
				"ticket_query_failed",
				"stored payment details are invalid",
				map[string]any{"error": err.Error()},
			)
		}
	}

	if fulfillerID.Valid {
		value := fulfillerID.Int64
		ticket.FulfillerID = &value
	}
	if reportReason.Valid {
		reason, appErr := valueobjects.ParseReportReason(reportReason.String)
		if appErr != nil {
			return entities.Ticket{}, appErr
		}
		ticket.ReportReason = &reason
	}
	if completedAt.Valid {
		value := completedAt.Time.UTC()
		ticket.CompletedAt = &value
	}

	ticket.CreatedAt = ticket.CreatedAt.UTC()
	return ticket, nil
}

func collectTickets(rows *sql.Rows, capacityHint int) ([]entities.Ticket, *apperrors.AppError) {
	items := make([]entities.Ticket, 0, capacityHint)
	for rows.Next() {
		ticket, appErr := scanTicket(rows)
		if appErr != nil {
			return nil, appErr
		}
		items = append(items, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternal(
			"ticket_query_failed",
			"failed while iterating ticket rows",
			map[string]any{"error": err.Error()},
		)
	}

	return items, nil
}

func encodeStringList(values []string) ([]byte, *apperrors.AppError) {
	if values == nil {
		values = []string{}
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return nil, apperrors.NewInternal(
			"ticket_payload_encode_failed",
			"failed to encode ticket image list",
			map[string]any{"error": err.Error()},
		)
	}
	return encoded, nil
}

func encodePaymentDetails(details map[string]any) ([]byte, *apperrors.AppError) {
	if details == nil {
		details = map[string]any{}
	}
	encoded, err := json.Marshal(details)
	if err != nil {
		return nil, apperrors.NewInternal(
			"ticket_payload_encode_failed",
			"failed to encode ticket payment details",
			map[string]any{"error": err.Error()},
		)
	}
	return encoded, nil
}

func nullString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
