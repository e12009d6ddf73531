package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "postmatch/contexts/matchday/roster-service/domain/errors"
	"postmatch/contexts/matchday/roster-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// CreateMatch writes the match row and its unscheduled session row in one
// transaction; a match never exists without its session.
func (r *Repository) CreateMatch(ctx context.Context, match ports.Match, session ports.VoteSession) (ports.MatchWithSession, error) {
	matchRow := matchModelFromPort(match)
	sessionRow := sessionModelFromPort(session)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&matchRow).Error; err != nil {
			return err
		}
		return tx.Create(&sessionRow).Error
	})
	if err != nil {
		return ports.MatchWithSession{}, r.logError("roster_repo_create_match_failed", err,
			"match_id", matchRow.ID,
		)
	}
	return ports.MatchWithSession{
		Match:   matchRow.toPort(),
		Session: sessionRow.toPort(),
	}, nil
}

// ScheduleSession sets the window boundaries with a guarded update: the WHERE
// clause only matches an unscheduled row, so a second schedule attempt
// affects nothing and maps to ErrAlreadyScheduled.
func (r *Repository) ScheduleSession(ctx context.Context, matchID string, opensAt time.Time, closesAt time.Time) (ports.VoteSession, error) {
	matchID = strings.TrimSpace(matchID)
	result := r.db.WithContext(ctx).
		Model(&voteSessionModel{}).
		Where("match_id = ?", matchID).
		Where("opens_at IS NULL").
		Where("closes_at IS NULL").
		Updates(map[string]any{
			"opens_at":  opensAt.UTC(),
			"closes_at": closesAt.UTC(),
		})
	if result.Error != nil {
		return ports.VoteSession{}, r.logError("roster_repo_schedule_session_failed", result.Error,
			"match_id", matchID,
		)
	}
	if result.RowsAffected == 0 {
		var row voteSessionModel
		err := r.db.WithContext(ctx).
			Where("match_id = ?", matchID).
			First(&row).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				var count int64
				if err := r.db.WithContext(ctx).
					Model(&matchModel{}).
					Where("id = ?", matchID).
					Count(&count).Error; err != nil {
					return ports.VoteSession{}, r.logError("roster_repo_schedule_session_lookup_failed", err,
						"match_id", matchID,
					)
				}
				if count == 0 {
					return ports.VoteSession{}, domainerrors.ErrMatchNotFound
				}
				return ports.VoteSession{}, domainerrors.ErrSessionNotFound
			}
			return ports.VoteSession{}, r.logError("roster_repo_schedule_session_lookup_failed", err,
				"match_id", matchID,
			)
		}
		return ports.VoteSession{}, domainerrors.ErrAlreadyScheduled
	}

	var row voteSessionModel
	if err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		First(&row).
		Error; err != nil {
		return ports.VoteSession{}, r.logError("roster_repo_schedule_session_reload_failed", err,
			"match_id", matchID,
		)
	}
	return row.toPort(), nil
}

func (r *Repository) ListMatches(ctx context.Context) ([]ports.MatchWithSession, error) {
	var matchRows []matchModel
	if err := r.db.WithContext(ctx).
		Order("date DESC, id ASC").
		Find(&matchRows).Error; err != nil {
		return nil, r.logError("roster_repo_list_matches_failed", err)
	}
	var sessionRows []voteSessionModel
	if err := r.db.WithContext(ctx).
		Find(&sessionRows).Error; err != nil {
		return nil, r.logError("roster_repo_list_sessions_failed", err)
	}
	byMatch := make(map[string]voteSessionModel, len(sessionRows))
	for _, row := range sessionRows {
		byMatch[row.MatchID] = row
	}

	items := make([]ports.MatchWithSession, 0, len(matchRows))
	for _, row := range matchRows {
		item := ports.MatchWithSession{Match: row.toPort()}
		if session, ok := byMatch[row.ID]; ok {
			item.Session = session.toPort()
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) CreatePlayer(ctx context.Context, player ports.Player) (ports.Player, error) {
	row := playerModelFromPort(player)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return ports.Player{}, r.logError("roster_repo_create_player_failed", err,
			"player_id", row.ID,
		)
	}
	return row.toPort(), nil
}

func (r *Repository) ListPlayers(ctx context.Context) ([]ports.Player, error) {
	var rows []playerModel
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("roster_repo_list_players_failed", err)
	}
	items := make([]ports.Player, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toPort())
	}
	return items, nil
}

func (r *Repository) CreateAllowedVoter(ctx context.Context, allowed ports.AllowedVoter) (ports.AllowedVoter, error) {
	row := allowedVoterModelFromPort(allowed)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.AllowedVoter{}, domainerrors.ErrDuplicateEmail
		}
		return ports.AllowedVoter{}, r.logError("roster_repo_create_allowed_voter_failed", err,
			"allowed_voter_id", row.ID,
			"email", row.Email,
		)
	}
	return row.toPort(), nil
}

func (r *Repository) ListAllowedVoters(ctx context.Context) ([]ports.AllowedVoter, error) {
	var rows []allowedVoterModel
	if err := r.db.WithContext(ctx).
		Order("email ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("roster_repo_list_allowed_voters_failed", err)
	}
	items := make([]ports.AllowedVoter, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toPort())
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "matchday/roster-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("roster repository operation failed", fields...)
	return err
}

type matchModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Date      time.Time `gorm:"column:date"`
	Rival     string    `gorm:"column:rival"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (matchModel) TableName() string {
	return "matches"
}

func matchModelFromPort(match ports.Match) matchModel {
	row := matchModel{
		ID:        strings.TrimSpace(match.MatchID),
		Date:      match.Date.UTC(),
		Rival:     strings.TrimSpace(match.Rival),
		CreatedAt: match.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m matchModel) toPort() ports.Match {
	return ports.Match{
		MatchID:   m.ID,
		Date:      m.Date.UTC(),
		Rival:     m.Rival,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type voteSessionModel struct {
	ID        string     `gorm:"column:id;primaryKey"`
	MatchID   string     `gorm:"column:match_id"`
	OpensAt   *time.Time `gorm:"column:opens_at"`
	ClosesAt  *time.Time `gorm:"column:closes_at"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (voteSessionModel) TableName() string {
	return "vote_sessions"
}

func sessionModelFromPort(session ports.VoteSession) voteSessionModel {
	row := voteSessionModel{
		ID:        strings.TrimSpace(session.SessionID),
		MatchID:   strings.TrimSpace(session.MatchID),
		OpensAt:   normalizeOptionalTime(session.OpensAt),
		ClosesAt:  normalizeOptionalTime(session.ClosesAt),
		CreatedAt: session.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m voteSessionModel) toPort() ports.VoteSession {
	return ports.VoteSession{
		SessionID: m.ID,
		MatchID:   m.MatchID,
		OpensAt:   normalizeOptionalTime(m.OpensAt),
		ClosesAt:  normalizeOptionalTime(m.ClosesAt),
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type playerModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Dorsal    *int      `gorm:"column:dorsal"`
	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (playerModel) TableName() string {
	return "players"
}

func playerModelFromPort(player ports.Player) playerModel {
	row := playerModel{
		ID:        strings.TrimSpace(player.PlayerID),
		Name:      strings.TrimSpace(player.Name),
		Dorsal:    player.Dorsal,
		IsActive:  player.Active,
		CreatedAt: player.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m playerModel) toPort() ports.Player {
	return ports.Player{
		PlayerID:  m.ID,
		Name:      m.Name,
		Dorsal:    m.Dorsal,
		Active:    m.IsActive,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type allowedVoterModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	PlayerName string    `gorm:"column:player_name"`
	Email      string    `gorm:"column:email"`
	IsActive   bool      `gorm:"column:is_active"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (allowedVoterModel) TableName() string {
	return "allowed_voters"
}

func allowedVoterModelFromPort(allowed ports.AllowedVoter) allowedVoterModel {
	row := allowedVoterModel{
		ID:         strings.TrimSpace(allowed.AllowedVoterID),
		PlayerName: strings.TrimSpace(allowed.PlayerName),
		Email:      strings.ToLower(strings.TrimSpace(allowed.Email)),
		IsActive:   allowed.Active,
		CreatedAt:  allowed.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m allowedVoterModel) toPort() ports.AllowedVoter {
	return ports.AllowedVoter{
		AllowedVoterID: m.ID,
		PlayerName:     m.PlayerName,
		Email:          m.Email,
		Active:         m.IsActive,
		CreatedAt:      m.CreatedAt.UTC(),
	}
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
