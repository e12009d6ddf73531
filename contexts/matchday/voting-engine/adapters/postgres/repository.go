package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"postmatch/contexts/matchday/voting-engine/domain/entities"
	domainerrors "postmatch/contexts/matchday/voting-engine/domain/errors"
	"postmatch/contexts/matchday/voting-engine/ports"

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

// InsertBallot writes every record of one ballot inside a single transaction.
// The unique index on (vote_session_id, voter_id, type, points) rejects any
// resubmission, and the rollback guarantees no partial ballot survives.
func (r *Repository) InsertBallot(ctx context.Context, records []entities.VoteRecord) error {
	rows := make([]voteModel, 0, len(records))
	for _, record := range records {
		rows = append(rows, voteModelFromEntity(record))
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyVoted
		}
		sessionID, voterID := "", ""
		if len(records) > 0 {
			sessionID = strings.TrimSpace(records[0].SessionID)
			voterID = strings.TrimSpace(records[0].VoterID)
		}
		return r.logError("voting_repo_insert_ballot_failed", err,
			"session_id", sessionID,
			"voter_id", voterID,
		)
	}
	return nil
}

func (r *Repository) HasVoted(ctx context.Context, sessionID string, voterID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&voteModel{}).
		Where("vote_session_id = ?", strings.TrimSpace(sessionID)).
		Where("voter_id = ?", strings.TrimSpace(voterID)).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("voting_repo_has_voted_failed", err,
			"session_id", strings.TrimSpace(sessionID),
			"voter_id", strings.TrimSpace(voterID),
		)
	}
	return count > 0, nil
}

func (r *Repository) ListVotesBySession(ctx context.Context, sessionID string) ([]entities.VoteRecord, error) {
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Where("vote_session_id = ?", strings.TrimSpace(sessionID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_votes_by_session_failed", err,
			"session_id", strings.TrimSpace(sessionID),
		)
	}
	return toVoteEntities(rows), nil
}

func (r *Repository) ListVotes(ctx context.Context) ([]entities.VoteRecord, error) {
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_votes_failed", err)
	}
	return toVoteEntities(rows), nil
}

func (r *Repository) GetSessionByMatch(ctx context.Context, matchID string) (entities.VoteSession, bool, error) {
	var row voteSessionModel
	err := r.db.WithContext(ctx).
		Where("match_id = ?", strings.TrimSpace(matchID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.VoteSession{}, false, nil
		}
		return entities.VoteSession{}, false, r.logError("voting_repo_get_session_by_match_failed", err,
			"match_id", strings.TrimSpace(matchID),
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListSessions(ctx context.Context) ([]entities.VoteSession, error) {
	var rows []voteSessionModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_sessions_failed", err)
	}
	items := make([]entities.VoteSession, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetMatch(ctx context.Context, matchID string) (entities.Match, error) {
	var row matchModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(matchID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Match{}, domainerrors.ErrMatchNotFound
		}
		return entities.Match{}, r.logError("voting_repo_get_match_failed", err,
			"match_id", strings.TrimSpace(matchID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListMatches(ctx context.Context) ([]entities.Match, error) {
	var rows []matchModel
	if err := r.db.WithContext(ctx).
		Order("date DESC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_matches_failed", err)
	}
	items := make([]entities.Match, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListActivePlayers(ctx context.Context) ([]entities.Player, error) {
	var rows []playerModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_active_players_failed", err)
	}
	return toPlayerEntities(rows), nil
}

func (r *Repository) ListPlayers(ctx context.Context) ([]entities.Player, error) {
	var rows []playerModel
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_players_failed", err)
	}
	return toPlayerEntities(rows), nil
}

func (r *Repository) GetVoterByEmail(ctx context.Context, email string) (entities.Voter, bool, error) {
	var row voterModel
	err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Voter{}, false, nil
		}
		return entities.Voter{}, false, r.logError("voting_repo_get_voter_by_email_failed", err,
			"email", normalizeEmail(email),
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetActiveAllowedVoter(ctx context.Context, email string) (entities.AllowedVoter, bool, error) {
	var row allowedVoterModel
	err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		Where("is_active = ?", true).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.AllowedVoter{}, false, nil
		}
		return entities.AllowedVoter{}, false, r.logError("voting_repo_get_allowed_voter_failed", err,
			"email", normalizeEmail(email),
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) CreateVoter(ctx context.Context, voter entities.Voter) error {
	row := voterModelFromEntity(voter)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateVoter
		}
		return r.logError("voting_repo_create_voter_failed", err,
			"voter_id", row.ID,
			"email", row.Email,
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "matchday/voting-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("voting repository operation failed", fields...)
	return err
}

type voteModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	VoteSessionID string    `gorm:"column:vote_session_id"`
	VoterID       string    `gorm:"column:voter_id"`
	PlayerID      string    `gorm:"column:player_id"`
	Type          string    `gorm:"column:type"`
	Points        int       `gorm:"column:points"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (voteModel) TableName() string {
	return "votes"
}

func voteModelFromEntity(record entities.VoteRecord) voteModel {
	row := voteModel{
		ID:            strings.TrimSpace(record.VoteID),
		VoteSessionID: strings.TrimSpace(record.SessionID),
		VoterID:       strings.TrimSpace(record.VoterID),
		PlayerID:      strings.TrimSpace(record.PlayerID),
		Type:          string(record.Category),
		Points:        record.Points,
		CreatedAt:     record.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m voteModel) toEntity() entities.VoteRecord {
	return entities.VoteRecord{
		VoteID:    m.ID,
		SessionID: m.VoteSessionID,
		VoterID:   m.VoterID,
		PlayerID:  m.PlayerID,
		Category:  entities.VoteCategory(m.Type),
		Points:    m.Points,
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

func (m voteSessionModel) toEntity() entities.VoteSession {
	return entities.VoteSession{
		SessionID: m.ID,
		MatchID:   m.MatchID,
		OpensAt:   normalizeOptionalTime(m.OpensAt),
		ClosesAt:  normalizeOptionalTime(m.ClosesAt),
		CreatedAt: m.CreatedAt.UTC(),
	}
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

func (m matchModel) toEntity() entities.Match {
	return entities.Match{
		MatchID:   m.ID,
		Date:      m.Date.UTC(),
		Rival:     m.Rival,
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

func (m playerModel) toEntity() entities.Player {
	return entities.Player{
		PlayerID:  m.ID,
		Name:      m.Name,
		Dorsal:    m.Dorsal,
		Active:    m.IsActive,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type voterModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	AuthUserID     string    `gorm:"column:auth_user_id"`
	Email          string    `gorm:"column:email"`
	AllowedVoterID string    `gorm:"column:allowed_voter_id"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (voterModel) TableName() string {
	return "voters"
}

func voterModelFromEntity(voter entities.Voter) voterModel {
	row := voterModel{
		ID:             strings.TrimSpace(voter.VoterID),
		AuthUserID:     strings.TrimSpace(voter.AuthUserID),
		Email:          normalizeEmail(voter.Email),
		AllowedVoterID: strings.TrimSpace(voter.AllowedVoterID),
		CreatedAt:      voter.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m voterModel) toEntity() entities.Voter {
	return entities.Voter{
		VoterID:        m.ID,
		AuthUserID:     m.AuthUserID,
		Email:          m.Email,
		AllowedVoterID: m.AllowedVoterID,
		CreatedAt:      m.CreatedAt.UTC(),
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

func (m allowedVoterModel) toEntity() entities.AllowedVoter {
	return entities.AllowedVoter{
		AllowedVoterID: m.ID,
		PlayerName:     m.PlayerName,
		Email:          m.Email,
		Active:         m.IsActive,
		CreatedAt:      m.CreatedAt.UTC(),
	}
}

func toVoteEntities(rows []voteModel) []entities.VoteRecord {
	items := make([]entities.VoteRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

func toPlayerEntities(rows []playerModel) []entities.Player {
	items := make([]entities.Player, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.VoteRepository = (*Repository)(nil)
var _ ports.SessionRepository = (*Repository)(nil)
var _ ports.MatchRepository = (*Repository)(nil)
var _ ports.PlayerRepository = (*Repository)(nil)
var _ ports.VoterRepository = (*Repository)(nil)
