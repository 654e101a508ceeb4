package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Immortal215/flashdeck/internal/logger"
	"github.com/Immortal215/flashdeck/internal/models"
	"github.com/Immortal215/flashdeck/internal/scheduler"
	"github.com/Immortal215/flashdeck/internal/store"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type historyStore struct {
	db *sql.DB
}

// NewHistoryStore returns a HistoryStore backed by the given database.
func NewHistoryStore(db *sql.DB) store.HistoryStore {
	return &historyStore{db: db}
}

func (s *historyStore) Insert(ctx context.Context, deckID, cardID string, response scheduler.Response, intervalDays int, ease float64) error {
	log := logger.FromContext(ctx).WithPrefix("history_store")
	log.Debug("recording review: deck=%s card=%s response=%s", deckID, cardID, response)

	_, err := s.db.ExecContext(ctx, `
INSERT INTO review_history (deck_id, card_id, response, interval_days, ease)
VALUES (?, ?, ?, ?, ?)
`, deckID, cardID, response.String(), intervalDays, ease)
	if err != nil {
		log.Error("failed to record review: %v", err)
	}
	return err
}

func (s *historyStore) CountReviews(ctx context.Context, deckID string) (int, error) {
	query, args, err := sqlBuilder.
		Select("COUNT(*)").
		From("review_history").
		Where(squirrel.Eq{"deck_id": deckID}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *historyStore) ResponseStats(ctx context.Context, deckID string) ([]models.ResponseStat, error) {
	log := logger.FromContext(ctx).WithPrefix("history_store")

	query, args, err := sqlBuilder.
		Select(
			"response",
			"COUNT(*) AS total_reviews",
			"AVG(interval_days) AS avg_interval",
			"AVG(ease) AS avg_ease",
		).
		From("review_history").
		Where(squirrel.Eq{"deck_id": deckID}).
		GroupBy("response").
		OrderBy("total_reviews DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query response stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.ResponseStat
	for rows.Next() {
		var st models.ResponseStat
		if err := rows.Scan(&st.Response, &st.TotalReviews, &st.AvgInterval, &st.AvgEase); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

func (s *historyStore) DailyStats(ctx context.Context, deckID string, days int) ([]models.DailyReviewStat, error) {
	log := logger.FromContext(ctx).WithPrefix("history_store")

	query, args, err := sqlBuilder.
		Select(
			"DATE(reviewed_at) AS day",
			"COUNT(*) AS total_reviews",
		).
		From("review_history").
		Where(squirrel.Eq{"deck_id": deckID}).
		Where("reviewed_at >= DATE('now', ?)", fmtDaysAgo(days)).
		GroupBy("DATE(reviewed_at)").
		OrderBy("day ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query daily stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.DailyReviewStat
	for rows.Next() {
		var st models.DailyReviewStat
		if err := rows.Scan(&st.Day, &st.TotalReviews); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// fmtDaysAgo builds a SQLite date modifier, e.g. "-30 days".
func fmtDaysAgo(days int) string {
	if days < 1 {
		days = 1
	}
	return fmt.Sprintf("-%d days", days)
}
