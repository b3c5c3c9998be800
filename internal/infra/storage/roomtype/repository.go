package roomtype

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-HotelService/pkg/txmanager"
)

var columns = []string{
	"id",
	"name",
	"total_rooms",
	"max_guests",
	"weekday_rate",
	"weekend_rate",
	"active",
	"created_at",
	"updated_at",
}

// Repository каталог типов номеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов номеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает тип номера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RoomType, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("room_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	rt, err := scanRoomType(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRoomTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room type: %w", ErrScanRow, err)
	}

	return rt, nil
}

// List получает типы номеров по возрастанию id
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*domain.RoomType, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("room_types").
		OrderBy("id ASC")
	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.RoomType, 0)
	for rows.Next() {
		rt, err := scanRoomType(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		result = append(result, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// Upsert создает или обновляет тип номера по id
// Используется при загрузке каталога из конфигурации
func (r *Repository) Upsert(ctx context.Context, rt *domain.RoomType) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("room_types").
		Columns("id", "name", "total_rooms", "max_guests", "weekday_rate", "weekend_rate", "active").
		Values(rt.ID, rt.Name, rt.TotalRooms, rt.MaxGuests, rt.WeekdayRate, rt.WeekendRate, rt.Active).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			total_rooms = EXCLUDED.total_rooms,
			max_guests = EXCLUDED.max_guests,
			weekday_rate = EXCLUDED.weekday_rate,
			weekend_rate = EXCLUDED.weekend_rate,
			active = EXCLUDED.active,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rt.CreatedAt, &rt.UpdatedAt); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRoomType(row rowScanner) (*domain.RoomType, error) {
	var rt domain.RoomType
	err := row.Scan(
		&rt.ID,
		&rt.Name,
		&rt.TotalRooms,
		&rt.MaxGuests,
		&rt.WeekdayRate,
		&rt.WeekendRate,
		&rt.Active,
		&rt.CreatedAt,
		&rt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}
