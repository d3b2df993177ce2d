package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/athebyme/storefront-platform/pkg/interfaces"
	"github.com/athebyme/storefront-platform/pkg/tx"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/domain/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogStorageInterface определяет интерфейс взаимодействия с хранилищем каталога
type CatalogStorageInterface interface {
	// Category методы
	SaveCategory(ctx context.Context, category *models.Category) error
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)

	// Flag методы
	SaveFlag(ctx context.Context, flag *models.Flag) error
	GetFlag(ctx context.Context, flagID string) (*models.Flag, error)
	ListFlags(ctx context.Context) ([]*models.Flag, error)
	FindFlagsByNames(ctx context.Context, names []string) ([]*models.Flag, error)
	CountFlags(ctx context.Context) (int, error)
	UpdateFlag(ctx context.Context, flag *models.Flag) error
	DeleteFlag(ctx context.Context, flagID string) (*models.Flag, error)
	ShiftFlagPositionsAfter(ctx context.Context, position int) error
	UpdateFlagPosition(ctx context.Context, flagID string, position int) error

	// Product методы
	InsertProduct(ctx context.Context, product *models.Product) (string, error)
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	ListProducts(ctx context.Context, filters map[string]interface{}, limit, offset int) ([]*models.Product, int, error)
	DeleteProduct(ctx context.Context, productID string) error
}

// CatalogStoragePort расширяет интерфейс хранилища методами жизненного цикла соединения
type CatalogStoragePort interface {
	CatalogStorageInterface
	interfaces.StoragePort
}

// CatalogStorage реализация хранилища каталога для PostgreSQL
type CatalogStorage struct {
	pool *pgxpool.Pool
}

var _ CatalogStoragePort = (*CatalogStorage)(nil)

// NewCatalogStorage создает новый экземпляр CatalogStorage
func NewCatalogStorage(ctx context.Context, connectionString string) (*CatalogStorage, error) {
	pool, err := pgxpool.New(ctx, connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &CatalogStorage{pool: pool}, nil
}

// Ping проверяет доступность БД
func (r *CatalogStorage) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close закрывает соединение с БД
func (r *CatalogStorage) Close() error {
	r.pool.Close()
	return nil
}

// Pool возвращает пул соединений для менеджера транзакций
func (r *CatalogStorage) Pool() *pgxpool.Pool {
	return r.pool
}

type executor interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// getExecutor возвращает исполнителя запросов (транзакцию из контекста или пул)
func (r *CatalogStorage) getExecutor(ctx context.Context) executor {
	if txFromCtx, ok := tx.GetTxFromContext(ctx); ok {
		return txFromCtx
	}
	return r.pool
}

// SaveCategory сохраняет категорию в базу данных
func (r *CatalogStorage) SaveCategory(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO catalog.categories (id, name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id)
		DO UPDATE SET name = $2
	`

	if _, err := r.getExecutor(ctx).Exec(ctx, query, category.ID, category.Name, category.CreatedAt); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

// GetCategoryByName получает категорию по точному имени
func (r *CatalogStorage) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	query := `
		SELECT id, name, created_at
		FROM catalog.categories
		WHERE name = $1
	`

	var category models.Category
	row := r.getExecutor(ctx).QueryRow(ctx, query, name)
	if err := row.Scan(&category.ID, &category.Name, &category.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Категория не найдена
		}
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}

	return &category, nil
}

// ListCategories возвращает все категории, упорядоченные по имени
func (r *CatalogStorage) ListCategories(ctx context.Context) ([]*models.Category, error) {
	query := `
		SELECT id, name, created_at
		FROM catalog.categories
		ORDER BY name
	`

	rows, err := r.getExecutor(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, &category)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error while iterating category rows: %w", rows.Err())
	}

	return categories, nil
}

// SaveFlag сохраняет метку в базу данных
func (r *CatalogStorage) SaveFlag(ctx context.Context, flag *models.Flag) error {
	if flag.ID == "" {
		flag.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	if flag.CreatedAt.IsZero() {
		flag.CreatedAt = now
	}
	flag.UpdatedAt = now

	query := `
		INSERT INTO catalog.flags (id, name, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			name = $2,
			position = $3,
			updated_at = $5
	`

	if _, err := r.getExecutor(ctx).Exec(ctx, query,
		flag.ID, flag.Name, flag.Position, flag.CreatedAt, flag.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save flag: %w", err)
	}
	return nil
}

// GetFlag получает метку по ID
func (r *CatalogStorage) GetFlag(ctx context.Context, flagID string) (*models.Flag, error) {
	query := `
		SELECT id, name, position, created_at, updated_at
		FROM catalog.flags
		WHERE id = $1
	`

	var flag models.Flag
	row := r.getExecutor(ctx).QueryRow(ctx, query, flagID)
	if err := row.Scan(&flag.ID, &flag.Name, &flag.Position, &flag.CreatedAt, &flag.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Метка не найдена
		}
		return nil, fmt.Errorf("failed to get flag: %w", err)
	}

	return &flag, nil
}

// ListFlags возвращает все метки в порядке позиций
func (r *CatalogStorage) ListFlags(ctx context.Context) ([]*models.Flag, error) {
	query := `
		SELECT id, name, position, created_at, updated_at
		FROM catalog.flags
		ORDER BY position
	`

	rows, err := r.getExecutor(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list flags: %w", err)
	}
	defer rows.Close()

	return scanFlags(rows)
}

// FindFlagsByNames возвращает метки, имена которых входят в переданный набор.
// Ненайденные имена не являются ошибкой
func (r *CatalogStorage) FindFlagsByNames(ctx context.Context, names []string) ([]*models.Flag, error) {
	if len(names) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, name, position, created_at, updated_at
		FROM catalog.flags
		WHERE name = ANY($1)
		ORDER BY position
	`

	rows, err := r.getExecutor(ctx).Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("failed to find flags by names: %w", err)
	}
	defer rows.Close()

	return scanFlags(rows)
}

// CountFlags возвращает общее число меток
func (r *CatalogStorage) CountFlags(ctx context.Context) (int, error) {
	var count int
	if err := r.getExecutor(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM catalog.flags`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count flags: %w", err)
	}
	return count, nil
}

// UpdateFlag обновляет имя метки
func (r *CatalogStorage) UpdateFlag(ctx context.Context, flag *models.Flag) error {
	flag.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE catalog.flags
		SET name = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := r.getExecutor(ctx).Exec(ctx, query, flag.ID, flag.Name, flag.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteFlag удаляет метку и возвращает удаленную запись (для пересчета позиций)
func (r *CatalogStorage) DeleteFlag(ctx context.Context, flagID string) (*models.Flag, error) {
	query := `
		DELETE FROM catalog.flags
		WHERE id = $1
		RETURNING id, name, position, created_at, updated_at
	`

	var flag models.Flag
	row := r.getExecutor(ctx).QueryRow(ctx, query, flagID)
	if err := row.Scan(&flag.ID, &flag.Name, &flag.Position, &flag.CreatedAt, &flag.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Метка не найдена
		}
		return nil, fmt.Errorf("failed to delete flag: %w", err)
	}

	return &flag, nil
}

// ShiftFlagPositionsAfter сдвигает на единицу вниз позиции всех меток после указанной позиции
func (r *CatalogStorage) ShiftFlagPositionsAfter(ctx context.Context, position int) error {
	query := `
		UPDATE catalog.flags
		SET position = position - 1
		WHERE position > $1
	`

	if _, err := r.getExecutor(ctx).Exec(ctx, query, position); err != nil {
		return fmt.Errorf("failed to shift flag positions: %w", err)
	}
	return nil
}

// UpdateFlagPosition устанавливает позицию метки
func (r *CatalogStorage) UpdateFlagPosition(ctx context.Context, flagID string, position int) error {
	query := `
		UPDATE catalog.flags
		SET position = $2, updated_at = $3
		WHERE id = $1
	`

	if _, err := r.getExecutor(ctx).Exec(ctx, query, flagID, position, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to update flag position: %w", err)
	}
	return nil
}

// scanFlags собирает метки из результата запроса
func scanFlags(rows pgx.Rows) ([]*models.Flag, error) {
	var flags []*models.Flag
	for rows.Next() {
		var flag models.Flag
		if err := rows.Scan(&flag.ID, &flag.Name, &flag.Position, &flag.CreatedAt, &flag.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan flag row: %w", err)
		}
		flags = append(flags, &flag)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error while iterating flag rows: %w", rows.Err())
	}

	return flags, nil
}

// InsertProduct вставляет новый товар и возвращает присвоенный идентификатор.
// Вставка не выполняет дедупликацию по имени: повторная загрузка того же
// манифеста создаст дубликаты товаров
func (r *CatalogStorage) InsertProduct(ctx context.Context, product *models.Product) (string, error) {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	query := `
		INSERT INTO catalog.products
			(id, name, category_id, flag_ids, price, stock, thumbnail_image, images,
			 short_desc, long_desc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	if _, err := r.getExecutor(ctx).Exec(ctx, query,
		product.ID, product.Name, product.CategoryID, product.FlagIDs,
		product.Price, product.Stock, product.ThumbnailImage, product.Images,
		product.ShortDesc, product.LongDesc, product.CreatedAt, product.UpdatedAt); err != nil {
		return "", fmt.Errorf("failed to insert product: %w", err)
	}

	return product.ID, nil
}

// GetProduct получает товар по ID
func (r *CatalogStorage) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	query := `
		SELECT id, name, category_id, flag_ids, price, stock, thumbnail_image, images,
		       short_desc, long_desc, created_at, updated_at
		FROM catalog.products
		WHERE id = $1
	`

	var product models.Product
	row := r.getExecutor(ctx).QueryRow(ctx, query, productID)
	err := row.Scan(&product.ID, &product.Name, &product.CategoryID, &product.FlagIDs,
		&product.Price, &product.Stock, &product.ThumbnailImage, &product.Images,
		&product.ShortDesc, &product.LongDesc, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Товар не найден
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// ListProducts возвращает список товаров с поддержкой пагинации и фильтрации
func (r *CatalogStorage) ListProducts(ctx context.Context, filters map[string]interface{}, limit, offset int) ([]*models.Product, int, error) {
	baseQuery := ` FROM catalog.products WHERE 1=1`

	var args []interface{}
	argPos := 1

	if categoryID, ok := filters["category_id"]; ok {
		baseQuery += fmt.Sprintf(" AND category_id = $%d", argPos)
		args = append(args, categoryID)
		argPos++
	}

	if flagID, ok := filters["flag_id"]; ok {
		baseQuery += fmt.Sprintf(" AND $%d = ANY(flag_ids)", argPos)
		args = append(args, flagID)
		argPos++
	}

	if name, ok := filters["name"]; ok {
		baseQuery += fmt.Sprintf(" AND name = $%d", argPos)
		args = append(args, name)
		argPos++
	}

	if searchQuery, ok := filters["search_query"]; ok {
		baseQuery += fmt.Sprintf(" AND (name ILIKE $%d OR short_desc ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+fmt.Sprint(searchQuery)+"%")
		argPos++
	}

	ex := r.getExecutor(ctx)

	var total int
	if err := ex.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	if total == 0 {
		return []*models.Product{}, 0, nil
	}

	dataQuery := `
		SELECT id, name, category_id, flag_ids, price, stock, thumbnail_image, images,
		       short_desc, long_desc, created_at, updated_at` + baseQuery +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := ex.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var product models.Product
		err := rows.Scan(&product.ID, &product.Name, &product.CategoryID, &product.FlagIDs,
			&product.Price, &product.Stock, &product.ThumbnailImage, &product.Images,
			&product.ShortDesc, &product.LongDesc, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, &product)
	}

	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error while iterating product rows: %w", rows.Err())
	}

	return products, total, nil
}

// DeleteProduct удаляет товар из хранилища
func (r *CatalogStorage) DeleteProduct(ctx context.Context, productID string) error {
	query := `
		DELETE FROM catalog.products
		WHERE id = $1
	`

	if _, err := r.getExecutor(ctx).Exec(ctx, query, productID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}
